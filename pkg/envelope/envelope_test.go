package envelope

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func TestOK(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := OK(c, "fetched", map[string]string{"name": "Asha"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp := decode(t, rec)
	if !resp.Success {
		t.Error("expected success true")
	}
	if resp.Message != "fetched" {
		t.Errorf("expected message fetched, got %q", resp.Message)
	}
	if resp.Data == nil {
		t.Error("expected data present")
	}
}

func TestJSON_ClientErrorEnvelope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := JSON(c, http.StatusNotFound, "appointment not found", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp := decode(t, rec)
	if resp.Success {
		t.Error("expected success false for 404")
	}
	if resp.Message != "appointment not found" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestHTTPErrorHandler_ClientErrorKeepsMessage(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	HTTPErrorHandler(zerolog.Nop())(echo.NewHTTPError(http.StatusConflict, "email already registered"), c)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp.Success || resp.Message != "email already registered" {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}

func TestHTTPErrorHandler_ServerErrorRedacted(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	HTTPErrorHandler(zerolog.Nop())(errors.New("pq: connection refused"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp.Message != "internal server error" {
		t.Errorf("expected redacted message, got %q", resp.Message)
	}
}

func TestHTTPErrorHandler_WrappedServerErrorRedacted(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	he := echo.NewHTTPError(http.StatusInternalServerError, "scan failed: column mismatch")
	HTTPErrorHandler(zerolog.Nop())(he, c)

	resp := decode(t, rec)
	if resp.Message != "internal server error" {
		t.Errorf("expected redacted message, got %q", resp.Message)
	}
}
