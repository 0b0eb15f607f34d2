// Package envelope defines the JSON response shape shared by every API
// endpoint: {"success": bool, "message": string, "data": ...}.
package envelope

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the wire envelope for all API responses.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON writes an enveloped response with the given status code.
func JSON(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{
		Success: status < http.StatusBadRequest,
		Message: message,
		Data:    data,
	})
}

// OK writes a 200 envelope.
func OK(c echo.Context, message string, data interface{}) error {
	return JSON(c, http.StatusOK, message, data)
}

// Created writes a 201 envelope.
func Created(c echo.Context, message string, data interface{}) error {
	return JSON(c, http.StatusCreated, message, data)
}
