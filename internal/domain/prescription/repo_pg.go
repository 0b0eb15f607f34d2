package prescription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const rxCols = `rx.id, rx.appointment_id, rx.patient_id, rx.doctor_id, rx.symptoms, rx.diagnosis,
	rx.medicines, rx.notes, rx.created_at, rx.updated_at,
	pat.name, pat.email, doc.name, doc.specialization`

const rxJoins = ` FROM prescriptions rx
	JOIN users pat ON pat.id = rx.patient_id
	JOIN users doc ON doc.id = rx.doctor_id`

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	var pat, doc Party
	err := row.Scan(&p.ID, &p.AppointmentID, &p.PatientID, &p.DoctorID, &p.Symptoms, &p.Diagnosis,
		&p.Medicines, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		&pat.Name, &pat.Email, &doc.Name, &doc.Specialization)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	pat.ID, doc.ID = p.PatientID, p.DoctorID
	p.Patient, p.Doctor = &pat, &doc
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	if p.Medicines == nil {
		p.Medicines = []Medicine{}
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO prescriptions (id, appointment_id, patient_id, doctor_id, symptoms, diagnosis, medicines, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		p.ID, p.AppointmentID, p.PatientID, p.DoctorID, p.Symptoms, p.Diagnosis, p.Medicines, p.Notes).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *repoPG) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Prescription, error) {
	return scanPrescription(r.pool.QueryRow(ctx,
		`SELECT `+rxCols+rxJoins+` WHERE rx.appointment_id = $1`, appointmentID))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return r.list(ctx, `patient_id`, patientID, limit, offset)
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return r.list(ctx, `doctor_id`, doctorID, limit, offset)
}

func (r *repoPG) list(ctx context.Context, col string, id uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM prescriptions WHERE `+col+` = $1`, id).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+rxCols+rxJoins+` WHERE rx.`+col+` = $1 ORDER BY rx.created_at DESC LIMIT $2 OFFSET $3`,
		id, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
