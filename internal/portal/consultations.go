package portal

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

const consultationCols = "id, lecturer_id, student_name, student_email, consultation_date, reason, status, created_at, updated_at"

func scanConsultation(sc interface{ Scan(...any) error }) (Consultation, error) {
	var c Consultation
	err := sc.Scan(&c.ID, &c.LecturerID, &c.StudentName, &c.StudentEmail,
		&c.ConsultationDate, &c.Reason, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, translate(err)
}

// ListConsultations returns the lecturer's consultation requests, newest
// first.
func (s *SQLStore) ListConsultations(ctx context.Context, ownerID uuid.UUID) ([]Consultation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+consultationCols+`
		FROM consultations
		WHERE lecturer_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	consultations := []Consultation{}
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		consultations = append(consultations, c)
	}
	return consultations, rows.Err()
}

// CreateConsultation records a new request. Status always starts pending.
func (s *SQLStore) CreateConsultation(ctx context.Context, ownerID uuid.UUID, in ConsultationInput) (Consultation, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO consultations (lecturer_id, student_name, student_email, consultation_date, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+consultationCols+`
	`, ownerID, in.StudentName, in.StudentEmail, in.ConsultationDate, in.Reason)
	return scanConsultation(row)
}

// UpdateConsultation applies the non-nil patch fields. Status is not
// patchable; use SetConsultationStatus.
func (s *SQLStore) UpdateConsultation(ctx context.Context, ownerID, id uuid.UUID, patch ConsultationPatch) (Consultation, error) {
	var sets []string
	var args []any
	if patch.StudentName != nil {
		sets, args = set(sets, args, "student_name", *patch.StudentName)
	}
	if patch.StudentEmail != nil {
		sets, args = set(sets, args, "student_email", *patch.StudentEmail)
	}
	if patch.ConsultationDate != nil {
		sets, args = set(sets, args, "consultation_date", *patch.ConsultationDate)
	}
	if patch.Reason != nil {
		sets, args = set(sets, args, "reason", *patch.Reason)
	}
	q, args, ok := patchQuery("consultations", sets, args, id, ownerID, consultationCols)
	if !ok {
		return s.getConsultation(ctx, ownerID, id)
	}
	return scanConsultation(s.db.QueryRowContext(ctx, q, args...))
}

// SetConsultationStatus moves a pending request to approved or declined.
// Approved and declined are terminal: a second transition attempt returns
// ErrInvalidTransition rather than silently rewriting the decision.
func (s *SQLStore) SetConsultationStatus(ctx context.Context, ownerID, id uuid.UUID, status ConsultationStatus) (Consultation, error) {
	if status != StatusApproved && status != StatusDeclined {
		return Consultation{}, ErrInvalidInput("status must be approved or declined")
	}
	row := s.db.QueryRowContext(ctx, `
		UPDATE consultations SET status = $3
		WHERE id = $1 AND lecturer_id = $2 AND status = 'pending'
		RETURNING `+consultationCols+`
	`, id, ownerID, status)
	c, err := scanConsultation(row)
	if errors.Is(err, ErrNotFound) {
		// Guarded update matched nothing: distinguish a missing row from a
		// decided one.
		if _, getErr := s.getConsultation(ctx, ownerID, id); getErr == nil {
			return Consultation{}, ErrInvalidTransition
		}
		return Consultation{}, ErrNotFound
	}
	return c, err
}

func (s *SQLStore) getConsultation(ctx context.Context, ownerID, id uuid.UUID) (Consultation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+consultationCols+` FROM consultations WHERE id = $1 AND lecturer_id = $2
	`, id, ownerID)
	return scanConsultation(row)
}

// DeleteConsultation removes a request. Idempotent.
func (s *SQLStore) DeleteConsultation(ctx context.Context, ownerID, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM consultations WHERE id = $1 AND lecturer_id = $2
	`, id, ownerID)
	return err
}
