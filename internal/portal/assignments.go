package portal

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const assignmentCols = "id, lecturer_id, title, description, class, submission_date, portal_open, file_paths, created_at, updated_at"

func scanAssignment(sc interface{ Scan(...any) error }) (Assignment, error) {
	var a Assignment
	err := sc.Scan(&a.ID, &a.LecturerID, &a.Title, &a.Description, &a.Class,
		&a.SubmissionDate, &a.PortalOpen, pq.Array(&a.FilePaths), &a.CreatedAt, &a.UpdatedAt)
	return a, translate(err)
}

// ListAssignments returns the lecturer's assignments, newest deadline first.
func (s *SQLStore) ListAssignments(ctx context.Context, ownerID uuid.UUID) ([]Assignment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+assignmentCols+`
		FROM assignments
		WHERE lecturer_id = $1
		ORDER BY submission_date DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// CreateAssignment publishes a new assignment. The portal starts in whatever
// state the input declares, closed by default.
func (s *SQLStore) CreateAssignment(ctx context.Context, ownerID uuid.UUID, in AssignmentInput) (Assignment, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO assignments (lecturer_id, title, description, class, submission_date, portal_open, file_paths)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+assignmentCols+`
	`, ownerID, in.Title, in.Description, in.Class, in.SubmissionDate, in.PortalOpen, pq.Array(in.FilePaths))
	return scanAssignment(row)
}

// UpdateAssignment applies the non-nil patch fields. The portal flag is not
// part of the patch; use SetPortalOpen.
func (s *SQLStore) UpdateAssignment(ctx context.Context, ownerID, id uuid.UUID, patch AssignmentPatch) (Assignment, error) {
	var sets []string
	var args []any
	if patch.Title != nil {
		sets, args = set(sets, args, "title", *patch.Title)
	}
	if patch.Description != nil {
		sets, args = set(sets, args, "description", *patch.Description)
	}
	if patch.Class != nil {
		sets, args = set(sets, args, "class", *patch.Class)
	}
	if patch.SubmissionDate != nil {
		sets, args = set(sets, args, "submission_date", *patch.SubmissionDate)
	}
	if patch.FilePaths != nil {
		sets, args = set(sets, args, "file_paths", pq.Array(*patch.FilePaths))
	}
	q, args, ok := patchQuery("assignments", sets, args, id, ownerID, assignmentCols)
	if !ok {
		return s.getAssignment(ctx, ownerID, id)
	}
	return scanAssignment(s.db.QueryRowContext(ctx, q, args...))
}

// SetPortalOpen toggles the submission portal independently of other fields.
func (s *SQLStore) SetPortalOpen(ctx context.Context, ownerID, id uuid.UUID, open bool) (Assignment, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE assignments SET portal_open = $3
		WHERE id = $1 AND lecturer_id = $2
		RETURNING `+assignmentCols+`
	`, id, ownerID, open)
	return scanAssignment(row)
}

func (s *SQLStore) getAssignment(ctx context.Context, ownerID, id uuid.UUID) (Assignment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+assignmentCols+` FROM assignments WHERE id = $1 AND lecturer_id = $2
	`, id, ownerID)
	return scanAssignment(row)
}

// DeleteAssignment removes an assignment. Idempotent.
func (s *SQLStore) DeleteAssignment(ctx context.Context, ownerID, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM assignments WHERE id = $1 AND lecturer_id = $2
	`, id, ownerID)
	return err
}
