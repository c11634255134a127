package portal

import (
	"context"

	"github.com/google/uuid"
)

const updateCols = "id, lecturer_id, title, content, target_class, created_at, updated_at"

func scanUpdate(sc interface{ Scan(...any) error }) (Update, error) {
	var u Update
	err := sc.Scan(&u.ID, &u.LecturerID, &u.Title, &u.Content, &u.TargetClass, &u.CreatedAt, &u.UpdatedAt)
	return u, translate(err)
}

// ListUpdates returns the lecturer's announcements, newest first.
func (s *SQLStore) ListUpdates(ctx context.Context, ownerID uuid.UUID) ([]Update, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+updateCols+`
		FROM updates
		WHERE lecturer_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	updates := []Update{}
	for rows.Next() {
		u, err := scanUpdate(rows)
		if err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, rows.Err()
}

// CreateUpdate posts an announcement. A nil target class addresses all
// classes.
func (s *SQLStore) CreateUpdate(ctx context.Context, ownerID uuid.UUID, in UpdateInput) (Update, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO updates (lecturer_id, title, content, target_class)
		VALUES ($1, $2, $3, $4)
		RETURNING `+updateCols+`
	`, ownerID, in.Title, in.Content, in.TargetClass)
	return scanUpdate(row)
}

// UpdateUpdate applies the non-nil patch fields.
func (s *SQLStore) UpdateUpdate(ctx context.Context, ownerID, id uuid.UUID, patch UpdatePatch) (Update, error) {
	var sets []string
	var args []any
	if patch.Title != nil {
		sets, args = set(sets, args, "title", *patch.Title)
	}
	if patch.Content != nil {
		sets, args = set(sets, args, "content", *patch.Content)
	}
	if patch.TargetClass != nil {
		sets, args = set(sets, args, "target_class", *patch.TargetClass)
	}
	q, args, ok := patchQuery("updates", sets, args, id, ownerID, updateCols)
	if !ok {
		return s.getUpdate(ctx, ownerID, id)
	}
	return scanUpdate(s.db.QueryRowContext(ctx, q, args...))
}

func (s *SQLStore) getUpdate(ctx context.Context, ownerID, id uuid.UUID) (Update, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+updateCols+` FROM updates WHERE id = $1 AND lecturer_id = $2
	`, id, ownerID)
	return scanUpdate(row)
}

// DeleteUpdate removes an announcement. Idempotent.
func (s *SQLStore) DeleteUpdate(ctx context.Context, ownerID, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM updates WHERE id = $1 AND lecturer_id = $2
	`, id, ownerID)
	return err
}
