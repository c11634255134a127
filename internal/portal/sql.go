package portal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLStore persists portal data in Postgres.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore creates a store over an open connection.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

var _ Store = (*SQLStore)(nil)

// translate maps driver errors onto the store's sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
		case "23514": // check_violation
			return ErrInvalidInput(pgErr.Message)
		case "23502": // not_null_violation
			return ErrInvalidInput(pgErr.Message)
		}
	}
	return err
}

// patchQuery builds "UPDATE <table> SET ... WHERE id = $n AND lecturer_id =
// $n+1 RETURNING <returning>" from the non-nil patch columns. Returns ok =
// false when the patch is empty.
func patchQuery(table string, sets []string, args []any, id, ownerID uuid.UUID, returning string) (string, []any, bool) {
	if len(sets) == 0 {
		return "", nil, false
	}
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d AND lecturer_id = $%d RETURNING %s",
		table, strings.Join(sets, ", "), len(args)+1, len(args)+2, returning)
	return q, append(args, id, ownerID), true
}

// set appends one assignment to a patch under construction.
func set(sets []string, args []any, column string, value any) ([]string, []any) {
	sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)+1))
	return sets, append(args, value)
}

const profileCols = "id, full_name, email, department, phone, bio, avatar_url"

func scanProfile(row *sql.Row) (Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.Department, &p.Phone, &p.Bio, &p.AvatarURL)
	return p, translate(err)
}

// GetProfile returns the lecturer's own profile.
func (s *SQLStore) GetProfile(ctx context.Context, id uuid.UUID) (Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+profileCols+` FROM profiles WHERE id = $1`, id)
	return scanProfile(row)
}

// UpdateProfile applies the non-nil patch fields. The id is immutable.
func (s *SQLStore) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (Profile, error) {
	var sets []string
	var args []any
	if patch.FullName != nil {
		sets, args = set(sets, args, "full_name", *patch.FullName)
	}
	if patch.Department != nil {
		sets, args = set(sets, args, "department", *patch.Department)
	}
	if patch.Phone != nil {
		sets, args = set(sets, args, "phone", *patch.Phone)
	}
	if patch.Bio != nil {
		sets, args = set(sets, args, "bio", *patch.Bio)
	}
	if patch.AvatarURL != nil {
		sets, args = set(sets, args, "avatar_url", *patch.AvatarURL)
	}
	if len(sets) == 0 {
		return s.GetProfile(ctx, id)
	}
	q := fmt.Sprintf("UPDATE profiles SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args)+1, profileCols)
	row := s.db.QueryRowContext(ctx, q, append(args, id)...)
	return scanProfile(row)
}
