package portal

import (
	"context"

	"github.com/google/uuid"
)

const studentCols = "id, lecturer_id, student_name, student_email, student_id, class, phone, created_at, updated_at"

func scanStudent(sc interface{ Scan(...any) error }) (Student, error) {
	var st Student
	err := sc.Scan(&st.ID, &st.LecturerID, &st.StudentName, &st.StudentEmail, &st.StudentID,
		&st.Class, &st.Phone, &st.CreatedAt, &st.UpdatedAt)
	return st, translate(err)
}

// ListStudents returns the lecturer's students ordered by name.
func (s *SQLStore) ListStudents(ctx context.Context, ownerID uuid.UUID) ([]Student, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+studentCols+`
		FROM students
		WHERE lecturer_id = $1
		ORDER BY student_name
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []Student{}
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

// CreateStudent registers a student under the lecturer. A student_id already
// taken by any lecturer surfaces as ErrDuplicate.
func (s *SQLStore) CreateStudent(ctx context.Context, ownerID uuid.UUID, in StudentInput) (Student, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO students (lecturer_id, student_name, student_email, student_id, class, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+studentCols+`
	`, ownerID, in.StudentName, in.StudentEmail, in.StudentID, in.Class, in.Phone)
	return scanStudent(row)
}

// UpdateStudent applies the non-nil patch fields.
func (s *SQLStore) UpdateStudent(ctx context.Context, ownerID, id uuid.UUID, patch StudentPatch) (Student, error) {
	var sets []string
	var args []any
	if patch.StudentName != nil {
		sets, args = set(sets, args, "student_name", *patch.StudentName)
	}
	if patch.StudentEmail != nil {
		sets, args = set(sets, args, "student_email", *patch.StudentEmail)
	}
	if patch.StudentID != nil {
		sets, args = set(sets, args, "student_id", *patch.StudentID)
	}
	if patch.Class != nil {
		sets, args = set(sets, args, "class", *patch.Class)
	}
	if patch.Phone != nil {
		sets, args = set(sets, args, "phone", *patch.Phone)
	}
	q, args, ok := patchQuery("students", sets, args, id, ownerID, studentCols)
	if !ok {
		return s.getStudent(ctx, ownerID, id)
	}
	return scanStudent(s.db.QueryRowContext(ctx, q, args...))
}

func (s *SQLStore) getStudent(ctx context.Context, ownerID, id uuid.UUID) (Student, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+studentCols+` FROM students WHERE id = $1 AND lecturer_id = $2
	`, id, ownerID)
	return scanStudent(row)
}

// DeleteStudent removes the student. Deleting an absent row is not an error.
func (s *SQLStore) DeleteStudent(ctx context.Context, ownerID, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM students WHERE id = $1 AND lecturer_id = $2
	`, id, ownerID)
	return err
}
