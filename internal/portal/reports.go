package portal

import (
	"context"

	"github.com/google/uuid"
)

const reportCols = "id, lecturer_id, report_type, student_name, title, content, created_at"

func scanReport(sc interface{ Scan(...any) error }) (Report, error) {
	var r Report
	err := sc.Scan(&r.ID, &r.LecturerID, &r.ReportType, &r.StudentName, &r.Title, &r.Content, &r.CreatedAt)
	return r, translate(err)
}

// ListReports returns the lecturer's reports, newest first.
func (s *SQLStore) ListReports(ctx context.Context, ownerID uuid.UUID) ([]Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reportCols+`
		FROM reports
		WHERE lecturer_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []Report{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// CreateReport files a report. Reports are immutable afterwards.
func (s *SQLStore) CreateReport(ctx context.Context, ownerID uuid.UUID, in ReportInput) (Report, error) {
	if !in.ReportType.Valid() {
		return Report{}, ErrInvalidInput("report_type must be sent or received")
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO reports (lecturer_id, report_type, student_name, title, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+reportCols+`
	`, ownerID, in.ReportType, in.StudentName, in.Title, in.Content)
	return scanReport(row)
}

// DeleteReport removes a report. Idempotent.
func (s *SQLStore) DeleteReport(ctx context.Context, ownerID, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM reports WHERE id = $1 AND lecturer_id = $2
	`, id, ownerID)
	return err
}
