package portal

import (
	"context"

	"github.com/google/uuid"
)

const slotCols = "id, lecturer_id, day_of_week, start_time, end_time, subject, class, room, created_at, updated_at"

func scanSlot(sc interface{ Scan(...any) error }) (TimetableSlot, error) {
	var ts TimetableSlot
	err := sc.Scan(&ts.ID, &ts.LecturerID, &ts.DayOfWeek, &ts.StartTime, &ts.EndTime,
		&ts.Subject, &ts.Class, &ts.Room, &ts.CreatedAt, &ts.UpdatedAt)
	return ts, translate(err)
}

// ListTimetable returns the weekly timetable ordered by weekday then start
// time. Times are wall-clock "HH:MM" strings, so lexical order is
// chronological.
func (s *SQLStore) ListTimetable(ctx context.Context, ownerID uuid.UUID) ([]TimetableSlot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+slotCols+`
		FROM timetable_slots
		WHERE lecturer_id = $1
		ORDER BY array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday'], day_of_week), start_time
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := []TimetableSlot{}
	for rows.Next() {
		ts, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, ts)
	}
	return slots, rows.Err()
}

// CreateTimetableSlot adds a lesson to the weekly timetable.
func (s *SQLStore) CreateTimetableSlot(ctx context.Context, ownerID uuid.UUID, in TimetableSlotInput) (TimetableSlot, error) {
	if !in.DayOfWeek.Valid() {
		return TimetableSlot{}, ErrInvalidInput("day_of_week must be a weekday name")
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO timetable_slots (lecturer_id, day_of_week, start_time, end_time, subject, class, room)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+slotCols+`
	`, ownerID, in.DayOfWeek, in.StartTime, in.EndTime, in.Subject, in.Class, in.Room)
	return scanSlot(row)
}

// UpdateTimetableSlot applies the non-nil patch fields.
func (s *SQLStore) UpdateTimetableSlot(ctx context.Context, ownerID, id uuid.UUID, patch TimetableSlotPatch) (TimetableSlot, error) {
	var sets []string
	var args []any
	if patch.DayOfWeek != nil {
		if !patch.DayOfWeek.Valid() {
			return TimetableSlot{}, ErrInvalidInput("day_of_week must be a weekday name")
		}
		sets, args = set(sets, args, "day_of_week", *patch.DayOfWeek)
	}
	if patch.StartTime != nil {
		sets, args = set(sets, args, "start_time", *patch.StartTime)
	}
	if patch.EndTime != nil {
		sets, args = set(sets, args, "end_time", *patch.EndTime)
	}
	if patch.Subject != nil {
		sets, args = set(sets, args, "subject", *patch.Subject)
	}
	if patch.Class != nil {
		sets, args = set(sets, args, "class", *patch.Class)
	}
	if patch.Room != nil {
		sets, args = set(sets, args, "room", *patch.Room)
	}
	q, args, ok := patchQuery("timetable_slots", sets, args, id, ownerID, slotCols)
	if !ok {
		return s.getSlot(ctx, ownerID, id)
	}
	return scanSlot(s.db.QueryRowContext(ctx, q, args...))
}

func (s *SQLStore) getSlot(ctx context.Context, ownerID, id uuid.UUID) (TimetableSlot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+slotCols+` FROM timetable_slots WHERE id = $1 AND lecturer_id = $2
	`, id, ownerID)
	return scanSlot(row)
}

// DeleteTimetableSlot removes a lesson. Idempotent.
func (s *SQLStore) DeleteTimetableSlot(ctx context.Context, ownerID, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM timetable_slots WHERE id = $1 AND lecturer_id = $2
	`, id, ownerID)
	return err
}
