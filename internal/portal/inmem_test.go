package portal

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*MemStore, uuid.UUID, uuid.UUID) {
	t.Helper()
	s := NewMemStore()
	a := s.AddProfile(Profile{FullName: "Dr. Adams", Email: "adams@college.edu"})
	b := s.AddProfile(Profile{FullName: "Dr. Blake", Email: "blake@college.edu"})
	return s, a.ID, b.ID
}

func strp(s string) *string { return &s }

func TestListScopedToOwner(t *testing.T) {
	s, alice, bob := newStore(t)
	ctx := context.Background()

	_, err := s.CreateStudent(ctx, alice, StudentInput{
		StudentName: "Ann", StudentEmail: "ann@x.edu", StudentID: "S001", Class: "CS101",
	})
	require.NoError(t, err)
	_, err = s.CreateStudent(ctx, bob, StudentInput{
		StudentName: "Ben", StudentEmail: "ben@x.edu", StudentID: "S002", Class: "CS102",
	})
	require.NoError(t, err)

	got, err := s.ListStudents(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ann", got[0].StudentName)
	for _, st := range got {
		assert.Equal(t, alice, st.LecturerID)
	}

	// An owner with no rows gets an empty slice, not nil.
	empty, err := s.ListStudents(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCreateFillsServerDefaults(t *testing.T) {
	s, alice, _ := newStore(t)
	ctx := context.Background()

	st, err := s.CreateStudent(ctx, alice, StudentInput{
		StudentName: "Ann", StudentEmail: "ann@x.edu", StudentID: "S001", Class: "CS101", Phone: strp("123"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, st.ID)
	assert.Equal(t, alice, st.LecturerID)
	assert.False(t, st.CreatedAt.IsZero())
	assert.False(t, st.UpdatedAt.IsZero())

	got, err := s.ListStudents(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, st, got[0])
}

func TestStudentIDUniqueAcrossOwners(t *testing.T) {
	s, alice, bob := newStore(t)
	ctx := context.Background()

	_, err := s.CreateStudent(ctx, alice, StudentInput{
		StudentName: "Ann", StudentEmail: "ann@x.edu", StudentID: "S001", Class: "CS101",
	})
	require.NoError(t, err)

	_, err = s.CreateStudent(ctx, bob, StudentInput{
		StudentName: "Ben", StudentEmail: "ben@x.edu", StudentID: "S001", Class: "CS102",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdatePatchesOnlyNamedFields(t *testing.T) {
	s, alice, bob := newStore(t)
	ctx := context.Background()

	st, err := s.CreateStudent(ctx, alice, StudentInput{
		StudentName: "Ann", StudentEmail: "ann@x.edu", StudentID: "S001", Class: "CS101",
	})
	require.NoError(t, err)

	got, err := s.UpdateStudent(ctx, alice, st.ID, StudentPatch{Class: strp("CS201")})
	require.NoError(t, err)
	assert.Equal(t, "CS201", got.Class)
	assert.Equal(t, "Ann", got.StudentName)
	assert.Equal(t, "S001", got.StudentID)
	assert.True(t, got.UpdatedAt.After(st.UpdatedAt), "updated_at must advance")
	assert.Equal(t, st.CreatedAt, got.CreatedAt)

	// Another lecturer cannot touch the row.
	_, err = s.UpdateStudent(ctx, bob, st.ID, StudentPatch{Class: strp("HACK")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIdempotent(t *testing.T) {
	s, alice, bob := newStore(t)
	ctx := context.Background()

	st, err := s.CreateStudent(ctx, alice, StudentInput{
		StudentName: "Ann", StudentEmail: "ann@x.edu", StudentID: "S001", Class: "CS101",
	})
	require.NoError(t, err)

	// Someone else's delete is a silent no-op.
	require.NoError(t, s.DeleteStudent(ctx, bob, st.ID))
	got, err := s.ListStudents(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	require.NoError(t, s.DeleteStudent(ctx, alice, st.ID))
	got, err = s.ListStudents(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Repeating the delete does not error.
	require.NoError(t, s.DeleteStudent(ctx, alice, st.ID))
}

func TestTimetableOrdering(t *testing.T) {
	s, alice, _ := newStore(t)
	ctx := context.Background()

	for _, in := range []TimetableSlotInput{
		{DayOfWeek: Wednesday, StartTime: "09:00", EndTime: "10:00", Subject: "DBs", Class: "CS101"},
		{DayOfWeek: Monday, StartTime: "14:00", EndTime: "15:00", Subject: "Nets", Class: "CS101"},
		{DayOfWeek: Monday, StartTime: "09:00", EndTime: "10:00", Subject: "OS", Class: "CS101"},
	} {
		_, err := s.CreateTimetableSlot(ctx, alice, in)
		require.NoError(t, err)
	}

	got, err := s.ListTimetable(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "OS", got[0].Subject)
	assert.Equal(t, "Nets", got[1].Subject)
	assert.Equal(t, "DBs", got[2].Subject)
}

func TestTimetableRejectsWeekend(t *testing.T) {
	s, alice, _ := newStore(t)

	_, err := s.CreateTimetableSlot(context.Background(), alice, TimetableSlotInput{
		DayOfWeek: "Saturday", StartTime: "09:00", EndTime: "10:00", Subject: "OS", Class: "CS101",
	})
	var invalid ErrInvalidInput
	assert.ErrorAs(t, err, &invalid)
}

func TestConsultationLifecycle(t *testing.T) {
	s, alice, _ := newStore(t)
	ctx := context.Background()

	con, err := s.CreateConsultation(ctx, alice, ConsultationInput{
		StudentName: "Ann", StudentEmail: "ann@x.edu",
		ConsultationDate: time.Now().Add(48 * time.Hour), Reason: "project help",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, con.Status)

	got, err := s.SetConsultationStatus(ctx, alice, con.ID, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, got.Status)
	assert.True(t, got.UpdatedAt.After(con.UpdatedAt))

	// Approved is terminal: no re-approval, no flip to declined.
	_, err = s.SetConsultationStatus(ctx, alice, con.ID, StatusApproved)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = s.SetConsultationStatus(ctx, alice, con.ID, StatusDeclined)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Pending is not a settable target.
	con2, err := s.CreateConsultation(ctx, alice, ConsultationInput{
		StudentName: "Ben", StudentEmail: "ben@x.edu",
		ConsultationDate: time.Now().Add(24 * time.Hour), Reason: "grading",
	})
	require.NoError(t, err)
	var invalid ErrInvalidInput
	_, err = s.SetConsultationStatus(ctx, alice, con2.ID, StatusPending)
	assert.ErrorAs(t, err, &invalid)

	_, err = s.SetConsultationStatus(ctx, alice, uuid.New(), StatusDeclined)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportsImmutableAndOrdered(t *testing.T) {
	s, alice, _ := newStore(t)
	ctx := context.Background()

	first, err := s.CreateReport(ctx, alice, ReportInput{
		ReportType: ReportSent, StudentName: "Ann", Title: "Progress", Content: "ok",
	})
	require.NoError(t, err)
	second, err := s.CreateReport(ctx, alice, ReportInput{
		ReportType: ReportReceived, StudentName: "Ben", Title: "Complaint", Content: "noise",
	})
	require.NoError(t, err)

	got, err := s.ListReports(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	_, err = s.CreateReport(ctx, alice, ReportInput{
		ReportType: "forwarded", StudentName: "Ann", Title: "x", Content: "y",
	})
	var invalid ErrInvalidInput
	assert.ErrorAs(t, err, &invalid)
}

func TestMaterialContentShapeExclusive(t *testing.T) {
	s, alice, _ := newStore(t)
	ctx := context.Background()

	_, err := s.CreateMaterial(ctx, alice, StudyMaterialInput{
		Title: "Week 1", Class: "CS101", Subject: "OS", Type: MaterialDocument,
		VideoLinks: []string{"https://vid"},
	})
	var invalid ErrInvalidInput
	assert.ErrorAs(t, err, &invalid)

	m, err := s.CreateMaterial(ctx, alice, StudyMaterialInput{
		Title: "Week 1", Class: "CS101", Subject: "OS", Type: MaterialVideo,
		VideoLinks: []string{"https://vid"},
	})
	require.NoError(t, err)
	assert.Equal(t, MaterialVideo, m.Type)
	assert.Nil(t, m.FileURL)
}

func TestAssignmentPortalScenario(t *testing.T) {
	s, alice, _ := newStore(t)
	ctx := context.Background()

	due := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)
	a, err := s.CreateAssignment(ctx, alice, AssignmentInput{
		Title: "HW1", Class: "CS101", SubmissionDate: due,
	})
	require.NoError(t, err)
	assert.False(t, a.PortalOpen)

	list, err := s.ListAssignments(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].PortalOpen)

	opened, err := s.SetPortalOpen(ctx, alice, a.ID, true)
	require.NoError(t, err)
	assert.True(t, opened.PortalOpen)
	assert.True(t, opened.UpdatedAt.After(a.UpdatedAt))
	assert.Equal(t, "HW1", opened.Title)

	require.NoError(t, s.DeleteAssignment(ctx, alice, a.ID))
	list, err = s.ListAssignments(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAssignmentsOrderedBySubmissionDateDesc(t *testing.T) {
	s, alice, _ := newStore(t)
	ctx := context.Background()

	early := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)
	_, err := s.CreateAssignment(ctx, alice, AssignmentInput{Title: "HW1", Class: "CS101", SubmissionDate: early})
	require.NoError(t, err)
	_, err = s.CreateAssignment(ctx, alice, AssignmentInput{Title: "HW2", Class: "CS101", SubmissionDate: late})
	require.NoError(t, err)

	got, err := s.ListAssignments(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "HW2", got[0].Title)
	assert.Equal(t, "HW1", got[1].Title)
}

func TestProfileUpdate(t *testing.T) {
	s, alice, _ := newStore(t)
	ctx := context.Background()

	p, err := s.GetProfile(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Adams", p.FullName)

	got, err := s.UpdateProfile(ctx, alice, ProfilePatch{Department: strp("Computer Science")})
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", *got.Department)
	assert.Equal(t, "Dr. Adams", got.FullName)
	assert.Equal(t, alice, got.ID)

	_, err = s.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
