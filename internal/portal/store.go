package portal

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Failures surfaced by Store implementations. Handlers translate these to
// HTTP statuses; everything else is treated as a data-access error.
var (
	// ErrNotFound covers both a missing row and one owned by another
	// lecturer. Ownership is checked in the same predicate as existence, so
	// callers cannot distinguish the two cases.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate reports a uniqueness violation (student_id).
	ErrDuplicate = errors.New("already exists")

	// ErrInvalidTransition reports a status change from a terminal state.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ErrInvalidInput is a rejected payload, with the reason as the message.
type ErrInvalidInput string

func (e ErrInvalidInput) Error() string { return string(e) }

// Store is the data-access contract for the portal. Every method that reads
// or writes owned rows takes the owning lecturer's id explicitly and scopes
// the operation to it, mirroring the row-level security policies in the
// schema.
//
// List methods return an empty slice, never nil, when the lecturer has no
// rows. Update methods apply only the non-nil fields of the patch and return
// ErrNotFound when the row is missing or owned by someone else. Delete
// methods are idempotent: deleting an absent row is not an error.
type Store interface {
	// Profiles. The id is the authenticated identity itself.
	GetProfile(ctx context.Context, id uuid.UUID) (Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (Profile, error)

	// Students, ordered by student name.
	ListStudents(ctx context.Context, ownerID uuid.UUID) ([]Student, error)
	CreateStudent(ctx context.Context, ownerID uuid.UUID, in StudentInput) (Student, error)
	UpdateStudent(ctx context.Context, ownerID, id uuid.UUID, patch StudentPatch) (Student, error)
	DeleteStudent(ctx context.Context, ownerID, id uuid.UUID) error

	// Timetable slots, ordered by weekday then start time.
	ListTimetable(ctx context.Context, ownerID uuid.UUID) ([]TimetableSlot, error)
	CreateTimetableSlot(ctx context.Context, ownerID uuid.UUID, in TimetableSlotInput) (TimetableSlot, error)
	UpdateTimetableSlot(ctx context.Context, ownerID, id uuid.UUID, patch TimetableSlotPatch) (TimetableSlot, error)
	DeleteTimetableSlot(ctx context.Context, ownerID, id uuid.UUID) error

	// Assignments, ordered by submission date descending.
	ListAssignments(ctx context.Context, ownerID uuid.UUID) ([]Assignment, error)
	CreateAssignment(ctx context.Context, ownerID uuid.UUID, in AssignmentInput) (Assignment, error)
	UpdateAssignment(ctx context.Context, ownerID, id uuid.UUID, patch AssignmentPatch) (Assignment, error)
	SetPortalOpen(ctx context.Context, ownerID, id uuid.UUID, open bool) (Assignment, error)
	DeleteAssignment(ctx context.Context, ownerID, id uuid.UUID) error

	// Consultations, ordered by creation time descending. SetStatus moves a
	// pending request to approved or declined; terminal rows return
	// ErrInvalidTransition.
	ListConsultations(ctx context.Context, ownerID uuid.UUID) ([]Consultation, error)
	CreateConsultation(ctx context.Context, ownerID uuid.UUID, in ConsultationInput) (Consultation, error)
	UpdateConsultation(ctx context.Context, ownerID, id uuid.UUID, patch ConsultationPatch) (Consultation, error)
	SetConsultationStatus(ctx context.Context, ownerID, id uuid.UUID, status ConsultationStatus) (Consultation, error)
	DeleteConsultation(ctx context.Context, ownerID, id uuid.UUID) error

	// Reports, ordered by creation time descending. No update path.
	ListReports(ctx context.Context, ownerID uuid.UUID) ([]Report, error)
	CreateReport(ctx context.Context, ownerID uuid.UUID, in ReportInput) (Report, error)
	DeleteReport(ctx context.Context, ownerID, id uuid.UUID) error

	// Study materials, ordered by creation time descending.
	ListMaterials(ctx context.Context, ownerID uuid.UUID) ([]StudyMaterial, error)
	CreateMaterial(ctx context.Context, ownerID uuid.UUID, in StudyMaterialInput) (StudyMaterial, error)
	UpdateMaterial(ctx context.Context, ownerID, id uuid.UUID, patch StudyMaterialPatch) (StudyMaterial, error)
	DeleteMaterial(ctx context.Context, ownerID, id uuid.UUID) error

	// Updates (announcements), ordered by creation time descending.
	ListUpdates(ctx context.Context, ownerID uuid.UUID) ([]Update, error)
	CreateUpdate(ctx context.Context, ownerID uuid.UUID, in UpdateInput) (Update, error)
	UpdateUpdate(ctx context.Context, ownerID, id uuid.UUID, patch UpdatePatch) (Update, error)
	DeleteUpdate(ctx context.Context, ownerID, id uuid.UUID) error
}
