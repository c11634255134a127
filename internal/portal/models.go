package portal

import (
	"time"

	"github.com/google/uuid"
)

// Weekday is a timetable day. The portal runs a five-day week.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
)

var weekdayOrder = map[Weekday]int{
	Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3, Friday: 4,
}

// Valid reports whether d is one of the five teaching days.
func (d Weekday) Valid() bool {
	_, ok := weekdayOrder[d]
	return ok
}

// Order returns the position of d within the week, Monday first.
func (d Weekday) Order() int {
	return weekdayOrder[d]
}

// ConsultationStatus tracks a consultation request through its lifecycle.
// Requests start pending and move exactly once to approved or declined.
type ConsultationStatus string

const (
	StatusPending  ConsultationStatus = "pending"
	StatusApproved ConsultationStatus = "approved"
	StatusDeclined ConsultationStatus = "declined"
)

func (s ConsultationStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusDeclined
}

// ReportType distinguishes reports the lecturer sent from ones received.
type ReportType string

const (
	ReportSent     ReportType = "sent"
	ReportReceived ReportType = "received"
)

func (t ReportType) Valid() bool {
	return t == ReportSent || t == ReportReceived
}

// MaterialType discriminates which content field of a study material is
// populated: file_url for documents, video_links for videos, folder_items
// for folders.
type MaterialType string

const (
	MaterialDocument MaterialType = "document"
	MaterialVideo    MaterialType = "video"
	MaterialFolder   MaterialType = "folder"
)

func (t MaterialType) Valid() bool {
	return t == MaterialDocument || t == MaterialVideo || t == MaterialFolder
}

// Profile is the lecturer's own record. Its id equals the authenticated
// identity and never changes; the row is created by the account bootstrap.
type Profile struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Department *string   `json:"department,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Bio        *string   `json:"bio,omitempty"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
}

// ProfilePatch updates profile fields. Nil fields are left untouched.
type ProfilePatch struct {
	FullName   *string `json:"full_name,omitempty"`
	Department *string `json:"department,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Bio        *string `json:"bio,omitempty"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
}

// Student is a student registered under a lecturer. StudentID is the
// college-issued identifier and is unique across all lecturers.
type Student struct {
	ID           uuid.UUID `json:"id"`
	LecturerID   uuid.UUID `json:"lecturer_id"`
	StudentName  string    `json:"student_name"`
	StudentEmail string    `json:"student_email"`
	StudentID    string    `json:"student_id"`
	Class        string    `json:"class"`
	Phone        *string   `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type StudentInput struct {
	StudentName  string  `json:"student_name" binding:"required"`
	StudentEmail string  `json:"student_email" binding:"required,email"`
	StudentID    string  `json:"student_id" binding:"required"`
	Class        string  `json:"class" binding:"required"`
	Phone        *string `json:"phone"`
}

type StudentPatch struct {
	StudentName  *string `json:"student_name,omitempty"`
	StudentEmail *string `json:"student_email,omitempty"`
	StudentID    *string `json:"student_id,omitempty"`
	Class        *string `json:"class,omitempty"`
	Phone        *string `json:"phone,omitempty"`
}

// TimetableSlot is one recurring lesson in the weekly timetable. Times are
// wall-clock strings ("09:00"); start < end is expected but not enforced.
type TimetableSlot struct {
	ID         uuid.UUID `json:"id"`
	LecturerID uuid.UUID `json:"lecturer_id"`
	DayOfWeek  Weekday   `json:"day_of_week"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Subject    string    `json:"subject"`
	Class      string    `json:"class"`
	Room       *string   `json:"room,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type TimetableSlotInput struct {
	DayOfWeek Weekday `json:"day_of_week" binding:"required"`
	StartTime string  `json:"start_time" binding:"required"`
	EndTime   string  `json:"end_time" binding:"required"`
	Subject   string  `json:"subject" binding:"required"`
	Class     string  `json:"class" binding:"required"`
	Room      *string `json:"room"`
}

type TimetableSlotPatch struct {
	DayOfWeek *Weekday `json:"day_of_week,omitempty"`
	StartTime *string  `json:"start_time,omitempty"`
	EndTime   *string  `json:"end_time,omitempty"`
	Subject   *string  `json:"subject,omitempty"`
	Class     *string  `json:"class,omitempty"`
	Room      *string  `json:"room,omitempty"`
}

// Assignment is coursework with a submission deadline. PortalOpen gates
// whether students may submit and is toggled independently of other fields.
type Assignment struct {
	ID             uuid.UUID `json:"id"`
	LecturerID     uuid.UUID `json:"lecturer_id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description,omitempty"`
	Class          string    `json:"class"`
	SubmissionDate time.Time `json:"submission_date"`
	PortalOpen     bool      `json:"portal_open"`
	FilePaths      []string  `json:"file_paths,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AssignmentInput struct {
	Title          string    `json:"title" binding:"required"`
	Description    *string   `json:"description"`
	Class          string    `json:"class" binding:"required"`
	SubmissionDate time.Time `json:"submission_date" binding:"required"`
	PortalOpen     bool      `json:"portal_open"`
	FilePaths      []string  `json:"file_paths"`
}

type AssignmentPatch struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Class          *string    `json:"class,omitempty"`
	SubmissionDate *time.Time `json:"submission_date,omitempty"`
	FilePaths      *[]string  `json:"file_paths,omitempty"`
}

// Consultation is a student's request for a meeting. See ConsultationStatus
// for the lifecycle.
type Consultation struct {
	ID               uuid.UUID          `json:"id"`
	LecturerID       uuid.UUID          `json:"lecturer_id"`
	StudentName      string             `json:"student_name"`
	StudentEmail     string             `json:"student_email"`
	ConsultationDate time.Time          `json:"consultation_date"`
	Reason           string             `json:"reason"`
	Status           ConsultationStatus `json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

type ConsultationInput struct {
	StudentName      string    `json:"student_name" binding:"required"`
	StudentEmail     string    `json:"student_email" binding:"required,email"`
	ConsultationDate time.Time `json:"consultation_date" binding:"required"`
	Reason           string    `json:"reason" binding:"required"`
}

type ConsultationPatch struct {
	StudentName      *string    `json:"student_name,omitempty"`
	StudentEmail     *string    `json:"student_email,omitempty"`
	ConsultationDate *time.Time `json:"consultation_date,omitempty"`
	Reason           *string    `json:"reason,omitempty"`
}

// Report is a record of correspondence about a student. Reports are
// immutable once created; there is no update path.
type Report struct {
	ID          uuid.UUID  `json:"id"`
	LecturerID  uuid.UUID  `json:"lecturer_id"`
	ReportType  ReportType `json:"report_type"`
	StudentName string     `json:"student_name"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ReportInput struct {
	ReportType  ReportType `json:"report_type" binding:"required"`
	StudentName string     `json:"student_name" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Content     string     `json:"content" binding:"required"`
}

// StudyMaterial is shared course content. Type decides which content field
// carries the payload; the others stay empty.
type StudyMaterial struct {
	ID          uuid.UUID    `json:"id"`
	LecturerID  uuid.UUID    `json:"lecturer_id"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	FileURL     *string      `json:"file_url,omitempty"`
	VideoLinks  []string     `json:"video_links,omitempty"`
	FolderItems []string     `json:"folder_items,omitempty"`
	Class       string       `json:"class"`
	Subject     string       `json:"subject"`
	Type        MaterialType `json:"type"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type StudyMaterialInput struct {
	Title       string       `json:"title" binding:"required"`
	Description *string      `json:"description"`
	FileURL     *string      `json:"file_url"`
	VideoLinks  []string     `json:"video_links"`
	FolderItems []string     `json:"folder_items"`
	Class       string       `json:"class" binding:"required"`
	Subject     string       `json:"subject" binding:"required"`
	Type        MaterialType `json:"type" binding:"required"`
}

// Validate rejects inputs whose content fields disagree with the declared
// type, so a material can never carry more than one content shape.
func (in StudyMaterialInput) Validate() error {
	if !in.Type.Valid() {
		return ErrInvalidInput("type must be document, video or folder")
	}
	switch in.Type {
	case MaterialDocument:
		if len(in.VideoLinks) > 0 || len(in.FolderItems) > 0 {
			return ErrInvalidInput("document material carries only file_url")
		}
	case MaterialVideo:
		if in.FileURL != nil || len(in.FolderItems) > 0 {
			return ErrInvalidInput("video material carries only video_links")
		}
	case MaterialFolder:
		if in.FileURL != nil || len(in.VideoLinks) > 0 {
			return ErrInvalidInput("folder material carries only folder_items")
		}
	}
	return nil
}

type StudyMaterialPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	FileURL     *string   `json:"file_url,omitempty"`
	VideoLinks  *[]string `json:"video_links,omitempty"`
	FolderItems *[]string `json:"folder_items,omitempty"`
	Class       *string   `json:"class,omitempty"`
	Subject     *string   `json:"subject,omitempty"`
}

// Update is an announcement to students. A nil TargetClass means it is
// visible to all classes.
type Update struct {
	ID          uuid.UUID `json:"id"`
	LecturerID  uuid.UUID `json:"lecturer_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	TargetClass *string   `json:"target_class,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UpdateInput struct {
	Title       string  `json:"title" binding:"required"`
	Content     string  `json:"content" binding:"required"`
	TargetClass *string `json:"target_class"`
}

type UpdatePatch struct {
	Title       *string `json:"title,omitempty"`
	Content     *string `json:"content,omitempty"`
	TargetClass *string `json:"target_class,omitempty"`
}
