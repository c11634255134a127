package portal

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store with the same observable semantics as the
// SQL implementation. It backs the handler tests and local development
// without Postgres.
type MemStore struct {
	mu            sync.Mutex
	profiles      map[uuid.UUID]Profile
	students      map[uuid.UUID]Student
	slots         map[uuid.UUID]TimetableSlot
	assignments   map[uuid.UUID]Assignment
	consultations map[uuid.UUID]Consultation
	reports       map[uuid.UUID]Report
	materials     map[uuid.UUID]StudyMaterial
	updates       map[uuid.UUID]Update
	clock         time.Time
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		profiles:      make(map[uuid.UUID]Profile),
		students:      make(map[uuid.UUID]Student),
		slots:         make(map[uuid.UUID]TimetableSlot),
		assignments:   make(map[uuid.UUID]Assignment),
		consultations: make(map[uuid.UUID]Consultation),
		reports:       make(map[uuid.UUID]Report),
		materials:     make(map[uuid.UUID]StudyMaterial),
		updates:       make(map[uuid.UUID]Update),
	}
}

var _ Store = (*MemStore)(nil)

// now returns a strictly increasing timestamp so updated_at always advances
// even within one wall-clock tick.
func (m *MemStore) now() time.Time {
	t := time.Now().UTC()
	if !t.After(m.clock) {
		t = m.clock.Add(time.Microsecond)
	}
	m.clock = t
	return t
}

// AddProfile seeds a lecturer, standing in for the account bootstrap.
func (m *MemStore) AddProfile(p Profile) Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.profiles[p.ID] = p
	return p
}

func (m *MemStore) GetProfile(_ context.Context, id uuid.UUID) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (m *MemStore) UpdateProfile(_ context.Context, id uuid.UUID, patch ProfilePatch) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	if patch.Department != nil {
		p.Department = patch.Department
	}
	if patch.Phone != nil {
		p.Phone = patch.Phone
	}
	if patch.Bio != nil {
		p.Bio = patch.Bio
	}
	if patch.AvatarURL != nil {
		p.AvatarURL = patch.AvatarURL
	}
	m.profiles[id] = p
	return p, nil
}

func (m *MemStore) ListStudents(_ context.Context, ownerID uuid.UUID) ([]Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Student{}
	for _, st := range m.students {
		if st.LecturerID == ownerID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentName < out[j].StudentName })
	return out, nil
}

func (m *MemStore) CreateStudent(_ context.Context, ownerID uuid.UUID, in StudentInput) (Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// student_id is unique across all lecturers, not per owner.
	for _, st := range m.students {
		if st.StudentID == in.StudentID {
			return Student{}, ErrDuplicate
		}
	}
	now := m.now()
	st := Student{
		ID:           uuid.New(),
		LecturerID:   ownerID,
		StudentName:  in.StudentName,
		StudentEmail: in.StudentEmail,
		StudentID:    in.StudentID,
		Class:        in.Class,
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.students[st.ID] = st
	return st, nil
}

func (m *MemStore) UpdateStudent(_ context.Context, ownerID, id uuid.UUID, patch StudentPatch) (Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.students[id]
	if !ok || st.LecturerID != ownerID {
		return Student{}, ErrNotFound
	}
	if patch.StudentID != nil && *patch.StudentID != st.StudentID {
		for _, other := range m.students {
			if other.StudentID == *patch.StudentID {
				return Student{}, ErrDuplicate
			}
		}
		st.StudentID = *patch.StudentID
	}
	if patch.StudentName != nil {
		st.StudentName = *patch.StudentName
	}
	if patch.StudentEmail != nil {
		st.StudentEmail = *patch.StudentEmail
	}
	if patch.Class != nil {
		st.Class = *patch.Class
	}
	if patch.Phone != nil {
		st.Phone = patch.Phone
	}
	st.UpdatedAt = m.now()
	m.students[id] = st
	return st, nil
}

func (m *MemStore) DeleteStudent(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.students[id]; ok && st.LecturerID == ownerID {
		delete(m.students, id)
	}
	return nil
}

func (m *MemStore) ListTimetable(_ context.Context, ownerID uuid.UUID) ([]TimetableSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []TimetableSlot{}
	for _, ts := range m.slots {
		if ts.LecturerID == ownerID {
			out = append(out, ts)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek.Order() < out[j].DayOfWeek.Order()
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (m *MemStore) CreateTimetableSlot(_ context.Context, ownerID uuid.UUID, in TimetableSlotInput) (TimetableSlot, error) {
	if !in.DayOfWeek.Valid() {
		return TimetableSlot{}, ErrInvalidInput("day_of_week must be a weekday name")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	ts := TimetableSlot{
		ID:         uuid.New(),
		LecturerID: ownerID,
		DayOfWeek:  in.DayOfWeek,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Subject:    in.Subject,
		Class:      in.Class,
		Room:       in.Room,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.slots[ts.ID] = ts
	return ts, nil
}

func (m *MemStore) UpdateTimetableSlot(_ context.Context, ownerID, id uuid.UUID, patch TimetableSlotPatch) (TimetableSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts, ok := m.slots[id]
	if !ok || ts.LecturerID != ownerID {
		return TimetableSlot{}, ErrNotFound
	}
	if patch.DayOfWeek != nil {
		if !patch.DayOfWeek.Valid() {
			return TimetableSlot{}, ErrInvalidInput("day_of_week must be a weekday name")
		}
		ts.DayOfWeek = *patch.DayOfWeek
	}
	if patch.StartTime != nil {
		ts.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		ts.EndTime = *patch.EndTime
	}
	if patch.Subject != nil {
		ts.Subject = *patch.Subject
	}
	if patch.Class != nil {
		ts.Class = *patch.Class
	}
	if patch.Room != nil {
		ts.Room = patch.Room
	}
	ts.UpdatedAt = m.now()
	m.slots[id] = ts
	return ts, nil
}

func (m *MemStore) DeleteTimetableSlot(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ts, ok := m.slots[id]; ok && ts.LecturerID == ownerID {
		delete(m.slots, id)
	}
	return nil
}

func (m *MemStore) ListAssignments(_ context.Context, ownerID uuid.UUID) ([]Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Assignment{}
	for _, a := range m.assignments {
		if a.LecturerID == ownerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmissionDate.After(out[j].SubmissionDate) })
	return out, nil
}

func (m *MemStore) CreateAssignment(_ context.Context, ownerID uuid.UUID, in AssignmentInput) (Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	a := Assignment{
		ID:             uuid.New(),
		LecturerID:     ownerID,
		Title:          in.Title,
		Description:    in.Description,
		Class:          in.Class,
		SubmissionDate: in.SubmissionDate,
		PortalOpen:     in.PortalOpen,
		FilePaths:      in.FilePaths,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	m.assignments[a.ID] = a
	return a, nil
}

func (m *MemStore) UpdateAssignment(_ context.Context, ownerID, id uuid.UUID, patch AssignmentPatch) (Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assignments[id]
	if !ok || a.LecturerID != ownerID {
		return Assignment{}, ErrNotFound
	}
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Description != nil {
		a.Description = patch.Description
	}
	if patch.Class != nil {
		a.Class = *patch.Class
	}
	if patch.SubmissionDate != nil {
		a.SubmissionDate = *patch.SubmissionDate
	}
	if patch.FilePaths != nil {
		a.FilePaths = *patch.FilePaths
	}
	a.UpdatedAt = m.now()
	m.assignments[id] = a
	return a, nil
}

func (m *MemStore) SetPortalOpen(_ context.Context, ownerID, id uuid.UUID, open bool) (Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assignments[id]
	if !ok || a.LecturerID != ownerID {
		return Assignment{}, ErrNotFound
	}
	a.PortalOpen = open
	a.UpdatedAt = m.now()
	m.assignments[id] = a
	return a, nil
}

func (m *MemStore) DeleteAssignment(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.assignments[id]; ok && a.LecturerID == ownerID {
		delete(m.assignments, id)
	}
	return nil
}

func (m *MemStore) ListConsultations(_ context.Context, ownerID uuid.UUID) ([]Consultation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Consultation{}
	for _, c := range m.consultations {
		if c.LecturerID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemStore) CreateConsultation(_ context.Context, ownerID uuid.UUID, in ConsultationInput) (Consultation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	c := Consultation{
		ID:               uuid.New(),
		LecturerID:       ownerID,
		StudentName:      in.StudentName,
		StudentEmail:     in.StudentEmail,
		ConsultationDate: in.ConsultationDate,
		Reason:           in.Reason,
		Status:           StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	m.consultations[c.ID] = c
	return c, nil
}

func (m *MemStore) UpdateConsultation(_ context.Context, ownerID, id uuid.UUID, patch ConsultationPatch) (Consultation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.consultations[id]
	if !ok || c.LecturerID != ownerID {
		return Consultation{}, ErrNotFound
	}
	if patch.StudentName != nil {
		c.StudentName = *patch.StudentName
	}
	if patch.StudentEmail != nil {
		c.StudentEmail = *patch.StudentEmail
	}
	if patch.ConsultationDate != nil {
		c.ConsultationDate = *patch.ConsultationDate
	}
	if patch.Reason != nil {
		c.Reason = *patch.Reason
	}
	c.UpdatedAt = m.now()
	m.consultations[id] = c
	return c, nil
}

func (m *MemStore) SetConsultationStatus(_ context.Context, ownerID, id uuid.UUID, status ConsultationStatus) (Consultation, error) {
	if status != StatusApproved && status != StatusDeclined {
		return Consultation{}, ErrInvalidInput("status must be approved or declined")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.consultations[id]
	if !ok || c.LecturerID != ownerID {
		return Consultation{}, ErrNotFound
	}
	if c.Status != StatusPending {
		return Consultation{}, ErrInvalidTransition
	}
	c.Status = status
	c.UpdatedAt = m.now()
	m.consultations[id] = c
	return c, nil
}

func (m *MemStore) DeleteConsultation(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.consultations[id]; ok && c.LecturerID == ownerID {
		delete(m.consultations, id)
	}
	return nil
}

func (m *MemStore) ListReports(_ context.Context, ownerID uuid.UUID) ([]Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Report{}
	for _, r := range m.reports {
		if r.LecturerID == ownerID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemStore) CreateReport(_ context.Context, ownerID uuid.UUID, in ReportInput) (Report, error) {
	if !in.ReportType.Valid() {
		return Report{}, ErrInvalidInput("report_type must be sent or received")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r := Report{
		ID:          uuid.New(),
		LecturerID:  ownerID,
		ReportType:  in.ReportType,
		StudentName: in.StudentName,
		Title:       in.Title,
		Content:     in.Content,
		CreatedAt:   m.now(),
	}
	m.reports[r.ID] = r
	return r, nil
}

func (m *MemStore) DeleteReport(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reports[id]; ok && r.LecturerID == ownerID {
		delete(m.reports, id)
	}
	return nil
}

func (m *MemStore) ListMaterials(_ context.Context, ownerID uuid.UUID) ([]StudyMaterial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []StudyMaterial{}
	for _, sm := range m.materials {
		if sm.LecturerID == ownerID {
			out = append(out, sm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemStore) CreateMaterial(_ context.Context, ownerID uuid.UUID, in StudyMaterialInput) (StudyMaterial, error) {
	if err := in.Validate(); err != nil {
		return StudyMaterial{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	sm := StudyMaterial{
		ID:          uuid.New(),
		LecturerID:  ownerID,
		Title:       in.Title,
		Description: in.Description,
		FileURL:     in.FileURL,
		VideoLinks:  in.VideoLinks,
		FolderItems: in.FolderItems,
		Class:       in.Class,
		Subject:     in.Subject,
		Type:        in.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.materials[sm.ID] = sm
	return sm, nil
}

func (m *MemStore) UpdateMaterial(_ context.Context, ownerID, id uuid.UUID, patch StudyMaterialPatch) (StudyMaterial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sm, ok := m.materials[id]
	if !ok || sm.LecturerID != ownerID {
		return StudyMaterial{}, ErrNotFound
	}
	if patch.Title != nil {
		sm.Title = *patch.Title
	}
	if patch.Description != nil {
		sm.Description = patch.Description
	}
	if patch.FileURL != nil {
		sm.FileURL = patch.FileURL
	}
	if patch.VideoLinks != nil {
		sm.VideoLinks = *patch.VideoLinks
	}
	if patch.FolderItems != nil {
		sm.FolderItems = *patch.FolderItems
	}
	if patch.Class != nil {
		sm.Class = *patch.Class
	}
	if patch.Subject != nil {
		sm.Subject = *patch.Subject
	}
	sm.UpdatedAt = m.now()
	m.materials[id] = sm
	return sm, nil
}

func (m *MemStore) DeleteMaterial(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sm, ok := m.materials[id]; ok && sm.LecturerID == ownerID {
		delete(m.materials, id)
	}
	return nil
}

func (m *MemStore) ListUpdates(_ context.Context, ownerID uuid.UUID) ([]Update, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Update{}
	for _, u := range m.updates {
		if u.LecturerID == ownerID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemStore) CreateUpdate(_ context.Context, ownerID uuid.UUID, in UpdateInput) (Update, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	u := Update{
		ID:          uuid.New(),
		LecturerID:  ownerID,
		Title:       in.Title,
		Content:     in.Content,
		TargetClass: in.TargetClass,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.updates[u.ID] = u
	return u, nil
}

func (m *MemStore) UpdateUpdate(_ context.Context, ownerID, id uuid.UUID, patch UpdatePatch) (Update, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.updates[id]
	if !ok || u.LecturerID != ownerID {
		return Update{}, ErrNotFound
	}
	if patch.Title != nil {
		u.Title = *patch.Title
	}
	if patch.Content != nil {
		u.Content = *patch.Content
	}
	if patch.TargetClass != nil {
		u.TargetClass = patch.TargetClass
	}
	u.UpdatedAt = m.now()
	m.updates[id] = u
	return u, nil
}

func (m *MemStore) DeleteUpdate(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.updates[id]; ok && u.LecturerID == ownerID {
		delete(m.updates, id)
	}
	return nil
}
