package service

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/availability"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/directory"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/document"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ---- directory ----

type memDirectory struct {
	hospitals   map[uuid.UUID]*directory.Hospital
	departments map[uuid.UUID]*directory.Department
	doctors     map[uuid.UUID]*directory.Doctor
	patients    map[uuid.UUID]*directory.Patient
}

func newMemDirectory() *memDirectory {
	return &memDirectory{
		hospitals:   make(map[uuid.UUID]*directory.Hospital),
		departments: make(map[uuid.UUID]*directory.Department),
		doctors:     make(map[uuid.UUID]*directory.Doctor),
		patients:    make(map[uuid.UUID]*directory.Patient),
	}
}

func (m *memDirectory) addHospital(name string) *directory.Hospital {
	h := &directory.Hospital{ID: uuid.New(), Name: name}
	m.hospitals[h.ID] = h
	return h
}

func (m *memDirectory) addDepartment(hospitalID uuid.UUID, t directory.DepartmentType) *directory.Department {
	d := &directory.Department{ID: uuid.New(), HospitalID: hospitalID, Name: t}
	m.departments[d.ID] = d
	return d
}

func (m *memDirectory) addDoctor(hospitalID, departmentID uuid.UUID, email string) *directory.Doctor {
	d := &directory.Doctor{ID: uuid.New(), HospitalID: hospitalID, DepartmentID: departmentID, Email: email, FirstName: "Greg", LastName: strings.Split(email, "@")[0]}
	m.doctors[d.ID] = d
	return d
}

func (m *memDirectory) addPatient(first string) *directory.Patient {
	p := &directory.Patient{ID: uuid.New(), FirstName: first, LastName: "Doe", Email: strings.ToLower(first) + "@example.com"}
	m.patients[p.ID] = p
	return p
}

func (m *memDirectory) GetHospital(_ context.Context, id uuid.UUID) (*directory.Hospital, error) {
	if h, ok := m.hospitals[id]; ok {
		return h, nil
	}
	return nil, directory.ErrHospitalNotFound
}

func (m *memDirectory) ListHospitals(_ context.Context) ([]*directory.Hospital, error) {
	out := make([]*directory.Hospital, 0, len(m.hospitals))
	for _, h := range m.hospitals {
		out = append(out, h)
	}
	slices.SortFunc(out, func(a, b *directory.Hospital) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (m *memDirectory) GetDepartment(_ context.Context, id uuid.UUID) (*directory.Department, error) {
	if d, ok := m.departments[id]; ok {
		return d, nil
	}
	return nil, directory.ErrDepartmentNotFound
}

func (m *memDirectory) GetDepartmentByType(_ context.Context, hospitalID uuid.UUID, t directory.DepartmentType) (*directory.Department, error) {
	for _, d := range m.departments {
		if d.HospitalID == hospitalID && d.Name == t {
			return d, nil
		}
	}
	return nil, directory.ErrDepartmentNotFound
}

func (m *memDirectory) ListDepartments(_ context.Context, hospitalID uuid.UUID) ([]*directory.Department, error) {
	var out []*directory.Department
	for _, d := range m.departments {
		if d.HospitalID == hospitalID {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b *directory.Department) int { return strings.Compare(string(a.Name), string(b.Name)) })
	return out, nil
}

func (m *memDirectory) GetDoctor(_ context.Context, id uuid.UUID) (*directory.Doctor, error) {
	if d, ok := m.doctors[id]; ok {
		return d, nil
	}
	return nil, directory.ErrDoctorNotFound
}

func (m *memDirectory) GetDoctorByEmail(_ context.Context, email string) (*directory.Doctor, error) {
	for _, d := range m.doctors {
		if strings.EqualFold(d.Email, email) {
			return d, nil
		}
	}
	return nil, directory.ErrDoctorNotFound
}

func (m *memDirectory) ListDoctors(_ context.Context, hospitalID, departmentID uuid.UUID) ([]*directory.Doctor, error) {
	var out []*directory.Doctor
	for _, d := range m.doctors {
		if d.WorksIn(hospitalID, departmentID) {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b *directory.Doctor) int { return strings.Compare(a.Email, b.Email) })
	return out, nil
}

func (m *memDirectory) GetPatient(_ context.Context, id uuid.UUID) (*directory.Patient, error) {
	if p, ok := m.patients[id]; ok {
		return p, nil
	}
	return nil, directory.ErrPatientNotFound
}

// ---- availability ----

type windowKey struct {
	doctor uuid.UUID
	day    availability.DayOfWeek
}

type memWindows struct {
	mu      sync.Mutex
	windows map[windowKey]*availability.Window
}

func newMemWindows() *memWindows {
	return &memWindows{windows: make(map[windowKey]*availability.Window)}
}

func (m *memWindows) Upsert(_ context.Context, w *availability.Window) (*availability.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := windowKey{w.DoctorID, w.DayOfWeek}
	if existing, ok := m.windows[k]; ok {
		existing.StartTime = w.StartTime
		existing.EndTime = w.EndTime
		existing.IsAvailable = w.IsAvailable
		cp := *existing
		return &cp, nil
	}
	stored := *w
	stored.ID = uuid.New()
	m.windows[k] = &stored
	cp := stored
	return &cp, nil
}

func (m *memWindows) GetByDoctorAndDay(_ context.Context, doctorID uuid.UUID, day availability.DayOfWeek) (*availability.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.windows[windowKey{doctorID, day}]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, availability.ErrWindowNotFound
}

func (m *memWindows) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*availability.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*availability.Window
	for k, w := range m.windows {
		if k.doctor == doctorID {
			cp := *w
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *availability.Window) int { return a.DayOfWeek.Index() - b.DayOfWeek.Index() })
	return out, nil
}

func (m *memWindows) count(doctorID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.windows {
		if k.doctor == doctorID {
			n++
		}
	}
	return n
}

// ---- appointments ----

type memAppointments struct {
	mu    sync.Mutex
	items []*appointment.Appointment
}

func (m *memAppointments) Create(_ context.Context, a *appointment.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.items {
		if e.DoctorID == a.DoctorID && e.AppointmentDate.Equal(a.AppointmentDate) && e.AppointmentTime == a.AppointmentTime {
			return appointment.ErrSlotConflict
		}
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.items = append(m.items, &cp)
	return nil
}

func (m *memAppointments) ExistsAt(_ context.Context, doctorID uuid.UUID, date time.Time, at domain.TimeOfDay) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.items {
		if e.DoctorID == doctorID && e.AppointmentDate.Equal(domain.DateOf(date)) && e.AppointmentTime == at {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAppointments) ListByDoctorAndDate(_ context.Context, doctorID uuid.UUID, date time.Time) ([]*appointment.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*appointment.Appointment
	for _, e := range m.items {
		if e.DoctorID == doctorID && e.AppointmentDate.Equal(domain.DateOf(date)) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b *appointment.Appointment) int { return int(a.AppointmentTime - b.AppointmentTime) })
	return out, nil
}

func (m *memAppointments) CountByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) (int64, error) {
	out, _ := m.ListByDoctorAndDate(ctx, doctorID, date)
	return int64(len(out)), nil
}

func (m *memAppointments) CountByDepartment(_ context.Context, departmentID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, e := range m.items {
		if e.DepartmentID == departmentID {
			n++
		}
	}
	return n, nil
}

func (m *memAppointments) CountByDepartmentBetween(_ context.Context, departmentID uuid.UUID, from, to time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, e := range m.items {
		if e.DepartmentID == departmentID && !e.AppointmentDate.Before(from) && e.AppointmentDate.Before(to) {
			n++
		}
	}
	return n, nil
}

func (m *memAppointments) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// seed inserts a row directly, bypassing slot validation.
func (m *memAppointments) seed(doctor *directory.Doctor, patientID uuid.UUID, date string, at domain.TimeOfDay) {
	d, err := domain.ParseDate(date)
	if err != nil {
		panic(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, &appointment.Appointment{
		ID:              uuid.New(),
		PatientID:       patientID,
		DoctorID:        doctor.ID,
		HospitalID:      doctor.HospitalID,
		DepartmentID:    doctor.DepartmentID,
		AppointmentDate: d,
		AppointmentTime: at,
		Status:          appointment.StatusScheduled,
	})
}

// ---- documents ----

type memDocuments struct {
	byPatient map[uuid.UUID][]*document.Document
	calls     int
}

func (m *memDocuments) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*document.Document, error) {
	m.calls++
	return m.byPatient[patientID], nil
}

// ---- transactions ----

// lockingTx serializes work per lock key like the advisory-lock transactor.
type lockingTx struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockingTx() *lockingTx {
	return &lockingTx{locks: make(map[string]*sync.Mutex)}
}

func (t *lockingTx) InTx(ctx context.Context, fn func(ctx context.Context) error, lockKeys ...string) error {
	keys := slices.Clone(lockKeys)
	slices.Sort(keys)
	for _, k := range keys {
		t.mu.Lock()
		l, ok := t.locks[k]
		if !ok {
			l = &sync.Mutex{}
			t.locks[k] = l
		}
		t.mu.Unlock()
		l.Lock()
		defer l.Unlock()
	}
	return fn(ctx)
}

// ---- audit ----

type memAudit struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
	started chan struct{}
	release chan struct{}
}

func (m *memAudit) Create(_ context.Context, e *domain.AuditLog) error {
	if m.started != nil {
		m.started <- struct{}{}
	}
	if m.release != nil {
		<-m.release
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *memAudit) all() []*domain.AuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entries)
}

// ---- fixture ----

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func mustTime(s string) domain.TimeOfDay {
	t, err := domain.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func mustDate(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	dir     *memDirectory
	windows *memWindows
	appts   *memAppointments
	docs    *memDocuments
	tx      *lockingTx
	audit   *memAudit

	hospital   *directory.Hospital
	cardiology *directory.Department
	neurology  *directory.Department
	doctor     *directory.Doctor
	patient    *directory.Patient
	admin      domain.AdminPrincipal

	auditSvc *AuditService
}

func newFixture() *fixture {
	f := &fixture{
		dir:     newMemDirectory(),
		windows: newMemWindows(),
		appts:   &memAppointments{},
		docs:    &memDocuments{byPatient: make(map[uuid.UUID][]*document.Document)},
		tx:      newLockingTx(),
		audit:   &memAudit{},
	}
	f.hospital = f.dir.addHospital("St. Mary")
	f.cardiology = f.dir.addDepartment(f.hospital.ID, directory.DepartmentCardiology)
	f.neurology = f.dir.addDepartment(f.hospital.ID, directory.DepartmentNeurology)
	f.doctor = f.dir.addDoctor(f.hospital.ID, f.cardiology.ID, "house@stmary.example")
	f.patient = f.dir.addPatient("Jane")
	f.admin = domain.AdminPrincipal{AdminID: uuid.New(), HospitalID: f.hospital.ID}
	f.auditSvc = NewAuditService(f.audit, nil, zap.NewNop())
	return f
}

func (f *fixture) setWindow(day availability.DayOfWeek, start, end string, available bool) {
	_, _ = f.windows.Upsert(context.Background(), &availability.Window{
		DoctorID:    f.doctor.ID,
		DayOfWeek:   day,
		StartTime:   mustTime(start),
		EndTime:     mustTime(end),
		IsAvailable: available,
	})
}

func (f *fixture) patientPrincipal() domain.PatientPrincipal {
	return domain.PatientPrincipal{PatientID: f.patient.ID, Email: f.patient.Email}
}

func (f *fixture) doctorPrincipal() domain.DoctorPrincipal {
	return domain.DoctorPrincipal{DoctorID: f.doctor.ID, Email: f.doctor.Email}
}
