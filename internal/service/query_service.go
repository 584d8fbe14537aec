package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/availability"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/directory"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/document"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DoctorAvailability struct {
	Doctor  *directory.Doctor
	Windows []*availability.Window
}

// WorklistEntry is one appointment on a doctor's day with the patient and
// their documents expanded.
type WorklistEntry struct {
	Appointment *appointment.Appointment
	Patient     *directory.Patient
	Documents   []*document.Document
}

type TreatmentHistory struct {
	Date          time.Time
	TotalPatients int64
	Appointments  []*appointment.Appointment
}

// DoctorProfile is the doctor's directory record with the names of the
// hospital and department they work in.
type DoctorProfile struct {
	Doctor         *directory.Doctor
	HospitalName   string
	DepartmentName directory.DepartmentType
}

// QueryService serves read paths. None of them take locks.
type QueryService struct {
	directory    directory.Repository
	windows      availability.Repository
	appointments appointment.Repository
	documents    document.Lookup
	now          Clock
	log          *zap.Logger
}

func NewQueryService(
	dir directory.Repository,
	windows availability.Repository,
	appointments appointment.Repository,
	documents document.Lookup,
	now Clock,
	log *zap.Logger,
) *QueryService {
	return &QueryService{
		directory:    dir,
		windows:      windows,
		appointments: appointments,
		documents:    documents,
		now:          now,
		log:          log,
	}
}

func (s *QueryService) ListHospitals(ctx context.Context) ([]*directory.Hospital, error) {
	return s.directory.ListHospitals(ctx)
}

// AvailabilityForDepartment lists every doctor of the hospital department
// with their weekly windows.
func (s *QueryService) AvailabilityForDepartment(ctx context.Context, hospitalID uuid.UUID, departmentName string) ([]DoctorAvailability, error) {
	h, err := s.directory.GetHospital(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	deptType, err := directory.ParseDepartmentType(departmentName)
	if err != nil {
		return nil, err
	}
	dept, err := s.directory.GetDepartmentByType(ctx, h.ID, deptType)
	if err != nil {
		return nil, err
	}

	doctors, err := s.directory.ListDoctors(ctx, h.ID, dept.ID)
	if err != nil {
		return nil, err
	}

	out := make([]DoctorAvailability, 0, len(doctors))
	for _, d := range doctors {
		windows, err := s.windows.ListByDoctor(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, DoctorAvailability{Doctor: d, Windows: windows})
	}
	return out, nil
}

// DoctorAppointmentsForDate is the doctor's worklist. A nil date means today.
func (s *QueryService) DoctorAppointmentsForDate(ctx context.Context, p domain.Principal, date *time.Time) ([]WorklistEntry, error) {
	doc, err := s.resolveDoctor(ctx, p)
	if err != nil {
		return nil, err
	}

	day := s.dateOrToday(date)
	appts, err := s.appointments.ListByDoctorAndDate(ctx, doc.ID, day)
	if err != nil {
		return nil, err
	}

	type patientData struct {
		patient *directory.Patient
		docs    []*document.Document
	}
	seen := make(map[uuid.UUID]patientData, len(appts))

	out := make([]WorklistEntry, 0, len(appts))
	for _, a := range appts {
		pd, ok := seen[a.PatientID]
		if !ok {
			pt, err := s.directory.GetPatient(ctx, a.PatientID)
			if err != nil {
				return nil, fmt.Errorf("loading patient for appointment %s: %w", a.ID, err)
			}
			docs, err := s.documents.ListByPatient(ctx, a.PatientID)
			if err != nil {
				return nil, fmt.Errorf("loading documents for patient %s: %w", a.PatientID, err)
			}
			pd = patientData{patient: pt, docs: docs}
			seen[a.PatientID] = pd
		}
		out = append(out, WorklistEntry{Appointment: a, Patient: pd.patient, Documents: pd.docs})
	}
	return out, nil
}

// TreatmentHistory returns the doctor's appointments on a date with a count.
func (s *QueryService) TreatmentHistory(ctx context.Context, p domain.Principal, date *time.Time) (*TreatmentHistory, error) {
	doc, err := s.resolveDoctor(ctx, p)
	if err != nil {
		return nil, err
	}

	day := s.dateOrToday(date)
	appts, err := s.appointments.ListByDoctorAndDate(ctx, doc.ID, day)
	if err != nil {
		return nil, err
	}
	total, err := s.appointments.CountByDoctorAndDate(ctx, doc.ID, day)
	if err != nil {
		return nil, fmt.Errorf("counting appointments for %s: %w", domain.FormatDate(day), err)
	}
	return &TreatmentHistory{Date: day, TotalPatients: total, Appointments: appts}, nil
}

// DoctorProfile returns the calling doctor's record.
func (s *QueryService) DoctorProfile(ctx context.Context, p domain.Principal) (*DoctorProfile, error) {
	doc, err := s.resolveDoctor(ctx, p)
	if err != nil {
		return nil, err
	}

	h, err := s.directory.GetHospital(ctx, doc.HospitalID)
	if err != nil {
		return nil, fmt.Errorf("loading hospital of doctor %s: %w", doc.ID, err)
	}
	dept, err := s.directory.GetDepartment(ctx, doc.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("loading department of doctor %s: %w", doc.ID, err)
	}
	return &DoctorProfile{Doctor: doc, HospitalName: h.Name, DepartmentName: dept.Name}, nil
}

// resolveDoctor maps a doctor principal to its directory record, by email
// when the token carries one, and checks the record belongs to the caller.
func (s *QueryService) resolveDoctor(ctx context.Context, p domain.Principal) (*directory.Doctor, error) {
	dp, ok := p.(domain.DoctorPrincipal)
	if !ok {
		return nil, ErrForbidden
	}

	var (
		doc *directory.Doctor
		err error
	)
	if dp.Email != "" {
		doc, err = s.directory.GetDoctorByEmail(ctx, dp.Email)
	} else {
		doc, err = s.directory.GetDoctor(ctx, dp.DoctorID)
	}
	if err != nil {
		return nil, err
	}

	if !p.IsDoctor(doc.ID) {
		s.log.Warn("doctor token does not match directory record",
			zap.String("subject", dp.DoctorID.String()),
			zap.String("doctor_id", doc.ID.String()),
		)
		return nil, ErrForbidden
	}
	return doc, nil
}

func (s *QueryService) dateOrToday(date *time.Time) time.Time {
	if date != nil {
		return domain.DateOf(*date)
	}
	return domain.DateOf(s.now())
}
