package v1

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/availability"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/directory"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/service"
	"github.com/google/uuid"
)

type SetAvailabilityRequest struct {
	DoctorID    uuid.UUID         `json:"doctorId"`
	DayOfWeek   string            `json:"dayOfWeek" binding:"required"`
	StartTime   *domain.TimeOfDay `json:"startTime" binding:"required"`
	EndTime     *domain.TimeOfDay `json:"endTime" binding:"required"`
	IsAvailable *bool             `json:"isAvailable" binding:"required"`
}

func (r *SetAvailabilityRequest) toCommand() (*availability.SetWindowCommand, error) {
	if r.DoctorID == uuid.Nil {
		return nil, &service.ValidationError{Fields: []string{"doctorId is required"}}
	}
	day, err := availability.ParseDayOfWeek(r.DayOfWeek)
	if err != nil {
		return nil, err
	}
	return &availability.SetWindowCommand{
		DoctorID:    r.DoctorID,
		DayOfWeek:   day,
		StartTime:   *r.StartTime,
		EndTime:     *r.EndTime,
		IsAvailable: *r.IsAvailable,
	}, nil
}

type BookAppointmentRequest struct {
	// Optional; defaults to the authenticated patient.
	PatientID       uuid.UUID `json:"patientId"`
	HospitalID      uuid.UUID `json:"hospitalId"`
	DepartmentName  string    `json:"departmentName" binding:"required"`
	DoctorID        uuid.UUID `json:"doctorId"`
	AppointmentDate string    `json:"appointmentDate" binding:"required"`
	AppointmentTime string    `json:"appointmentTime" binding:"required"`
	Symptoms        string    `json:"symptoms" binding:"max=1000"`
}

func (r *BookAppointmentRequest) toCommand(p domain.Principal) (*appointment.BookCommand, error) {
	var fields []string
	if r.HospitalID == uuid.Nil {
		fields = append(fields, "hospitalId is required")
	}
	if r.DoctorID == uuid.Nil {
		fields = append(fields, "doctorId is required")
	}
	if len(fields) > 0 {
		return nil, &service.ValidationError{Fields: fields}
	}

	date, err := domain.ParseDate(r.AppointmentDate)
	if err != nil {
		return nil, err
	}
	at, err := domain.ParseTimeOfDay(r.AppointmentTime)
	if err != nil {
		return nil, err
	}

	patientID := r.PatientID
	if patientID == uuid.Nil {
		patientID = p.Subject()
	}

	return &appointment.BookCommand{
		PatientID:      patientID,
		HospitalID:     r.HospitalID,
		DepartmentName: r.DepartmentName,
		DoctorID:       r.DoctorID,
		Date:           date,
		Time:           at,
		Symptoms:       r.Symptoms,
	}, nil
}

type WindowResponse struct {
	ID          uuid.UUID              `json:"id"`
	DoctorID    uuid.UUID              `json:"doctorId"`
	DayOfWeek   availability.DayOfWeek `json:"dayOfWeek"`
	StartTime   domain.TimeOfDay       `json:"startTime"`
	EndTime     domain.TimeOfDay       `json:"endTime"`
	IsAvailable bool                   `json:"isAvailable"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

func toWindowResponse(w *availability.Window) WindowResponse {
	return WindowResponse{
		ID:          w.ID,
		DoctorID:    w.DoctorID,
		DayOfWeek:   w.DayOfWeek,
		StartTime:   w.StartTime,
		EndTime:     w.EndTime,
		IsAvailable: w.IsAvailable,
		UpdatedAt:   w.UpdatedAt,
	}
}

func toWindowResponses(ws []*availability.Window) []WindowResponse {
	out := make([]WindowResponse, 0, len(ws))
	for _, w := range ws {
		out = append(out, toWindowResponse(w))
	}
	return out
}

type AppointmentResponse struct {
	ID              uuid.UUID                     `json:"id"`
	PatientID       uuid.UUID                     `json:"patientId"`
	DoctorID        uuid.UUID                     `json:"doctorId"`
	HospitalID      uuid.UUID                     `json:"hospitalId"`
	DepartmentID    uuid.UUID                     `json:"departmentId"`
	AppointmentDate string                        `json:"appointmentDate"`
	AppointmentTime domain.TimeOfDay              `json:"appointmentTime"`
	Symptoms        string                        `json:"symptoms,omitempty"`
	Status          appointment.AppointmentStatus `json:"status"`
	CreatedAt       time.Time                     `json:"createdAt"`
	UpdatedAt       time.Time                     `json:"updatedAt"`
}

func toAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              a.ID,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		HospitalID:      a.HospitalID,
		DepartmentID:    a.DepartmentID,
		AppointmentDate: domain.FormatDate(a.AppointmentDate),
		AppointmentTime: a.AppointmentTime,
		Symptoms:        a.Symptoms,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

type DoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Specialization string    `json:"specialization,omitempty"`
	HospitalID     uuid.UUID `json:"hospitalId"`
	DepartmentID   uuid.UUID `json:"departmentId"`
}

func toDoctorResponse(d *directory.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:             d.ID,
		Name:           d.FullName(),
		Email:          d.Email,
		Specialization: d.Specialization,
		HospitalID:     d.HospitalID,
		DepartmentID:   d.DepartmentID,
	}
}

type DoctorAvailabilityResponse struct {
	Doctor       DoctorResponse   `json:"doctor"`
	Availability []WindowResponse `json:"availability"`
}

type HospitalResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address,omitempty"`
	City    string    `json:"city,omitempty"`
	Phone   string    `json:"phone,omitempty"`
	Email   string    `json:"email,omitempty"`
}

func toHospitalResponse(h *directory.Hospital) HospitalResponse {
	return HospitalResponse{ID: h.ID, Name: h.Name, Address: h.Address, City: h.City, Phone: h.Phone, Email: h.Email}
}

type DepartmentResponse struct {
	ID                   uuid.UUID                `json:"id"`
	Name                 directory.DepartmentType `json:"name"`
	DisplayName          string                   `json:"displayName"`
	TotalPatientsTreated int64                    `json:"totalPatientsTreated"`
}

type HospitalProfileResponse struct {
	HospitalResponse
	Departments []DepartmentResponse `json:"departments"`
}

func toHospitalProfileResponse(p *service.HospitalProfile) HospitalProfileResponse {
	depts := make([]DepartmentResponse, 0, len(p.Departments))
	for _, d := range p.Departments {
		depts = append(depts, DepartmentResponse{
			ID:                   d.ID,
			Name:                 d.Name,
			DisplayName:          d.Name.DisplayName(),
			TotalPatientsTreated: d.TotalPatientsTreated,
		})
	}
	return HospitalProfileResponse{HospitalResponse: toHospitalResponse(p.Hospital), Departments: depts}
}

type StatisticsResponse struct {
	DepartmentID    uuid.UUID                `json:"departmentId"`
	DepartmentName  directory.DepartmentType `json:"departmentName"`
	Period          service.Period           `json:"period"`
	TotalPatients   int64                    `json:"totalPatients"`
	WeeklyPatients  *int64                   `json:"weeklyPatients,omitempty"`
	MonthlyPatients *int64                   `json:"monthlyPatients,omitempty"`
	PeriodStart     string                   `json:"periodStart,omitempty"`
	PeriodEnd       string                   `json:"periodEnd,omitempty"`
}

func toStatisticsResponse(s *service.DepartmentStatistics) StatisticsResponse {
	resp := StatisticsResponse{
		DepartmentID:   s.DepartmentID,
		DepartmentName: s.DepartmentName,
		Period:         s.Period,
		TotalPatients:  s.TotalPatients,
	}
	switch s.Period {
	case service.PeriodWeekly:
		resp.WeeklyPatients = s.PeriodPatients
	case service.PeriodMonthly:
		resp.MonthlyPatients = s.PeriodPatients
	}
	if s.PeriodStart != nil && s.PeriodEnd != nil {
		resp.PeriodStart = domain.FormatDate(*s.PeriodStart)
		resp.PeriodEnd = domain.FormatDate(*s.PeriodEnd)
	}
	return resp
}

type PatientSummary struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone,omitempty"`
	Gender         directory.Gender `json:"gender"`
	Age            int              `json:"age,omitempty"`
	BloodGroup     string           `json:"bloodGroup,omitempty"`
	BMI            float64          `json:"bmi,omitempty"`
	FamilyDiseases string           `json:"familyDiseases,omitempty"`
}

type DocumentResponse struct {
	ID          uuid.UUID     `json:"id"`
	FileName    string        `json:"fileName"`
	Type        document.Type `json:"type"`
	ContentType string        `json:"contentType,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
	UploadedAt  time.Time     `json:"uploadedAt"`
}

type WorklistEntryResponse struct {
	AppointmentResponse
	Patient   PatientSummary     `json:"patient"`
	Documents []DocumentResponse `json:"documents"`
}

func toWorklistResponse(entries []service.WorklistEntry) []WorklistEntryResponse {
	out := make([]WorklistEntryResponse, 0, len(entries))
	for _, e := range entries {
		docs := make([]DocumentResponse, 0, len(e.Documents))
		for _, d := range e.Documents {
			docs = append(docs, DocumentResponse{
				ID:          d.ID,
				FileName:    d.FileName,
				Type:        d.Type,
				ContentType: d.ContentType,
				Description: d.Description,
				URL:         d.URL,
				UploadedAt:  d.UploadedAt,
			})
		}
		p := e.Patient
		out = append(out, WorklistEntryResponse{
			AppointmentResponse: toAppointmentResponse(e.Appointment),
			Patient: PatientSummary{
				ID:             p.ID,
				Name:           p.FullName(),
				Email:          p.Email,
				Phone:          p.Phone,
				Gender:         p.Gender,
				Age:            p.Age,
				BloodGroup:     p.BloodGroup,
				BMI:            p.BMI,
				FamilyDiseases: p.FamilyDiseases,
			},
			Documents: docs,
		})
	}
	return out
}

type TreatmentHistoryResponse struct {
	Date          string                `json:"date"`
	TotalPatients int64                 `json:"totalPatients"`
	Appointments  []AppointmentResponse `json:"appointments"`
}

func toTreatmentHistoryResponse(h *service.TreatmentHistory) TreatmentHistoryResponse {
	appts := make([]AppointmentResponse, 0, len(h.Appointments))
	for _, a := range h.Appointments {
		appts = append(appts, toAppointmentResponse(a))
	}
	return TreatmentHistoryResponse{
		Date:          domain.FormatDate(h.Date),
		TotalPatients: h.TotalPatients,
		Appointments:  appts,
	}
}

type DoctorProfileResponse struct {
	ID             uuid.UUID                `json:"id"`
	Name           string                   `json:"name"`
	Email          string                   `json:"email"`
	Phone          string                   `json:"phone,omitempty"`
	Specialization string                   `json:"specialization,omitempty"`
	Qualification  string                   `json:"qualification,omitempty"`
	Experience     int                      `json:"experience"`
	HospitalID     uuid.UUID                `json:"hospitalId"`
	HospitalName   string                   `json:"hospitalName"`
	DepartmentID   uuid.UUID                `json:"departmentId"`
	DepartmentName directory.DepartmentType `json:"departmentName"`
}

func toDoctorProfileResponse(p *service.DoctorProfile) DoctorProfileResponse {
	d := p.Doctor
	return DoctorProfileResponse{
		ID:             d.ID,
		Name:           d.FullName(),
		Email:          d.Email,
		Phone:          d.Phone,
		Specialization: d.Specialization,
		Qualification:  d.Qualification,
		Experience:     d.Experience,
		HospitalID:     d.HospitalID,
		HospitalName:   p.HospitalName,
		DepartmentID:   d.DepartmentID,
		DepartmentName: p.DepartmentName,
	}
}
