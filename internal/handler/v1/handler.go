package v1

import (
	"context"
	"time"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/availability"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/directory"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/middleware"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityService interface {
	SetAvailability(ctx context.Context, p domain.Principal, cmd *availability.SetWindowCommand) (*availability.Window, error)
	GetAvailability(ctx context.Context, doctorID uuid.UUID) ([]*availability.Window, error)
	GetAvailabilityForDay(ctx context.Context, doctorID uuid.UUID, day availability.DayOfWeek) (*availability.Window, error)
}

type BookingService interface {
	BookAppointment(ctx context.Context, p domain.Principal, cmd *appointment.BookCommand) (*appointment.Appointment, error)
}

type StatisticsService interface {
	DepartmentStatistics(ctx context.Context, p domain.Principal, departmentID uuid.UUID, period service.Period) (*service.DepartmentStatistics, error)
	HospitalProfile(ctx context.Context, p domain.Principal) (*service.HospitalProfile, error)
}

type QueryService interface {
	ListHospitals(ctx context.Context) ([]*directory.Hospital, error)
	AvailabilityForDepartment(ctx context.Context, hospitalID uuid.UUID, departmentName string) ([]service.DoctorAvailability, error)
	DoctorAppointmentsForDate(ctx context.Context, p domain.Principal, date *time.Time) ([]service.WorklistEntry, error)
	TreatmentHistory(ctx context.Context, p domain.Principal, date *time.Time) (*service.TreatmentHistory, error)
	DoctorProfile(ctx context.Context, p domain.Principal) (*service.DoctorProfile, error)
}

type Services struct {
	Availability AvailabilityService
	Booking      BookingService
	Statistics   StatisticsService
	Query        QueryService
}

// Register mounts the v1 API on rg. Every route requires authentication;
// bookingLimit runs in front of the booking endpoint only.
func Register(rg *gin.RouterGroup, svc Services, tokens middleware.TokenValidator, bookingLimit gin.HandlerFunc) {
	authed := rg.Group("", middleware.Authenticate(tokens))

	admin := NewAdminHandler(svc.Availability, svc.Statistics)
	adminGroup := authed.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	adminGroup.PUT("/doctor/availability", admin.SetAvailability)
	adminGroup.GET("/department/:departmentId/statistics", admin.DepartmentStatistics)
	adminGroup.GET("/hospital/profile", admin.HospitalProfile)

	avail := NewAvailabilityHandler(svc.Availability)
	authed.GET("/doctors/:doctorId/availability", avail.GetAvailability)

	patient := NewPatientHandler(svc.Booking, svc.Query)
	patientGroup := authed.Group("/patient")
	patientGroup.POST("/appointment/book", middleware.RequireRole(domain.RolePatient), bookingLimit, patient.BookAppointment)
	patientGroup.GET("/doctors/availability", patient.DepartmentAvailability)
	patientGroup.GET("/hospitals", patient.ListHospitals)

	doctor := NewDoctorHandler(svc.Query)
	doctorGroup := authed.Group("/doctor", middleware.RequireRole(domain.RoleDoctor))
	doctorGroup.GET("/appointments", doctor.Appointments)
	doctorGroup.GET("/appointments/today", doctor.TodaysAppointments)
	doctorGroup.GET("/history", doctor.History)
	doctorGroup.GET("/profile", doctor.Profile)
}
