package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/directory"
	"github.com/dmehra2102/prod-golang-projects/medschedule/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type BookingService struct {
	tx           Transactor
	directory    directory.Repository
	appointments appointment.Repository
	checker      *ConflictChecker
	auditSvc     *AuditService
	metrics      *metrics.Collector
	now          Clock
	log          *zap.Logger
}

func NewBookingService(
	tx Transactor,
	dir directory.Repository,
	appointments appointment.Repository,
	checker *ConflictChecker,
	auditSvc *AuditService,
	m *metrics.Collector,
	now Clock,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		tx:           tx,
		directory:    dir,
		appointments: appointments,
		checker:      checker,
		auditSvc:     auditSvc,
		metrics:      m,
		now:          now,
		log:          log,
	}
}

// BookAppointment validates the request and persists a SCHEDULED appointment.
// Checks run in order and the first failure wins: patient, hospital,
// department, doctor, date, slot. Everything runs in one transaction held
// under a (doctor, date) lock, so nothing is written unless all checks pass.
func (s *BookingService) BookAppointment(ctx context.Context, p domain.Principal, cmd *appointment.BookCommand) (*appointment.Appointment, error) {
	ctx, span := tracer.Start(ctx, "BookingService.BookAppointment")
	defer span.End()
	span.SetAttributes(
		attribute.String("doctor.id", cmd.DoctorID.String()),
		attribute.String("appointment.date", domain.FormatDate(cmd.Date)),
		attribute.String("appointment.time", cmd.Time.String()),
	)

	if !p.IsPatient(cmd.PatientID) {
		return nil, ErrForbidden
	}

	date := domain.DateOf(cmd.Date)
	var booked *appointment.Appointment

	lockKey := fmt.Sprintf("booking:%s:%s", cmd.DoctorID, domain.FormatDate(date))
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.directory.GetPatient(ctx, cmd.PatientID); err != nil {
			return err
		}

		hospital, err := s.directory.GetHospital(ctx, cmd.HospitalID)
		if err != nil {
			return err
		}

		deptType, err := directory.ParseDepartmentType(cmd.DepartmentName)
		if err != nil {
			return err
		}
		dept, err := s.directory.GetDepartmentByType(ctx, hospital.ID, deptType)
		if err != nil {
			return err
		}

		doc, err := s.directory.GetDoctor(ctx, cmd.DoctorID)
		if err != nil {
			return err
		}
		if !doc.WorksIn(hospital.ID, dept.ID) {
			return directory.ErrDoctorNotInDepartment
		}

		if date.Before(domain.DateOf(s.now())) {
			return appointment.ErrScheduledInPast
		}

		status, err := s.checker.CheckSlot(ctx, doc.ID, date, cmd.Time)
		if err != nil {
			return err
		}
		if err := status.Err(); err != nil {
			return err
		}

		a := &appointment.Appointment{
			PatientID:       cmd.PatientID,
			DoctorID:        doc.ID,
			HospitalID:      hospital.ID,
			DepartmentID:    dept.ID,
			AppointmentDate: date,
			AppointmentTime: cmd.Time,
			Symptoms:        cmd.Symptoms,
			Status:          appointment.StatusScheduled,
		}
		if err := s.appointments.Create(ctx, a); err != nil {
			return err
		}
		booked = a
		return nil
	}, lockKey)

	s.metrics.RecordBooking(bookingOutcome(err))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "booking rejected")
		s.log.Info("booking rejected",
			zap.String("patient_id", cmd.PatientID.String()),
			zap.String("doctor_id", cmd.DoctorID.String()),
			zap.String("date", domain.FormatDate(date)),
			zap.Stringer("time", cmd.Time),
			zap.Error(err),
		)
		return nil, err
	}

	s.log.Info("appointment booked",
		zap.String("appointment_id", booked.ID.String()),
		zap.String("doctor_id", booked.DoctorID.String()),
		zap.String("date", domain.FormatDate(booked.AppointmentDate)),
		zap.Stringer("time", booked.AppointmentTime),
	)

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       p.Subject(),
		UserRole:     p.Role(),
		Action:       domain.ActionCreate,
		ResourceType: "appointment",
		ResourceID:   booked.ID.String(),
		Changes: fmt.Sprintf(`{"doctor_id":%q,"date":%q,"time":%q}`,
			booked.DoctorID, domain.FormatDate(booked.AppointmentDate), booked.AppointmentTime),
	})

	return booked, nil
}

func bookingOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeBooked
	case errors.Is(err, appointment.ErrSlotConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, appointment.ErrDoctorUnavailable):
		return metrics.OutcomeUnavailable
	case errors.Is(err, appointment.ErrDoctorDayOff):
		return metrics.OutcomeDayOff
	case errors.Is(err, domain.ErrServiceUnavailable):
		return metrics.OutcomeError
	case isClientError(err):
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeError
}

// isClientError reports whether err was caused by the request rather than
// by the system.
func isClientError(err error) bool {
	var validErr *ValidationError
	return errors.As(err, &validErr) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, directory.ErrPatientNotFound) ||
		errors.Is(err, directory.ErrHospitalNotFound) ||
		errors.Is(err, directory.ErrDepartmentNotFound) ||
		errors.Is(err, directory.ErrDoctorNotFound) ||
		errors.Is(err, directory.ErrUnknownDepartmentType) ||
		errors.Is(err, directory.ErrDoctorNotInDepartment) ||
		errors.Is(err, appointment.ErrScheduledInPast)
}
