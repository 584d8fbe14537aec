package service

import (
	"context"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/availability"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/directory"
	"github.com/dmehra2102/prod-golang-projects/medschedule/pkg/metrics"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("medschedule/service")

type AvailabilityService struct {
	tx        Transactor
	windows   availability.Repository
	directory directory.Repository
	auditSvc  *AuditService
	metrics   *metrics.Collector
	log       *zap.Logger
}

func NewAvailabilityService(
	tx Transactor,
	windows availability.Repository,
	dir directory.Repository,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{tx: tx, windows: windows, directory: dir, auditSvc: auditSvc, metrics: m, log: log}
}

// SetAvailability replaces the doctor's window for one day of the week. Only
// an admin of the doctor's hospital may do so.
func (s *AvailabilityService) SetAvailability(ctx context.Context, p domain.Principal, cmd *availability.SetWindowCommand) (*availability.Window, error) {
	ctx, span := tracer.Start(ctx, "AvailabilityService.SetAvailability")
	defer span.End()
	span.SetAttributes(
		attribute.String("doctor.id", cmd.DoctorID.String()),
		attribute.String("availability.day", string(cmd.DayOfWeek)),
	)

	if p.Role() != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var saved *availability.Window
	lockKey := fmt.Sprintf("availability:%s:%s", cmd.DoctorID, cmd.DayOfWeek)
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		doc, err := s.directory.GetDoctor(ctx, cmd.DoctorID)
		if err != nil {
			return err
		}
		if !p.CanAdminister(doc.HospitalID) {
			return ErrForbidden
		}

		saved, err = s.windows.Upsert(ctx, cmd.Window())
		return err
	}, lockKey)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.metrics.RecordAvailabilityUpdate()
	s.log.Info("availability updated",
		zap.String("doctor_id", saved.DoctorID.String()),
		zap.String("day", string(saved.DayOfWeek)),
		zap.Stringer("start", saved.StartTime),
		zap.Stringer("end", saved.EndTime),
		zap.Bool("available", saved.IsAvailable),
	)

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       p.Subject(),
		UserRole:     p.Role(),
		Action:       domain.ActionUpdate,
		ResourceType: "availability_window",
		ResourceID:   saved.ID.String(),
		Changes: fmt.Sprintf(`{"doctor_id":%q,"day_of_week":%q,"start_time":%q,"end_time":%q,"is_available":%t}`,
			saved.DoctorID, saved.DayOfWeek, saved.StartTime, saved.EndTime, saved.IsAvailable),
	})

	return saved, nil
}

// GetAvailability returns every window the doctor has, Monday first.
func (s *AvailabilityService) GetAvailability(ctx context.Context, doctorID uuid.UUID) ([]*availability.Window, error) {
	if _, err := s.directory.GetDoctor(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.windows.ListByDoctor(ctx, doctorID)
}

// GetAvailabilityForDay returns availability.ErrWindowNotFound when the
// doctor has no window on that day.
func (s *AvailabilityService) GetAvailabilityForDay(ctx context.Context, doctorID uuid.UUID, day availability.DayOfWeek) (*availability.Window, error) {
	if !day.IsValid() {
		return nil, availability.ErrInvalidDayOfWeek
	}
	if _, err := s.directory.GetDoctor(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.windows.GetByDoctorAndDay(ctx, doctorID, day)
}
