package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/directory"
	"github.com/dmehra2102/prod-golang-projects/medschedule/pkg/metrics"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type Period string

const (
	PeriodTotal   Period = "TOTAL"
	PeriodWeekly  Period = "WEEKLY"
	PeriodMonthly Period = "MONTHLY"
)

// ParsePeriod defaults an empty value to TOTAL.
func ParsePeriod(s string) (Period, error) {
	if strings.TrimSpace(s) == "" {
		return PeriodTotal, nil
	}
	switch p := Period(strings.ToUpper(strings.TrimSpace(s))); p {
	case PeriodTotal, PeriodWeekly, PeriodMonthly:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

type DepartmentStatistics struct {
	DepartmentID   uuid.UUID
	DepartmentName directory.DepartmentType
	Period         Period
	TotalPatients  int64

	// Set for WEEKLY and MONTHLY: the count inside [PeriodStart, PeriodEnd).
	PeriodPatients *int64
	PeriodStart    *time.Time
	PeriodEnd      *time.Time
}

type HospitalProfile struct {
	Hospital    *directory.Hospital
	Departments []*directory.Department
}

type StatisticsService struct {
	directory    directory.Repository
	appointments appointment.Repository
	metrics      *metrics.Collector
	now          Clock
	log          *zap.Logger
}

func NewStatisticsService(dir directory.Repository, appointments appointment.Repository, m *metrics.Collector, now Clock, log *zap.Logger) *StatisticsService {
	return &StatisticsService{directory: dir, appointments: appointments, metrics: m, now: now, log: log}
}

// DepartmentStatistics counts the department's appointments. WEEKLY and
// MONTHLY are evaluated against the current date: the current calendar month,
// or the current day-of-year/7 bucket of the current year.
func (s *StatisticsService) DepartmentStatistics(ctx context.Context, p domain.Principal, departmentID uuid.UUID, period Period) (*DepartmentStatistics, error) {
	ctx, span := tracer.Start(ctx, "StatisticsService.DepartmentStatistics")
	defer span.End()
	span.SetAttributes(
		attribute.String("department.id", departmentID.String()),
		attribute.String("statistics.period", string(period)),
	)

	if p.Role() != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	dept, err := s.directory.GetDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if !p.CanAdminister(dept.HospitalID) {
		return nil, ErrForbidden
	}

	total, err := s.appointments.CountByDepartment(ctx, dept.ID)
	if err != nil {
		return nil, fmt.Errorf("counting department appointments: %w", err)
	}

	stats := &DepartmentStatistics{
		DepartmentID:   dept.ID,
		DepartmentName: dept.Name,
		Period:         period,
		TotalPatients:  total,
	}

	today := s.now()
	var from, to time.Time
	switch period {
	case PeriodTotal:
		s.metrics.RecordStatisticsQuery(string(period))
		return stats, nil
	case PeriodWeekly:
		from, to = appointment.WeekRange(today.Year(), appointment.WeekBucket(today))
	case PeriodMonthly:
		from, to = appointment.MonthRange(today.Year(), today.Month())
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	n, err := s.appointments.CountByDepartmentBetween(ctx, dept.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("counting %s appointments: %w", strings.ToLower(string(period)), err)
	}
	stats.PeriodPatients = &n
	stats.PeriodStart = &from
	stats.PeriodEnd = &to

	s.metrics.RecordStatisticsQuery(string(period))
	return stats, nil
}

// HospitalProfile returns the admin's hospital with each department's
// patients-treated total computed from appointment rows.
func (s *StatisticsService) HospitalProfile(ctx context.Context, p domain.Principal) (*HospitalProfile, error) {
	admin, ok := p.(domain.AdminPrincipal)
	if !ok {
		return nil, ErrForbidden
	}

	h, err := s.directory.GetHospital(ctx, admin.HospitalID)
	if err != nil {
		return nil, err
	}

	depts, err := s.directory.ListDepartments(ctx, h.ID)
	if err != nil {
		return nil, err
	}
	for _, d := range depts {
		n, err := s.appointments.CountByDepartment(ctx, d.ID)
		if err != nil {
			return nil, fmt.Errorf("counting department %s: %w", d.Name, err)
		}
		d.TotalPatientsTreated = n
	}

	return &HospitalProfile{Hospital: h, Departments: depts}, nil
}
