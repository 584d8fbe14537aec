package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/appointment"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepo struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) appointment.Repository {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) Create(ctx context.Context, a *appointment.Appointment) error {
	if err := conn(ctx, r.db).Create(a).Error; err != nil {
		if isUniqueViolation(err) {
			return appointment.ErrSlotConflict
		}
		return fmt.Errorf("creating appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepo) ExistsAt(ctx context.Context, doctorID uuid.UUID, date time.Time, at domain.TimeOfDay) (bool, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&appointment.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ?", doctorID, domain.FormatDate(date), at).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking slot: %w", err)
	}
	return count > 0, nil
}

func (r *appointmentRepo) ListByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	err := conn(ctx, r.db).
		Where("doctor_id = ? AND appointment_date = ?", doctorID, domain.FormatDate(date)).
		Order("appointment_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return out, nil
}

func (r *appointmentRepo) CountByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) (int64, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&appointment.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ?", doctorID, domain.FormatDate(date)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting appointments: %w", err)
	}
	return count, nil
}

func (r *appointmentRepo) CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error) {
	return countDepartment(r.departmentScope(ctx, departmentID))
}

func (r *appointmentRepo) CountByDepartmentBetween(ctx context.Context, departmentID uuid.UUID, from, to time.Time) (int64, error) {
	q := r.departmentScope(ctx, departmentID).
		Where("appointment_date >= ? AND appointment_date < ?", domain.FormatDate(from), domain.FormatDate(to))
	return countDepartment(q)
}

func (r *appointmentRepo) departmentScope(ctx context.Context, departmentID uuid.UUID) *gorm.DB {
	return conn(ctx, r.db).
		Model(&appointment.Appointment{}).
		Where("department_id = ?", departmentID)
}

func countDepartment(q *gorm.DB) (int64, error) {
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting department appointments: %w", err)
	}
	return count, nil
}
