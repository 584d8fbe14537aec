package appointment

import (
	"context"
	"time"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new appointment. Returns ErrSlotConflict when the
	// doctor already has an appointment at the same date and time.
	Create(ctx context.Context, a *Appointment) error

	ExistsAt(ctx context.Context, doctorID uuid.UUID, date time.Time, at domain.TimeOfDay) (bool, error)

	ListByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*Appointment, error)
	CountByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) (int64, error)

	CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error)
	// CountByDepartmentBetween counts appointments dated in [from, to).
	CountByDepartmentBetween(ctx context.Context, departmentID uuid.UUID, from, to time.Time) (int64, error)
}
