package availability

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Upsert inserts the window or overwrites the existing one for the same
	// (doctor, day) and returns the stored row.
	Upsert(ctx context.Context, w *Window) (*Window, error)

	// GetByDoctorAndDay returns ErrWindowNotFound if the doctor has no window that day.
	GetByDoctorAndDay(ctx context.Context, doctorID uuid.UUID, day DayOfWeek) (*Window, error)

	// ListByDoctor returns the doctor's windows ordered Monday first.
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Window, error)
}
