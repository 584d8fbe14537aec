package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/availability"
	"github.com/google/uuid"
)

// ConflictChecker decides whether a doctor can take an appointment at a
// given date and time. Callers that go on to book must run it inside the
// same transaction as the write.
type ConflictChecker struct {
	windows      availability.Repository
	appointments appointment.Repository
}

func NewConflictChecker(windows availability.Repository, appointments appointment.Repository) *ConflictChecker {
	return &ConflictChecker{windows: windows, appointments: appointments}
}

func (c *ConflictChecker) CheckSlot(ctx context.Context, doctorID uuid.UUID, date time.Time, at domain.TimeOfDay) (appointment.SlotStatus, error) {
	w, err := c.windows.GetByDoctorAndDay(ctx, doctorID, availability.DayOf(date))
	if err != nil {
		if errors.Is(err, availability.ErrWindowNotFound) {
			return appointment.SlotDayOff, nil
		}
		return "", fmt.Errorf("loading availability: %w", err)
	}

	if !w.IsAvailable {
		return appointment.SlotDayOff, nil
	}
	if !w.Covers(at) {
		return appointment.SlotUnavailable, nil
	}

	taken, err := c.appointments.ExistsAt(ctx, doctorID, date, at)
	if err != nil {
		return "", fmt.Errorf("checking existing appointments: %w", err)
	}
	if taken {
		return appointment.SlotConflict, nil
	}
	return appointment.SlotOK, nil
}
