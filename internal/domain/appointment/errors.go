package appointment

import "errors"

var (
	ErrSlotConflict      = errors.New("appointment time slot is already booked")
	ErrScheduledInPast   = errors.New("cannot schedule appointment in the past")
	ErrDoctorUnavailable = errors.New("doctor is not available at the requested time")
	ErrDoctorDayOff      = errors.New("doctor is not available on the requested day")
)
