package availability

import "errors"

var (
	ErrWindowNotFound   = errors.New("availability window not found")
	ErrInvalidDayOfWeek = errors.New("invalid day of week")
	ErrInvalidTimeRange = errors.New("availability end time must be after start time")
)
