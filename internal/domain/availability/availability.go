package availability

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/google/uuid"
)

// Window is a doctor's recurring working interval for one day of the week.
// At most one window exists per (doctor, day).
type Window struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;uniqueIndex:idx_availability_doctor_day"`
	DayOfWeek DayOfWeek `gorm:"column:day_of_week;type:varchar(10);not null;uniqueIndex:idx_availability_doctor_day"`

	StartTime domain.TimeOfDay `gorm:"column:start_time;type:time;not null"`
	EndTime   domain.TimeOfDay `gorm:"column:end_time;type:time;not null"`

	// false keeps the time range but marks the day off.
	IsAvailable bool `gorm:"column:is_available;not null"`
}

func (Window) TableName() string {
	return "scheduling.availability_windows"
}

// Covers reports whether t falls inside [StartTime, EndTime).
func (w *Window) Covers(t domain.TimeOfDay) bool {
	return !t.Before(w.StartTime) && t.Before(w.EndTime)
}

type SetWindowCommand struct {
	DoctorID    uuid.UUID
	DayOfWeek   DayOfWeek
	StartTime   domain.TimeOfDay
	EndTime     domain.TimeOfDay
	IsAvailable bool
}

func (c *SetWindowCommand) Validate() error {
	if !c.DayOfWeek.IsValid() {
		return ErrInvalidDayOfWeek
	}
	if !c.StartTime.Before(c.EndTime) {
		return ErrInvalidTimeRange
	}
	return nil
}

func (c *SetWindowCommand) Window() *Window {
	return &Window{
		DoctorID:    c.DoctorID,
		DayOfWeek:   c.DayOfWeek,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		IsAvailable: c.IsAvailable,
	}
}
