package appointment

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/google/uuid"
)

// Only SCHEDULED is produced by booking; later lifecycle transitions are
// owned elsewhere.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
)

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PatientID    uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	DoctorID     uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;uniqueIndex:idx_appointments_doctor_slot"`
	HospitalID   uuid.UUID `gorm:"column:hospital_id;type:uuid;not null;index"`
	DepartmentID uuid.UUID `gorm:"column:department_id;type:uuid;not null;index:idx_appointments_department_date"`

	// Calendar date stored as midnight UTC.
	AppointmentDate time.Time        `gorm:"column:appointment_date;type:date;not null;uniqueIndex:idx_appointments_doctor_slot;index:idx_appointments_department_date"`
	AppointmentTime domain.TimeOfDay `gorm:"column:appointment_time;type:time;not null;uniqueIndex:idx_appointments_doctor_slot"`

	Symptoms string            `gorm:"column:symptoms;type:varchar(1000)"`
	Status   AppointmentStatus `gorm:"column:status;type:varchar(30);not null;default:'SCHEDULED'"`
}

func (Appointment) TableName() string {
	return "scheduling.appointments"
}

type BookCommand struct {
	PatientID      uuid.UUID
	HospitalID     uuid.UUID
	DepartmentName string
	DoctorID       uuid.UUID
	Date           time.Time
	Time           domain.TimeOfDay
	Symptoms       string
}

// SlotStatus is the verdict of checking a requested slot against a doctor's
// availability and existing bookings.
type SlotStatus string

const (
	SlotOK          SlotStatus = "OK"
	SlotUnavailable SlotStatus = "UNAVAILABLE"
	SlotDayOff      SlotStatus = "DAY_OFF"
	SlotConflict    SlotStatus = "CONFLICT"
)

// Err maps a rejected slot to its sentinel error; SlotOK yields nil.
func (s SlotStatus) Err() error {
	switch s {
	case SlotUnavailable:
		return ErrDoctorUnavailable
	case SlotDayOff:
		return ErrDoctorDayOff
	case SlotConflict:
		return ErrSlotConflict
	}
	return nil
}

// WeekBucket is the approximate week number used by weekly statistics:
// day-of-year integer-divided by seven. It is not an ISO week.
func WeekBucket(date time.Time) int {
	return date.YearDay() / 7
}

// WeekRange returns the dates [from, to) of the given year whose WeekBucket
// is week. Bucket 0 holds January 1-6 only, and the last bucket of the year
// is cut short at December 31.
func WeekRange(year, week int) (from, to time.Time) {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	next := jan1.AddDate(1, 0, 0)

	first := max(7*week, 1)
	from = jan1.AddDate(0, 0, first-1)
	to = jan1.AddDate(0, 0, 7*week+6)
	if to.After(next) {
		to = next
	}
	if from.After(to) {
		from = to
	}
	return from, to
}

// MonthRange returns the dates [from, to) of a calendar month.
func MonthRange(year int, month time.Month) (from, to time.Time) {
	from = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
