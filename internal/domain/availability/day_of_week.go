package availability

import (
	"fmt"
	"strings"
	"time"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// Week is ordered Monday first.
var Week = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func ParseDayOfWeek(s string) (DayOfWeek, error) {
	d := DayOfWeek(strings.ToUpper(strings.TrimSpace(s)))
	if d.Index() < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDayOfWeek, s)
	}
	return d, nil
}

func FromWeekday(w time.Weekday) DayOfWeek {
	if w == time.Sunday {
		return Sunday
	}
	return Week[int(w)-1]
}

// DayOf returns the day of week a calendar date falls on.
func DayOf(date time.Time) DayOfWeek {
	return FromWeekday(date.Weekday())
}

// Index is the position in Week, or -1 for an unknown value.
func (d DayOfWeek) Index() int {
	for i, w := range Week {
		if w == d {
			return i
		}
	}
	return -1
}

func (d DayOfWeek) IsValid() bool {
	return d.Index() >= 0
}
