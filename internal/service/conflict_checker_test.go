package service

import (
	"context"
	"testing"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/availability"
)

func TestConflictChecker_CheckSlot(t *testing.T) {
	f := newFixture()
	f.setWindow(availability.Monday, "09:00", "12:00", true)
	f.setWindow(availability.Tuesday, "09:00", "12:00", false)
	f.appts.seed(f.doctor, f.patient.ID, "2024-01-08", mustTime("10:00"))
	checker := NewConflictChecker(f.windows, f.appts)

	tests := []struct {
		name string
		date string
		at   string
		want appointment.SlotStatus
	}{
		{"free slot", "2024-01-08", "10:30", appointment.SlotOK},
		{"taken slot", "2024-01-08", "10:00", appointment.SlotConflict},
		{"same time next week", "2024-01-15", "10:00", appointment.SlotOK},
		{"before window", "2024-01-08", "08:00", appointment.SlotUnavailable},
		{"at window end", "2024-01-08", "12:00", appointment.SlotUnavailable},
		{"day marked off", "2024-01-09", "10:00", appointment.SlotDayOff},
		{"no window", "2024-01-10", "10:00", appointment.SlotDayOff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.CheckSlot(context.Background(), f.doctor.ID, mustDate(tt.date), mustTime(tt.at))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
