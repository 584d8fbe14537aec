package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/availability"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type availabilityRepo struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) availability.Repository {
	return &availabilityRepo{db: db}
}

func (r *availabilityRepo) Upsert(ctx context.Context, w *availability.Window) (*availability.Window, error) {
	err := conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "day_of_week"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "is_available", "updated_at"}),
		}).
		Create(w).Error
	if err != nil {
		return nil, fmt.Errorf("upserting availability window: %w", err)
	}
	return r.GetByDoctorAndDay(ctx, w.DoctorID, w.DayOfWeek)
}

func (r *availabilityRepo) GetByDoctorAndDay(ctx context.Context, doctorID uuid.UUID, day availability.DayOfWeek) (*availability.Window, error) {
	var w availability.Window
	err := conn(ctx, r.db).
		Where("doctor_id = ? AND day_of_week = ?", doctorID, day).
		First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, availability.ErrWindowNotFound
		}
		return nil, fmt.Errorf("fetching availability window: %w", err)
	}
	return &w, nil
}

func (r *availabilityRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*availability.Window, error) {
	var out []*availability.Window
	if err := conn(ctx, r.db).Where("doctor_id = ?", doctorID).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing availability windows: %w", err)
	}
	slices.SortFunc(out, func(a, b *availability.Window) int {
		return a.DayOfWeek.Index() - b.DayOfWeek.Index()
	})
	return out, nil
}
