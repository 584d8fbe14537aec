package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/directory"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type directoryRepo struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) directory.Repository {
	return &directoryRepo{db: db}
}

func (r *directoryRepo) GetHospital(ctx context.Context, id uuid.UUID) (*directory.Hospital, error) {
	var h directory.Hospital
	if err := conn(ctx, r.db).First(&h, "id = ?", id).Error; err != nil {
		return nil, notFound(err, directory.ErrHospitalNotFound, "hospital")
	}
	return &h, nil
}

func (r *directoryRepo) ListHospitals(ctx context.Context) ([]*directory.Hospital, error) {
	var out []*directory.Hospital
	if err := conn(ctx, r.db).Order("name ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing hospitals: %w", err)
	}
	return out, nil
}

func (r *directoryRepo) GetDepartment(ctx context.Context, id uuid.UUID) (*directory.Department, error) {
	var d directory.Department
	if err := conn(ctx, r.db).First(&d, "id = ?", id).Error; err != nil {
		return nil, notFound(err, directory.ErrDepartmentNotFound, "department")
	}
	return &d, nil
}

func (r *directoryRepo) GetDepartmentByType(ctx context.Context, hospitalID uuid.UUID, t directory.DepartmentType) (*directory.Department, error) {
	var d directory.Department
	err := conn(ctx, r.db).
		Where("hospital_id = ? AND name = ?", hospitalID, t).
		First(&d).Error
	if err != nil {
		return nil, notFound(err, directory.ErrDepartmentNotFound, "department")
	}
	return &d, nil
}

func (r *directoryRepo) ListDepartments(ctx context.Context, hospitalID uuid.UUID) ([]*directory.Department, error) {
	var out []*directory.Department
	err := conn(ctx, r.db).
		Where("hospital_id = ?", hospitalID).
		Order("name ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing departments: %w", err)
	}
	return out, nil
}

func (r *directoryRepo) GetDoctor(ctx context.Context, id uuid.UUID) (*directory.Doctor, error) {
	var d directory.Doctor
	if err := conn(ctx, r.db).First(&d, "id = ?", id).Error; err != nil {
		return nil, notFound(err, directory.ErrDoctorNotFound, "doctor")
	}
	return &d, nil
}

func (r *directoryRepo) GetDoctorByEmail(ctx context.Context, email string) (*directory.Doctor, error) {
	var d directory.Doctor
	if err := conn(ctx, r.db).First(&d, "LOWER(email) = LOWER(?)", email).Error; err != nil {
		return nil, notFound(err, directory.ErrDoctorNotFound, "doctor")
	}
	return &d, nil
}

func (r *directoryRepo) ListDoctors(ctx context.Context, hospitalID, departmentID uuid.UUID) ([]*directory.Doctor, error) {
	var out []*directory.Doctor
	err := conn(ctx, r.db).
		Where("hospital_id = ? AND department_id = ?", hospitalID, departmentID).
		Order("last_name ASC, first_name ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing doctors: %w", err)
	}
	return out, nil
}

func (r *directoryRepo) GetPatient(ctx context.Context, id uuid.UUID) (*directory.Patient, error) {
	var p directory.Patient
	if err := conn(ctx, r.db).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err, directory.ErrPatientNotFound, "patient")
	}
	return &p, nil
}

// notFound maps gorm's record-not-found to sentinel and wraps anything else.
func notFound(err, sentinel error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("fetching %s: %w", what, err)
}
