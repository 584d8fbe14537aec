package directory

import (
	"context"

	"github.com/google/uuid"
)

// Repository is a read-only view of the master records owned by the
// directory store.
type Repository interface {
	GetHospital(ctx context.Context, id uuid.UUID) (*Hospital, error)
	ListHospitals(ctx context.Context) ([]*Hospital, error)

	GetDepartment(ctx context.Context, id uuid.UUID) (*Department, error)

	// GetDepartmentByType resolves the department row of the given type inside a
	// hospital. Returns ErrDepartmentNotFound when the hospital has no such department.
	GetDepartmentByType(ctx context.Context, hospitalID uuid.UUID, t DepartmentType) (*Department, error)
	ListDepartments(ctx context.Context, hospitalID uuid.UUID) ([]*Department, error)

	GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetDoctorByEmail(ctx context.Context, email string) (*Doctor, error)
	ListDoctors(ctx context.Context, hospitalID, departmentID uuid.UUID) ([]*Doctor, error)

	GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error)
}
