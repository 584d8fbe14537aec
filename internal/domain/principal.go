package domain

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUnknownRole          = errors.New("unknown principal role")
	ErrMissingSubject       = errors.New("principal subject is required")
	ErrAdminWithoutHospital = errors.New("admin principal has no hospital")
)

// Principal is an authenticated caller. The concrete type is one of
// AdminPrincipal, DoctorPrincipal or PatientPrincipal.
type Principal interface {
	Role() Role
	Subject() uuid.UUID
	CanAdminister(hospitalID uuid.UUID) bool
	IsDoctor(doctorID uuid.UUID) bool
	IsPatient(patientID uuid.UUID) bool

	sealed()
}

// AdminPrincipal administers exactly one hospital.
type AdminPrincipal struct {
	AdminID    uuid.UUID
	Email      string
	HospitalID uuid.UUID
}

func (a AdminPrincipal) Role() Role { return RoleAdmin }
func (a AdminPrincipal) Subject() uuid.UUID { return a.AdminID }
func (a AdminPrincipal) IsDoctor(uuid.UUID) bool { return false }
func (a AdminPrincipal) IsPatient(uuid.UUID) bool { return false }
func (a AdminPrincipal) sealed() {}

func (a AdminPrincipal) CanAdminister(hospitalID uuid.UUID) bool {
	return a.HospitalID != uuid.Nil && a.HospitalID == hospitalID
}

type DoctorPrincipal struct {
	DoctorID uuid.UUID
	Email    string
}

func (d DoctorPrincipal) Role() Role { return RoleDoctor }
func (d DoctorPrincipal) Subject() uuid.UUID { return d.DoctorID }
func (d DoctorPrincipal) CanAdminister(uuid.UUID) bool { return false }
func (d DoctorPrincipal) IsPatient(uuid.UUID) bool { return false }
func (d DoctorPrincipal) sealed() {}

func (d DoctorPrincipal) IsDoctor(doctorID uuid.UUID) bool {
	return d.DoctorID != uuid.Nil && d.DoctorID == doctorID
}

type PatientPrincipal struct {
	PatientID uuid.UUID
	Email     string
}

func (p PatientPrincipal) Role() Role { return RolePatient }
func (p PatientPrincipal) Subject() uuid.UUID { return p.PatientID }
func (p PatientPrincipal) CanAdminister(uuid.UUID) bool { return false }
func (p PatientPrincipal) IsDoctor(uuid.UUID) bool { return false }
func (p PatientPrincipal) sealed() {}

func (p PatientPrincipal) IsPatient(patientID uuid.UUID) bool {
	return p.PatientID != uuid.Nil && p.PatientID == patientID
}

// PrincipalFromClaims turns validated token claims into a typed principal.
func PrincipalFromClaims(c *Claims) (Principal, error) {
	if c.Subject == uuid.Nil {
		return nil, ErrMissingSubject
	}

	switch c.Role {
	case RoleAdmin:
		if c.HospitalID == nil || *c.HospitalID == uuid.Nil {
			return nil, ErrAdminWithoutHospital
		}
		return AdminPrincipal{AdminID: c.Subject, Email: c.Email, HospitalID: *c.HospitalID}, nil
	case RoleDoctor:
		return DoctorPrincipal{DoctorID: c.Subject, Email: c.Email}, nil
	case RolePatient:
		return PatientPrincipal{PatientID: c.Subject, Email: c.Email}, nil
	}
	return nil, ErrUnknownRole
}
