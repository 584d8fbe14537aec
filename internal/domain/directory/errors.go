package directory

import "errors"

var (
	ErrHospitalNotFound      = errors.New("hospital not found")
	ErrDepartmentNotFound    = errors.New("department not found")
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrPatientNotFound       = errors.New("patient not found")
	ErrUnknownDepartmentType = errors.New("unknown department type")
	ErrDoctorNotInDepartment = errors.New("doctor does not work in the requested hospital department")
)
