package directory

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Hospital struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name    string `gorm:"column:name;type:varchar(200);not null"`
	Address string `gorm:"column:address;type:text"`
	City    string `gorm:"column:city;type:varchar(100);index"`
	Phone   string `gorm:"column:phone;type:varchar(20)"`
	Email   string `gorm:"column:email;type:varchar(255)"`
}

func (Hospital) TableName() string {
	return "directory.hospitals"
}

type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	HospitalID uuid.UUID      `gorm:"column:hospital_id;type:uuid;not null;uniqueIndex:idx_departments_hospital_name"`
	Name       DepartmentType `gorm:"column:name;type:varchar(50);not null;uniqueIndex:idx_departments_hospital_name"`

	// Derived from appointment rows on read, never stored.
	TotalPatientsTreated int64 `gorm:"-"`
}

func (Department) TableName() string {
	return "directory.departments"
}

type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	FirstName      string `gorm:"column:first_name;type:varchar(100);not null"`
	LastName       string `gorm:"column:last_name;type:varchar(100);not null"`
	Email          string `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Phone          string `gorm:"column:phone;type:varchar(20)"`
	Specialization string `gorm:"column:specialization;type:varchar(100)"`
	Qualification  string `gorm:"column:qualification;type:varchar(200)"`
	// Years of practice.
	Experience     int    `gorm:"column:experience"`

	HospitalID   uuid.UUID `gorm:"column:hospital_id;type:uuid;not null;index:idx_doctors_hospital_department"`
	DepartmentID uuid.UUID `gorm:"column:department_id;type:uuid;not null;index:idx_doctors_hospital_department"`
}

func (Doctor) TableName() string {
	return "directory.doctors"
}

func (d *Doctor) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// WorksIn reports whether the doctor is employed by the hospital and assigned
// to the department.
func (d *Doctor) WorksIn(hospitalID, departmentID uuid.UUID) bool {
	return d.HospitalID == hospitalID && d.DepartmentID == departmentID
}

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	FirstName string `gorm:"column:first_name;type:varchar(100);not null"`
	LastName  string `gorm:"column:last_name;type:varchar(100);not null"`
	Email     string `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Phone     string `gorm:"column:phone;type:varchar(20)"`
	Gender    Gender `gorm:"column:gender;type:varchar(20);not null;default:'unknown'"`
	Age       int    `gorm:"column:age"`
	Address   string `gorm:"column:address;type:text"`

	BloodGroup     string  `gorm:"column:blood_group;type:varchar(10)"`
	BMI            float64 `gorm:"column:bmi"`
	Occupation     string  `gorm:"column:occupation;type:varchar(100)"`
	Religion       string  `gorm:"column:religion;type:varchar(50)"`
	Income         float64 `gorm:"column:income"`
	FamilyDiseases string  `gorm:"column:family_diseases;type:text"`
}

func (Patient) TableName() string {
	return "directory.patients"
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
