package directory

import (
	"fmt"
	"strings"
)

// DepartmentType is the closed set of clinical departments shared by every
// hospital.
type DepartmentType string

const (
	DepartmentCardiology      DepartmentType = "CARDIOLOGY"
	DepartmentOrthopedics     DepartmentType = "ORTHOPEDICS"
	DepartmentNeurology       DepartmentType = "NEUROLOGY"
	DepartmentPediatrics      DepartmentType = "PEDIATRICS"
	DepartmentGeneralMedicine DepartmentType = "GENERAL_MEDICINE"
	DepartmentOncology        DepartmentType = "ONCOLOGY"
	DepartmentDermatology     DepartmentType = "DERMATOLOGY"
	DepartmentENT             DepartmentType = "ENT"
)

var AllDepartmentTypes = []DepartmentType{
	DepartmentCardiology,
	DepartmentOrthopedics,
	DepartmentNeurology,
	DepartmentPediatrics,
	DepartmentGeneralMedicine,
	DepartmentOncology,
	DepartmentDermatology,
	DepartmentENT,
}

func (d DepartmentType) IsValid() bool {
	for _, t := range AllDepartmentTypes {
		if d == t {
			return true
		}
	}
	return false
}

// ParseDepartmentType accepts the enumerant ("GENERAL_MEDICINE") as well as
// its display form ("General Medicine").
func ParseDepartmentType(s string) (DepartmentType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.Join(strings.Fields(normalized), "_")

	d := DepartmentType(normalized)
	if !d.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDepartmentType, s)
	}
	return d, nil
}

func (d DepartmentType) DisplayName() string {
	if d == DepartmentENT {
		return "ENT"
	}
	words := strings.Split(strings.ToLower(string(d)), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
