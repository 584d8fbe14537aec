package directory

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestParseDepartmentType(t *testing.T) {
	tests := []struct {
		in   string
		want DepartmentType
	}{
		{"CARDIOLOGY", DepartmentCardiology},
		{"cardiology", DepartmentCardiology},
		{"General Medicine", DepartmentGeneralMedicine},
		{"  general_medicine ", DepartmentGeneralMedicine},
		{"ENT", DepartmentENT},
	}
	for _, tt := range tests {
		got, err := ParseDepartmentType(tt.in)
		if err != nil {
			t.Errorf("ParseDepartmentType(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDepartmentType(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "Radiology", "CARDIO LOGY"} {
		if _, err := ParseDepartmentType(bad); !errors.Is(err, ErrUnknownDepartmentType) {
			t.Errorf("ParseDepartmentType(%q): expected ErrUnknownDepartmentType, got %v", bad, err)
		}
	}
}

func TestDepartmentType_DisplayName(t *testing.T) {
	if got := DepartmentGeneralMedicine.DisplayName(); got != "General Medicine" {
		t.Errorf("got %q", got)
	}
	if got := DepartmentENT.DisplayName(); got != "ENT" {
		t.Errorf("got %q", got)
	}
	for _, d := range AllDepartmentTypes {
		parsed, err := ParseDepartmentType(d.DisplayName())
		if err != nil || parsed != d {
			t.Errorf("display name %q does not parse back to %s", d.DisplayName(), d)
		}
	}
}

func TestDoctor_WorksIn(t *testing.T) {
	h, dep := uuid.New(), uuid.New()
	d := &Doctor{HospitalID: h, DepartmentID: dep}
	if !d.WorksIn(h, dep) {
		t.Error("expected doctor to work in own department")
	}
	if d.WorksIn(h, uuid.New()) || d.WorksIn(uuid.New(), dep) {
		t.Error("doctor should not match other hospital or department")
	}
}
