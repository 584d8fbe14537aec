package v1

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/availability"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/directory"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/service"
	"github.com/gin-gonic/gin"
)

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{directory.ErrHospitalNotFound, http.StatusNotFound, ""},
		{fmt.Errorf("loading: %w", directory.ErrDoctorNotFound), http.StatusNotFound, ""},
		{availability.ErrWindowNotFound, http.StatusNotFound, ""},
		{service.ErrForbidden, http.StatusForbidden, ""},
		{appointment.ErrScheduledInPast, http.StatusBadRequest, CodePastDate},
		{directory.ErrUnknownDepartmentType, http.StatusBadRequest, ""},
		{directory.ErrDoctorNotInDepartment, http.StatusBadRequest, ""},
		{availability.ErrInvalidDayOfWeek, http.StatusBadRequest, ""},
		{availability.ErrInvalidTimeRange, http.StatusBadRequest, ""},
		{service.ErrInvalidPeriod, http.StatusBadRequest, ""},
		{domain.ErrInvalidDate, http.StatusBadRequest, ""},
		{domain.ErrInvalidTimeOfDay, http.StatusBadRequest, ""},
		{appointment.ErrSlotConflict, http.StatusConflict, CodeSlotTaken},
		{appointment.ErrDoctorUnavailable, http.StatusUnprocessableEntity, CodeDoctorUnavailable},
		{appointment.ErrDoctorDayOff, http.StatusUnprocessableEntity, CodeDoctorDayOff},
		{fmt.Errorf("%w: deadlock", domain.ErrServiceUnavailable), http.StatusServiceUnavailable, CodeServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondServiceError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := decodeError(t, w).Code; got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestRespondServiceError_ValidationFields(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondServiceError(c, &service.ValidationError{Fields: []string{"doctorId is required"}})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if want := `{"error":"validation failed","fields":["doctorId is required"]}`; w.Body.String() != want {
		t.Errorf("body = %s, want %s", w.Body.String(), want)
	}
}
