package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	booking BookingService
	query   QueryService
}

func NewPatientHandler(booking BookingService, query QueryService) *PatientHandler {
	return &PatientHandler{booking: booking, query: query}
}

// BookAppointment handles POST /patient/appointment/book.
func (h *PatientHandler) BookAppointment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req BookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd, err := req.toCommand(p)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	a, err := h.booking.BookAppointment(c.Request.Context(), p, cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, toAppointmentResponse(a))
}

// DepartmentAvailability lists the doctors of a hospital department with
// their weekly windows.
func (h *PatientHandler) DepartmentAvailability(c *gin.Context) {
	hospitalID, ok := parseQueryUUID(c, "hospitalId")
	if !ok {
		return
	}
	dept := strings.TrimSpace(c.Query("department"))
	if dept == "" {
		respondError(c, http.StatusBadRequest, "department is required")
		return
	}

	doctors, err := h.query.AvailabilityForDepartment(c.Request.Context(), hospitalID, dept)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]DoctorAvailabilityResponse, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, DoctorAvailabilityResponse{
			Doctor:       toDoctorResponse(d.Doctor),
			Availability: toWindowResponses(d.Windows),
		})
	}
	respondOK(c, out)
}

func (h *PatientHandler) ListHospitals(c *gin.Context) {
	hospitals, err := h.query.ListHospitals(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]HospitalResponse, 0, len(hospitals))
	for _, hs := range hospitals {
		out = append(out, toHospitalResponse(hs))
	}
	respondOK(c, out)
}
