package v1

import (
	"time"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	query QueryService
}

func NewDoctorHandler(query QueryService) *DoctorHandler {
	return &DoctorHandler{query: query}
}

// Appointments handles GET /doctor/appointments?date=. Without a date the
// doctor's appointments for today are returned.
func (h *DoctorHandler) Appointments(c *gin.Context) {
	date, ok := parseQueryDate(c, "date")
	if !ok {
		return
	}
	h.worklist(c, date)
}

func (h *DoctorHandler) TodaysAppointments(c *gin.Context) {
	h.worklist(c, nil)
}

// History handles GET /doctor/history?date=.
func (h *DoctorHandler) History(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	date, ok := parseQueryDate(c, "date")
	if !ok {
		return
	}

	hist, err := h.query.TreatmentHistory(c.Request.Context(), p, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toTreatmentHistoryResponse(hist))
}

func (h *DoctorHandler) Profile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	profile, err := h.query.DoctorProfile(c.Request.Context(), p)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toDoctorProfileResponse(profile))
}

func (h *DoctorHandler) worklist(c *gin.Context, date *time.Time) {
	p, ok := principal(c)
	if !ok {
		return
	}

	entries, err := h.query.DoctorAppointmentsForDate(c.Request.Context(), p, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toWorklistResponse(entries))
}
