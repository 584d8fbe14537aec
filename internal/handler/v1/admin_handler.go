package v1

import (
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/service"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	availability AvailabilityService
	statistics   StatisticsService
}

func NewAdminHandler(availability AvailabilityService, statistics StatisticsService) *AdminHandler {
	return &AdminHandler{availability: availability, statistics: statistics}
}

// SetAvailability handles PUT /admin/doctor/availability.
func (h *AdminHandler) SetAvailability(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req SetAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd, err := req.toCommand()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	w, err := h.availability.SetAvailability(c.Request.Context(), p, cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toWindowResponse(w))
}

// DepartmentStatistics handles GET /admin/department/:departmentId/statistics.
func (h *AdminHandler) DepartmentStatistics(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	deptID, ok := parseUUID(c, "departmentId")
	if !ok {
		return
	}
	period, err := service.ParsePeriod(c.Query("period"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	stats, err := h.statistics.DepartmentStatistics(c.Request.Context(), p, deptID, period)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toStatisticsResponse(stats))
}

func (h *AdminHandler) HospitalProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	profile, err := h.statistics.HospitalProfile(c.Request.Context(), p)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toHospitalProfileResponse(profile))
}
