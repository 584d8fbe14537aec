package v1

import (
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/availability"
	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availability AvailabilityService
}

func NewAvailabilityHandler(availability AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// GetAvailability returns the doctor's weekly windows, or the single window
// for ?day= when given.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	doctorID, ok := parseUUID(c, "doctorId")
	if !ok {
		return
	}

	if raw := c.Query("day"); raw != "" {
		day, err := availability.ParseDayOfWeek(raw)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		w, err := h.availability.GetAvailabilityForDay(c.Request.Context(), doctorID, day)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondOK(c, toWindowResponse(w))
		return
	}

	windows, err := h.availability.GetAvailability(c.Request.Context(), doctorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, toWindowResponses(windows))
}
