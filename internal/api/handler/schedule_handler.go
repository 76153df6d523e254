package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/juriqh/masar-notes-buddy/internal/service"
	"github.com/juriqh/masar-notes-buddy/pkg/response"
)

// ScheduleHandler serves the merged day schedules.
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Today returns today's merged schedule.
// GET /api/v1/schedule/today
func (h *ScheduleHandler) Today(c *gin.Context) {
	resp, err := h.scheduleSvc.TodayBlocks(c.Request.Context(), time.Now())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// Tomorrow returns tomorrow's merged schedule.
// GET /api/v1/schedule/tomorrow
func (h *ScheduleHandler) Tomorrow(c *gin.Context) {
	resp, err := h.scheduleSvc.TomorrowBlocks(c.Request.Context(), time.Now())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}
