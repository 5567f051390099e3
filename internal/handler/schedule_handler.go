package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cantouch/socialflow-backend/internal/common"
	"github.com/cantouch/socialflow-backend/internal/middleware"
	"github.com/cantouch/socialflow-backend/internal/service"
)

// ScheduleHandler exposes the persisted campaign schedule
type ScheduleHandler struct {
	schedules *service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(schedules *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// SaveRequest optionally overrides the schedule date captured in the form
type SaveRequest struct {
	ScheduleDate string `json:"scheduleDate"`
}

// Save handles POST /api/v1/schedule: it freezes the session's current
// generation result into the shared schedule.
// @Summary Schedule the current campaign
// @Tags schedule
// @Accept json
// @Produce json
// @Success 201 {object} common.APIResponse
// @Failure 400 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /schedule [post]
func (h *ScheduleHandler) Save(c *gin.Context) {
	session := middleware.GetSession(c)

	content, err := session.Workflow.Result()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req SaveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
			return
		}
	}

	info := session.Workflow.SourceInfo()
	if req.ScheduleDate != "" {
		info.ScheduleDate = req.ScheduleDate
	}

	id, err := h.schedules.Save(c.Request.Context(), info, content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: gin.H{"id": id}})
}

// List handles GET /api/v1/schedule, sorted by scheduled time ascending
// @Summary List scheduled campaigns
// @Tags schedule
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /schedule [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	campaigns := h.schedules.List()
	common.SuccessResponse(c, campaigns, &common.Meta{Count: len(campaigns)})
}

// Delete handles DELETE /api/v1/schedule/:id
// @Summary Remove a scheduled campaign
// @Tags schedule
// @Produce json
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /schedule/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.schedules.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": c.Param("id")}, nil)
}

// Duplicate handles POST /api/v1/schedule/:id/duplicate. The copy is fully
// independent of the original.
// @Summary Duplicate a scheduled campaign
// @Tags schedule
// @Produce json
// @Success 201 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /schedule/{id}/duplicate [post]
func (h *ScheduleHandler) Duplicate(c *gin.Context) {
	id, err := h.schedules.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.APIResponse{Data: gin.H{"id": id}})
}
