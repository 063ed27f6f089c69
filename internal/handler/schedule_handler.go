package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uniplan/uniplan-api/internal/dto"
	"github.com/uniplan/uniplan-api/internal/middleware"
	"github.com/uniplan/uniplan-api/internal/service"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
	"github.com/uniplan/uniplan-api/pkg/response"
)

// ScheduleHandler serves timetable generation and saved schedules.
type ScheduleHandler struct {
	generator *service.GeneratorService
}

// NewScheduleHandler creates a new handler.
func NewScheduleHandler(generator *service.GeneratorService) *ScheduleHandler {
	return &ScheduleHandler{generator: generator}
}

// Generate godoc
// @Summary Generate timetable candidates
// @Description Build up to three conflict-free timetable candidates from the catalog
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generation scope"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Security BearerAuth
// @Router /schedules/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}

	res, err := h.generator.Generate(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// Save godoc
// @Summary Save a generated timetable
// @Description Persist one candidate from a prior generation run
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.SaveTimetableRequest true "Proposal reference"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /schedules/save [post]
func (h *ScheduleHandler) Save(c *gin.Context) {
	var req dto.SaveTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid save payload"))
		return
	}

	res, err := h.generator.Save(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, res)
}

// List godoc
// @Summary List saved timetables
// @Description List the authenticated user's saved timetables, newest first
// @Tags Schedules
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	schedules, err := h.generator.ListSaved(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, schedules, map[string]interface{}{"count": len(schedules)})
}

// Delete godoc
// @Summary Delete a saved timetable
// @Description Remove one saved timetable owned by the authenticated user
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule id"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.generator.DeleteSaved(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
