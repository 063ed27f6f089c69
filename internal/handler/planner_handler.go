package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uniplan/uniplan-api/internal/dto"
	"github.com/uniplan/uniplan-api/internal/service"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
	"github.com/uniplan/uniplan-api/pkg/response"
)

// PlannerHandler serves stateless timetable checks.
type PlannerHandler struct {
	planner *service.PlannerService
}

// NewPlannerHandler creates a new handler.
func NewPlannerHandler(planner *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{planner: planner}
}

// Conflicts godoc
// @Summary Detect timetable conflicts
// @Description Report every pairwise time overlap in the submitted timetable
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.CourseListRequest true "Working timetable"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /planner/conflicts [post]
func (h *PlannerHandler) Conflicts(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timetable payload"))
		return
	}

	res, err := h.planner.FindConflicts(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// Consolidate godoc
// @Summary Consolidate a timetable for display
// @Description Group sessions by course code and report the distinct-code credit total
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.CourseListRequest true "Working timetable"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /planner/consolidate [post]
func (h *PlannerHandler) Consolidate(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timetable payload"))
		return
	}

	res, err := h.planner.Consolidate(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// ValidateAdd godoc
// @Summary Validate adding courses to a timetable
// @Description Check new rows against overlap, credit, and daily-load rules
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.ValidateAddRequest true "Existing timetable and rows to add"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /planner/validate-add [post]
func (h *PlannerHandler) ValidateAdd(c *gin.Context) {
	var req dto.ValidateAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid addition payload"))
		return
	}

	if err := h.planner.ValidateAddition(req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"allowed": true})
}
