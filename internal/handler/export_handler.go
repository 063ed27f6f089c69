package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uniplan/uniplan-api/internal/dto"
	"github.com/uniplan/uniplan-api/internal/service"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
	"github.com/uniplan/uniplan-api/pkg/response"
)

// ExportHandler serves timetable downloads.
type ExportHandler struct {
	export *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(export *service.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

// Export godoc
// @Summary Export a timetable
// @Description Render the submitted timetable as a CSV or PDF download
// @Tags Export
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param format path string true "Export format" Enums(csv, pdf)
// @Param payload body dto.CourseListRequest true "Working timetable"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /export/{format} [post]
func (h *ExportHandler) Export(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}

	result, err := h.export.Export(service.ExportFormat(c.Param("format")), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
