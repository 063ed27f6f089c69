package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uniplan/uniplan-api/internal/dto"
	"github.com/uniplan/uniplan-api/internal/service"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
	"github.com/uniplan/uniplan-api/pkg/response"
)

// ShareHandler serves share token encoding and the public viewer endpoint.
type ShareHandler struct {
	share *service.ShareService
}

// NewShareHandler creates a new handler.
func NewShareHandler(share *service.ShareService) *ShareHandler {
	return &ShareHandler{share: share}
}

// Encode godoc
// @Summary Encode a timetable share token
// @Description Pack the submitted timetable into a URL-safe token
// @Tags Share
// @Accept json
// @Produce json
// @Param payload body dto.EncodeShareRequest true "Timetable to share"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /share/encode [post]
func (h *ShareHandler) Encode(c *gin.Context) {
	var req dto.EncodeShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid share payload"))
		return
	}

	res, err := h.share.Encode(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// View godoc
// @Summary View a shared timetable
// @Description Decode a share token into a read-only timetable view; no authentication required
// @Tags Share
// @Produce json
// @Param schedule query string true "Share token"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /share [get]
func (h *ShareHandler) View(c *gin.Context) {
	token := c.Query("schedule")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrInvalidScheduleFormat, "missing schedule token"))
		return
	}

	res, err := h.share.Decode(token)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}
