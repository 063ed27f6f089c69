package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/uniplan/uniplan-api/internal/dto"
	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/internal/service"
	"github.com/uniplan/uniplan-api/internal/timetable"
	"github.com/uniplan/uniplan-api/pkg/response"
)

func newShareHandlerFixture() *ShareHandler {
	return NewShareHandler(service.NewShareService(timetable.DefaultLimits(), nil, nil, zap.NewNop()))
}

func TestShareHandlerEncodeAndView(t *testing.T) {
	handler := newShareHandlerFixture()
	w, c := postJSON(t, dto.EncodeShareRequest{Courses: []models.ScheduleCourse{
		timetableRow("자료구조", "CS201", "mon", "10:00", "11:30", 3),
	}})

	handler.Encode(c)
	require.Equal(t, http.StatusOK, w.Code)

	var encoded struct {
		Data dto.EncodeShareResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &encoded))
	require.NotEmpty(t, encoded.Data.Token)

	gin.SetMode(gin.TestMode)
	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	req, _ := http.NewRequest(http.MethodGet, "/share?schedule="+encoded.Data.Token, nil)
	c2.Request = req

	handler.View(c2)
	require.Equal(t, http.StatusOK, w2.Code)

	var view struct {
		Data dto.ShareViewResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &view))
	require.Len(t, view.Data.Courses, 1)
	assert.Equal(t, "CS201", view.Data.Courses[0].Code)
	assert.Equal(t, 3, view.Data.TotalCredits)
}

func TestShareHandlerViewMissingToken(t *testing.T) {
	handler := newShareHandlerFixture()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/share", nil)
	c.Request = req

	handler.View(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShareHandlerViewCorruptToken(t *testing.T) {
	handler := newShareHandlerFixture()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/share?schedule=corrupted!!", nil)
	c.Request = req

	handler.View(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INVALID_SCHEDULE_FORMAT", envelope.Error.Code)
}
