package handler

import (
	"bytes"
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

func newPlannerHandlerFixture() *PlannerHandler {
	return NewPlannerHandler(service.NewPlannerService(timetable.DefaultLimits(), nil, zap.NewNop()))
}

func postJSON(t *testing.T, payload interface{}) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return w, c
}

func timetableRow(name, code, day, start, end string, credit int) models.ScheduleCourse {
	return models.ScheduleCourse{
		ID: code + "-" + day, Name: name, Code: code,
		Day: day, StartTime: start, EndTime: end, Credit: credit,
	}
}

func TestPlannerHandlerConflicts(t *testing.T) {
	handler := newPlannerHandlerFixture()
	w, c := postJSON(t, dto.CourseListRequest{Courses: []models.ScheduleCourse{
		timetableRow("자료구조", "CS201", "mon", "10:00", "11:30", 3),
		timetableRow("운영체제", "CS301", "mon", "11:00", "12:30", 3),
	}})

	handler.Conflicts(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.ConflictResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Conflicts, 1)
	assert.Equal(t, "자료구조", envelope.Data.Conflicts[0].CourseA)
}

func TestPlannerHandlerConflictsBadPayload(t *testing.T) {
	handler := newPlannerHandlerFixture()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("not json")))
	c.Request = req

	handler.Conflicts(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlannerHandlerConsolidate(t *testing.T) {
	handler := newPlannerHandlerFixture()
	w, c := postJSON(t, dto.CourseListRequest{Courses: []models.ScheduleCourse{
		timetableRow("자료구조", "CS201", "mon", "10:00", "11:30", 3),
		timetableRow("자료구조", "CS201", "wed", "10:00", "11:30", 3),
	}})

	handler.Consolidate(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.ConsolidateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Courses, 1)
	assert.Equal(t, 3, envelope.Data.TotalCredits)
	assert.True(t, envelope.Data.BelowMinimum)
}

func TestPlannerHandlerValidateAddConflict(t *testing.T) {
	handler := newPlannerHandlerFixture()
	w, c := postJSON(t, dto.ValidateAddRequest{
		Existing: []models.ScheduleCourse{timetableRow("자료구조", "CS201", "mon", "10:00", "11:30", 3)},
		Adds:     []models.ScheduleCourse{timetableRow("운영체제", "CS301", "mon", "11:00", "12:30", 3)},
	})

	handler.ValidateAdd(c)
	require.Equal(t, http.StatusConflict, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "TIME_CONFLICT", envelope.Error.Code)
}

func TestPlannerHandlerValidateAddAllowed(t *testing.T) {
	handler := newPlannerHandlerFixture()
	w, c := postJSON(t, dto.ValidateAddRequest{
		Adds: []models.ScheduleCourse{timetableRow("운영체제", "CS301", "tue", "09:00", "10:30", 3)},
	})

	handler.ValidateAdd(c)
	require.Equal(t, http.StatusOK, w.Code)
}
