package service

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/uniplan/uniplan-api/internal/dto"
	"github.com/uniplan/uniplan-api/internal/models"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

func exportFixtureRequest() dto.CourseListRequest {
	return dto.CourseListRequest{Courses: []models.ScheduleCourse{
		row("자료구조", "CS201", "mon", "10:00", "11:30", 3),
		row("자료구조", "CS201", "wed", "10:00", "11:30", 3),
		row("운영체제", "CS301", "tue", "13:00", "14:30", 3),
	}}
}

func TestExportServiceCSV(t *testing.T) {
	svc := NewExportService(nil, zap.NewNop(), "")

	result, err := svc.Export(FormatCSV, exportFixtureRequest())
	require.NoError(t, err)
	assert.Equal(t, "timetable.csv", result.FileName)
	assert.Equal(t, "text/csv", result.ContentType)

	records, err := csv.NewReader(strings.NewReader(string(result.Data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header plus one row per session")
	assert.Equal(t, "Code", records[0][0])
	assert.Equal(t, "CS201", records[1][0], "monday session first")
	assert.Equal(t, "CS301", records[2][0], "tuesday session second")
	assert.Equal(t, "CS201", records[3][0], "wednesday session last")
}

func TestExportServiceOrdersRowsByDayThenStart(t *testing.T) {
	svc := NewExportService(nil, zap.NewNop(), "")
	req := dto.CourseListRequest{Courses: []models.ScheduleCourse{
		row("운영체제", "CS301", "wed", "10:00", "11:30", 3),
		row("자료구조", "CS201", "mon", "13:00", "14:30", 3),
		row("알고리즘", "CS401", "mon", "09:00", "10:30", 3),
	}}

	result, err := svc.Export(FormatCSV, req)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(result.Data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"mon", "09:00"}, []string{records[1][3], records[1][4]})
	assert.Equal(t, []string{"mon", "13:00"}, []string{records[2][3], records[2][4]})
	assert.Equal(t, []string{"wed", "10:00"}, []string{records[3][3], records[3][4]})
}

func TestExportServicePDF(t *testing.T) {
	svc := NewExportService(nil, zap.NewNop(), "")

	result, err := svc.Export(FormatPDF, exportFixtureRequest())
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(nil, zap.NewNop(), "")

	_, err := svc.Export(ExportFormat("xlsx"), exportFixtureRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceRequiresCourses(t *testing.T) {
	svc := NewExportService(nil, zap.NewNop(), "")

	_, err := svc.Export(FormatCSV, dto.CourseListRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
