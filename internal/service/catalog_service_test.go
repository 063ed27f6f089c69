package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/uniplan/uniplan-api/internal/models"
)

type stubCourseReader struct {
	rows  []models.CourseRow
	err   error
	calls int
}

func (s *stubCourseReader) List(context.Context, models.CourseFilter) ([]models.CourseRow, error) {
	s.calls++
	return s.rows, s.err
}

func (s *stubCourseReader) FindByID(context.Context, string) (*models.CourseRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.rows) == 0 {
		return nil, sql.ErrNoRows
	}
	return &s.rows[0], nil
}

func TestCatalogServiceListCandidatesParsesSchedules(t *testing.T) {
	reader := &stubCourseReader{rows: []models.CourseRow{
		{CourseID: "c1", CourseName: "자료구조", CourseCode: "CS201", Credit: 3,
			Category: "전공필수", ScheduleTime: "월 10:00-11:30, 수 10:00-11:30", Classroom: "공학관 301"},
		{CourseID: "c2", CourseName: "온라인 강의", CourseCode: "ON101", Credit: 2,
			Category: "교양선택", ScheduleTime: "온라인"},
	}}
	svc := NewCatalogService(reader, nil, 0, zap.NewNop())

	candidates, skipped, err := svc.ListCandidates(context.Background(), models.CourseFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, skipped, "unparseable schedule must be dropped, not defaulted")
	require.Len(t, candidates, 1)
	assert.Equal(t, "CS201", candidates[0].Code)
	require.Len(t, candidates[0].Slots, 2)
	assert.Equal(t, "mon", candidates[0].Slots[0].Day)
	assert.Equal(t, "wed", candidates[0].Slots[1].Day)
}

func TestCatalogServiceListCoursesPropagatesErrors(t *testing.T) {
	reader := &stubCourseReader{err: errors.New("db down")}
	svc := NewCatalogService(reader, nil, 0, zap.NewNop())

	_, err := svc.ListCourses(context.Background(), models.CourseFilter{})
	require.Error(t, err)
}

func TestCatalogServiceGetCourseParsesSlots(t *testing.T) {
	reader := &stubCourseReader{rows: []models.CourseRow{
		{CourseID: "c1", CourseName: "자료구조", CourseCode: "CS201", Credit: 3,
			ScheduleTime: "월 10:00-11:30"},
	}}
	svc := NewCatalogService(reader, nil, 0, zap.NewNop())

	course, err := svc.GetCourse(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, course.Slots, 1)
	assert.Equal(t, "mon", course.Slots[0].Day)
}

func TestCatalogServiceGetCourseNotFound(t *testing.T) {
	svc := NewCatalogService(&stubCourseReader{}, nil, 0, zap.NewNop())

	_, err := svc.GetCourse(context.Background(), "missing")
	require.Error(t, err)
}

func TestCatalogCacheKeyIsOrderInsensitive(t *testing.T) {
	a := catalogCacheKey(models.CourseFilter{DepartmentIDs: []string{"d2", "d1"}, Categories: []string{"교양필수"}})
	b := catalogCacheKey(models.CourseFilter{DepartmentIDs: []string{"d1", "d2"}, Categories: []string{"교양필수"}})
	assert.Equal(t, a, b)
}

func TestCatalogCacheKeyDistinguishesFilters(t *testing.T) {
	a := catalogCacheKey(models.CourseFilter{DepartmentIDs: []string{"d1"}})
	b := catalogCacheKey(models.CourseFilter{Categories: []string{"d1"}})
	assert.NotEqual(t, a, b)
}
