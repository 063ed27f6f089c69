package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/uniplan/uniplan-api/internal/dto"
	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/internal/timetable"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

func row(name, code, day, start, end string, credit int) models.ScheduleCourse {
	return models.ScheduleCourse{
		ID:        code + "-" + day,
		Name:      name,
		Code:      code,
		Day:       day,
		StartTime: start,
		EndTime:   end,
		Credit:    credit,
	}
}

func newPlannerFixture() *PlannerService {
	return NewPlannerService(timetable.DefaultLimits(), nil, zap.NewNop())
}

func TestPlannerServiceFindConflicts(t *testing.T) {
	svc := newPlannerFixture()
	res, err := svc.FindConflicts(dto.CourseListRequest{Courses: []models.ScheduleCourse{
		row("자료구조", "CS201", "mon", "10:00", "11:30", 3),
		row("운영체제", "CS301", "mon", "11:00", "12:30", 3),
	}})
	require.NoError(t, err)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, "자료구조", res.Conflicts[0].CourseA)
	assert.Equal(t, "운영체제", res.Conflicts[0].CourseB)
}

func TestPlannerServiceFindConflictsCleanTimetable(t *testing.T) {
	svc := newPlannerFixture()
	res, err := svc.FindConflicts(dto.CourseListRequest{Courses: []models.ScheduleCourse{
		row("자료구조", "CS201", "mon", "09:00", "10:00", 3),
		row("운영체제", "CS301", "mon", "10:00", "11:00", 3),
	}})
	require.NoError(t, err)
	assert.NotNil(t, res.Conflicts)
	assert.Empty(t, res.Conflicts)
}

func TestPlannerServiceConsolidateReportsBounds(t *testing.T) {
	svc := newPlannerFixture()
	res, err := svc.Consolidate(dto.CourseListRequest{Courses: []models.ScheduleCourse{
		row("자료구조", "CS201", "mon", "10:00", "11:30", 3),
		row("자료구조", "CS201", "wed", "10:00", "11:30", 3),
	}})
	require.NoError(t, err)
	require.Len(t, res.Courses, 1)
	assert.Equal(t, 3, res.TotalCredits)
	assert.True(t, res.BelowMinimum)
	assert.False(t, res.AboveMaximum)
}

func TestPlannerServiceValidateAdditionRejectsConflict(t *testing.T) {
	svc := newPlannerFixture()
	existing := []models.ScheduleCourse{row("자료구조", "CS201", "mon", "10:00", "11:30", 3)}
	err := svc.ValidateAddition(dto.ValidateAddRequest{
		Existing: existing,
		Adds:     []models.ScheduleCourse{row("운영체제", "CS301", "mon", "11:00", "12:30", 3)},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTimeConflict.Code, appErrors.FromError(err).Code)
	assert.Len(t, existing, 1, "existing timetable must be untouched on rejection")
}

func TestPlannerServiceValidateAdditionRequiresAdds(t *testing.T) {
	svc := newPlannerFixture()
	err := svc.ValidateAddition(dto.ValidateAddRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPlannerServiceValidateAdditionAllowsCleanAdd(t *testing.T) {
	svc := newPlannerFixture()
	err := svc.ValidateAddition(dto.ValidateAddRequest{
		Existing: []models.ScheduleCourse{row("자료구조", "CS201", "mon", "09:00", "10:00", 3)},
		Adds:     []models.ScheduleCourse{row("운영체제", "CS301", "tue", "09:00", "10:00", 3)},
	})
	assert.NoError(t, err)
}
