package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniplan/uniplan-api/internal/models"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

func slot(day, start, end string) models.TimeSlot {
	return models.TimeSlot{Day: day, StartTime: start, EndTime: end}
}

func placed(name, code, day, start, end string, credit int) models.ScheduleCourse {
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

func TestOverlapsSameDayIntersecting(t *testing.T) {
	assert.True(t, Overlaps(slot("mon", "10:00", "11:30"), slot("mon", "11:00", "12:00")))
	assert.True(t, Overlaps(slot("mon", "11:00", "12:00"), slot("mon", "10:00", "11:30")))
}

func TestOverlapsTouchingIntervalsDoNotConflict(t *testing.T) {
	assert.False(t, Overlaps(slot("mon", "09:00", "10:00"), slot("mon", "10:00", "11:00")))
	assert.False(t, Overlaps(slot("mon", "10:00", "11:00"), slot("mon", "09:00", "10:00")))
}

func TestOverlapsDifferentDays(t *testing.T) {
	assert.False(t, Overlaps(slot("mon", "10:00", "11:00"), slot("tue", "10:00", "11:00")))
}

func TestOverlapsContainment(t *testing.T) {
	assert.True(t, Overlaps(slot("wed", "09:00", "12:00"), slot("wed", "10:00", "11:00")))
}

func TestFindAllConflictsReportsEveryPair(t *testing.T) {
	courses := []models.ScheduleCourse{
		placed("자료구조", "CS201", "mon", "10:00", "11:30", 3),
		placed("운영체제", "CS301", "mon", "11:00", "12:30", 3),
		placed("선형대수", "MA201", "mon", "10:30", "11:00", 3),
	}
	conflicts := FindAllConflicts(courses)
	require.Len(t, conflicts, 3)
	assert.Equal(t, "자료구조", conflicts[0].CourseA)
	assert.Equal(t, "운영체제", conflicts[0].CourseB)
	assert.Equal(t, "자료구조", conflicts[1].CourseA)
	assert.Equal(t, "선형대수", conflicts[1].CourseB)
	assert.Equal(t, "운영체제", conflicts[2].CourseA)
	assert.Equal(t, "선형대수", conflicts[2].CourseB)
}

func TestFindAllConflictsEmptyWhenClean(t *testing.T) {
	courses := []models.ScheduleCourse{
		placed("자료구조", "CS201", "mon", "09:00", "10:00", 3),
		placed("운영체제", "CS301", "mon", "10:00", "11:00", 3),
		placed("선형대수", "MA201", "tue", "09:00", "10:00", 3),
	}
	assert.Empty(t, FindAllConflicts(courses))
}

func TestCheckCreditBounds(t *testing.T) {
	limits := DefaultLimits()
	assert.True(t, CheckCreditBounds(11, limits).BelowMinimum)
	assert.False(t, CheckCreditBounds(12, limits).BelowMinimum)
	assert.False(t, CheckCreditBounds(21, limits).AboveMaximum)
	assert.True(t, CheckCreditBounds(22, limits).AboveMaximum)
}

func TestValidateAdditionRejectsOverlap(t *testing.T) {
	existing := []models.ScheduleCourse{
		placed("자료구조", "CS201", "mon", "10:00", "11:30", 3),
	}
	adds := []models.ScheduleCourse{
		placed("운영체제", "CS301", "mon", "11:00", "12:30", 3),
	}
	err := ValidateAddition(existing, adds, DefaultLimits())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTimeConflict.Code, appErrors.FromError(err).Code)
	assert.Len(t, existing, 1)
}

func TestValidateAdditionAllowsTouching(t *testing.T) {
	existing := []models.ScheduleCourse{
		placed("자료구조", "CS201", "mon", "09:00", "10:00", 3),
	}
	adds := []models.ScheduleCourse{
		placed("운영체제", "CS301", "mon", "10:00", "11:00", 3),
	}
	assert.NoError(t, ValidateAddition(existing, adds, DefaultLimits()))
}

func TestValidateAdditionRejectsCreditOverflow(t *testing.T) {
	existing := []models.ScheduleCourse{
		placed("과목A", "A", "mon", "09:00", "10:00", 10),
		placed("과목B", "B", "tue", "09:00", "10:00", 10),
	}
	adds := []models.ScheduleCourse{
		placed("과목C", "C", "wed", "09:00", "10:00", 3),
	}
	err := ValidateAddition(existing, adds, DefaultLimits())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrCreditOverflow.Code, appErrors.FromError(err).Code)
}

func TestValidateAdditionCountsMultiSessionCreditOnce(t *testing.T) {
	existing := []models.ScheduleCourse{
		placed("과목A", "A", "mon", "09:00", "10:00", 18),
	}
	// Two sessions of the same 3-credit course: total becomes 21, not 24.
	adds := []models.ScheduleCourse{
		placed("과목B", "B", "tue", "09:00", "10:00", 3),
		placed("과목B", "B", "thu", "09:00", "10:00", 3),
	}
	assert.NoError(t, ValidateAddition(existing, adds, DefaultLimits()))
}

func TestValidateAdditionRejectsDailyLimit(t *testing.T) {
	existing := []models.ScheduleCourse{
		placed("과목A", "A", "mon", "09:00", "10:00", 2),
		placed("과목B", "B", "mon", "10:00", "11:00", 2),
		placed("과목C", "C", "mon", "11:00", "12:00", 2),
	}
	adds := []models.ScheduleCourse{
		placed("과목D", "D", "mon", "12:00", "13:00", 2),
	}
	err := ValidateAddition(existing, adds, DefaultLimits())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDailyLimit.Code, appErrors.FromError(err).Code)
}

func TestValidateAdditionChecksOverlapBeforeCredits(t *testing.T) {
	existing := []models.ScheduleCourse{
		placed("과목A", "A", "mon", "09:00", "10:00", 20),
	}
	adds := []models.ScheduleCourse{
		placed("과목B", "B", "mon", "09:30", "10:30", 5),
	}
	err := ValidateAddition(existing, adds, DefaultLimits())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTimeConflict.Code, appErrors.FromError(err).Code)
}

func TestValidateAdditionEmptyExisting(t *testing.T) {
	adds := []models.ScheduleCourse{
		placed("과목A", "A", "mon", "09:00", "10:00", 3),
	}
	assert.NoError(t, ValidateAddition(nil, adds, DefaultLimits()))
}

func TestMinutesOf(t *testing.T) {
	assert.Equal(t, 0, MinutesOf("00:00"))
	assert.Equal(t, 570, MinutesOf("09:30"))
	assert.Equal(t, 0, MinutesOf("bogus"))
}
