package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniplan/uniplan-api/internal/models"
)

func TestConsolidateGroupsByCode(t *testing.T) {
	courses := []models.ScheduleCourse{
		placed("자료구조", "CS201", "mon", "10:00", "11:30", 3),
		placed("운영체제", "CS301", "tue", "09:00", "10:30", 3),
		placed("자료구조", "CS201", "wed", "10:00", "11:30", 3),
	}
	result := Consolidate(courses)
	require.Len(t, result, 2)
	assert.Equal(t, "CS201", result[0].Code)
	require.Len(t, result[0].ScheduleTimes, 2)
	assert.Equal(t, "mon", result[0].ScheduleTimes[0].Day)
	assert.Equal(t, "wed", result[0].ScheduleTimes[1].Day)
	assert.Equal(t, "CS301", result[1].Code)
	require.Len(t, result[1].ScheduleTimes, 1)
}

func TestConsolidatePreservesFirstSeenOrder(t *testing.T) {
	courses := []models.ScheduleCourse{
		placed("운영체제", "CS301", "tue", "09:00", "10:30", 3),
		placed("자료구조", "CS201", "mon", "10:00", "11:30", 3),
		placed("운영체제", "CS301", "thu", "09:00", "10:30", 3),
	}
	result := Consolidate(courses)
	require.Len(t, result, 2)
	assert.Equal(t, "CS301", result[0].Code)
	assert.Equal(t, "CS201", result[1].Code)
}

func TestConsolidateKeepsLeadingRowFields(t *testing.T) {
	first := placed("자료구조", "CS201", "mon", "10:00", "11:30", 3)
	first.Location = "공학관 301"
	second := placed("자료구조", "CS201", "wed", "10:00", "11:30", 3)
	second.Location = "공학관 502"

	result := Consolidate([]models.ScheduleCourse{first, second})
	require.Len(t, result, 1)
	assert.Equal(t, "공학관 301", result[0].Location)
	assert.Equal(t, 3, result[0].Credit)
}

func TestConsolidateEmptyInput(t *testing.T) {
	assert.Empty(t, Consolidate(nil))
}

func TestTotalDistinctCreditsCountsCodeOnce(t *testing.T) {
	courses := []models.ScheduleCourse{
		placed("자료구조", "CS201", "mon", "10:00", "11:30", 3),
		placed("자료구조", "CS201", "wed", "10:00", "11:30", 3),
		placed("운영체제", "CS301", "tue", "09:00", "10:30", 4),
	}
	assert.Equal(t, 7, TotalDistinctCredits(courses))
}

func TestTotalDistinctCreditsEmpty(t *testing.T) {
	assert.Equal(t, 0, TotalDistinctCredits(nil))
}
