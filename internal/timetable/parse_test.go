package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniplan/uniplan-api/internal/models"
)

func TestParseScheduleTimesKoreanDays(t *testing.T) {
	slots := ParseScheduleTimes("월 10:00-11:30, 수 13:00-14:30")
	require.Len(t, slots, 2)
	assert.Equal(t, models.TimeSlot{Day: "mon", StartTime: "10:00", EndTime: "11:30"}, slots[0])
	assert.Equal(t, models.TimeSlot{Day: "wed", StartTime: "13:00", EndTime: "14:30"}, slots[1])
}

func TestParseScheduleTimesEnglishDays(t *testing.T) {
	slots := ParseScheduleTimes("Mon 09:00-10:15, FRI 15:00-16:15")
	require.Len(t, slots, 2)
	assert.Equal(t, "mon", slots[0].Day)
	assert.Equal(t, "fri", slots[1].Day)
}

func TestParseScheduleTimesPadsSingleDigitHours(t *testing.T) {
	slots := ParseScheduleTimes("화 9:00-10:30")
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "10:30", slots[0].EndTime)
}

func TestParseScheduleTimesDropsMalformedSegments(t *testing.T) {
	slots := ParseScheduleTimes("월 10:00-11:30, 온라인, 목 14:00-15:15")
	require.Len(t, slots, 2)
	assert.Equal(t, "mon", slots[0].Day)
	assert.Equal(t, "thu", slots[1].Day)
}

func TestParseScheduleTimesDropsUnknownDay(t *testing.T) {
	assert.Empty(t, ParseScheduleTimes("토 10:00-11:30"))
	assert.Empty(t, ParseScheduleTimes("sat 10:00-11:30"))
}

func TestParseScheduleTimesDropsInvertedRange(t *testing.T) {
	assert.Empty(t, ParseScheduleTimes("월 11:30-10:00"))
	assert.Empty(t, ParseScheduleTimes("월 10:00-10:00"))
}

func TestParseScheduleTimesMissingTimeRange(t *testing.T) {
	assert.Empty(t, ParseScheduleTimes("월"))
	assert.Empty(t, ParseScheduleTimes("수 오전"))
}

func TestParseScheduleTimesEmptyInput(t *testing.T) {
	assert.Empty(t, ParseScheduleTimes(""))
	assert.Empty(t, ParseScheduleTimes("   "))
	assert.Empty(t, ParseScheduleTimes(" , , "))
}

func TestParseScheduleTimesKeepsSegmentOrder(t *testing.T) {
	slots := ParseScheduleTimes("금 15:00-16:00, 월 09:00-10:00")
	require.Len(t, slots, 2)
	assert.Equal(t, "fri", slots[0].Day)
	assert.Equal(t, "mon", slots[1].Day)
}
