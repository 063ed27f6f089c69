package timetable

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/uniplan/uniplan-api/internal/models"
)

// dayTokens maps accepted day spellings (single Korean weekday character or
// 3-letter English abbreviation) to canonical codes.
var dayTokens = map[string]string{
	"월":   models.DayMon,
	"화":   models.DayTue,
	"수":   models.DayWed,
	"목":   models.DayThu,
	"금":   models.DayFri,
	"mon": models.DayMon,
	"tue": models.DayTue,
	"wed": models.DayWed,
	"thu": models.DayThu,
	"fri": models.DayFri,
}

var timeRangePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})`)

// ParseScheduleTimes converts a free-text schedule string such as
// "월 10:00-11:30, 수 13:00-14:30" into structured slots. Parsing never
// fails: malformed segments are dropped and the remainder continues, so a
// fully malformed input yields an empty slice. Callers must treat an empty
// result as "time unknown": courses without slots are excluded from
// generation pools rather than defaulted to a placeholder session.
func ParseScheduleTimes(raw string) []models.TimeSlot {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var slots []models.TimeSlot
	for _, segment := range strings.Split(raw, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		day, ok := extractDay(segment)
		if !ok {
			continue
		}

		match := timeRangePattern.FindStringSubmatch(segment)
		if match == nil {
			continue
		}
		start := padClock(match[1], match[2])
		end := padClock(match[3], match[4])
		if MinutesOf(start) >= MinutesOf(end) {
			continue
		}

		slots = append(slots, models.TimeSlot{Day: day, StartTime: start, EndTime: end})
	}
	return slots
}

// extractDay finds the first token of the segment that names a weekday.
// Unknown day tokens drop the segment; nothing is defaulted.
func extractDay(segment string) (string, bool) {
	for _, token := range strings.Fields(segment) {
		if day, ok := dayTokens[strings.ToLower(token)]; ok {
			return day, true
		}
	}
	return "", false
}

func padClock(hour, minute string) string {
	h, _ := strconv.Atoi(hour)
	return fmt.Sprintf("%02d:%s", h, minute)
}
