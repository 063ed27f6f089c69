package timetable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/uniplan/uniplan-api/internal/models"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

// Limits are the hard constraints applied on the interactive add path.
type Limits struct {
	MinCredits       int
	MaxCredits       int
	MaxCoursesPerDay int
}

// DefaultLimits returns the stock constraint set.
func DefaultLimits() Limits {
	return Limits{MinCredits: 12, MaxCredits: 21, MaxCoursesPerDay: 4}
}

// CreditBounds reports which side of the credit window a total falls on.
type CreditBounds struct {
	BelowMinimum bool `json:"below_minimum"`
	AboveMaximum bool `json:"above_maximum"`
}

// MinutesOf converts a zero-padded "HH:MM" clock into minutes since 00:00.
func MinutesOf(t string) int {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes
}

// Overlaps reports whether two slots share a day and their half-open minute
// intervals intersect. Touching intervals (endA == startB) do not conflict.
// This is the sole overlap rule; every conflict check routes through it.
func Overlaps(a, b models.TimeSlot) bool {
	if a.Day != b.Day {
		return false
	}
	return MinutesOf(a.StartTime) < MinutesOf(b.EndTime) &&
		MinutesOf(b.StartTime) < MinutesOf(a.EndTime)
}

// FindAllConflicts reports every pairwise overlap among placed courses.
// Deterministic and side-effect free; output preserves input order (i
// before j for each unordered pair).
func FindAllConflicts(courses []models.ScheduleCourse) []models.TimeConflict {
	conflicts := make([]models.TimeConflict, 0)
	for i := 0; i < len(courses); i++ {
		for j := i + 1; j < len(courses); j++ {
			a, b := courses[i], courses[j]
			if !Overlaps(slotOf(a), slotOf(b)) {
				continue
			}
			conflicts = append(conflicts, models.TimeConflict{
				CourseA: a.Name,
				CourseB: b.Name,
				Day:     a.Day,
				TimeA:   a.StartTime + "-" + a.EndTime,
				TimeB:   b.StartTime + "-" + b.EndTime,
			})
		}
	}
	return conflicts
}

// CheckCreditBounds compares a distinct-code credit total against the
// credit window. Advisory for placed courses, hard for additions.
func CheckCreditBounds(total int, limits Limits) CreditBounds {
	return CreditBounds{
		BelowMinimum: total < limits.MinCredits,
		AboveMaximum: total > limits.MaxCredits,
	}
}

// ExceedsDailyLimit reports whether a day's course count has reached the
// per-day ceiling.
func ExceedsDailyLimit(count int, limits Limits) bool {
	return count >= limits.MaxCoursesPerDay
}

// ValidateAddition is the hard gate for interactively adding a course. The
// addition may span several rows (multi-session courses). It returns a
// typed rejection naming the offending day/time/limit; the existing list
// is never modified.
func ValidateAddition(existing, adds []models.ScheduleCourse, limits Limits) error {
	for _, add := range adds {
		for _, placed := range existing {
			if Overlaps(slotOf(add), slotOf(placed)) {
				return appErrors.Clone(appErrors.ErrTimeConflict, fmt.Sprintf(
					"%s overlaps %s on %s %s-%s",
					add.Name, placed.Name, placed.Day, placed.StartTime, placed.EndTime,
				))
			}
		}
	}

	total := TotalDistinctCredits(existing)
	seen := codeSet(existing)
	for _, add := range adds {
		if _, ok := seen[add.Code]; ok {
			continue
		}
		seen[add.Code] = struct{}{}
		total += add.Credit
	}
	if total > limits.MaxCredits {
		return appErrors.Clone(appErrors.ErrCreditOverflow, fmt.Sprintf(
			"adding this course brings the total to %d credits, over the %d credit limit",
			total, limits.MaxCredits,
		))
	}

	perDay := make(map[string]int)
	for _, placed := range existing {
		perDay[placed.Day]++
	}
	for _, add := range adds {
		perDay[add.Day]++
		if ExceedsDailyLimit(perDay[add.Day], limits) {
			return appErrors.Clone(appErrors.ErrDailyLimit, fmt.Sprintf(
				"%s already carries the maximum of %d courses per day",
				add.Day, limits.MaxCoursesPerDay,
			))
		}
	}

	return nil
}

func slotOf(course models.ScheduleCourse) models.TimeSlot {
	return models.TimeSlot{Day: course.Day, StartTime: course.StartTime, EndTime: course.EndTime}
}

func codeSet(courses []models.ScheduleCourse) map[string]struct{} {
	set := make(map[string]struct{}, len(courses))
	for _, course := range courses {
		set[course.Code] = struct{}{}
	}
	return set
}
