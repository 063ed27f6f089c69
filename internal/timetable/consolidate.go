package timetable

import "github.com/uniplan/uniplan-api/internal/models"

// Consolidate groups placed rows by course code into one display entity per
// course, preserving first-seen order. The leading row's course-level
// fields (name, credit, location) are kept as representative.
func Consolidate(courses []models.ScheduleCourse) []models.ConsolidatedCourse {
	index := make(map[string]int, len(courses))
	result := make([]models.ConsolidatedCourse, 0, len(courses))

	for _, course := range courses {
		entry := models.ScheduleTime{
			ID:        course.ID,
			Day:       course.Day,
			StartTime: course.StartTime,
			EndTime:   course.EndTime,
		}
		if at, ok := index[course.Code]; ok {
			result[at].ScheduleTimes = append(result[at].ScheduleTimes, entry)
			continue
		}
		index[course.Code] = len(result)
		result = append(result, models.ConsolidatedCourse{
			Code:          course.Code,
			Name:          course.Name,
			Credit:        course.Credit,
			Location:      course.Location,
			ScheduleTimes: []models.ScheduleTime{entry},
		})
	}
	return result
}

// TotalDistinctCredits sums credit once per distinct course code, no matter
// how many sessions the course occupies. Every credit-bound check in the
// planner uses this sum.
func TotalDistinctCredits(courses []models.ScheduleCourse) int {
	seen := make(map[string]struct{}, len(courses))
	total := 0
	for _, course := range courses {
		if _, ok := seen[course.Code]; ok {
			continue
		}
		seen[course.Code] = struct{}{}
		total += course.Credit
	}
	return total
}
