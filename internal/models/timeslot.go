package models

// Canonical weekday codes. The planner only models weekdays; weekend tokens
// never survive parsing.
const (
	DayMon = "mon"
	DayTue = "tue"
	DayWed = "wed"
	DayThu = "thu"
	DayFri = "fri"
)

// Weekdays lists the canonical codes in calendar order.
var Weekdays = []string{DayMon, DayTue, DayWed, DayThu, DayFri}

// TimeSlot is a single (day, start, end) occupancy interval for one course
// session. Times are zero-padded "HH:MM" strings; StartTime < EndTime.
type TimeSlot struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// TimeConflict reports a pairwise overlap between two placed courses.
// Purely derived; recomputed whenever the course set changes.
type TimeConflict struct {
	CourseA string `json:"course_a"`
	CourseB string `json:"course_b"`
	Day     string `json:"day"`
	TimeA   string `json:"time_a"`
	TimeB   string `json:"time_b"`
}
