package models

import (
	"time"

	"github.com/lib/pq"
)

// ScheduleCourse is one placed (course, slot) row in a concrete timetable.
// Multi-session courses occupy several rows sharing a Code; credit is
// counted once per distinct code when summing totals.
type ScheduleCourse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Day         string `json:"day"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Location    string `json:"location"`
	Credit      int    `json:"credit"`
	FromHistory bool   `json:"from_history"`
}

// ScheduleTime is one session entry inside a consolidated course.
type ScheduleTime struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ConsolidatedCourse aggregates every session of one course code for
// display. The leading row's course-level fields are representative.
type ConsolidatedCourse struct {
	Code          string         `json:"code"`
	Name          string         `json:"name"`
	Credit        int            `json:"credit"`
	Location      string         `json:"location"`
	ScheduleTimes []ScheduleTime `json:"schedule_times"`
}

// GeneratedSchedule is one full candidate timetable offered to the user,
// produced either by the deterministic generator or an external source.
type GeneratedSchedule struct {
	Name         string           `json:"name"`
	Tags         []string         `json:"tags"`
	Description  string           `json:"description"`
	Courses      []ScheduleCourse `json:"courses"`
	TotalCredits int              `json:"total_credits"`
}

// SavedSchedule is a persisted timetable record.
type SavedSchedule struct {
	ID           string         `db:"id" json:"id"`
	UserID       string         `db:"user_id" json:"user_id"`
	Name         string         `db:"name" json:"name"`
	ScheduleJSON []byte         `db:"schedule_json" json:"-"`
	Tags         pq.StringArray `db:"tags" json:"tags"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}
