package dto

import "github.com/uniplan/uniplan-api/internal/models"

// CourseListRequest carries a working timetable for stateless planner
// operations (conflict scan, consolidation, export).
type CourseListRequest struct {
	Courses []models.ScheduleCourse `json:"courses" validate:"required"`
}

// ValidateAddRequest asks whether new rows may join the working timetable.
type ValidateAddRequest struct {
	Existing []models.ScheduleCourse `json:"existing"`
	Adds     []models.ScheduleCourse `json:"adds" validate:"required,min=1,dive"`
}

// ConflictResponse lists every pairwise overlap in the submitted timetable.
type ConflictResponse struct {
	Conflicts []models.TimeConflict `json:"conflicts"`
}

// ConsolidateResponse returns the display view of a timetable: one entry
// per course code plus the distinct-code credit total and bound warnings.
type ConsolidateResponse struct {
	Courses      []models.ConsolidatedCourse `json:"courses"`
	TotalCredits int                         `json:"total_credits"`
	BelowMinimum bool                        `json:"below_minimum"`
	AboveMaximum bool                        `json:"above_maximum"`
}
