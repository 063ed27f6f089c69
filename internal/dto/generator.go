package dto

import "github.com/uniplan/uniplan-api/internal/models"

// GenerateTimetableRequest scopes a generation run.
type GenerateTimetableRequest struct {
	DepartmentIDs []string `json:"departmentIds"`
	Categories    []string `json:"categories"`
	ExcludeIDs    []string `json:"excludeIds"`
	UseAssistant  bool     `json:"useAssistant"`
}

// GenerateTimetableResponse returns candidate timetables. Source records
// which path produced them ("algorithmic" or "assistant"); assistant output
// is always re-validated before it lands here.
type GenerateTimetableResponse struct {
	ProposalID        string                     `json:"proposalId"`
	Source            string                     `json:"source"`
	Schedules         []models.GeneratedSchedule `json:"schedules"`
	CoursesConsidered int                        `json:"coursesConsidered"`
	Message           string                     `json:"message,omitempty"`
}

// SaveTimetableRequest persists one candidate from a prior generation run.
type SaveTimetableRequest struct {
	ProposalID string   `json:"proposalId" validate:"required"`
	Index      int      `json:"index" validate:"min=0"`
	Name       string   `json:"name"`
	Tags       []string `json:"tags"`
}

// SavedScheduleResponse acknowledges a persisted timetable.
type SavedScheduleResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
}
