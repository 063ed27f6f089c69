package dto

import "github.com/uniplan/uniplan-api/internal/models"

// EncodeShareRequest packs a timetable into a share token.
type EncodeShareRequest struct {
	Courses []models.ScheduleCourse `json:"courses" validate:"required,min=1,dive"`
}

// EncodeShareResponse returns the URL-safe token.
type EncodeShareResponse struct {
	Token string `json:"token"`
}

// ShareViewResponse is the read-only view behind a share link. It bypasses
// the persistence write path entirely.
type ShareViewResponse struct {
	Courses      []models.ScheduleCourse     `json:"courses"`
	Consolidated []models.ConsolidatedCourse `json:"consolidated"`
	Conflicts    []models.TimeConflict       `json:"conflicts"`
	TotalCredits int                         `json:"total_credits"`
}
