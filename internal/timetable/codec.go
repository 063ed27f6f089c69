package timetable

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/uniplan/uniplan-api/internal/models"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

// shareFormatVersion is embedded in every token so old links can be told
// apart from corrupted ones.
const shareFormatVersion = 1

type shareCourse struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	Day       string `json:"day"`
	StartTime string `json:"start"`
	EndTime   string `json:"end"`
	Location  string `json:"loc,omitempty"`
	Credit    int    `json:"credit"`
}

type sharePayload struct {
	Version     int            `json:"v"`
	GeneratedAt int64          `json:"ts"`
	Courses     *[]shareCourse `json:"courses"`
}

// EncodeShareToken packs a timetable into a URL-safe token (base64url, no
// padding). Only the minimal share field set survives; placement ids and
// history flags are stripped.
func EncodeShareToken(courses []models.ScheduleCourse) (string, error) {
	shared := make([]shareCourse, 0, len(courses))
	for _, course := range courses {
		shared = append(shared, shareCourse{
			Name:      course.Name,
			Code:      course.Code,
			Day:       course.Day,
			StartTime: course.StartTime,
			EndTime:   course.EndTime,
			Location:  course.Location,
			Credit:    course.Credit,
		})
	}
	payload := sharePayload{
		Version:     shareFormatVersion,
		GeneratedAt: time.Now().Unix(),
		Courses:     &shared,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode schedule")
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeShareToken reverses EncodeShareToken. Decoded courses get fresh
// placement ids; the share fields round-trip, ids intentionally do not.
// Any structural problem (bad base64, bad JSON, missing courses array,
// unknown version) surfaces as ErrInvalidScheduleFormat.
func DecodeShareToken(token string) ([]models.ScheduleCourse, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidScheduleFormat.Code, appErrors.ErrInvalidScheduleFormat.Status, appErrors.ErrInvalidScheduleFormat.Message)
	}

	var payload sharePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidScheduleFormat.Code, appErrors.ErrInvalidScheduleFormat.Status, appErrors.ErrInvalidScheduleFormat.Message)
	}
	if payload.Courses == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidScheduleFormat, "schedule link is missing its course list")
	}
	if payload.Version != shareFormatVersion {
		return nil, appErrors.Clone(appErrors.ErrInvalidScheduleFormat, "schedule link uses an unsupported format version")
	}

	courses := make([]models.ScheduleCourse, 0, len(*payload.Courses))
	for _, course := range *payload.Courses {
		courses = append(courses, models.ScheduleCourse{
			ID:        uuid.NewString(),
			Name:      course.Name,
			Code:      course.Code,
			Day:       course.Day,
			StartTime: course.StartTime,
			EndTime:   course.EndTime,
			Location:  course.Location,
			Credit:    course.Credit,
		})
	}
	return courses, nil
}
