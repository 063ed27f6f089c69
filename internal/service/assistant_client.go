package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/internal/timetable"
)

// AssistantClient calls the external heuristic timetable generator. Its
// output is untrusted: field names vary (Korean and English aliases) and
// plans may violate the credit or overlap rules, so everything is
// normalised here and re-validated by the caller.
type AssistantClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewAssistantClient constructs a client for the external generator.
func NewAssistantClient(baseURL string, timeout time.Duration, logger *zap.Logger) *AssistantClient {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type assistantRequest struct {
	Courses       []assistantCourse `json:"courses"`
	MaxCredits    int               `json:"max_credits"`
	TargetCredits int               `json:"target_credits"`
}

type assistantCourse struct {
	ID           string `json:"course_id"`
	Name         string `json:"course_name"`
	Code         string `json:"course_code"`
	Credit       int    `json:"credit"`
	Category     string `json:"category"`
	ScheduleTime string `json:"schedule_time"`
	Classroom    string `json:"classroom"`
}

type assistantResponse struct {
	Schedules []struct {
		Name        string           `json:"name"`
		Description string           `json:"description"`
		Courses     []map[string]any `json:"courses"`
	} `json:"schedules"`
}

// GeneratePlans sends the candidate pool to the assistant and converts its
// loosely-typed answer into schedule candidates. Courses whose schedule
// string cannot be parsed are dropped from the plan.
func (c *AssistantClient) GeneratePlans(ctx context.Context, pool []models.CandidateCourse, opts timetable.GenerateOptions) ([]models.GeneratedSchedule, error) {
	payload := assistantRequest{
		Courses:       make([]assistantCourse, 0, len(pool)),
		MaxCredits:    opts.MaxCredits,
		TargetCredits: opts.TargetCredits,
	}
	for _, course := range pool {
		payload.Courses = append(payload.Courses, assistantCourse{
			ID:           course.ID,
			Name:         course.Name,
			Code:         course.Code,
			Credit:       course.Credit,
			Category:     course.Category,
			ScheduleTime: course.RawSchedule,
			Classroom:    course.Location,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal assistant request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build assistant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call assistant: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assistant returned status %d", resp.StatusCode)
	}

	var decoded assistantResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode assistant response: %w", err)
	}

	schedules := make([]models.GeneratedSchedule, 0, len(decoded.Schedules))
	for i, plan := range decoded.Schedules {
		schedule := models.GeneratedSchedule{
			Name:        plan.Name,
			Tags:        []string{"assistant"},
			Description: plan.Description,
		}
		if schedule.Name == "" {
			schedule.Name = fmt.Sprintf("추천 시간표 %d", i+1)
		}
		for _, raw := range plan.Courses {
			row := models.NormalizeCourseRecord(raw)
			slots := timetable.ParseScheduleTimes(row.ScheduleTime)
			if len(slots) == 0 {
				c.logger.Debug("assistant course without parseable schedule dropped",
					zap.String("course_id", row.CourseID))
				continue
			}
			for j, slot := range slots {
				schedule.Courses = append(schedule.Courses, models.ScheduleCourse{
					ID:        fmt.Sprintf("assistant-%s-%d", row.CourseID, j),
					Name:      row.CourseName,
					Code:      row.CourseCode,
					Day:       slot.Day,
					StartTime: slot.StartTime,
					EndTime:   slot.EndTime,
					Location:  row.Classroom,
					Credit:    row.Credit,
				})
			}
		}
		schedule.TotalCredits = timetable.TotalDistinctCredits(schedule.Courses)
		if len(schedule.Courses) == 0 {
			continue
		}
		schedules = append(schedules, schedule)
	}
	return schedules, nil
}
