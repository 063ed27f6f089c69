package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uniplan/uniplan-api/internal/dto"
	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/internal/timetable"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

type candidateCatalog interface {
	ListCandidates(ctx context.Context, filter models.CourseFilter) ([]models.CandidateCourse, int, error)
}

type enrollmentReader interface {
	ListEnrolledCourseIDs(ctx context.Context, userID string) ([]string, error)
}

type scheduleStore interface {
	Save(ctx context.Context, schedule *models.SavedSchedule) error
	ListByUser(ctx context.Context, userID string) ([]models.SavedSchedule, error)
	Delete(ctx context.Context, id, userID string) error
}

// PlanAssistant produces externally generated timetable candidates. Output
// is untrusted and always re-validated locally.
type PlanAssistant interface {
	GeneratePlans(ctx context.Context, pool []models.CandidateCourse, opts timetable.GenerateOptions) ([]models.GeneratedSchedule, error)
}

const (
	generationSourceAlgorithmic = "algorithmic"
	generationSourceAssistant   = "assistant"
)

// GeneratorService produces candidate timetables and manages their
// lifecycle: propose, save, list, delete. Assistant output never reaches a
// proposal without passing the same validation as local plans.
type GeneratorService struct {
	catalog     candidateCatalog
	enrollments enrollmentReader
	schedules   scheduleStore
	assistant   PlanAssistant
	proposals   *proposalStore
	opts        timetable.GenerateOptions
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewGeneratorService wires the generator. assistant may be nil when the
// external generator is disabled.
func NewGeneratorService(
	catalog candidateCatalog,
	enrollments enrollmentReader,
	schedules scheduleStore,
	assistant PlanAssistant,
	opts timetable.GenerateOptions,
	proposalTTL time.Duration,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *GeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeneratorService{
		catalog:     catalog,
		enrollments: enrollments,
		schedules:   schedules,
		assistant:   assistant,
		proposals:   newProposalStore(proposalTTL),
		opts:        opts,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
	}
}

// Generate builds up to three conflict-free timetable candidates for the
// user and stores them as a proposal. When the assistant is requested and
// available it is tried first; its plans are re-validated and the local
// deterministic generator covers any failure.
func (s *GeneratorService) Generate(ctx context.Context, userID string, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	start := time.Now()

	pool, skipped, err := s.catalog.ListCandidates(ctx, models.CourseFilter{
		DepartmentIDs: req.DepartmentIDs,
		Categories:    req.Categories,
	})
	if err != nil {
		return nil, err
	}

	exclude := make(map[string]struct{}, len(req.ExcludeIDs))
	for _, id := range req.ExcludeIDs {
		exclude[id] = struct{}{}
	}
	if s.enrollments != nil && userID != "" {
		enrolled, err := s.enrollments.ListEnrolledCourseIDs(ctx, userID)
		if err != nil {
			s.logger.Warn("course history unavailable, generating without it",
				zap.String("user_id", userID), zap.Error(err))
		}
		for _, id := range enrolled {
			exclude[id] = struct{}{}
		}
	}

	opts := s.opts
	opts.ExcludeIDs = exclude

	source := generationSourceAlgorithmic
	var schedules []models.GeneratedSchedule
	if req.UseAssistant && s.assistant != nil {
		schedules = s.tryAssistant(ctx, pool, opts)
		if len(schedules) > 0 {
			source = generationSourceAssistant
		}
	}
	if len(schedules) == 0 {
		schedules = timetable.GeneratePlans(pool, opts)
		source = generationSourceAlgorithmic
	}

	if len(schedules) == 0 {
		if s.metrics != nil {
			s.metrics.RecordGeneration(source, time.Since(start))
		}
		if req.UseAssistant {
			return nil, appErrors.Clone(appErrors.ErrExternalGeneration, "no valid timetable could be generated")
		}
		return &dto.GenerateTimetableResponse{
			Source:            source,
			Schedules:         []models.GeneratedSchedule{},
			CoursesConsidered: len(pool),
			Message:           "no combination satisfied the constraints; widen the course filter",
		}, nil
	}

	proposalID := s.proposals.Put(userID, schedules)
	if s.metrics != nil {
		s.metrics.RecordGeneration(source, time.Since(start))
	}
	s.logger.Info("timetables generated",
		zap.String("user_id", userID),
		zap.String("source", source),
		zap.Int("candidates", len(schedules)),
		zap.Int("pool", len(pool)),
		zap.Int("skipped", skipped),
	)

	return &dto.GenerateTimetableResponse{
		ProposalID:        proposalID,
		Source:            source,
		Schedules:         schedules,
		CoursesConsidered: len(pool),
	}, nil
}

// tryAssistant calls the external generator and keeps only plans that pass
// local validation. Any failure degrades to the deterministic path.
func (s *GeneratorService) tryAssistant(ctx context.Context, pool []models.CandidateCourse, opts timetable.GenerateOptions) []models.GeneratedSchedule {
	plans, err := s.assistant.GeneratePlans(ctx, pool, opts)
	if err != nil {
		s.logger.Warn("assistant generation failed, falling back", zap.Error(err))
		return nil
	}
	valid := make([]models.GeneratedSchedule, 0, len(plans))
	for _, plan := range plans {
		if err := timetable.ValidatePlan(plan, opts.MaxCredits); err != nil {
			s.logger.Warn("assistant plan rejected", zap.String("plan", plan.Name), zap.Error(err))
			continue
		}
		valid = append(valid, plan)
	}
	return valid
}

// Save persists one candidate from a prior generation run.
func (s *GeneratorService) Save(ctx context.Context, userID string, req dto.SaveTimetableRequest) (*dto.SavedScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save payload")
	}

	schedules, ok := s.proposals.Get(req.ProposalID, userID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal expired or not found")
	}
	if req.Index < 0 || req.Index >= len(schedules) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "schedule index out of range")
	}

	chosen := schedules[req.Index]
	name := req.Name
	if name == "" {
		name = chosen.Name
	}
	payload, err := json.Marshal(chosen)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode schedule")
	}

	record := models.SavedSchedule{
		UserID:       userID,
		Name:         name,
		ScheduleJSON: payload,
		Tags:         append([]string(nil), req.Tags...),
	}
	if len(record.Tags) == 0 {
		record.Tags = append([]string(nil), chosen.Tags...)
	}
	if err := s.schedules.Save(ctx, &record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save schedule")
	}

	s.logger.Info("schedule saved", zap.String("user_id", userID), zap.String("schedule_id", record.ID))
	return &dto.SavedScheduleResponse{
		ID:        record.ID,
		CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// ListSaved returns the user's saved timetables, newest first.
func (s *GeneratorService) ListSaved(ctx context.Context, userID string) ([]models.SavedSchedule, error) {
	schedules, err := s.schedules.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	if schedules == nil {
		schedules = []models.SavedSchedule{}
	}
	return schedules, nil
}

// DeleteSaved removes one saved timetable owned by the user.
func (s *GeneratorService) DeleteSaved(ctx context.Context, userID, scheduleID string) error {
	if err := s.schedules.Delete(ctx, scheduleID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule")
	}
	return nil
}
