package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uniplan/uniplan-api/internal/dto"
	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/internal/timetable"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

// PlannerService runs stateless checks over a working timetable: conflict
// scans, consolidation for display, and admission of new rows. The caller
// owns the timetable; nothing here touches storage.
type PlannerService struct {
	limits    timetable.Limits
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPlannerService constructs a planner service with the given limits.
func NewPlannerService(limits timetable.Limits, validate *validator.Validate, logger *zap.Logger) *PlannerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if limits.MaxCredits <= 0 {
		limits = timetable.DefaultLimits()
	}
	return &PlannerService{limits: limits, validator: validate, logger: logger}
}

// Limits exposes the configured planning limits.
func (s *PlannerService) Limits() timetable.Limits {
	return s.limits
}

// FindConflicts reports every pairwise overlap in the submitted timetable.
func (s *PlannerService) FindConflicts(req dto.CourseListRequest) (*dto.ConflictResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}
	conflicts := timetable.FindAllConflicts(req.Courses)
	if conflicts == nil {
		conflicts = []models.TimeConflict{}
	}
	return &dto.ConflictResponse{Conflicts: conflicts}, nil
}

// Consolidate groups the timetable by course code and reports the
// distinct-code credit total with bound warnings.
func (s *PlannerService) Consolidate(req dto.CourseListRequest) (*dto.ConsolidateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}
	consolidated := timetable.Consolidate(req.Courses)
	if consolidated == nil {
		consolidated = []models.ConsolidatedCourse{}
	}
	total := timetable.TotalDistinctCredits(req.Courses)
	bounds := timetable.CheckCreditBounds(total, s.limits)
	return &dto.ConsolidateResponse{
		Courses:      consolidated,
		TotalCredits: total,
		BelowMinimum: bounds.BelowMinimum,
		AboveMaximum: bounds.AboveMaximum,
	}, nil
}

// ValidateAddition decides whether the new rows may join the timetable.
// A nil return means every row is admissible; a typed error names the
// first violated rule and the existing timetable is left untouched.
func (s *PlannerService) ValidateAddition(req dto.ValidateAddRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid addition payload")
	}
	return timetable.ValidateAddition(req.Existing, req.Adds, s.limits)
}
