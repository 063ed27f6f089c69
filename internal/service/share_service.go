package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uniplan/uniplan-api/internal/dto"
	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/internal/timetable"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

// ShareService packs timetables into URL-safe tokens and unpacks them into
// a read-only view. Decoding never writes to storage.
type ShareService struct {
	limits    timetable.Limits
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewShareService constructs a share service.
func NewShareService(limits timetable.Limits, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ShareService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if limits.MaxCredits <= 0 {
		limits = timetable.DefaultLimits()
	}
	return &ShareService{limits: limits, metrics: metrics, validator: validate, logger: logger}
}

// Encode packs the timetable into a share token.
func (s *ShareService) Encode(req dto.EncodeShareRequest) (*dto.EncodeShareResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid share payload")
	}
	token, err := timetable.EncodeShareToken(req.Courses)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode share token")
	}
	return &dto.EncodeShareResponse{Token: token}, nil
}

// Decode unpacks a share token and builds the viewer payload: the raw
// rows, their consolidated form, any conflicts, and the credit total.
func (s *ShareService) Decode(token string) (*dto.ShareViewResponse, error) {
	courses, err := timetable.DecodeShareToken(token)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordShareDecode(false)
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordShareDecode(true)
	}

	conflicts := timetable.FindAllConflicts(courses)
	if conflicts == nil {
		conflicts = []models.TimeConflict{}
	}
	consolidated := timetable.Consolidate(courses)
	if consolidated == nil {
		consolidated = []models.ConsolidatedCourse{}
	}
	return &dto.ShareViewResponse{
		Courses:      courses,
		Consolidated: consolidated,
		Conflicts:    conflicts,
		TotalCredits: timetable.TotalDistinctCredits(courses),
	}, nil
}
