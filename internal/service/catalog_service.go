package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/internal/timetable"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

type courseReader interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.CourseRow, error)
	FindByID(ctx context.Context, id string) (*models.CourseRow, error)
}

// CatalogService reads the course catalog and prepares candidate courses:
// every raw row is normalised and its schedule string parsed exactly once,
// at this boundary.
type CatalogService struct {
	courses  courseReader
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewCatalogService wires catalog dependencies.
func NewCatalogService(courses courseReader, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &CatalogService{courses: courses, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// ListCourses returns raw catalog rows matching the filter, served from
// cache when possible.
func (s *CatalogService) ListCourses(ctx context.Context, filter models.CourseFilter) ([]models.CourseRow, error) {
	key := catalogCacheKey(filter)

	var cached []models.CourseRow
	if s.cache != nil {
		if hit, _ := s.cache.Get(ctx, key, &cached); hit {
			return cached, nil
		}
	}

	rows, err := s.courses.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course catalog")
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, rows, s.cacheTTL)
	}
	return rows, nil
}

// GetCourse loads one catalog row with its parsed slots attached.
func (s *CatalogService) GetCourse(ctx context.Context, id string) (*models.CandidateCourse, error) {
	row, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return &models.CandidateCourse{
		ID:          row.CourseID,
		Name:        row.CourseName,
		Code:        row.CourseCode,
		Credit:      row.Credit,
		Category:    row.Category,
		RawSchedule: row.ScheduleTime,
		Slots:       timetable.ParseScheduleTimes(row.ScheduleTime),
		Location:    row.Classroom,
	}, nil
}

// ListCandidates converts catalog rows into candidate courses for the
// generator. Rows whose schedule string yields no parseable slot are
// dropped (and counted) rather than defaulted to a placeholder session.
func (s *CatalogService) ListCandidates(ctx context.Context, filter models.CourseFilter) ([]models.CandidateCourse, int, error) {
	rows, err := s.ListCourses(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	candidates := make([]models.CandidateCourse, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		slots := timetable.ParseScheduleTimes(row.ScheduleTime)
		if len(slots) == 0 {
			skipped++
			continue
		}
		candidates = append(candidates, models.CandidateCourse{
			ID:          row.CourseID,
			Name:        row.CourseName,
			Code:        row.CourseCode,
			Credit:      row.Credit,
			Category:    row.Category,
			RawSchedule: row.ScheduleTime,
			Slots:       slots,
			Location:    row.Classroom,
		})
	}
	if skipped > 0 {
		s.logger.Debug("catalog rows without parseable schedule skipped",
			zap.Int("skipped", skipped),
			zap.Int("usable", len(candidates)),
		)
	}
	return candidates, skipped, nil
}

func catalogCacheKey(filter models.CourseFilter) string {
	departments := append([]string(nil), filter.DepartmentIDs...)
	categories := append([]string(nil), filter.Categories...)
	sort.Strings(departments)
	sort.Strings(categories)
	return fmt.Sprintf("catalog:courses:%s:%s",
		strings.Join(departments, ","),
		strings.Join(categories, ","),
	)
}
