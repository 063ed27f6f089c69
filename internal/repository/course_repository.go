package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/uniplan/uniplan-api/internal/models"
)

// CourseRepository reads the course catalog.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns catalog rows matching the filter. The raw schedule_time
// string is returned untouched; parsing happens in the catalog service.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseRow, error) {
	base := "SELECT course_id, course_name, course_code, credit, schedule_time, classroom, category, department_id FROM courses WHERE 1=1"
	var conditions []string
	var args []interface{}

	if len(filter.DepartmentIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("department_id = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(filter.DepartmentIDs))
	}
	if len(filter.Categories) > 0 {
		conditions = append(conditions, fmt.Sprintf("category = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(filter.Categories))
	}

	query := base
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY course_code ASC"

	var rows []models.CourseRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return rows, nil
}

// FindByID loads a single catalog row.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.CourseRow, error) {
	const query = `SELECT course_id, course_name, course_code, credit, schedule_time, classroom, category, department_id FROM courses WHERE course_id = $1`
	var row models.CourseRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return &row, nil
}
