package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// EnrollmentRepository reads a user's course history.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository creates a new enrollment repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListEnrolledCourseIDs returns the course ids the user has already taken
// or registered; generation pools exclude them.
func (r *EnrollmentRepository) ListEnrolledCourseIDs(ctx context.Context, userID string) ([]string, error) {
	const query = `SELECT course_id FROM enrollments WHERE user_id = $1`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("list enrolled course ids: %w", err)
	}
	return ids, nil
}
