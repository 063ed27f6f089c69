package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/uniplan/uniplan-api/internal/models"
)

// ScheduleRepository persists saved timetables.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Save inserts the timetable and fills in the generated id and timestamp.
func (r *ScheduleRepository) Save(ctx context.Context, schedule *models.SavedSchedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	const query = `INSERT INTO saved_schedules (id, user_id, name, schedule_json, tags) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	if err := r.db.QueryRowxContext(ctx, query,
		schedule.ID,
		schedule.UserID,
		schedule.Name,
		schedule.ScheduleJSON,
		pq.Array(schedule.Tags),
	).Scan(&schedule.CreatedAt); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

// ListByUser returns the user's saved timetables, newest first.
func (r *ScheduleRepository) ListByUser(ctx context.Context, userID string) ([]models.SavedSchedule, error) {
	const query = `SELECT id, user_id, name, schedule_json, tags, created_at FROM saved_schedules WHERE user_id = $1 ORDER BY created_at DESC`
	var schedules []models.SavedSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, userID); err != nil {
		return nil, fmt.Errorf("list saved schedules: %w", err)
	}
	return schedules, nil
}

// Delete removes one saved timetable owned by the user.
func (r *ScheduleRepository) Delete(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM saved_schedules WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete saved schedule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved schedule: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
