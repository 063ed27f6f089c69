package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniplan/uniplan-api/internal/models"
)

func TestScheduleRepositorySaveAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO saved_schedules").
		WithArgs(sqlmock.AnyArg(), "user-1", "1학기 시간표", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	schedule := models.SavedSchedule{
		UserID:       "user-1",
		Name:         "1학기 시간표",
		ScheduleJSON: []byte(`{}`),
		Tags:         []string{"max-credit"},
	}
	require.NoError(t, repo.Save(context.Background(), &schedule))
	assert.NotEmpty(t, schedule.ID)
	assert.Equal(t, created, schedule.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryListByUser(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, name, schedule_json, tags, created_at FROM saved_schedules WHERE user_id = $1 ORDER BY created_at DESC")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "schedule_json", "tags", "created_at"}).
			AddRow("s1", "user-1", "1학기 시간표", []byte(`{}`), "{max-credit}", now))

	schedules, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, "1학기 시간표", schedules[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM saved_schedules WHERE id = $1 AND user_id = $2")).
		WithArgs("s1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "s1", "user-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryDeleteMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM saved_schedules WHERE id = $1 AND user_id = $2")).
		WithArgs("missing", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
