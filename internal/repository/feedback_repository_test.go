package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

func TestFeedbackRepositoryFeedbackBy(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeedbackRepository(db)

	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM feedback WHERE student_id = $1 AND created_at < $2 ORDER BY created_at ASC, id ASC")).
		WithArgs("s1", to.AddDate(0, 0, 1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "task_id", "faculty_id", "student_id", "content", "created_at"}).
			AddRow("fb1", "r1", "f1", "s1", "Check units", to))

	records, err := repo.FeedbackBy(context.Background(), models.FeedbackFilter{StudentID: "s1", DateTo: &to})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Check units", records[0].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}
