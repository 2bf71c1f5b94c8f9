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

func TestMarkRepositoryMarksBy(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	date := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "student_id", "faculty_id", "subject", "assessment_type", "marks", "max_marks", "date"}).
		AddRow("m1", "s1", "f1", "Physics", "Midterm", 18.0, 20.0, date)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, student_id, faculty_id, subject, assessment_type, marks, max_marks, date FROM marks WHERE student_id = $1 AND subject = $2 AND assessment_type = $3 ORDER BY date ASC, id ASC")).
		WithArgs("s1", "Physics", "Midterm").
		WillReturnRows(rows)

	marks, err := repo.MarksBy(context.Background(), models.MarkFilter{StudentID: "s1", Subject: "Physics", AssessmentType: "Midterm"})
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, 18.0, marks[0].Marks)
	assert.True(t, marks[0].Usable())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryNoFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM marks ORDER BY date ASC, id ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	marks, err := repo.MarksBy(context.Background(), models.MarkFilter{})
	require.NoError(t, err)
	assert.Empty(t, marks)
	assert.NoError(t, mock.ExpectationsWereMet())
}
