package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

const (
	quizColumns        = "id, title, subject, created_by, total_marks, created_at"
	quizAttemptColumns = "id, quiz_id, student_id, score, total_marks, submitted_at"
)

// QuizRepository reads quizzes and graded attempts.
type QuizRepository struct {
	db *sqlx.DB
}

// NewQuizRepository constructs a QuizRepository.
func NewQuizRepository(db *sqlx.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

// QuizzesBy returns quizzes created inside the filter range.
func (r *QuizRepository) QuizzesBy(ctx context.Context, filter models.QuizFilter) ([]models.Quiz, error) {
	var where whereBuilder
	where.eq("created_by", filter.CreatedBy)
	where.eq("subject", filter.Subject)
	where.dayRange("created_at", filter.DateFrom, filter.DateTo)

	query := "SELECT " + quizColumns + " FROM quizzes" + where.String() + " ORDER BY created_at ASC, id ASC"
	var quizzes []models.Quiz
	if err := r.db.SelectContext(ctx, &quizzes, query, where.args...); err != nil {
		return nil, fmt.Errorf("query quizzes: %w", err)
	}
	return quizzes, nil
}

// QuizAttemptsBy returns attempts matching the filter. A non-nil but empty QuizIDs matches nothing.
func (r *QuizRepository) QuizAttemptsBy(ctx context.Context, filter models.QuizAttemptFilter) ([]models.QuizAttemptRecord, error) {
	if filter.QuizIDs != nil && len(filter.QuizIDs) == 0 {
		return []models.QuizAttemptRecord{}, nil
	}
	var where whereBuilder
	where.eq("student_id", filter.StudentID)
	if len(filter.QuizIDs) > 0 {
		where.add("quiz_id = ANY($%d)", pq.Array(filter.QuizIDs))
	}
	where.dayRange("submitted_at", filter.DateFrom, filter.DateTo)

	query := "SELECT " + quizAttemptColumns + " FROM quiz_attempts" + where.String() + " ORDER BY submitted_at ASC, id ASC"
	var attempts []models.QuizAttemptRecord
	if err := r.db.SelectContext(ctx, &attempts, query, where.args...); err != nil {
		return nil, fmt.Errorf("query quiz attempts: %w", err)
	}
	return attempts, nil
}
