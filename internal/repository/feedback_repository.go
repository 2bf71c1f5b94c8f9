package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

// FeedbackRepository reads faculty feedback left on tasks.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository constructs a FeedbackRepository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// FeedbackBy returns feedback matching the filter, oldest first.
func (r *FeedbackRepository) FeedbackBy(ctx context.Context, filter models.FeedbackFilter) ([]models.FeedbackRecord, error) {
	var where whereBuilder
	where.eq("faculty_id", filter.FacultyID)
	where.eq("student_id", filter.StudentID)
	where.dayRange("created_at", filter.DateFrom, filter.DateTo)

	query := "SELECT id, task_id, faculty_id, student_id, content, created_at FROM feedback" + where.String() + " ORDER BY created_at ASC, id ASC"
	var records []models.FeedbackRecord
	if err := r.db.SelectContext(ctx, &records, query, where.args...); err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	return records, nil
}
