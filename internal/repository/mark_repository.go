package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

const markColumns = "id, student_id, faculty_id, subject, assessment_type, marks, max_marks, date"

// MarkRepository reads assessment marks.
type MarkRepository struct {
	db *sqlx.DB
}

// NewMarkRepository constructs a MarkRepository.
func NewMarkRepository(db *sqlx.DB) *MarkRepository {
	return &MarkRepository{db: db}
}

// MarksBy returns marks matching the filter ordered by date.
func (r *MarkRepository) MarksBy(ctx context.Context, filter models.MarkFilter) ([]models.MarkRecord, error) {
	var where whereBuilder
	where.eq("student_id", filter.StudentID)
	where.eq("faculty_id", filter.FacultyID)
	where.eq("subject", filter.Subject)
	where.eq("assessment_type", filter.AssessmentType)
	where.dateRange("date", filter.DateFrom, filter.DateTo)

	query := "SELECT " + markColumns + " FROM marks" + where.String() + " ORDER BY date ASC, id ASC"
	var marks []models.MarkRecord
	if err := r.db.SelectContext(ctx, &marks, query, where.args...); err != nil {
		return nil, fmt.Errorf("query marks: %w", err)
	}
	return marks, nil
}
