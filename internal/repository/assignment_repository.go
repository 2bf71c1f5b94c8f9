package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

const (
	assignmentColumns = "id, title, subject, assigned_by, assigned_to, due_date, created_at, status"
	submissionColumns = "id, assignment_id, student_id, submitted_at, status, faculty_remark, marked_complete_at, file_url"
)

// AssignmentRepository reads per-student assignment rows and their submissions.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs an AssignmentRepository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// AssignmentsBy returns assignment rows whose creation date falls inside the filter range.
func (r *AssignmentRepository) AssignmentsBy(ctx context.Context, filter models.AssignmentFilter) ([]models.AssignmentRow, error) {
	var where whereBuilder
	where.eq("assigned_by", filter.AssignedBy)
	where.eq("assigned_to", filter.AssignedTo)
	where.eq("title", filter.Title)
	where.dayRange("created_at", filter.DateFrom, filter.DateTo)

	query := "SELECT " + assignmentColumns + " FROM assignments" + where.String() + " ORDER BY created_at DESC, id ASC"
	var rows []models.AssignmentRow
	if err := r.db.SelectContext(ctx, &rows, query, where.args...); err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	return rows, nil
}

// FindAssignmentRow fetches a single assignment row by id. Returns sql.ErrNoRows when absent.
func (r *AssignmentRepository) FindAssignmentRow(ctx context.Context, id string) (*models.AssignmentRow, error) {
	query := "SELECT " + assignmentColumns + " FROM assignments WHERE id = $1"
	var row models.AssignmentRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// SubmissionsForAssignment returns every submission recorded against one assignment row.
func (r *AssignmentRepository) SubmissionsForAssignment(ctx context.Context, assignmentID string) ([]models.SubmissionRecord, error) {
	query := "SELECT " + submissionColumns + " FROM submissions WHERE assignment_id = $1 ORDER BY submitted_at ASC NULLS FIRST, id ASC"
	var subs []models.SubmissionRecord
	if err := r.db.SelectContext(ctx, &subs, query, assignmentID); err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	return subs, nil
}

// SubmissionsForAssignments is the batched form of SubmissionsForAssignment.
func (r *AssignmentRepository) SubmissionsForAssignments(ctx context.Context, assignmentIDs []string) ([]models.SubmissionRecord, error) {
	if len(assignmentIDs) == 0 {
		return []models.SubmissionRecord{}, nil
	}
	query := "SELECT " + submissionColumns + " FROM submissions WHERE assignment_id = ANY($1) ORDER BY submitted_at ASC NULLS FIRST, id ASC"
	var subs []models.SubmissionRecord
	if err := r.db.SelectContext(ctx, &subs, query, pq.Array(assignmentIDs)); err != nil {
		return nil, fmt.Errorf("query submissions batch: %w", err)
	}
	return subs, nil
}
