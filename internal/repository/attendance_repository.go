package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

const attendanceColumns = "id, date, student_id, faculty_id, subject, status"

// AttendanceRepository reads class attendance rows.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// AttendanceBy returns attendance records matching the filter ordered by date.
func (r *AttendanceRepository) AttendanceBy(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	var where whereBuilder
	where.eq("student_id", filter.StudentID)
	where.eq("faculty_id", filter.FacultyID)
	where.eq("subject", filter.Subject)
	where.dateRange("date", filter.DateFrom, filter.DateTo)

	query := "SELECT " + attendanceColumns + " FROM attendance" + where.String() + " ORDER BY date ASC, id ASC"
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, where.args...); err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	return records, nil
}
