package models

import "time"

// FeedbackRecord is a remark a faculty member left for a student on a task.
type FeedbackRecord struct {
	ID        string    `db:"id" json:"id"`
	TaskID    string    `db:"task_id" json:"taskId"`
	FacultyID string    `db:"faculty_id" json:"facultyId"`
	StudentID string    `db:"student_id" json:"studentId"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// FeedbackFilter scopes feedback provider queries.
type FeedbackFilter struct {
	FacultyID string
	StudentID string
	DateFrom  *time.Time
	DateTo    *time.Time
}
