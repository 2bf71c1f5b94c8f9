package models

import "time"

// Quiz is a quiz published by a faculty member.
type Quiz struct {
	ID         string    `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Subject    *string   `db:"subject" json:"subject,omitempty"`
	CreatedBy  string    `db:"created_by" json:"createdBy"`
	TotalMarks float64   `db:"total_marks" json:"totalMarks"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// QuizAttemptRecord is one student's graded attempt at a quiz.
type QuizAttemptRecord struct {
	ID          string    `db:"id" json:"id"`
	QuizID      string    `db:"quiz_id" json:"quizId"`
	StudentID   string    `db:"student_id" json:"studentId"`
	Score       float64   `db:"score" json:"score"`
	TotalMarks  float64   `db:"total_marks" json:"totalMarks"`
	SubmittedAt time.Time `db:"submitted_at" json:"submittedAt"`
}

// QuizFilter scopes quiz provider queries. Dates bound created_at.
type QuizFilter struct {
	CreatedBy string
	Subject   string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// QuizAttemptFilter scopes attempt provider queries. Dates bound submitted_at.
type QuizAttemptFilter struct {
	StudentID string
	QuizIDs   []string
	DateFrom  *time.Time
	DateTo    *time.Time
}
