package models

import "time"

// MarkRecord is a single assessment score. AssessmentType is free text ("Unit Test 1", "Midterm").
type MarkRecord struct {
	ID             string    `db:"id" json:"id"`
	StudentID      string    `db:"student_id" json:"studentId"`
	FacultyID      string    `db:"faculty_id" json:"facultyId"`
	Subject        *string   `db:"subject" json:"subject,omitempty"`
	AssessmentType *string   `db:"assessment_type" json:"assessmentType,omitempty"`
	Marks          float64   `db:"marks" json:"marks"`
	MaxMarks       float64   `db:"max_marks" json:"maxMarks"`
	Date           time.Time `db:"date" json:"date"`
}

// Usable reports whether the record can take part in percentage calculations.
func (m MarkRecord) Usable() bool {
	return m.MaxMarks > 0
}

// MarkFilter scopes marks provider queries.
type MarkFilter struct {
	StudentID      string
	FacultyID      string
	Subject        string
	AssessmentType string
	DateFrom       *time.Time
	DateTo         *time.Time
}
