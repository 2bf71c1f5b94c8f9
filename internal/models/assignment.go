package models

import "time"

// TaskStatus is the lifecycle state stored on an assignment row.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

// SubmissionStatus is the review state of a submission.
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "PENDING"
	SubmissionCompleted SubmissionStatus = "COMPLETED"
)

// AssignmentRow is the per-student physical row of a task. One logical assignment sent to N students
// is stored as N rows sharing title, subject, assigned-by and due date.
type AssignmentRow struct {
	ID         string     `db:"id" json:"id"`
	Title      string     `db:"title" json:"title"`
	Subject    *string    `db:"subject" json:"subject,omitempty"`
	AssignedBy string     `db:"assigned_by" json:"assignedBy"`
	AssignedTo string     `db:"assigned_to" json:"assignedTo"`
	DueDate    *time.Time `db:"due_date" json:"dueDate,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	Status     TaskStatus `db:"status" json:"status"`
}

// SubmissionRecord belongs to exactly one assignment row and one student.
type SubmissionRecord struct {
	ID               string           `db:"id" json:"id"`
	AssignmentID     string           `db:"assignment_id" json:"assignmentId"`
	StudentID        string           `db:"student_id" json:"studentId"`
	SubmittedAt      *time.Time       `db:"submitted_at" json:"submittedAt,omitempty"`
	Status           SubmissionStatus `db:"status" json:"status"`
	FacultyRemark    *string          `db:"faculty_remark" json:"facultyRemark,omitempty"`
	MarkedCompleteAt *time.Time       `db:"marked_complete_at" json:"markedCompleteAt,omitempty"`
	FileURL          *string          `db:"file_url" json:"fileUrl,omitempty"`
}

// Submitted reports whether the student actually handed the work in.
func (s SubmissionRecord) Submitted() bool {
	return s.SubmittedAt != nil
}

// HasFile reports whether a file is attached to the submission.
func (s SubmissionRecord) HasFile() bool {
	return s.FileURL != nil && *s.FileURL != ""
}

// AssignmentFilter scopes assignment provider queries. Dates bound created_at.
type AssignmentFilter struct {
	AssignedBy string
	AssignedTo string
	Title      string
	DateFrom   *time.Time
	DateTo     *time.Time
}
