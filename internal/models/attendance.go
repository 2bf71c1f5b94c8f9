package models

import "time"

// AttendanceStatus is the state recorded for one student in one class session.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// AttendanceStatuses lists every status in display order.
var AttendanceStatuses = []AttendanceStatus{AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused}

// AttendanceRecord is one row per (date, student, faculty).
type AttendanceRecord struct {
	ID        string           `db:"id" json:"id"`
	Date      time.Time        `db:"date" json:"date"`
	StudentID string           `db:"student_id" json:"studentId"`
	FacultyID string           `db:"faculty_id" json:"facultyId"`
	Subject   *string          `db:"subject" json:"subject,omitempty"`
	Status    AttendanceStatus `db:"status" json:"status"`
}

// AttendanceFilter scopes attendance provider queries. Empty strings and nil dates mean "any".
type AttendanceFilter struct {
	StudentID string
	FacultyID string
	Subject   string
	DateFrom  *time.Time
	DateTo    *time.Time
}
