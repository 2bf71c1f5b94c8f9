package dto

import (
	"time"

	"github.com/noah-isme/sma-reporting-api/internal/analytics"
	"github.com/noah-isme/sma-reporting-api/internal/models"
)

// Export formats accepted by the export endpoints.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// StudentReportRequest selects a student dossier. FacultyID only narrows admin/HOD callers.
type StudentReportRequest struct {
	StudentID string `validate:"required"`
	FacultyID string
	From      *time.Time
	To        *time.Time
}

// FacultyReportRequest selects a faculty scorecard.
type FacultyReportRequest struct {
	FacultyID string `validate:"required"`
	From      *time.Time
	To        *time.Time
}

// MonthlyAttendanceRequest selects one calendar month of attendance sheets.
type MonthlyAttendanceRequest struct {
	Year      int `validate:"required,min=2000,max=2100"`
	Month     int `validate:"required,min=1,max=12"`
	FacultyID string
	Subject   string
}

// AssessmentReportRequest filters the assessment marks report.
type AssessmentReportRequest struct {
	FacultyID      string
	Subject        string
	AssessmentType string
	From           *time.Time
	To             *time.Time
}

// TaskReportRequest filters the task/submission report.
type TaskReportRequest struct {
	FacultyID string
	From      *time.Time
	To        *time.Time
}

// ExportRequest chooses the rendering of an exported report.
type ExportRequest struct {
	Format string `validate:"required,report_format"`
}

// ReportPeriod is the inclusive date range a report covers.
type ReportPeriod struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// StudentRef carries the display fields of a student next to a row that already holds the id.
type StudentRef struct {
	StudentName string  `json:"studentName"`
	RollNumber  *string `json:"rollNumber,omitempty"`
}

// StudentDetailedReport is the per-student dossier.
type StudentDetailedReport struct {
	Student             models.StudentIdentity           `json:"student"`
	Period              ReportPeriod                     `json:"period"`
	Attendance          analytics.AttendanceSummary      `json:"attendance"`
	AttendanceBySubject []analytics.SubjectAttendance    `json:"attendanceBySubject"`
	Subjects            []analytics.SubjectPerformance   `json:"subjects"`
	OverallPercentage   float64                          `json:"overallPercentage"`
	OverallGrade        string                           `json:"overallGrade,omitempty"`
	Tasks               analytics.StudentTaskSummary     `json:"tasks"`
	Quizzes             analytics.StudentQuizSummary     `json:"quizzes"`
	Feedback            analytics.StudentFeedbackSummary `json:"feedback"`
	GeneratedAt         time.Time                        `json:"generatedAt"`
}

// FacultyAttendance summarises the attendance a faculty member recorded.
type FacultyAttendance struct {
	analytics.AttendanceSummary
	ClassesConducted int                           `json:"classesConducted"`
	BySubject        []analytics.SubjectAttendance `json:"bySubject"`
}

// FacultyTaskOverview carries totals over every assignment in range but lists only the most recent ones.
type FacultyTaskOverview struct {
	TotalAssignments      int                           `json:"totalAssignments"`
	TotalStudentsAssigned int                           `json:"totalStudentsAssigned"`
	TotalSubmitted        int                           `json:"totalSubmitted"`
	TotalCompleted        int                           `json:"totalCompleted"`
	TotalPending          int                           `json:"totalPending"`
	TotalLate             int                           `json:"totalLate"`
	TotalFilesAttached    int                           `json:"totalFilesAttached"`
	AverageCompletionRate float64                       `json:"averageCompletionRate"`
	AverageSubmissionRate float64                       `json:"averageSubmissionRate"`
	OverallSubmissionRate float64                       `json:"overallSubmissionRate"`
	OverallCompletionRate float64                       `json:"overallCompletionRate"`
	AverageDaysToSubmit   float64                       `json:"averageDaysToSubmit"`
	RecentTasks           []analytics.AssignmentSummary `json:"recentTasks"`
}

// FacultyPerformanceReport is the per-faculty scorecard.
type FacultyPerformanceReport struct {
	Faculty     models.FacultyIdentity           `json:"faculty"`
	Period      ReportPeriod                     `json:"period"`
	Attendance  FacultyAttendance                `json:"attendance"`
	Assessments []analytics.AssessmentSummary    `json:"assessments"`
	Tasks       FacultyTaskOverview              `json:"tasks"`
	Quizzes     analytics.FacultyQuizSummary     `json:"quizzes"`
	Feedback    analytics.FacultyFeedbackSummary `json:"feedback"`
	GeneratedAt time.Time                        `json:"generatedAt"`
}

// MonthlyStudentRow is one student line on a monthly sheet.
type MonthlyStudentRow struct {
	StudentRef
	analytics.MonthlyStudentAttendance
}

// MonthlyAttendanceSheet is one (faculty, subject) sheet of the monthly report.
type MonthlyAttendanceSheet struct {
	FacultyID      string              `json:"facultyId"`
	FacultyName    string              `json:"facultyName"`
	Subject        string              `json:"subject"`
	TotalClassDays int                 `json:"totalClassDays"`
	Students       []MonthlyStudentRow `json:"students"`
}

// MonthlyAttendanceReport is the monthly attendance register.
type MonthlyAttendanceReport struct {
	Year        int                      `json:"year"`
	Month       int                      `json:"month"`
	DaysInMonth int                      `json:"daysInMonth"`
	Period      ReportPeriod             `json:"period"`
	Sheets      []MonthlyAttendanceSheet `json:"sheets"`
	GeneratedAt time.Time                `json:"generatedAt"`
}

// AssessmentStudentRow is one student's result on an assessment sheet.
type AssessmentStudentRow struct {
	StudentRef
	analytics.StudentMark
}

// AssessmentSheet is one assessment with student names resolved.
type AssessmentSheet struct {
	analytics.AssessmentSummary
	FacultyName string                 `json:"facultyName"`
	Students    []AssessmentStudentRow `json:"students"`
}

// AssessmentMarksReport lists assessments in range.
type AssessmentMarksReport struct {
	Period      ReportPeriod      `json:"period"`
	Assessments []AssessmentSheet `json:"assessments"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// SubmissionRow is one student's standing on an assignment sheet.
type SubmissionRow struct {
	StudentRef
	analytics.StudentSubmission
}

// AssignmentSheet is one logical assignment with student names resolved.
type AssignmentSheet struct {
	analytics.AssignmentSummary
	FacultyName string          `json:"facultyName"`
	Students    []SubmissionRow `json:"students"`
}

// TaskTotals are the roll-up numbers of a task/submission report.
type TaskTotals struct {
	TotalAssignments      int     `json:"totalAssignments"`
	TotalStudentsAssigned int     `json:"totalStudentsAssigned"`
	TotalSubmitted        int     `json:"totalSubmitted"`
	TotalCompleted        int     `json:"totalCompleted"`
	TotalPending          int     `json:"totalPending"`
	TotalLate             int     `json:"totalLate"`
	AverageCompletionRate float64 `json:"averageCompletionRate"`
	AverageSubmissionRate float64 `json:"averageSubmissionRate"`
	OverallSubmissionRate float64 `json:"overallSubmissionRate"`
	OverallCompletionRate float64 `json:"overallCompletionRate"`
	AverageDaysToSubmit   float64 `json:"averageDaysToSubmit"`
}

// TaskSubmissionReport lists logical assignments in range with per-student submission state.
type TaskSubmissionReport struct {
	Period      ReportPeriod      `json:"period"`
	Totals      TaskTotals        `json:"totals"`
	Assignments []AssignmentSheet `json:"assignments"`
	GeneratedAt time.Time         `json:"generatedAt"`
}
