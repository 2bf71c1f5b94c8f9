package analytics

import (
	"sort"
	"time"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

// Timeliness classifies a submission against its due date.
type Timeliness string

const (
	OnTime Timeliness = "ON_TIME"
	Late   Timeliness = "LATE"
)

// AssignmentKey is the identity of a logical assignment. Rows sharing it are one task sent to many students.
type AssignmentKey struct {
	Title      string
	Subject    NullString
	AssignedBy string
	DueDate    NullDay
}

// LogicalAssignment is one real-world task with its per-student rows.
type LogicalAssignment struct {
	Key       AssignmentKey
	Rows      []models.AssignmentRow
	Subject   *string
	DueDate   *time.Time
	CreatedAt time.Time
}

// RowIDs lists the physical row ids of the assignment.
func (a LogicalAssignment) RowIDs() []string {
	ids := make([]string, len(a.Rows))
	for i, r := range a.Rows {
		ids[i] = r.ID
	}
	return ids
}

// AssignmentKeyOf derives the logical-assignment identity of a row.
func AssignmentKeyOf(row models.AssignmentRow, loc *time.Location) AssignmentKey {
	return AssignmentKey{
		Title:      row.Title,
		Subject:    StringKey(row.Subject),
		AssignedBy: row.AssignedBy,
		DueDate:    DayKey(row.DueDate, loc),
	}
}

// ReconstructAssignments folds per-student rows back into logical assignments, in first-seen order.
// CreatedAt is the earliest row creation time of the bucket.
func ReconstructAssignments(rows []models.AssignmentRow, loc *time.Location) []LogicalAssignment {
	groups := GroupBy(rows,
		func(r models.AssignmentRow) AssignmentKey { return AssignmentKeyOf(r, loc) },
		func(k AssignmentKey) *LogicalAssignment { return &LogicalAssignment{Key: k} },
		func(acc *LogicalAssignment, r models.AssignmentRow) *LogicalAssignment {
			if len(acc.Rows) == 0 || r.CreatedAt.Before(acc.CreatedAt) {
				acc.CreatedAt = r.CreatedAt
			}
			if len(acc.Rows) == 0 {
				acc.Subject = r.Subject
				acc.DueDate = r.DueDate
			}
			acc.Rows = append(acc.Rows, r)
			return acc
		},
	)
	out := make([]LogicalAssignment, 0, groups.Len())
	groups.Each(func(_ AssignmentKey, acc *LogicalAssignment) {
		out = append(out, *acc)
	})
	return out
}

// StudentSubmission is a student's standing on one assignment row.
type StudentSubmission struct {
	StudentID        string     `json:"studentId"`
	AssignmentID     string     `json:"assignmentId"`
	Status           string     `json:"status"`
	Submitted        bool       `json:"submitted"`
	SubmittedAt      *time.Time `json:"submittedAt,omitempty"`
	Timeliness       Timeliness `json:"timeliness,omitempty"`
	DaysToSubmit     *int       `json:"daysToSubmit,omitempty"`
	FacultyRemark    *string    `json:"facultyRemark,omitempty"`
	MarkedCompleteAt *time.Time `json:"markedCompleteAt,omitempty"`
	HasFile          bool       `json:"hasFile"`
}

type submissionKey struct {
	AssignmentID string
	StudentID    string
}

// indexSubmissions keeps at most one submission per (row, student). A handed-in submission beats a
// draft and a later one beats an earlier one; exact ties keep the first seen.
func indexSubmissions(submissions []models.SubmissionRecord) map[submissionKey]models.SubmissionRecord {
	index := make(map[submissionKey]models.SubmissionRecord, len(submissions))
	for _, s := range submissions {
		k := submissionKey{AssignmentID: s.AssignmentID, StudentID: s.StudentID}
		current, ok := index[k]
		if !ok || preferSubmission(s, current) {
			index[k] = s
		}
	}
	return index
}

func preferSubmission(candidate, current models.SubmissionRecord) bool {
	switch {
	case candidate.Submitted() && !current.Submitted():
		return true
	case candidate.Submitted() && current.Submitted():
		return candidate.SubmittedAt.After(*current.SubmittedAt)
	default:
		return false
	}
}

type taskOutcome struct {
	view      StudentSubmission
	completed bool
	late      bool
	interval  *Interval
}

// evaluateRow joins a row to its submission. Lateness compares calendar dates only; a missing due date
// never makes a submission late.
func evaluateRow(row models.AssignmentRow, index map[submissionKey]models.SubmissionRecord, loc *time.Location) taskOutcome {
	out := taskOutcome{view: StudentSubmission{
		StudentID:    row.AssignedTo,
		AssignmentID: row.ID,
		Status:       string(models.SubmissionPending),
	}}
	sub, ok := index[submissionKey{AssignmentID: row.ID, StudentID: row.AssignedTo}]
	if !ok {
		return out
	}
	if sub.Status != "" {
		out.view.Status = string(sub.Status)
	}
	out.view.FacultyRemark = sub.FacultyRemark
	out.view.MarkedCompleteAt = sub.MarkedCompleteAt
	out.view.HasFile = sub.HasFile()
	out.completed = sub.Status == models.SubmissionCompleted

	if !sub.Submitted() {
		return out
	}
	submitted := *sub.SubmittedAt
	out.view.Submitted = true
	out.view.SubmittedAt = &submitted
	out.view.Timeliness = OnTime
	if due := DayKey(row.DueDate, loc); due.Valid && DayOf(submitted, loc).After(due.Day) {
		out.late = true
		out.view.Timeliness = Late
	}
	days := DaysBetween(DayOf(row.CreatedAt, loc), DayOf(submitted, loc))
	out.view.DaysToSubmit = &days
	out.interval = &Interval{Start: row.CreatedAt, End: submitted}
	return out
}

// AssignmentSummary rolls up one logical assignment.
type AssignmentSummary struct {
	Title                 string              `json:"title"`
	Subject               string              `json:"subject"`
	AssignedBy            string              `json:"assignedBy"`
	DueDate               *time.Time          `json:"dueDate,omitempty"`
	CreatedAt             time.Time           `json:"createdAt"`
	TotalStudentsAssigned int                 `json:"totalStudentsAssigned"`
	SubmittedCount        int                 `json:"submittedCount"`
	CompletedCount        int                 `json:"completedCount"`
	PendingCount          int                 `json:"pendingCount"`
	SubmissionRate        float64             `json:"submissionRate"`
	CompletionRate        float64             `json:"completionRate"`
	LateSubmissions       int                 `json:"lateSubmissions"`
	AverageDaysToSubmit   float64             `json:"averageDaysToSubmit"`
	FilesAttached         int                 `json:"filesAttached"`
	Students              []StudentSubmission `json:"students"`
}

// SummarizeAssignment joins each row of the assignment to its submission and rolls the bucket up.
// submissions may contain records for other rows; they are ignored.
func SummarizeAssignment(a LogicalAssignment, submissions []models.SubmissionRecord, loc *time.Location) AssignmentSummary {
	summary, _ := summarizeWithIndex(a, indexSubmissions(submissions), loc)
	return summary
}

func summarizeWithIndex(a LogicalAssignment, index map[submissionKey]models.SubmissionRecord, loc *time.Location) (AssignmentSummary, []Interval) {
	summary := AssignmentSummary{
		Title:                 a.Key.Title,
		Subject:               a.Key.Subject.Label(),
		AssignedBy:            a.Key.AssignedBy,
		DueDate:               a.DueDate,
		CreatedAt:             a.CreatedAt,
		TotalStudentsAssigned: len(a.Rows),
		Students:              make([]StudentSubmission, 0, len(a.Rows)),
	}
	var intervals []Interval
	for _, row := range a.Rows {
		outcome := evaluateRow(row, index, loc)
		summary.Students = append(summary.Students, outcome.view)
		if outcome.view.Submitted {
			summary.SubmittedCount++
		}
		if outcome.completed {
			summary.CompletedCount++
		}
		if outcome.late {
			summary.LateSubmissions++
		}
		if outcome.view.HasFile {
			summary.FilesAttached++
		}
		if outcome.interval != nil {
			intervals = append(intervals, *outcome.interval)
		}
	}
	summary.PendingCount = summary.TotalStudentsAssigned - summary.SubmittedCount
	summary.SubmissionRate = SubmissionRate(summary.SubmittedCount, summary.TotalStudentsAssigned)
	summary.CompletionRate = CompletionRate(summary.CompletedCount, summary.TotalStudentsAssigned)
	summary.AverageDaysToSubmit = AverageElapsedDays(intervals, loc)
	return summary, intervals
}

// FacultyTaskSummary rolls up every logical assignment of a faculty member.
//
// AverageCompletionRate and AverageSubmissionRate weigh each assignment equally. The Overall* rates
// pool students across assignments.
type FacultyTaskSummary struct {
	TotalAssignments      int                 `json:"totalAssignments"`
	TotalStudentsAssigned int                 `json:"totalStudentsAssigned"`
	TotalSubmitted        int                 `json:"totalSubmitted"`
	TotalCompleted        int                 `json:"totalCompleted"`
	TotalPending          int                 `json:"totalPending"`
	TotalLate             int                 `json:"totalLate"`
	TotalFilesAttached    int                 `json:"totalFilesAttached"`
	AverageCompletionRate float64             `json:"averageCompletionRate"`
	AverageSubmissionRate float64             `json:"averageSubmissionRate"`
	OverallSubmissionRate float64             `json:"overallSubmissionRate"`
	OverallCompletionRate float64             `json:"overallCompletionRate"`
	AverageDaysToSubmit   float64             `json:"averageDaysToSubmit"`
	Assignments           []AssignmentSummary `json:"assignments"`
}

// SummarizeFacultyAssignments reconstructs logical assignments from rows, summarises each, and rolls
// them up. Assignments are ordered newest first.
func SummarizeFacultyAssignments(rows []models.AssignmentRow, submissions []models.SubmissionRecord, loc *time.Location) FacultyTaskSummary {
	index := indexSubmissions(submissions)
	logical := ReconstructAssignments(rows, loc)

	out := FacultyTaskSummary{Assignments: make([]AssignmentSummary, 0, len(logical))}
	completionRates := make([]float64, 0, len(logical))
	submissionRates := make([]float64, 0, len(logical))
	var intervals []Interval
	for _, a := range logical {
		summary, submittedIntervals := summarizeWithIndex(a, index, loc)
		out.Assignments = append(out.Assignments, summary)
		out.TotalStudentsAssigned += summary.TotalStudentsAssigned
		out.TotalSubmitted += summary.SubmittedCount
		out.TotalCompleted += summary.CompletedCount
		out.TotalPending += summary.PendingCount
		out.TotalLate += summary.LateSubmissions
		out.TotalFilesAttached += summary.FilesAttached
		completionRates = append(completionRates, summary.CompletionRate)
		submissionRates = append(submissionRates, summary.SubmissionRate)
		intervals = append(intervals, submittedIntervals...)
	}
	out.TotalAssignments = len(out.Assignments)
	out.AverageCompletionRate = Round2(Describe(completionRates).Mean)
	out.AverageSubmissionRate = Round2(Describe(submissionRates).Mean)
	out.OverallSubmissionRate = SubmissionRate(out.TotalSubmitted, out.TotalStudentsAssigned)
	out.OverallCompletionRate = CompletionRate(out.TotalCompleted, out.TotalStudentsAssigned)
	out.AverageDaysToSubmit = AverageElapsedDays(intervals, loc)
	SortNewestFirst(out.Assignments)
	return out
}

// SortNewestFirst orders assignment summaries by creation time, newest first, then by title.
func SortNewestFirst(items []AssignmentSummary) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].Title < items[j].Title
	})
}

// StudentTask is one task from a student's point of view.
type StudentTask struct {
	Title      string     `json:"title"`
	Subject    string     `json:"subject"`
	AssignedBy string     `json:"assignedBy"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	StudentSubmission
}

// StudentTaskSummary rolls up the tasks assigned to one student.
type StudentTaskSummary struct {
	TotalAssigned       int           `json:"totalAssigned"`
	Submitted           int           `json:"submitted"`
	Completed           int           `json:"completed"`
	Pending             int           `json:"pending"`
	LateSubmissions     int           `json:"lateSubmissions"`
	OnTimeSubmissions   int           `json:"onTimeSubmissions"`
	SubmissionRate      float64       `json:"submissionRate"`
	CompletionRate      float64       `json:"completionRate"`
	AverageDaysToSubmit float64       `json:"averageDaysToSubmit"`
	Tasks               []StudentTask `json:"tasks"`
}

// SummarizeStudentTasks expects the rows assigned to a single student. Tasks are ordered newest first.
func SummarizeStudentTasks(rows []models.AssignmentRow, submissions []models.SubmissionRecord, loc *time.Location) StudentTaskSummary {
	index := indexSubmissions(submissions)
	ordered := make([]models.AssignmentRow, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].CreatedAt.After(ordered[j].CreatedAt) })

	out := StudentTaskSummary{TotalAssigned: len(ordered), Tasks: make([]StudentTask, 0, len(ordered))}
	var intervals []Interval
	for _, row := range ordered {
		outcome := evaluateRow(row, index, loc)
		out.Tasks = append(out.Tasks, StudentTask{
			Title:             row.Title,
			Subject:           StringKey(row.Subject).Label(),
			AssignedBy:        row.AssignedBy,
			DueDate:           row.DueDate,
			CreatedAt:         row.CreatedAt,
			StudentSubmission: outcome.view,
		})
		if outcome.view.Submitted {
			out.Submitted++
			if outcome.late {
				out.LateSubmissions++
			} else {
				out.OnTimeSubmissions++
			}
		}
		if outcome.completed {
			out.Completed++
		}
		if outcome.interval != nil {
			intervals = append(intervals, *outcome.interval)
		}
	}
	out.Pending = out.TotalAssigned - out.Submitted
	out.SubmissionRate = SubmissionRate(out.Submitted, out.TotalAssigned)
	out.CompletionRate = CompletionRate(out.Completed, out.TotalAssigned)
	out.AverageDaysToSubmit = AverageElapsedDays(intervals, loc)
	return out
}

// DistinctStudents lists the students rows are assigned to, in first-seen order.
func DistinctStudents(rows []models.AssignmentRow) []string {
	seen := make(map[string]struct{}, len(rows))
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.AssignedTo]; ok {
			continue
		}
		seen[r.AssignedTo] = struct{}{}
		out = append(out, r.AssignedTo)
	}
	return out
}
