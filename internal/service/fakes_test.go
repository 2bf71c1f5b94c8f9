package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

type fakeStore struct {
	attendance  []models.AttendanceRecord
	marks       []models.MarkRecord
	assignments []models.AssignmentRow
	submissions []models.SubmissionRecord
	quizzes     []models.Quiz
	attempts    []models.QuizAttemptRecord
	feedback    []models.FeedbackRecord
	students    []models.StudentIdentity
	faculty     []models.FacultyIdentity

	err   error
	calls map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{calls: map[string]int{}}
}

func (f *fakeStore) providers() ReportProviders {
	return ReportProviders{Attendance: f, Marks: f, Assignments: f, Quizzes: f, Feedback: f, Directory: f}
}

func inDays(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && !t.Before(to.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// inDates mirrors the date-column filter: bounds and values compare as calendar dates.
func inDates(t time.Time, from, to *time.Time) bool {
	day := t.Format("2006-01-02")
	if from != nil && day < from.Format("2006-01-02") {
		return false
	}
	if to != nil && day > to.Format("2006-01-02") {
		return false
	}
	return true
}

func match(want, got string) bool {
	return want == "" || want == got
}

func matchPtr(want string, got *string) bool {
	return want == "" || (got != nil && *got == want)
}

func (f *fakeStore) AttendanceBy(_ context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	f.calls["attendance"]++
	if f.err != nil {
		return nil, f.err
	}
	var out []models.AttendanceRecord
	for _, r := range f.attendance {
		if match(filter.StudentID, r.StudentID) && match(filter.FacultyID, r.FacultyID) && matchPtr(filter.Subject, r.Subject) && inDates(r.Date, filter.DateFrom, filter.DateTo) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) MarksBy(_ context.Context, filter models.MarkFilter) ([]models.MarkRecord, error) {
	f.calls["marks"]++
	var out []models.MarkRecord
	for _, m := range f.marks {
		if match(filter.StudentID, m.StudentID) && match(filter.FacultyID, m.FacultyID) && matchPtr(filter.Subject, m.Subject) &&
			matchPtr(filter.AssessmentType, m.AssessmentType) && inDates(m.Date, filter.DateFrom, filter.DateTo) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) AssignmentsBy(_ context.Context, filter models.AssignmentFilter) ([]models.AssignmentRow, error) {
	f.calls["assignments"]++
	var out []models.AssignmentRow
	for _, r := range f.assignments {
		if match(filter.AssignedBy, r.AssignedBy) && match(filter.AssignedTo, r.AssignedTo) && match(filter.Title, r.Title) && inDays(r.CreatedAt, filter.DateFrom, filter.DateTo) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) FindAssignmentRow(_ context.Context, id string) (*models.AssignmentRow, error) {
	for _, r := range f.assignments {
		if r.ID == id {
			row := r
			return &row, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) SubmissionsForAssignment(_ context.Context, assignmentID string) ([]models.SubmissionRecord, error) {
	f.calls["submissions_single"]++
	var out []models.SubmissionRecord
	for _, s := range f.submissions {
		if s.AssignmentID == assignmentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) SubmissionsForAssignments(_ context.Context, ids []string) ([]models.SubmissionRecord, error) {
	f.calls["submissions_batch"]++
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var out []models.SubmissionRecord
	for _, s := range f.submissions {
		if wanted[s.AssignmentID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) QuizzesBy(_ context.Context, filter models.QuizFilter) ([]models.Quiz, error) {
	var out []models.Quiz
	for _, q := range f.quizzes {
		if match(filter.CreatedBy, q.CreatedBy) && matchPtr(filter.Subject, q.Subject) && inDays(q.CreatedAt, filter.DateFrom, filter.DateTo) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) QuizAttemptsBy(_ context.Context, filter models.QuizAttemptFilter) ([]models.QuizAttemptRecord, error) {
	wanted := map[string]bool{}
	for _, id := range filter.QuizIDs {
		wanted[id] = true
	}
	var out []models.QuizAttemptRecord
	for _, a := range f.attempts {
		if match(filter.StudentID, a.StudentID) && (filter.QuizIDs == nil || wanted[a.QuizID]) && inDays(a.SubmittedAt, filter.DateFrom, filter.DateTo) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) FeedbackBy(_ context.Context, filter models.FeedbackFilter) ([]models.FeedbackRecord, error) {
	var out []models.FeedbackRecord
	for _, r := range f.feedback {
		if match(filter.FacultyID, r.FacultyID) && match(filter.StudentID, r.StudentID) && inDays(r.CreatedAt, filter.DateFrom, filter.DateTo) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) AllStudents(context.Context) ([]models.StudentIdentity, error) {
	return f.students, nil
}

func (f *fakeStore) AllFaculty(context.Context) ([]models.FacultyIdentity, error) {
	return f.faculty, nil
}

func (f *fakeStore) FindStudent(_ context.Context, id string) (*models.StudentIdentity, error) {
	for _, s := range f.students {
		if s.ID == id {
			st := s
			return &st, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) FindFaculty(_ context.Context, id string) (*models.FacultyIdentity, error) {
	for _, fac := range f.faculty {
		if fac.ID == id {
			found := fac
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func strPtr(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time { return &t }
