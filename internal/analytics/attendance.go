package analytics

import (
	"sort"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

// AttendanceSummary counts records per status. Sum(StatusCounts) == TotalClasses always holds.
type AttendanceSummary struct {
	TotalClasses         int                             `json:"totalClasses"`
	Present              int                             `json:"present"`
	Absent               int                             `json:"absent"`
	Late                 int                             `json:"late"`
	Excused              int                             `json:"excused"`
	StatusCounts         map[models.AttendanceStatus]int `json:"statusCounts"`
	AttendancePercentage float64                         `json:"attendancePercentage"`
}

func newAttendanceSummary() AttendanceSummary {
	counts := make(map[models.AttendanceStatus]int, len(models.AttendanceStatuses))
	for _, status := range models.AttendanceStatuses {
		counts[status] = 0
	}
	return AttendanceSummary{StatusCounts: counts}
}

func (s *AttendanceSummary) add(status models.AttendanceStatus) {
	s.TotalClasses++
	s.StatusCounts[status]++
	switch status {
	case models.AttendancePresent:
		s.Present++
	case models.AttendanceAbsent:
		s.Absent++
	case models.AttendanceLate:
		s.Late++
	case models.AttendanceExcused:
		s.Excused++
	}
}

func (s *AttendanceSummary) finish() {
	s.AttendancePercentage = Percentage(float64(s.Present), float64(s.TotalClasses))
}

// SummarizeAttendance counts statuses over the given records. Only PRESENT counts toward the percentage.
func SummarizeAttendance(records []models.AttendanceRecord) AttendanceSummary {
	summary := newAttendanceSummary()
	for _, r := range records {
		summary.add(r.Status)
	}
	summary.finish()
	return summary
}

// SubjectAttendance is an attendance summary for one subject.
type SubjectAttendance struct {
	Subject string `json:"subject"`
	AttendanceSummary
}

// SummarizeAttendanceBySubject splits records by subject; records without one share the Unknown bucket.
// Output is ordered by subject label.
func SummarizeAttendanceBySubject(records []models.AttendanceRecord) []SubjectAttendance {
	groups := GroupBy(records,
		func(r models.AttendanceRecord) NullString { return StringKey(r.Subject) },
		func(NullString) []models.AttendanceRecord { return nil },
		appendTo[models.AttendanceRecord],
	)
	out := make([]SubjectAttendance, 0, groups.Len())
	groups.Each(func(k NullString, rows []models.AttendanceRecord) {
		out = append(out, SubjectAttendance{Subject: k.Label(), AttendanceSummary: SummarizeAttendance(rows)})
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out
}

// MonthlyGroupKey identifies one attendance sheet: a faculty teaching a subject.
type MonthlyGroupKey struct {
	FacultyID string
	Subject   NullString
}

// MonthlyStudentAttendance is one student's row on a monthly sheet. Days maps day-of-month to status.
// TotalDays counts only the dates the student has a record for, so a class day with no row for the
// student is neither present nor absent and does not lower AttendancePercentage.
type MonthlyStudentAttendance struct {
	StudentID            string                          `json:"studentId"`
	Days                 map[int]models.AttendanceStatus `json:"days"`
	Present              int                             `json:"present"`
	Absent               int                             `json:"absent"`
	Late                 int                             `json:"late"`
	Excused              int                             `json:"excused"`
	TotalDays            int                             `json:"totalDays"`
	AttendancePercentage float64                         `json:"attendancePercentage"`
}

// MonthlyAttendanceGroup is one (faculty, subject) sheet.
type MonthlyAttendanceGroup struct {
	FacultyID      string                     `json:"facultyId"`
	Subject        string                     `json:"subject"`
	TotalClassDays int                        `json:"totalClassDays"`
	Students       []MonthlyStudentAttendance `json:"students"`
}

type monthlyAcc struct {
	dates    map[Day]struct{}
	order    []string
	students map[string]map[Day]models.AttendanceStatus
}

// SummarizeMonthlyAttendance builds per-(faculty, subject) sheets. Each student keeps one status per
// calendar date; when a date repeats, the record with the later timestamp wins (input order breaks
// ties). Percentages divide by the student's distinct dates, never by raw row counts.
// Record dates are calendar dates and are read in their own location.
func SummarizeMonthlyAttendance(records []models.AttendanceRecord) []MonthlyAttendanceGroup {
	ordered := make([]models.AttendanceRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	groups := GroupBy(ordered,
		func(r models.AttendanceRecord) MonthlyGroupKey {
			return MonthlyGroupKey{FacultyID: r.FacultyID, Subject: StringKey(r.Subject)}
		},
		func(MonthlyGroupKey) *monthlyAcc {
			return &monthlyAcc{dates: map[Day]struct{}{}, students: map[string]map[Day]models.AttendanceStatus{}}
		},
		func(acc *monthlyAcc, r models.AttendanceRecord) *monthlyAcc {
			day := DateOf(r.Date)
			acc.dates[day] = struct{}{}
			days, ok := acc.students[r.StudentID]
			if !ok {
				days = map[Day]models.AttendanceStatus{}
				acc.students[r.StudentID] = days
				acc.order = append(acc.order, r.StudentID)
			}
			days[day] = r.Status
			return acc
		},
	)

	out := make([]MonthlyAttendanceGroup, 0, groups.Len())
	groups.Each(func(k MonthlyGroupKey, acc *monthlyAcc) {
		group := MonthlyAttendanceGroup{
			FacultyID:      k.FacultyID,
			Subject:        k.Subject.Label(),
			TotalClassDays: len(acc.dates),
			Students:       make([]MonthlyStudentAttendance, 0, len(acc.order)),
		}
		for _, studentID := range acc.order {
			group.Students = append(group.Students, monthlyRow(studentID, acc.students[studentID]))
		}
		out = append(out, group)
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FacultyID != out[j].FacultyID {
			return out[i].FacultyID < out[j].FacultyID
		}
		return out[i].Subject < out[j].Subject
	})
	return out
}

func monthlyRow(studentID string, days map[Day]models.AttendanceStatus) MonthlyStudentAttendance {
	row := MonthlyStudentAttendance{
		StudentID: studentID,
		Days:      make(map[int]models.AttendanceStatus, len(days)),
		TotalDays: len(days),
	}
	for day, status := range days {
		row.Days[day.Day] = status
		switch status {
		case models.AttendancePresent:
			row.Present++
		case models.AttendanceAbsent:
			row.Absent++
		case models.AttendanceLate:
			row.Late++
		case models.AttendanceExcused:
			row.Excused++
		}
	}
	row.AttendancePercentage = Percentage(float64(row.Present), float64(row.TotalDays))
	return row
}

// DistinctDays counts the calendar dates the records cover.
func DistinctDays(records []models.AttendanceRecord) int {
	seen := make(map[Day]struct{}, len(records))
	for _, r := range records {
		seen[DateOf(r.Date)] = struct{}{}
	}
	return len(seen)
}
