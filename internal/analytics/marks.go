package analytics

import (
	"sort"
	"time"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

// AssessmentKey identifies one assessment: a faculty's assessment type within a subject.
type AssessmentKey struct {
	FacultyID      string
	Subject        NullString
	AssessmentType NullString
}

// StudentMark is one student's result inside an assessment.
type StudentMark struct {
	StudentID  string    `json:"studentId"`
	Marks      float64   `json:"marks"`
	MaxMarks   float64   `json:"maxMarks"`
	Percentage float64   `json:"percentage"`
	Grade      string    `json:"grade"`
	Date       time.Time `json:"date"`
}

// AssessmentSummary aggregates one (faculty, subject, assessment type) group.
type AssessmentSummary struct {
	FacultyID         string        `json:"facultyId"`
	Subject           string        `json:"subject"`
	AssessmentType    string        `json:"assessmentType"`
	TotalStudents     int           `json:"totalStudents"`
	AverageMarks      float64       `json:"averageMarks"`
	MaxMarks          float64       `json:"maxMarks"`
	HighestMarks      float64       `json:"highestMarks"`
	LowestMarks       float64       `json:"lowestMarks"`
	AveragePercentage float64       `json:"averagePercentage"`
	AboveAverage      int           `json:"aboveAverage"`
	BelowAverage      int           `json:"belowAverage"`
	Students          []StudentMark `json:"students"`
}

// UsableMarks drops records whose max marks cannot be divided by.
func UsableMarks(records []models.MarkRecord) []models.MarkRecord {
	return Filter(records, models.MarkRecord.Usable)
}

func markPercentage(r models.MarkRecord) float64 {
	return rawPercentage(r.Marks, r.MaxMarks)
}

// SummarizeAssessments groups marks by (faculty, subject, assessment type). Max marks is taken from the
// first record of each group; a mark equal to the group average counts as above average. Records with
// non-positive max marks are ignored. Output is ordered by faculty, subject, then assessment type.
func SummarizeAssessments(records []models.MarkRecord) []AssessmentSummary {
	groups := GroupBy(UsableMarks(records),
		func(r models.MarkRecord) AssessmentKey {
			return AssessmentKey{FacultyID: r.FacultyID, Subject: StringKey(r.Subject), AssessmentType: StringKey(r.AssessmentType)}
		},
		func(AssessmentKey) []models.MarkRecord { return nil },
		appendTo[models.MarkRecord],
	)

	out := make([]AssessmentSummary, 0, groups.Len())
	groups.Each(func(k AssessmentKey, rows []models.MarkRecord) {
		out = append(out, summarizeAssessment(k, rows))
	})
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.FacultyID != b.FacultyID {
			return a.FacultyID < b.FacultyID
		}
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		return a.AssessmentType < b.AssessmentType
	})
	return out
}

func summarizeAssessment(k AssessmentKey, rows []models.MarkRecord) AssessmentSummary {
	marks := make([]float64, len(rows))
	percentages := make([]float64, len(rows))
	for i, r := range rows {
		marks[i] = r.Marks
		percentages[i] = markPercentage(r)
	}
	stats := Describe(marks)

	summary := AssessmentSummary{
		FacultyID:         k.FacultyID,
		Subject:           k.Subject.Label(),
		AssessmentType:    k.AssessmentType.Label(),
		TotalStudents:     len(rows),
		AverageMarks:      Round2(stats.Mean),
		MaxMarks:          rows[0].MaxMarks,
		HighestMarks:      stats.Max,
		LowestMarks:       stats.Min,
		AveragePercentage: Round2(Describe(percentages).Mean),
		Students:          make([]StudentMark, 0, len(rows)),
	}
	for i, r := range rows {
		if r.Marks >= stats.Mean {
			summary.AboveAverage++
		} else {
			summary.BelowAverage++
		}
		summary.Students = append(summary.Students, StudentMark{
			StudentID:  r.StudentID,
			Marks:      r.Marks,
			MaxMarks:   r.MaxMarks,
			Percentage: Round2(percentages[i]),
			Grade:      GradeFor(percentages[i]),
			Date:       r.Date,
		})
	}
	return summary
}

// AssessmentResult is one assessment inside a student's subject breakdown.
type AssessmentResult struct {
	AssessmentType string    `json:"assessmentType"`
	FacultyID      string    `json:"facultyId"`
	Marks          float64   `json:"marks"`
	MaxMarks       float64   `json:"maxMarks"`
	Percentage     float64   `json:"percentage"`
	Grade          string    `json:"grade"`
	Date           time.Time `json:"date"`
}

// SubjectPerformance summarises one student's results in one subject across assessment types.
type SubjectPerformance struct {
	Subject           string             `json:"subject"`
	Assessments       []AssessmentResult `json:"assessments"`
	AveragePercentage float64            `json:"averagePercentage"`
	HighestPercentage float64            `json:"highestPercentage"`
	LowestPercentage  float64            `json:"lowestPercentage"`
	Grade             string             `json:"grade"`
}

// SummarizeStudentSubjects expects one student's marks and groups them by subject. The subject average
// is the mean of per-assessment percentages, so every assessment weighs the same whatever its max marks.
func SummarizeStudentSubjects(records []models.MarkRecord) []SubjectPerformance {
	groups := GroupBy(UsableMarks(records),
		func(r models.MarkRecord) NullString { return StringKey(r.Subject) },
		func(NullString) []models.MarkRecord { return nil },
		appendTo[models.MarkRecord],
	)

	out := make([]SubjectPerformance, 0, groups.Len())
	groups.Each(func(k NullString, rows []models.MarkRecord) {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
		percentages := make([]float64, len(rows))
		perf := SubjectPerformance{Subject: k.Label(), Assessments: make([]AssessmentResult, 0, len(rows))}
		for i, r := range rows {
			percentages[i] = markPercentage(r)
			perf.Assessments = append(perf.Assessments, AssessmentResult{
				AssessmentType: StringKey(r.AssessmentType).Label(),
				FacultyID:      r.FacultyID,
				Marks:          r.Marks,
				MaxMarks:       r.MaxMarks,
				Percentage:     Round2(percentages[i]),
				Grade:          GradeFor(percentages[i]),
				Date:           r.Date,
			})
		}
		stats := Describe(percentages)
		perf.AveragePercentage = Round2(stats.Mean)
		perf.HighestPercentage = Round2(stats.Max)
		perf.LowestPercentage = Round2(stats.Min)
		perf.Grade = GradeFor(stats.Mean)
		out = append(out, perf)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out
}

// OverallPercentage averages subject averages with equal weight per subject.
func OverallPercentage(subjects []SubjectPerformance) float64 {
	values := make([]float64, len(subjects))
	for i, s := range subjects {
		values[i] = s.AveragePercentage
	}
	return Round2(Describe(values).Mean)
}
