package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

func mark(student, faculty string, subject, kind *string, got, max float64) models.MarkRecord {
	return models.MarkRecord{
		ID:             student + "-" + faculty,
		StudentID:      student,
		FacultyID:      faculty,
		Subject:        subject,
		AssessmentType: kind,
		Marks:          got,
		MaxMarks:       max,
		Date:           day(2024, 4, 1),
	}
}

func TestSummarizeStudentSubjects(t *testing.T) {
	physics := strPtr("Physics")
	records := []models.MarkRecord{
		mark("s1", "f1", physics, strPtr("Unit Test 1"), 18, 20),
		mark("s1", "f1", physics, strPtr("Midterm"), 15, 20),
	}
	records[1].Date = day(2024, 4, 10)

	subjects := SummarizeStudentSubjects(records)
	require.Len(t, subjects, 1)
	perf := subjects[0]
	assert.Equal(t, "Physics", perf.Subject)
	assert.Equal(t, 82.5, perf.AveragePercentage)
	assert.Equal(t, 90.0, perf.HighestPercentage)
	assert.Equal(t, 75.0, perf.LowestPercentage)
	assert.Equal(t, GradeA, perf.Grade)
	require.Len(t, perf.Assessments, 2)
	assert.Equal(t, "Unit Test 1", perf.Assessments[0].AssessmentType)
	assert.Equal(t, GradeAPlus, perf.Assessments[0].Grade)

	assert.Equal(t, 82.5, OverallPercentage(subjects))
}

func TestSummarizeStudentSubjectsWeighsAssessmentsEqually(t *testing.T) {
	records := []models.MarkRecord{
		mark("s1", "f1", strPtr("History"), strPtr("Quiz"), 10, 10),
		mark("s1", "f1", strPtr("History"), strPtr("Final"), 50, 100),
	}

	subjects := SummarizeStudentSubjects(records)
	require.Len(t, subjects, 1)
	assert.Equal(t, 75.0, subjects[0].AveragePercentage)
}

func TestSummarizeAssessments(t *testing.T) {
	math := strPtr("Math")
	unit := strPtr("Unit Test 1")
	records := []models.MarkRecord{
		mark("s1", "f1", math, unit, 18, 20),
		mark("s2", "f1", math, unit, 15, 20),
		mark("s3", "f1", math, unit, 12, 20),
		mark("s4", "f1", math, strPtr("Midterm"), 40, 50),
		mark("s5", "f1", math, nil, 5, 10),
		mark("s6", "f1", math, unit, 7, 0),
	}

	summaries := SummarizeAssessments(records)
	require.Len(t, summaries, 3)

	assert.Equal(t, "Midterm", summaries[0].AssessmentType)
	assert.Equal(t, UnknownLabel, summaries[2].AssessmentType)

	unitTest := summaries[1]
	assert.Equal(t, "Unit Test 1", unitTest.AssessmentType)
	assert.Equal(t, 3, unitTest.TotalStudents, "zero max marks rows are dropped")
	assert.Equal(t, 15.0, unitTest.AverageMarks)
	assert.Equal(t, 20.0, unitTest.MaxMarks)
	assert.Equal(t, 18.0, unitTest.HighestMarks)
	assert.Equal(t, 12.0, unitTest.LowestMarks)
	assert.Equal(t, 75.0, unitTest.AveragePercentage)
	assert.Equal(t, 2, unitTest.AboveAverage, "a mark equal to the average counts as above")
	assert.Equal(t, 1, unitTest.BelowAverage)
	require.Len(t, unitTest.Students, 3)
	assert.Equal(t, 90.0, unitTest.Students[0].Percentage)
}

func TestSummarizeAssessmentsSingleStudent(t *testing.T) {
	summaries := SummarizeAssessments([]models.MarkRecord{mark("s1", "f1", nil, nil, 8, 10)})
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].TotalStudents)
	assert.Equal(t, 1, summaries[0].AboveAverage)
	assert.Equal(t, 0, summaries[0].BelowAverage)
	assert.Equal(t, UnknownLabel, summaries[0].Subject)
}

func TestMarksEmptyInput(t *testing.T) {
	assert.Empty(t, SummarizeAssessments(nil))
	assert.Empty(t, SummarizeStudentSubjects(nil))
	assert.Equal(t, 0.0, OverallPercentage(nil))
}
