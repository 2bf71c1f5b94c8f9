package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-reporting-api/internal/analytics"
	"github.com/noah-isme/sma-reporting-api/internal/dto"
	"github.com/noah-isme/sma-reporting-api/internal/models"
	appErrors "github.com/noah-isme/sma-reporting-api/pkg/errors"
	"github.com/noah-isme/sma-reporting-api/pkg/export"
)

type failingRenderer struct{}

func (failingRenderer) Render(export.Document) ([]byte, error) {
	return nil, errors.New("boom")
}

func newExportServiceForTest(cfg ExportConfig) *ExportService {
	svc := NewExportService(cfg, nil, zap.NewNop(), nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 4, 1, 8, 30, 0, 0, time.UTC) }
	return svc
}

func monthlyReportFixture() *dto.MonthlyAttendanceReport {
	return &dto.MonthlyAttendanceReport{
		Year:        2024,
		Month:       2,
		DaysInMonth: 29,
		Sheets: []dto.MonthlyAttendanceSheet{{
			FacultyID:      "f1",
			FacultyName:    "Dewi",
			Subject:        "Math",
			TotalClassDays: 2,
			Students: []dto.MonthlyStudentRow{{
				StudentRef: dto.StudentRef{StudentName: "Ana", RollNumber: strPtr("07")},
				MonthlyStudentAttendance: analytics.MonthlyStudentAttendance{
					StudentID:            "s1",
					Days:                 map[int]models.AttendanceStatus{1: models.AttendancePresent, 2: models.AttendanceAbsent},
					Present:              1,
					Absent:               1,
					TotalDays:            2,
					AttendancePercentage: 50,
				},
			}},
		}},
	}
}

func TestExportServiceMonthlyAttendanceCSV(t *testing.T) {
	svc := newExportServiceForTest(ExportConfig{Enabled: true, TitlePrefix: "SMA 1"})

	file, err := svc.MonthlyAttendance(monthlyReportFixture(), dto.ExportRequest{Format: "CSV"})
	require.NoError(t, err)

	assert.Equal(t, "attendance_2024_02_20240401_083000.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Dewi | Math", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Roll No,Student,1,2,3,"))
	assert.True(t, strings.HasSuffix(lines[1], ",29,Present,Absent,Late,Excused,Attendance %"))
	assert.True(t, strings.HasPrefix(lines[2], "07,Ana,P,A,,"))
	assert.True(t, strings.HasSuffix(lines[2], ",1,1,0,0,50.00"))
}

func TestExportServiceAssessmentsPDF(t *testing.T) {
	svc := newExportServiceForTest(ExportConfig{Enabled: true})
	report := &dto.AssessmentMarksReport{
		Period: dto.ReportPeriod{From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
		Assessments: []dto.AssessmentSheet{{
			AssessmentSummary: analytics.AssessmentSummary{FacultyID: "f2", Subject: "Physics", AssessmentType: "Midterm", TotalStudents: 1, AverageMarks: 15, MaxMarks: 20},
			Students: []dto.AssessmentStudentRow{{
				StudentMark: analytics.StudentMark{StudentID: "s1", Marks: 15, MaxMarks: 20, Percentage: 75, Grade: analytics.GradeBPlus},
			}},
		}},
	}

	file, err := svc.Assessments(report, dto.ExportRequest{Format: dto.FormatPDF})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF"))
	assert.True(t, strings.HasSuffix(file.Filename, ".pdf"))
}

func TestExportServiceTasksFallsBackToIDs(t *testing.T) {
	svc := newExportServiceForTest(ExportConfig{Enabled: true})
	days := 4
	report := &dto.TaskSubmissionReport{
		Assignments: []dto.AssignmentSheet{{
			AssignmentSummary: analytics.AssignmentSummary{Title: "Lab report", Subject: "Math", AssignedBy: "f1", TotalStudentsAssigned: 1, SubmittedCount: 1, SubmissionRate: 100},
			Students: []dto.SubmissionRow{{
				StudentSubmission: analytics.StudentSubmission{StudentID: "s9", Status: "COMPLETED", Submitted: true, Timeliness: analytics.OnTime, DaysToSubmit: &days},
			}},
		}},
	}

	file, err := svc.Tasks(report, dto.ExportRequest{Format: "csv"})
	require.NoError(t, err)
	out := string(file.Data)
	assert.Contains(t, out, "Lab report,Math,f1,,1,1,0,0,100.00,0.00")
	assert.Contains(t, out, ",s9,COMPLETED,,ON_TIME,4")
}

func TestExportServiceRejections(t *testing.T) {
	report := monthlyReportFixture()

	_, err := newExportServiceForTest(ExportConfig{}).MonthlyAttendance(report, dto.ExportRequest{Format: "csv"})
	assert.True(t, errors.Is(err, appErrors.ErrUnavailable))

	svc := newExportServiceForTest(ExportConfig{Enabled: true})
	_, err = svc.MonthlyAttendance(report, dto.ExportRequest{Format: "xlsx"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.MonthlyAttendance(report, dto.ExportRequest{})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.MonthlyAttendance(nil, dto.ExportRequest{Format: "csv"})
	assert.True(t, errors.Is(err, appErrors.ErrInternal))

	broken := NewExportService(ExportConfig{Enabled: true}, nil, zap.NewNop(), failingRenderer{}, nil)
	_, err = broken.MonthlyAttendance(report, dto.ExportRequest{Format: "csv"})
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "na", sanitizeFilename(""))
	assert.Equal(t, "a_b-c-d", sanitizeFilename("a b/c:d"))
	assert.Len(t, sanitizeFilename(strings.Repeat("x", 150)), 100)
}
