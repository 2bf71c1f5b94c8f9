package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-reporting-api/internal/analytics"
	"github.com/noah-isme/sma-reporting-api/internal/dto"
	"github.com/noah-isme/sma-reporting-api/internal/models"
	appErrors "github.com/noah-isme/sma-reporting-api/pkg/errors"
	"github.com/noah-isme/sma-reporting-api/pkg/export"
)

type documentRenderer interface {
	Render(doc export.Document) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Enabled     bool
	TitlePrefix string
}

// ExportFile is a rendered report ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders built reports into CSV or PDF sheets.
type ExportService struct {
	csv       documentRenderer
	pdf       documentRenderer
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the pkg/export defaults.
func NewExportService(cfg ExportConfig, validate *validator.Validate, logger *zap.Logger, csv, pdf documentRenderer) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	registerReportValidations(validate)
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{csv: csv, pdf: pdf, validator: validate, logger: logger, cfg: cfg, now: time.Now}
}

// MonthlyAttendance renders the monthly register with one table per sheet.
func (s *ExportService) MonthlyAttendance(report *dto.MonthlyAttendanceReport, req dto.ExportRequest) (*ExportFile, error) {
	if report == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "missing report")
	}
	doc := export.Document{
		Title:    s.title("Monthly Attendance"),
		Subtitle: fmt.Sprintf("%04d-%02d", report.Year, report.Month),
	}
	for _, sheet := range report.Sheets {
		headers := []string{"Roll No", "Student"}
		for d := 1; d <= report.DaysInMonth; d++ {
			headers = append(headers, strconv.Itoa(d))
		}
		headers = append(headers, "Present", "Absent", "Late", "Excused", "Attendance %")

		table := export.Table{
			Caption: fmt.Sprintf("%s | %s", displayName(sheet.FacultyName, sheet.FacultyID), sheet.Subject),
			Headers: headers,
		}
		for _, row := range sheet.Students {
			record := []string{deref(row.RollNumber), displayName(row.StudentName, row.StudentID)}
			for d := 1; d <= report.DaysInMonth; d++ {
				record = append(record, statusMark(row.Days[d]))
			}
			record = append(record,
				strconv.Itoa(row.Present),
				strconv.Itoa(row.Absent),
				strconv.Itoa(row.Late),
				strconv.Itoa(row.Excused),
				formatFloat(row.AttendancePercentage),
			)
			table.Rows = append(table.Rows, record)
		}
		doc.Tables = append(doc.Tables, table)
	}
	return s.render(doc, req, fmt.Sprintf("attendance_%04d_%02d", report.Year, report.Month))
}

// Assessments renders an overview table followed by one table per assessment.
func (s *ExportService) Assessments(report *dto.AssessmentMarksReport, req dto.ExportRequest) (*ExportFile, error) {
	if report == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "missing report")
	}
	doc := export.Document{Title: s.title("Assessment Marks"), Subtitle: periodLabel(report.Period)}
	overview := export.Table{
		Caption: "Overview",
		Headers: []string{"Faculty", "Subject", "Assessment", "Students", "Average", "Max", "Highest", "Lowest", "Average %", "Above Avg", "Below Avg"},
	}
	for _, a := range report.Assessments {
		overview.Rows = append(overview.Rows, []string{
			displayName(a.FacultyName, a.FacultyID),
			a.Subject,
			a.AssessmentType,
			strconv.Itoa(a.TotalStudents),
			formatFloat(a.AverageMarks),
			formatFloat(a.MaxMarks),
			formatFloat(a.HighestMarks),
			formatFloat(a.LowestMarks),
			formatFloat(a.AveragePercentage),
			strconv.Itoa(a.AboveAverage),
			strconv.Itoa(a.BelowAverage),
		})
	}
	doc.Tables = append(doc.Tables, overview)
	for _, a := range report.Assessments {
		table := export.Table{
			Caption: fmt.Sprintf("%s - %s", a.Subject, a.AssessmentType),
			Headers: []string{"Roll No", "Student", "Marks", "Max Marks", "Percentage", "Grade"},
		}
		for _, st := range a.Students {
			table.Rows = append(table.Rows, []string{
				deref(st.RollNumber),
				displayName(st.StudentName, st.StudentID),
				formatFloat(st.Marks),
				formatFloat(st.MaxMarks),
				formatFloat(st.Percentage),
				st.Grade,
			})
		}
		doc.Tables = append(doc.Tables, table)
	}
	return s.render(doc, req, "assessments")
}

// Tasks renders the assignment overview followed by one submission table per assignment.
func (s *ExportService) Tasks(report *dto.TaskSubmissionReport, req dto.ExportRequest) (*ExportFile, error) {
	if report == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "missing report")
	}
	doc := export.Document{Title: s.title("Task Submissions"), Subtitle: periodLabel(report.Period)}
	overview := export.Table{
		Caption: "Assignments",
		Headers: []string{"Title", "Subject", "Faculty", "Due", "Assigned", "Submitted", "Pending", "Late", "Submission %", "Completion %"},
	}
	for _, a := range report.Assignments {
		overview.Rows = append(overview.Rows, []string{
			a.Title,
			a.Subject,
			displayName(a.FacultyName, a.AssignedBy),
			formatDate(a.DueDate),
			strconv.Itoa(a.TotalStudentsAssigned),
			strconv.Itoa(a.SubmittedCount),
			strconv.Itoa(a.PendingCount),
			strconv.Itoa(a.LateSubmissions),
			formatFloat(a.SubmissionRate),
			formatFloat(a.CompletionRate),
		})
	}
	doc.Tables = append(doc.Tables, overview)
	for _, a := range report.Assignments {
		table := export.Table{
			Caption: fmt.Sprintf("%s (%s)", a.Title, a.Subject),
			Headers: []string{"Roll No", "Student", "Status", "Submitted At", "Timeliness", "Days To Submit"},
		}
		for _, st := range a.Students {
			days := ""
			if st.DaysToSubmit != nil {
				days = strconv.Itoa(*st.DaysToSubmit)
			}
			table.Rows = append(table.Rows, []string{
				deref(st.RollNumber),
				displayName(st.StudentName, st.StudentID),
				st.Status,
				formatDate(st.SubmittedAt),
				string(st.Timeliness),
				days,
			})
		}
		doc.Tables = append(doc.Tables, table)
	}
	return s.render(doc, req, "tasks")
}

func (s *ExportService) render(doc export.Document, req dto.ExportRequest, basename string) (*ExportFile, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrUnavailable, "report exports are disabled")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf")
	}

	format := strings.ToLower(req.Format)
	var (
		payload     []byte
		contentType string
		err         error
	)
	switch format {
	case dto.FormatCSV:
		payload, err = s.csv.Render(doc)
		contentType = "text/csv"
	case dto.FormatPDF:
		payload, err = s.pdf.Render(doc)
		contentType = "application/pdf"
	}
	if err != nil {
		s.logger.Error("render export", zap.String("format", format), zap.String("report", basename), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportFile{
		Filename:    s.buildFilename(basename, format),
		ContentType: contentType,
		Data:        payload,
	}, nil
}

func (s *ExportService) title(name string) string {
	prefix := strings.TrimSpace(s.cfg.TitlePrefix)
	if prefix == "" {
		return name
	}
	return prefix + " - " + name
}

func (s *ExportService) buildFilename(basename, format string) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", sanitizeFilename(basename), timestamp, format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

func statusMark(status models.AttendanceStatus) string {
	if status == "" {
		return ""
	}
	return string(status[:1])
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	if id != "" {
		return id
	}
	return analytics.UnknownLabel
}

func periodLabel(p dto.ReportPeriod) string {
	return p.From.Format("2006-01-02") + " to " + p.To.Format("2006-01-02")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
