package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-reporting-api/internal/dto"
	"github.com/noah-isme/sma-reporting-api/internal/models"
	"github.com/noah-isme/sma-reporting-api/internal/service"
	"github.com/noah-isme/sma-reporting-api/pkg/response"
)

type reportBuilder interface {
	StudentReport(ctx context.Context, caller models.Caller, req dto.StudentReportRequest) (*dto.StudentDetailedReport, error)
	FacultyReport(ctx context.Context, caller models.Caller, req dto.FacultyReportRequest) (*dto.FacultyPerformanceReport, error)
	MonthlyAttendanceReport(ctx context.Context, caller models.Caller, req dto.MonthlyAttendanceRequest) (*dto.MonthlyAttendanceReport, error)
	AssessmentMarksReport(ctx context.Context, caller models.Caller, req dto.AssessmentReportRequest) (*dto.AssessmentMarksReport, error)
	TaskSubmissionReport(ctx context.Context, caller models.Caller, req dto.TaskReportRequest) (*dto.TaskSubmissionReport, error)
	AssignmentReport(ctx context.Context, caller models.Caller, rowID string) (*dto.AssignmentSheet, error)
}

type reportExporter interface {
	MonthlyAttendance(report *dto.MonthlyAttendanceReport, req dto.ExportRequest) (*service.ExportFile, error)
	Assessments(report *dto.AssessmentMarksReport, req dto.ExportRequest) (*service.ExportFile, error)
	Tasks(report *dto.TaskSubmissionReport, req dto.ExportRequest) (*service.ExportFile, error)
}

// ReportHandler exposes reporting endpoints.
type ReportHandler struct {
	reports reportBuilder
	exports reportExporter
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportBuilder, exports reportExporter) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports}
}

// StudentReport godoc
// @Summary Student detailed report
// @Tags Reports
// @Produce json
// @Param id path string true "Student ID"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param facultyId query string false "Restrict to one faculty (admin/HOD only)"
// @Success 200 {object} response.Envelope
// @Router /reports/students/{id} [get]
func (h *ReportHandler) StudentReport(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	from, to, err := queryDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	req := dto.StudentReportRequest{
		StudentID: strings.TrimSpace(c.Param("id")),
		FacultyID: resolveSelf(c.Query("facultyId"), caller),
		From:      from,
		To:        to,
	}
	report, err := h.reports.StudentReport(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// FacultyReport godoc
// @Summary Faculty performance report
// @Tags Reports
// @Produce json
// @Param id path string true "Faculty ID or me"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /reports/faculty/{id} [get]
func (h *ReportHandler) FacultyReport(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	from, to, err := queryDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	req := dto.FacultyReportRequest{FacultyID: resolveSelf(c.Param("id"), caller), From: from, To: to}
	report, err := h.reports.FacultyReport(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// MonthlyAttendance godoc
// @Summary Monthly attendance register
// @Tags Reports
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param facultyId query string false "Faculty ID"
// @Param subject query string false "Subject"
// @Success 200 {object} response.Envelope
// @Router /reports/attendance/monthly [get]
func (h *ReportHandler) MonthlyAttendance(c *gin.Context) {
	if report, ok := h.monthlyAttendance(c); ok {
		response.JSON(c, http.StatusOK, report)
	}
}

// ExportMonthlyAttendance godoc
// @Summary Export the monthly attendance register
// @Tags Reports
// @Produce text/csv,application/pdf
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param facultyId query string false "Faculty ID"
// @Param subject query string false "Subject"
// @Param format query string true "csv or pdf"
// @Success 200 {file} file
// @Router /reports/attendance/monthly/export [get]
func (h *ReportHandler) ExportMonthlyAttendance(c *gin.Context) {
	report, ok := h.monthlyAttendance(c)
	if !ok {
		return
	}
	file, err := h.exports.MonthlyAttendance(report, exportRequest(c))
	h.sendFile(c, file, err)
}

func (h *ReportHandler) monthlyAttendance(c *gin.Context) (*dto.MonthlyAttendanceReport, bool) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	year, err := queryInt(c, "year")
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	month, err := queryInt(c, "month")
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	req := dto.MonthlyAttendanceRequest{
		Year:      year,
		Month:     month,
		FacultyID: resolveSelf(c.Query("facultyId"), caller),
		Subject:   c.Query("subject"),
	}
	report, err := h.reports.MonthlyAttendanceReport(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return report, true
}

// Assessments godoc
// @Summary Assessment marks report
// @Tags Reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param facultyId query string false "Faculty ID"
// @Param subject query string false "Subject"
// @Param assessmentType query string false "Assessment type"
// @Success 200 {object} response.Envelope
// @Router /reports/assessments [get]
func (h *ReportHandler) Assessments(c *gin.Context) {
	if report, ok := h.assessments(c); ok {
		response.JSON(c, http.StatusOK, report)
	}
}

// ExportAssessments godoc
// @Summary Export the assessment marks report
// @Tags Reports
// @Produce text/csv,application/pdf
// @Param format query string true "csv or pdf"
// @Success 200 {file} file
// @Router /reports/assessments/export [get]
func (h *ReportHandler) ExportAssessments(c *gin.Context) {
	report, ok := h.assessments(c)
	if !ok {
		return
	}
	file, err := h.exports.Assessments(report, exportRequest(c))
	h.sendFile(c, file, err)
}

func (h *ReportHandler) assessments(c *gin.Context) (*dto.AssessmentMarksReport, bool) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	from, to, err := queryDateRange(c)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	req := dto.AssessmentReportRequest{
		FacultyID:      resolveSelf(c.Query("facultyId"), caller),
		Subject:        c.Query("subject"),
		AssessmentType: c.Query("assessmentType"),
		From:           from,
		To:             to,
	}
	report, err := h.reports.AssessmentMarksReport(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return report, true
}

// Tasks godoc
// @Summary Task submission report
// @Tags Reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param facultyId query string false "Faculty ID"
// @Success 200 {object} response.Envelope
// @Router /reports/tasks [get]
func (h *ReportHandler) Tasks(c *gin.Context) {
	if report, ok := h.tasks(c); ok {
		response.JSON(c, http.StatusOK, report)
	}
}

// ExportTasks godoc
// @Summary Export the task submission report
// @Tags Reports
// @Produce text/csv,application/pdf
// @Param format query string true "csv or pdf"
// @Success 200 {file} file
// @Router /reports/tasks/export [get]
func (h *ReportHandler) ExportTasks(c *gin.Context) {
	report, ok := h.tasks(c)
	if !ok {
		return
	}
	file, err := h.exports.Tasks(report, exportRequest(c))
	h.sendFile(c, file, err)
}

func (h *ReportHandler) tasks(c *gin.Context) (*dto.TaskSubmissionReport, bool) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	from, to, err := queryDateRange(c)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	req := dto.TaskReportRequest{FacultyID: resolveSelf(c.Query("facultyId"), caller), From: from, To: to}
	report, err := h.reports.TaskSubmissionReport(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return report, true
}

// Assignment godoc
// @Summary Summary of one logical assignment
// @Tags Reports
// @Produce json
// @Param id path string true "Any assignment row ID of the task"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/tasks/{id} [get]
func (h *ReportHandler) Assignment(c *gin.Context) {
	caller, err := callerFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	sheet, err := h.reports.AssignmentReport(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet)
}

func (h *ReportHandler) sendFile(c *gin.Context, file *service.ExportFile, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Data)
}

func exportRequest(c *gin.Context) dto.ExportRequest {
	return dto.ExportRequest{Format: strings.TrimSpace(c.Query("format"))}
}
