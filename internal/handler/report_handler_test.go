package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-reporting-api/internal/dto"
	"github.com/noah-isme/sma-reporting-api/internal/middleware"
	"github.com/noah-isme/sma-reporting-api/internal/models"
	"github.com/noah-isme/sma-reporting-api/internal/service"
	appErrors "github.com/noah-isme/sma-reporting-api/pkg/errors"
)

type reportServiceMock struct {
	caller     models.Caller
	student    dto.StudentReportRequest
	faculty    dto.FacultyReportRequest
	monthly    dto.MonthlyAttendanceRequest
	assessment dto.AssessmentReportRequest
	tasks      dto.TaskReportRequest
	rowID      string
	err        error
}

func (m *reportServiceMock) StudentReport(_ context.Context, caller models.Caller, req dto.StudentReportRequest) (*dto.StudentDetailedReport, error) {
	m.caller, m.student = caller, req
	return &dto.StudentDetailedReport{Student: models.StudentIdentity{ID: req.StudentID}}, m.err
}

func (m *reportServiceMock) FacultyReport(_ context.Context, caller models.Caller, req dto.FacultyReportRequest) (*dto.FacultyPerformanceReport, error) {
	m.caller, m.faculty = caller, req
	return &dto.FacultyPerformanceReport{Faculty: models.FacultyIdentity{ID: req.FacultyID}}, m.err
}

func (m *reportServiceMock) MonthlyAttendanceReport(_ context.Context, caller models.Caller, req dto.MonthlyAttendanceRequest) (*dto.MonthlyAttendanceReport, error) {
	m.caller, m.monthly = caller, req
	return &dto.MonthlyAttendanceReport{Year: req.Year, Month: req.Month}, m.err
}

func (m *reportServiceMock) AssessmentMarksReport(_ context.Context, caller models.Caller, req dto.AssessmentReportRequest) (*dto.AssessmentMarksReport, error) {
	m.caller, m.assessment = caller, req
	return &dto.AssessmentMarksReport{}, m.err
}

func (m *reportServiceMock) TaskSubmissionReport(_ context.Context, caller models.Caller, req dto.TaskReportRequest) (*dto.TaskSubmissionReport, error) {
	m.caller, m.tasks = caller, req
	return &dto.TaskSubmissionReport{}, m.err
}

func (m *reportServiceMock) AssignmentReport(_ context.Context, caller models.Caller, rowID string) (*dto.AssignmentSheet, error) {
	m.caller, m.rowID = caller, rowID
	if m.err != nil {
		return nil, m.err
	}
	return &dto.AssignmentSheet{}, nil
}

type exportServiceMock struct {
	format string
	err    error
}

func (m *exportServiceMock) file(req dto.ExportRequest) (*service.ExportFile, error) {
	m.format = req.Format
	if m.err != nil {
		return nil, m.err
	}
	return &service.ExportFile{Filename: "report.csv", ContentType: "text/csv", Data: []byte("a,b\n")}, nil
}

func (m *exportServiceMock) MonthlyAttendance(_ *dto.MonthlyAttendanceReport, req dto.ExportRequest) (*service.ExportFile, error) {
	return m.file(req)
}

func (m *exportServiceMock) Assessments(_ *dto.AssessmentMarksReport, req dto.ExportRequest) (*service.ExportFile, error) {
	return m.file(req)
}

func (m *exportServiceMock) Tasks(_ *dto.TaskSubmissionReport, req dto.ExportRequest) (*service.ExportFile, error) {
	return m.file(req)
}

func newGinContext(method, target string, claims *models.JWTClaims) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, w
}

var (
	adminClaims   = &models.JWTClaims{UserID: "admin", Role: models.RoleAdmin}
	facultyClaims = &models.JWTClaims{UserID: "f1", Role: models.RoleFaculty}
)

func TestReportHandlerStudentReport(t *testing.T) {
	svc := &reportServiceMock{}
	handler := NewReportHandler(svc, &exportServiceMock{})

	c, w := newGinContext(http.MethodGet, "/reports/students/s1?from=2024-03-01&to=2024-03-31&facultyId=f2", adminClaims)
	c.Params = gin.Params{{Key: "id", Value: "s1"}}
	handler.StudentReport(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Caller{ID: "admin", Role: models.RoleAdmin}, svc.caller)
	assert.Equal(t, "s1", svc.student.StudentID)
	assert.Equal(t, "f2", svc.student.FacultyID)
	require.NotNil(t, svc.student.From)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *svc.student.From)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), *svc.student.To)

	var body struct {
		Data struct {
			Student struct {
				ID string `json:"id"`
			} `json:"student"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "s1", body.Data.Student.ID)
}

func TestReportHandlerRejectsBadDates(t *testing.T) {
	svc := &reportServiceMock{}
	handler := NewReportHandler(svc, &exportServiceMock{})

	c, w := newGinContext(http.MethodGet, "/reports/tasks?from=03/01/2024", adminClaims)
	handler.Tasks(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.caller.ID, "service must not be called")
}

func TestReportHandlerRequiresClaims(t *testing.T) {
	handler := NewReportHandler(&reportServiceMock{}, &exportServiceMock{})

	c, w := newGinContext(http.MethodGet, "/reports/assessments", nil)
	handler.Assessments(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReportHandlerFacultyReportResolvesMe(t *testing.T) {
	svc := &reportServiceMock{}
	handler := NewReportHandler(svc, &exportServiceMock{})

	c, w := newGinContext(http.MethodGet, "/reports/faculty/me", facultyClaims)
	c.Params = gin.Params{{Key: "id", Value: "me"}}
	handler.FacultyReport(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "f1", svc.faculty.FacultyID)
	assert.Nil(t, svc.faculty.From)
}

func TestReportHandlerMapsServiceErrors(t *testing.T) {
	svc := &reportServiceMock{err: appErrors.Clone(appErrors.ErrForbidden, "faculty may only view their own report")}
	handler := NewReportHandler(svc, &exportServiceMock{})

	c, w := newGinContext(http.MethodGet, "/reports/faculty/f2", facultyClaims)
	c.Params = gin.Params{{Key: "id", Value: "f2"}}
	handler.FacultyReport(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	svc.err = appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	c, w = newGinContext(http.MethodGet, "/reports/tasks/r9", adminClaims)
	c.Params = gin.Params{{Key: "id", Value: "r9"}}
	handler.Assignment(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "r9", svc.rowID)
}

func TestReportHandlerMonthlyAttendance(t *testing.T) {
	svc := &reportServiceMock{}
	handler := NewReportHandler(svc, &exportServiceMock{})

	c, w := newGinContext(http.MethodGet, "/reports/attendance/monthly?year=2024&month=3&subject=Math", adminClaims)
	handler.MonthlyAttendance(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.MonthlyAttendanceRequest{Year: 2024, Month: 3, Subject: "Math"}, svc.monthly)

	c, w = newGinContext(http.MethodGet, "/reports/attendance/monthly?year=2024&month=march", adminClaims)
	handler.MonthlyAttendance(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandlerExports(t *testing.T) {
	exports := &exportServiceMock{}
	handler := NewReportHandler(&reportServiceMock{}, exports)

	c, w := newGinContext(http.MethodGet, "/reports/tasks/export?format=csv", adminClaims)
	handler.ExportTasks(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", exports.format)
	assert.Equal(t, `attachment; filename="report.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "a,b\n", w.Body.String())

	exports.err = appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	c, w = newGinContext(http.MethodGet, "/reports/assessments/export?format=xls", adminClaims)
	handler.ExportAssessments(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newGinContext(http.MethodGet, "/reports/attendance/monthly/export?year=2024&month=2&format=pdf", adminClaims)
	handler.ExportMonthlyAttendance(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "pdf", exports.format)
}
