package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-reporting-api/internal/analytics"
	"github.com/noah-isme/sma-reporting-api/internal/dto"
	"github.com/noah-isme/sma-reporting-api/internal/models"
	appErrors "github.com/noah-isme/sma-reporting-api/pkg/errors"
)

// Report names used as metric labels and log fields.
const (
	ReportStudentDetailed    = "student_detailed"
	ReportFacultyPerformance = "faculty_performance"
	ReportMonthlyAttendance  = "monthly_attendance"
	ReportAssessmentMarks    = "assessment_marks"
	ReportTaskSubmission     = "task_submission"
	ReportAssignment         = "assignment"
)

type attendanceProvider interface {
	AttendanceBy(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
}

type markProvider interface {
	MarksBy(ctx context.Context, filter models.MarkFilter) ([]models.MarkRecord, error)
}

type assignmentProvider interface {
	AssignmentsBy(ctx context.Context, filter models.AssignmentFilter) ([]models.AssignmentRow, error)
	FindAssignmentRow(ctx context.Context, id string) (*models.AssignmentRow, error)
	SubmissionsForAssignment(ctx context.Context, assignmentID string) ([]models.SubmissionRecord, error)
	SubmissionsForAssignments(ctx context.Context, assignmentIDs []string) ([]models.SubmissionRecord, error)
}

type quizProvider interface {
	QuizzesBy(ctx context.Context, filter models.QuizFilter) ([]models.Quiz, error)
	QuizAttemptsBy(ctx context.Context, filter models.QuizAttemptFilter) ([]models.QuizAttemptRecord, error)
}

type feedbackProvider interface {
	FeedbackBy(ctx context.Context, filter models.FeedbackFilter) ([]models.FeedbackRecord, error)
}

type directoryProvider interface {
	AllStudents(ctx context.Context) ([]models.StudentIdentity, error)
	AllFaculty(ctx context.Context) ([]models.FacultyIdentity, error)
	FindStudent(ctx context.Context, id string) (*models.StudentIdentity, error)
	FindFaculty(ctx context.Context, id string) (*models.FacultyIdentity, error)
}

// ReportProviders bundles the record stores reports read from.
type ReportProviders struct {
	Attendance  attendanceProvider
	Marks       markProvider
	Assignments assignmentProvider
	Quizzes     quizProvider
	Feedback    feedbackProvider
	Directory   directoryProvider
}

// ReportConfig tunes report building.
type ReportConfig struct {
	Location         *time.Location
	RecentTasksLimit int
	DefaultRangeDays int
}

// ReportService assembles the composite reports from provider records.
type ReportService struct {
	providers ReportProviders
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       ReportConfig
	now       func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(providers ReportProviders, cfg ReportConfig, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	registerReportValidations(validate)
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.RecentTasksLimit <= 0 {
		cfg.RecentTasksLimit = 10
	}
	if cfg.DefaultRangeDays <= 0 {
		cfg.DefaultRangeDays = 30
	}
	return &ReportService{
		providers: providers,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

func registerReportValidations(v *validator.Validate) {
	_ = v.RegisterValidation("report_format", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case dto.FormatCSV, dto.FormatPDF:
			return true
		default:
			return false
		}
	})
}

// StudentReport builds the detailed dossier of one student.
func (s *ReportService) StudentReport(ctx context.Context, caller models.Caller, req dto.StudentReportRequest) (report *dto.StudentDetailedReport, err error) {
	defer s.finish(ReportStudentDetailed, time.Now(), &err)

	if err := s.validate(req); err != nil {
		return nil, err
	}
	scope, err := s.resolveScope(caller, req.FacultyID)
	if err != nil {
		return nil, err
	}
	period, err := s.period(req.From, req.To)
	if err != nil {
		return nil, err
	}
	student, err := s.findStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	from, to := period.Bounds()

	attendance, err := fetch(s, "attendance_by", func() ([]models.AttendanceRecord, error) {
		return s.providers.Attendance.AttendanceBy(ctx, models.AttendanceFilter{StudentID: student.ID, FacultyID: scope.FacultyID, DateFrom: from, DateTo: to})
	})
	if err != nil {
		return nil, err
	}
	marks, err := fetch(s, "marks_by", func() ([]models.MarkRecord, error) {
		return s.providers.Marks.MarksBy(ctx, models.MarkFilter{StudentID: student.ID, FacultyID: scope.FacultyID, DateFrom: from, DateTo: to})
	})
	if err != nil {
		return nil, err
	}
	rows, err := fetch(s, "assignments_by", func() ([]models.AssignmentRow, error) {
		return s.providers.Assignments.AssignmentsBy(ctx, models.AssignmentFilter{AssignedTo: student.ID, AssignedBy: scope.FacultyID, DateFrom: from, DateTo: to})
	})
	if err != nil {
		return nil, err
	}
	rows = analytics.Scoped(rows, scope, analytics.AssignmentFaculty)
	submissions, err := s.submissionsFor(ctx, rows)
	if err != nil {
		return nil, err
	}
	quizzes, err := fetch(s, "quizzes_by", func() ([]models.Quiz, error) {
		return s.providers.Quizzes.QuizzesBy(ctx, models.QuizFilter{CreatedBy: scope.FacultyID, DateFrom: from, DateTo: to})
	})
	if err != nil {
		return nil, err
	}
	quizzes = analytics.Scoped(quizzes, scope, analytics.QuizFaculty)
	attempts, err := fetch(s, "quiz_attempts_by", func() ([]models.QuizAttemptRecord, error) {
		return s.providers.Quizzes.QuizAttemptsBy(ctx, models.QuizAttemptFilter{StudentID: student.ID, QuizIDs: analytics.QuizIDs(quizzes), DateFrom: from, DateTo: to})
	})
	if err != nil {
		return nil, err
	}
	feedback, err := fetch(s, "feedback_by", func() ([]models.FeedbackRecord, error) {
		return s.providers.Feedback.FeedbackBy(ctx, models.FeedbackFilter{StudentID: student.ID, FacultyID: scope.FacultyID, DateFrom: from, DateTo: to})
	})
	if err != nil {
		return nil, err
	}

	attendance = analytics.Scoped(attendance, scope, analytics.AttendanceFaculty)
	marks = s.usableMarks(analytics.Scoped(marks, scope, analytics.MarkFaculty))
	feedback = analytics.Scoped(feedback, scope, analytics.FeedbackFaculty)

	subjects := analytics.SummarizeStudentSubjects(marks)
	report = &dto.StudentDetailedReport{
		Student:             *student,
		Period:              periodOf(period),
		Attendance:          analytics.SummarizeAttendance(attendance),
		AttendanceBySubject: analytics.SummarizeAttendanceBySubject(attendance),
		Subjects:            subjects,
		OverallPercentage:   analytics.OverallPercentage(subjects),
		Tasks:               analytics.SummarizeStudentTasks(rows, submissions, s.cfg.Location),
		Quizzes:             analytics.SummarizeStudentQuizzes(quizzes, attempts),
		Feedback:            analytics.SummarizeStudentFeedback(feedback),
		GeneratedAt:         s.now().UTC(),
	}
	if len(subjects) > 0 {
		report.OverallGrade = analytics.GradeFor(report.OverallPercentage)
	}
	return report, nil
}

// FacultyReport builds the performance scorecard of one faculty member. Faculty callers may only
// request their own scorecard.
func (s *ReportService) FacultyReport(ctx context.Context, caller models.Caller, req dto.FacultyReportRequest) (report *dto.FacultyPerformanceReport, err error) {
	defer s.finish(ReportFacultyPerformance, time.Now(), &err)

	if err := s.validate(req); err != nil {
		return nil, err
	}
	scope, err := s.resolveScope(caller, req.FacultyID)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(req.FacultyID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "faculty may only view their own report")
	}
	period, err := s.period(req.From, req.To)
	if err != nil {
		return nil, err
	}
	faculty, err := s.findFaculty(ctx, req.FacultyID)
	if err != nil {
		return nil, err
	}
	from, to := period.Bounds()

	attendance, err := fetch(s, "attendance_by", func() ([]models.AttendanceRecord, error) {
		return s.providers.Attendance.AttendanceBy(ctx, models.AttendanceFilter{FacultyID: faculty.ID, DateFrom: from, DateTo: to})
	})
	if err != nil {
		return nil, err
	}
	marks, err := fetch(s, "marks_by", func() ([]models.MarkRecord, error) {
		return s.providers.Marks.MarksBy(ctx, models.MarkFilter{FacultyID: faculty.ID, DateFrom: from, DateTo: to})
	})
	if err != nil {
		return nil, err
	}
	rows, err := fetch(s, "assignments_by", func() ([]models.AssignmentRow, error) {
		return s.providers.Assignments.AssignmentsBy(ctx, models.AssignmentFilter{AssignedBy: faculty.ID, DateFrom: from, DateTo: to})
	})
	if err != nil {
		return nil, err
	}
	submissions, err := s.submissionsFor(ctx, rows)
	if err != nil {
		return nil, err
	}
	quizzes, err := fetch(s, "quizzes_by", func() ([]models.Quiz, error) {
		return s.providers.Quizzes.QuizzesBy(ctx, models.QuizFilter{CreatedBy: faculty.ID, DateFrom: from, DateTo: to})
	})
	if err != nil {
		return nil, err
	}
	attempts, err := fetch(s, "quiz_attempts_by", func() ([]models.QuizAttemptRecord, error) {
		return s.providers.Quizzes.QuizAttemptsBy(ctx, models.QuizAttemptFilter{QuizIDs: analytics.QuizIDs(quizzes), DateFrom: from, DateTo: to})
	})
	if err != nil {
		return nil, err
	}
	feedback, err := fetch(s, "feedback_by", func() ([]models.FeedbackRecord, error) {
		return s.providers.Feedback.FeedbackBy(ctx, models.FeedbackFilter{FacultyID: faculty.ID, DateFrom: from, DateTo: to})
	})
	if err != nil {
		return nil, err
	}

	tasks := analytics.SummarizeFacultyAssignments(rows, submissions, s.cfg.Location)
	report = &dto.FacultyPerformanceReport{
		Faculty: *faculty,
		Period:  periodOf(period),
		Attendance: dto.FacultyAttendance{
			AttendanceSummary: analytics.SummarizeAttendance(attendance),
			ClassesConducted:  analytics.DistinctDays(attendance),
			BySubject:         analytics.SummarizeAttendanceBySubject(attendance),
		},
		Assessments: analytics.SummarizeAssessments(s.usableMarks(marks)),
		Tasks:       taskOverview(tasks, s.cfg.RecentTasksLimit),
		Quizzes:     analytics.SummarizeFacultyQuizzes(quizzes, attempts),
		Feedback:    analytics.SummarizeFacultyFeedback(feedback, rows),
		GeneratedAt: s.now().UTC(),
	}
	return report, nil
}

// MonthlyAttendanceReport builds the attendance register of one calendar month.
func (s *ReportService) MonthlyAttendanceReport(ctx context.Context, caller models.Caller, req dto.MonthlyAttendanceRequest) (report *dto.MonthlyAttendanceReport, err error) {
	defer s.finish(ReportMonthlyAttendance, time.Now(), &err)

	if err := s.validate(req); err != nil {
		return nil, err
	}
	scope, err := s.resolveScope(caller, req.FacultyID)
	if err != nil {
		return nil, err
	}
	month := models.MonthRange(req.Year, time.Month(req.Month), s.cfg.Location)
	from, to := month.Bounds()

	records, err := fetch(s, "attendance_by", func() ([]models.AttendanceRecord, error) {
		return s.providers.Attendance.AttendanceBy(ctx, models.AttendanceFilter{FacultyID: scope.FacultyID, Subject: strings.TrimSpace(req.Subject), DateFrom: from, DateTo: to})
	})
	if err != nil {
		return nil, err
	}
	records = analytics.Scoped(records, scope, analytics.AttendanceFaculty)
	dir, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}

	groups := analytics.SummarizeMonthlyAttendance(records)
	report = &dto.MonthlyAttendanceReport{
		Year:        req.Year,
		Month:       req.Month,
		DaysInMonth: month.To.Day(),
		Period:      periodOf(month),
		Sheets:      make([]dto.MonthlyAttendanceSheet, 0, len(groups)),
		GeneratedAt: s.now().UTC(),
	}
	for _, group := range groups {
		sheet := dto.MonthlyAttendanceSheet{
			FacultyID:      group.FacultyID,
			FacultyName:    dir.facultyName(group.FacultyID),
			Subject:        group.Subject,
			TotalClassDays: group.TotalClassDays,
			Students:       make([]dto.MonthlyStudentRow, 0, len(group.Students)),
		}
		for _, row := range group.Students {
			sheet.Students = append(sheet.Students, dto.MonthlyStudentRow{StudentRef: dir.student(row.StudentID), MonthlyStudentAttendance: row})
		}
		analytics.SortByRollNumber(sheet.Students, func(r dto.MonthlyStudentRow) *string { return r.RollNumber })
		report.Sheets = append(report.Sheets, sheet)
	}
	return report, nil
}

// AssessmentMarksReport builds per-assessment breakdowns in range.
func (s *ReportService) AssessmentMarksReport(ctx context.Context, caller models.Caller, req dto.AssessmentReportRequest) (report *dto.AssessmentMarksReport, err error) {
	defer s.finish(ReportAssessmentMarks, time.Now(), &err)

	if err := s.validate(req); err != nil {
		return nil, err
	}
	scope, err := s.resolveScope(caller, req.FacultyID)
	if err != nil {
		return nil, err
	}
	period, err := s.period(req.From, req.To)
	if err != nil {
		return nil, err
	}
	from, to := period.Bounds()

	marks, err := fetch(s, "marks_by", func() ([]models.MarkRecord, error) {
		return s.providers.Marks.MarksBy(ctx, models.MarkFilter{
			FacultyID:      scope.FacultyID,
			Subject:        strings.TrimSpace(req.Subject),
			AssessmentType: strings.TrimSpace(req.AssessmentType),
			DateFrom:       from,
			DateTo:         to,
		})
	})
	if err != nil {
		return nil, err
	}
	marks = s.usableMarks(analytics.Scoped(marks, scope, analytics.MarkFaculty))
	dir, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}

	summaries := analytics.SummarizeAssessments(marks)
	report = &dto.AssessmentMarksReport{
		Period:      periodOf(period),
		Assessments: make([]dto.AssessmentSheet, 0, len(summaries)),
		GeneratedAt: s.now().UTC(),
	}
	for _, summary := range summaries {
		sheet := dto.AssessmentSheet{
			AssessmentSummary: summary,
			FacultyName:       dir.facultyName(summary.FacultyID),
			Students:          make([]dto.AssessmentStudentRow, 0, len(summary.Students)),
		}
		for _, mark := range summary.Students {
			sheet.Students = append(sheet.Students, dto.AssessmentStudentRow{StudentRef: dir.student(mark.StudentID), StudentMark: mark})
		}
		analytics.SortByRollNumber(sheet.Students, func(r dto.AssessmentStudentRow) *string { return r.RollNumber })
		report.Assessments = append(report.Assessments, sheet)
	}
	return report, nil
}

// TaskSubmissionReport builds per-assignment submission sheets in range.
func (s *ReportService) TaskSubmissionReport(ctx context.Context, caller models.Caller, req dto.TaskReportRequest) (report *dto.TaskSubmissionReport, err error) {
	defer s.finish(ReportTaskSubmission, time.Now(), &err)

	if err := s.validate(req); err != nil {
		return nil, err
	}
	scope, err := s.resolveScope(caller, req.FacultyID)
	if err != nil {
		return nil, err
	}
	period, err := s.period(req.From, req.To)
	if err != nil {
		return nil, err
	}
	from, to := period.Bounds()

	rows, err := fetch(s, "assignments_by", func() ([]models.AssignmentRow, error) {
		return s.providers.Assignments.AssignmentsBy(ctx, models.AssignmentFilter{AssignedBy: scope.FacultyID, DateFrom: from, DateTo: to})
	})
	if err != nil {
		return nil, err
	}
	rows = analytics.Scoped(rows, scope, analytics.AssignmentFaculty)
	submissions, err := s.submissionsFor(ctx, rows)
	if err != nil {
		return nil, err
	}
	dir, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}

	summary := analytics.SummarizeFacultyAssignments(rows, submissions, s.cfg.Location)
	report = &dto.TaskSubmissionReport{
		Period: periodOf(period),
		Totals: dto.TaskTotals{
			TotalAssignments:      summary.TotalAssignments,
			TotalStudentsAssigned: summary.TotalStudentsAssigned,
			TotalSubmitted:        summary.TotalSubmitted,
			TotalCompleted:        summary.TotalCompleted,
			TotalPending:          summary.TotalPending,
			TotalLate:             summary.TotalLate,
			AverageCompletionRate: summary.AverageCompletionRate,
			AverageSubmissionRate: summary.AverageSubmissionRate,
			OverallSubmissionRate: summary.OverallSubmissionRate,
			OverallCompletionRate: summary.OverallCompletionRate,
			AverageDaysToSubmit:   summary.AverageDaysToSubmit,
		},
		Assignments: make([]dto.AssignmentSheet, 0, len(summary.Assignments)),
		GeneratedAt: s.now().UTC(),
	}
	for _, assignment := range summary.Assignments {
		report.Assignments = append(report.Assignments, dir.assignmentSheet(assignment))
	}
	return report, nil
}

// AssignmentReport summarises the logical assignment a single assignment row belongs to.
func (s *ReportService) AssignmentReport(ctx context.Context, caller models.Caller, rowID string) (sheet *dto.AssignmentSheet, err error) {
	defer s.finish(ReportAssignment, time.Now(), &err)

	if strings.TrimSpace(rowID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "assignment id is required")
	}
	scope, err := s.resolveScope(caller, "")
	if err != nil {
		return nil, err
	}
	row, err := s.providers.Assignments.FindAssignmentRow(ctx, rowID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	if !scope.Allows(row.AssignedBy) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "assignment belongs to another faculty")
	}

	siblings, err := fetch(s, "assignments_by", func() ([]models.AssignmentRow, error) {
		return s.providers.Assignments.AssignmentsBy(ctx, models.AssignmentFilter{AssignedBy: row.AssignedBy, Title: row.Title})
	})
	if err != nil {
		return nil, err
	}
	key := analytics.AssignmentKeyOf(*row, s.cfg.Location)
	rows := analytics.Filter(siblings, func(r models.AssignmentRow) bool {
		return analytics.AssignmentKeyOf(r, s.cfg.Location) == key
	})
	if !containsRow(rows, row.ID) {
		rows = append(rows, *row)
	}

	var submissions []models.SubmissionRecord
	if len(rows) == 1 {
		submissions, err = fetch(s, "submissions_for_assignment", func() ([]models.SubmissionRecord, error) {
			return s.providers.Assignments.SubmissionsForAssignment(ctx, row.ID)
		})
	} else {
		submissions, err = s.submissionsFor(ctx, rows)
	}
	if err != nil {
		return nil, err
	}
	dir, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}

	logical := analytics.ReconstructAssignments(rows, s.cfg.Location)
	result := dir.assignmentSheet(analytics.SummarizeAssignment(logical[0], submissions, s.cfg.Location))
	return &result, nil
}

func (s *ReportService) finish(report string, start time.Time, errp *error) {
	elapsed := time.Since(start)
	var err error
	if errp != nil {
		err = *errp
	}
	s.metrics.ObserveReportBuild(report, elapsed, err)
	if err != nil {
		s.logger.Debug("report build failed", zap.String("report", report), zap.Duration("duration", elapsed), zap.Error(err))
		return
	}
	s.logger.Debug("report built", zap.String("report", report), zap.Duration("duration", elapsed))
}

func (s *ReportService) validate(req interface{}) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report request")
	}
	return nil
}

func (s *ReportService) resolveScope(caller models.Caller, facultyID string) (analytics.Scope, error) {
	scope, err := analytics.ResolveScope(caller.Role, caller.ID, facultyID)
	switch {
	case err == nil:
		return scope, nil
	case errors.Is(err, analytics.ErrMissingCaller):
		return analytics.Scope{}, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "caller id missing")
	default:
		return analytics.Scope{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unsupported role")
	}
}

// period resolves optional request bounds into calendar days of the report location. A missing start
// reaches back DefaultRangeDays from the end; a missing end is today.
func (s *ReportService) period(from, to *time.Time) (models.DateRange, error) {
	loc := s.cfg.Location
	span := s.cfg.DefaultRangeDays - 1

	end := calendarDay(s.now().In(loc), loc)
	if to != nil {
		end = calendarDay(*to, loc)
	}
	start := end.AddDate(0, 0, -span)
	if from != nil {
		start = calendarDay(*from, loc)
	}
	r, err := models.NewDateRange(start, end)
	if err != nil {
		return models.DateRange{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "from must not be after to")
	}
	return r, nil
}

// calendarDay keeps the date t names and re-anchors it at midnight in loc.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func (s *ReportService) findStudent(ctx context.Context, id string) (*models.StudentIdentity, error) {
	student, err := fetch(s, "find_student", func() (*models.StudentIdentity, error) {
		return s.providers.Directory.FindStudent(ctx, id)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, err
	}
	return student, nil
}

func (s *ReportService) findFaculty(ctx context.Context, id string) (*models.FacultyIdentity, error) {
	faculty, err := fetch(s, "find_faculty", func() (*models.FacultyIdentity, error) {
		return s.providers.Directory.FindFaculty(ctx, id)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
		}
		return nil, err
	}
	return faculty, nil
}

func (s *ReportService) submissionsFor(ctx context.Context, rows []models.AssignmentRow) ([]models.SubmissionRecord, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return fetch(s, "submissions_for_assignments", func() ([]models.SubmissionRecord, error) {
		return s.providers.Assignments.SubmissionsForAssignments(ctx, ids)
	})
}

func (s *ReportService) usableMarks(marks []models.MarkRecord) []models.MarkRecord {
	usable := analytics.UsableMarks(marks)
	if dropped := len(marks) - len(usable); dropped > 0 {
		s.logger.Debug("ignoring marks without positive max marks", zap.Int("dropped", dropped))
	}
	return usable
}

func (s *ReportService) loadDirectory(ctx context.Context) (directory, error) {
	students, err := fetch(s, "all_students", func() ([]models.StudentIdentity, error) {
		return s.providers.Directory.AllStudents(ctx)
	})
	if err != nil {
		return directory{}, err
	}
	faculty, err := fetch(s, "all_faculty", func() ([]models.FacultyIdentity, error) {
		return s.providers.Directory.AllFaculty(ctx)
	})
	if err != nil {
		return directory{}, err
	}
	return newDirectory(students, faculty), nil
}

// fetch times a provider call. sql.ErrNoRows passes through untouched so callers can map it to NotFound.
func fetch[T any](s *ReportService, label string, call func() (T, error)) (T, error) {
	start := time.Now()
	result, err := call()
	s.metrics.ObserveProviderQuery(label, time.Since(start))
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, err
		}
		s.logger.Error("provider query failed", zap.String("query", label), zap.Error(err))
		return zero, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report data")
	}
	return result, nil
}

func periodOf(r models.DateRange) dto.ReportPeriod {
	return dto.ReportPeriod{From: r.From, To: r.To}
}

func taskOverview(tasks analytics.FacultyTaskSummary, limit int) dto.FacultyTaskOverview {
	recent := tasks.Assignments
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return dto.FacultyTaskOverview{
		TotalAssignments:      tasks.TotalAssignments,
		TotalStudentsAssigned: tasks.TotalStudentsAssigned,
		TotalSubmitted:        tasks.TotalSubmitted,
		TotalCompleted:        tasks.TotalCompleted,
		TotalPending:          tasks.TotalPending,
		TotalLate:             tasks.TotalLate,
		TotalFilesAttached:    tasks.TotalFilesAttached,
		AverageCompletionRate: tasks.AverageCompletionRate,
		AverageSubmissionRate: tasks.AverageSubmissionRate,
		OverallSubmissionRate: tasks.OverallSubmissionRate,
		OverallCompletionRate: tasks.OverallCompletionRate,
		AverageDaysToSubmit:   tasks.AverageDaysToSubmit,
		RecentTasks:           recent,
	}
}

func containsRow(rows []models.AssignmentRow, id string) bool {
	for _, r := range rows {
		if r.ID == id {
			return true
		}
	}
	return false
}

// directory resolves ids to display names for report rows.
type directory struct {
	students map[string]models.StudentIdentity
	faculty  map[string]models.FacultyIdentity
}

func newDirectory(students []models.StudentIdentity, faculty []models.FacultyIdentity) directory {
	d := directory{
		students: make(map[string]models.StudentIdentity, len(students)),
		faculty:  make(map[string]models.FacultyIdentity, len(faculty)),
	}
	for _, st := range students {
		d.students[st.ID] = st
	}
	for _, f := range faculty {
		d.faculty[f.ID] = f
	}
	return d
}

func (d directory) student(id string) dto.StudentRef {
	var ref dto.StudentRef
	if st, ok := d.students[id]; ok {
		ref.StudentName = st.Name
		ref.RollNumber = st.RollNumber
	}
	return ref
}

func (d directory) facultyName(id string) string {
	if f, ok := d.faculty[id]; ok {
		return f.Name
	}
	return ""
}

func (d directory) assignmentSheet(summary analytics.AssignmentSummary) dto.AssignmentSheet {
	sheet := dto.AssignmentSheet{
		AssignmentSummary: summary,
		FacultyName:       d.facultyName(summary.AssignedBy),
		Students:          make([]dto.SubmissionRow, 0, len(summary.Students)),
	}
	for _, sub := range summary.Students {
		sheet.Students = append(sheet.Students, dto.SubmissionRow{StudentRef: d.student(sub.StudentID), StudentSubmission: sub})
	}
	analytics.SortByRollNumber(sheet.Students, func(r dto.SubmissionRow) *string { return r.RollNumber })
	return sheet
}
