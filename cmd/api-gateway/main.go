package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-reporting-api/api/swagger"
	"github.com/noah-isme/sma-reporting-api/internal/handler"
	"github.com/noah-isme/sma-reporting-api/internal/middleware"
	"github.com/noah-isme/sma-reporting-api/internal/models"
	"github.com/noah-isme/sma-reporting-api/internal/repository"
	"github.com/noah-isme/sma-reporting-api/internal/service"
	"github.com/noah-isme/sma-reporting-api/pkg/config"
	"github.com/noah-isme/sma-reporting-api/pkg/database"
	"github.com/noah-isme/sma-reporting-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-reporting-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-reporting-api/pkg/middleware/requestid"
)

// @title SMA Reporting API
// @version 1.0.0
// @description Read-only attendance, marks, task, quiz and feedback reports
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.NewPostgres(ctx, cfg.Database)
	cancel()
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	reportSvc := service.NewReportService(service.ReportProviders{
		Attendance:  repository.NewAttendanceRepository(db),
		Marks:       repository.NewMarkRepository(db),
		Assignments: repository.NewAssignmentRepository(db),
		Quizzes:     repository.NewQuizRepository(db),
		Feedback:    repository.NewFeedbackRepository(db),
		Directory:   repository.NewDirectoryRepository(db),
	}, service.ReportConfig{
		Location:         cfg.Reports.Location(),
		RecentTasksLimit: cfg.Reports.RecentTasksLimit,
		DefaultRangeDays: cfg.Reports.DefaultRangeDays,
	}, validate, metricsSvc, logr)

	exportSvc := service.NewExportService(service.ExportConfig{
		Enabled:     cfg.Reports.ExportsEnabled,
		TitlePrefix: cfg.Reports.ExportTitlePrefix,
	}, validate, logr, nil, nil)

	tokens := service.NewTokenService(cfg.JWT.Secret)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsSvc))
	}

	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", metricsHandler.Prometheus)
		r.GET("/metrics/summary", metricsHandler.Summary)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	reportHandler := handler.NewReportHandler(reportSvc, exportSvc)
	reports := r.Group(cfg.APIPrefix + "/reports")
	reports.Use(middleware.JWT(tokens), middleware.RequireRoles(models.RoleAdmin, models.RoleHOD, models.RoleFaculty))
	{
		reports.GET("/students/:id", reportHandler.StudentReport)
		reports.GET("/faculty/:id", reportHandler.FacultyReport)
		reports.GET("/attendance/monthly", reportHandler.MonthlyAttendance)
		reports.GET("/attendance/monthly/export", reportHandler.ExportMonthlyAttendance)
		reports.GET("/assessments", reportHandler.Assessments)
		reports.GET("/assessments/export", reportHandler.ExportAssessments)
		reports.GET("/tasks", reportHandler.Tasks)
		reports.GET("/tasks/export", reportHandler.ExportTasks)
		reports.GET("/tasks/:id", reportHandler.Assignment)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
