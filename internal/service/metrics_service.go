package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry            *prometheus.Registry
	handler             http.Handler
	requestDuration     *prometheus.HistogramVec
	requestTotal        *prometheus.CounterVec
	providerDuration    *prometheus.HistogramVec
	reportBuildDuration *prometheus.HistogramVec
	reportBuildErrors   *prometheus.CounterVec
	reportRequests      *prometheus.CounterVec

	requestCount          uint64
	requestDurationTotal  uint64
	providerCount         uint64
	providerDurationTotal uint64
	reportCount           uint64
	reportDurationTotal   uint64
	reportErrorCount      uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	providerDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "provider_query_duration_seconds",
		Help:    "Duration of record provider queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	reportBuildDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "report_build_duration_seconds",
		Help:    "Duration of report builds including provider calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"report"})

	reportBuildErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_build_errors_total",
		Help: "Report builds that returned an error",
	}, []string{"report"})

	reportRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_requests_total",
		Help: "Authenticated report requests by route and caller role",
	}, []string{"route", "role", "status"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, providerDuration, reportBuildDuration, reportBuildErrors, reportRequests, goroutines)

	return &MetricsService{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		providerDuration:    providerDuration,
		reportBuildDuration: reportBuildDuration,
		reportBuildErrors:   reportBuildErrors,
		reportRequests:      reportRequests,
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveProviderQuery records the timing of one record provider call.
func (m *MetricsService) ObserveProviderQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.providerDuration.WithLabelValues(label).Observe(duration.Seconds())
	atomic.AddUint64(&m.providerCount, 1)
	atomic.AddUint64(&m.providerDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveReportBuild records a finished report build; failed builds also bump the error counter.
func (m *MetricsService) ObserveReportBuild(report string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.reportBuildDuration.WithLabelValues(report).Observe(duration.Seconds())
	atomic.AddUint64(&m.reportCount, 1)
	atomic.AddUint64(&m.reportDurationTotal, uint64(duration.Nanoseconds()))
	if err != nil {
		m.reportBuildErrors.WithLabelValues(report).Inc()
		atomic.AddUint64(&m.reportErrorCount, 1)
	}
}

// ObserveReportRequest counts one authenticated report request.
func (m *MetricsService) ObserveReportRequest(route string, role models.UserRole, status int) {
	if m == nil {
		return
	}
	m.reportRequests.WithLabelValues(route, string(role), fmt.Sprintf("%d", status)).Inc()
}

// Snapshot returns aggregated counters for the JSON metrics endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	providers := atomic.LoadUint64(&m.providerCount)
	reports := atomic.LoadUint64(&m.reportCount)

	return models.SystemMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: averageMs(atomic.LoadUint64(&m.requestDurationTotal), requests),
		ProviderQueryCount:       providers,
		AverageProviderQueryMs:   averageMs(atomic.LoadUint64(&m.providerDurationTotal), providers),
		ReportsBuilt:             reports,
		ReportErrors:             atomic.LoadUint64(&m.reportErrorCount),
		AverageReportBuildMs:     averageMs(atomic.LoadUint64(&m.reportDurationTotal), reports),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}

func averageMs(totalNanos, count uint64) float64 {
	if count == 0 {
		return 0
	}
	return float64(totalNanos) / float64(count) / float64(time.Millisecond)
}
