package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sma-reporting-api/internal/service"
)

type pingStub struct{ err error }

func (p pingStub) PingContext(context.Context) error { return p.err }

func TestMetricsHandlerReady(t *testing.T) {
	c, w := newGinContext(http.MethodGet, "/ready", nil)
	NewMetricsHandler(nil, pingStub{}).Ready(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newGinContext(http.MethodGet, "/ready", nil)
	NewMetricsHandler(nil, pingStub{err: errors.New("refused")}).Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsHandlerSummaryAndPrometheus(t *testing.T) {
	metrics := service.NewMetricsService()
	metrics.ObserveReportBuild(service.ReportTaskSubmission, 0, nil)
	h := NewMetricsHandler(metrics, nil)

	c, w := newGinContext(http.MethodGet, "/metrics/summary", nil)
	h.Summary(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reportsBuilt":1`)

	c, w = newGinContext(http.MethodGet, "/metrics", nil)
	h.Prometheus(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "report_build_duration_seconds")

	c, w = newGinContext(http.MethodGet, "/metrics", nil)
	NewMetricsHandler(nil, nil).Prometheus(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
