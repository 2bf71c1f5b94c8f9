package models

import "time"

// SystemMetrics is the JSON snapshot served alongside the Prometheus endpoint.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	ProviderQueryCount       uint64    `json:"providerQueryCount"`
	AverageProviderQueryMs   float64   `json:"averageProviderQueryMs"`
	ReportsBuilt             uint64    `json:"reportsBuilt"`
	ReportErrors             uint64    `json:"reportErrors"`
	AverageReportBuildMs     float64   `json:"averageReportBuildMs"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
