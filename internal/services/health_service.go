package services

import (
	"context"
	"runtime"
	"time"
)

// HealthService reports process liveness and basic runtime stats.
type HealthService struct {
	version   string
	buildTime string
	startTime time.Time
	dashboard *DashboardService
}

// HealthStatus is the health check response body.
type HealthStatus struct {
	Status    string       `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Version   string       `json:"version"`
	BuildTime string       `json:"build_time,omitempty"`
	Uptime    string       `json:"uptime"`
	Runtime   RuntimeStats `json:"runtime"`
	Datasets  int          `json:"datasets"`
}

// RuntimeStats carries Go runtime details for the health response.
type RuntimeStats struct {
	GoVersion  string `json:"go_version"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Goroutines int    `json:"goroutines"`
}

// NewHealthService creates a health service.
func NewHealthService(version, buildTime string, dashboard *DashboardService) *HealthService {
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		startTime: time.Now(),
		dashboard: dashboard,
	}
}

// Check returns the current health status. The service is healthy as
// long as the process is serving; there are no external dependencies.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	datasets := 0
	if s.dashboard != nil {
		datasets = len(s.dashboard.SnapshotIDs())
	}
	return HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		BuildTime: s.buildTime,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Runtime: RuntimeStats{
			GoVersion:  runtime.Version(),
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			Goroutines: runtime.NumGoroutine(),
		},
		Datasets: datasets,
	}
}
