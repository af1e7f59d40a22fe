package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/dataset"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts"
)

// ConnectionCounter reports the number of live websocket clients.
type ConnectionCounter interface {
	ClientCount() int
}

// HealthService provides health check functionality
type HealthService struct {
	dataset   *dataset.Dataset
	loadErr   error
	clients   ConnectionCounter
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// DatasetHealth describes the loaded dataset.
type DatasetHealth struct {
	ServiceHealth
	Source   string    `json:"source,omitempty"`
	Rows     int       `json:"rows"`
	Periods  int       `json:"periods"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
}

// NewHealthService creates a health service. ds is nil when loading failed;
// loadErr then explains why.
func NewHealthService(ds *dataset.Dataset, loadErr error, clients ConnectionCounter, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		dataset:   ds,
		loadErr:   loadErr,
		clients:   clients,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   contracts.Version,
	}
	if hs.dataset == nil {
		status.Status = "degraded"
	}

	hs.logger.DebugContext(ctx, "health check",
		slog.String("status", status.Status),
		slog.Duration("uptime", time.Since(hs.startTime)))
	return status
}

// ReadinessCheck reports ready only when the dataset is loaded.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Services:  make(map[string]interface{}),
	}

	data := hs.checkDatasetHealth()
	status.Services["dataset"] = data
	status.Services["websocket"] = hs.checkWebSocketHealth()

	if data.Status != "ready" {
		status.Status = "not_ready"
		hs.logger.WarnContext(ctx, "readiness check failed", slog.String("reason", data.Message))
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	result := map[string]interface{}{
		"version":             info.Version,
		"api_version":         info.APIVersion,
		"data_format_version": info.DataFormat,
		"go_version":          info.GoVersion,
		"os":                  runtime.GOOS,
		"arch":                runtime.GOARCH,
		"uptime":              time.Since(hs.startTime).Seconds(),
		"start_time":          hs.startTime.Format(time.RFC3339),
	}
	if info.BuildTime != "unknown" {
		result["build_time"] = info.BuildTime
	}
	if info.GitCommit != "unknown" {
		result["git_commit"] = info.GitCommit
	}
	return result
}

func (hs *HealthService) checkDatasetHealth() DatasetHealth {
	if hs.dataset == nil {
		msg := "dataset not loaded"
		if hs.loadErr != nil {
			msg = fmt.Sprintf("dataset not loaded: %v", hs.loadErr)
		}
		return DatasetHealth{ServiceHealth: ServiceHealth{Status: "not_ready", Message: msg}}
	}

	return DatasetHealth{
		ServiceHealth: ServiceHealth{Status: "ready"},
		Source:        hs.dataset.Source(),
		Rows:          hs.dataset.Len(),
		Periods:       len(hs.dataset.Periods()),
		LoadedAt:      hs.dataset.LoadedAt(),
	}
}

func (hs *HealthService) checkWebSocketHealth() ServiceHealth {
	health := ServiceHealth{
		Status: "ready",
		Uptime: time.Since(hs.startTime).String(),
	}
	if hs.clients != nil {
		health.Message = fmt.Sprintf("%d clients connected", hs.clients.ClientCount())
	}
	return health
}
