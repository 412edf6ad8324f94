package service

import (
	"context"
	"time"

	jedt "github.com/varunpaulreddy/JEDT"
	"github.com/varunpaulreddy/JEDT/internal/logger"
	"github.com/varunpaulreddy/JEDT/internal/observability"
	"github.com/varunpaulreddy/JEDT/internal/registry"
	"github.com/varunpaulreddy/JEDT/internal/repository"
)

// Fleet exposes read-only views of the engine registry.
type Fleet interface {
	List() []jedt.EngineRecord
	Get(engineID string) (jedt.EngineRecord, bool)
}

// Telemetry generates synthetic sensor series. Unknown engine ids yield an
// empty series, never an error.
type Telemetry interface {
	Generate(engineID string, cycleCount int) []jedt.SensorReading
}

// Health derives the maintenance assessment for one engine. Unknown ids fail
// with jedt.ErrEngineNotFound.
type Health interface {
	Assess(engineID string) (jedt.HealthAssessment, error)
}

// Performance reduces a short telemetry sample into headline metrics; ok is
// false when the engine is unknown.
type Performance interface {
	Derive(engineID string) (jedt.PerformanceMetrics, bool)
}

// History produces degradation trend points and the per-component breakdown.
type History interface {
	History(engineID string, days int) []jedt.HistoryPoint
	ComponentHealth(engineID string) ([]jedt.ComponentHealth, error)
}

// MaintenanceLog exposes the persisted operator maintenance records with
// filtering access.
type MaintenanceLog interface {
	Record(ctx context.Context, p MaintenanceParams) (jedt.MaintenanceEvent, error)
	List(ctx context.Context, f MaintenanceFilter) ([]jedt.MaintenanceEvent, error)
}

// Monitor runs the background loop that sweeps fleet health and raises alerts.
// Stop via context cancellation in main() for graceful shutdown.
type Monitor interface {
	Run(ctx context.Context, tick time.Duration)
}

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// AlertPublisher is satisfied by natsclient.Publisher. A nil publisher
// disables alert fan-out without touching the monitor logic.
type AlertPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte) error
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Fleet
	Telemetry
	Health
	Performance
	History
	MaintenanceLog
	Monitor
	Authorization
}

// Config carries the cross-cutting dependencies the sub-services need beyond
// the registry and the repository layer.
type Config struct {
	Metrics    *observability.Metrics
	Alerts     AlertPublisher // optional
	Log        *logger.Logger
	SigningKey string
	TokenTTL   time.Duration
}

// NewService wires the registry and repository layer into concrete services.
func NewService(reg *registry.Registry, repos *repository.Repository, cfg Config) *Service {
	telemetry := NewTelemetryService(reg, cfg.Metrics)
	health := NewHealthService(reg, cfg.Metrics)

	return &Service{
		Fleet:          NewFleetService(reg),
		Telemetry:      telemetry,
		Health:         health,
		Performance:    NewPerformanceService(reg, telemetry),
		History:        NewHistoryService(reg, telemetry, health),
		MaintenanceLog: NewMaintenanceLogService(reg, repos.Maintenance),
		Monitor:        NewMonitorService(reg, health, cfg.Alerts, cfg.Metrics, cfg.Log),
		Authorization:  NewAuthService(repos.Operators, cfg.SigningKey, cfg.TokenTTL),
	}
}
