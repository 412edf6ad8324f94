package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	jedt "github.com/varunpaulreddy/JEDT"
	"github.com/varunpaulreddy/JEDT/internal/logger"
	"github.com/varunpaulreddy/JEDT/internal/observability"
	"github.com/varunpaulreddy/JEDT/internal/registry"
)

// alertSubjectPrefix is completed with the engine id, e.g.
// fleet.alerts.CMAPSS-FD004-002.
const alertSubjectPrefix = "fleet.alerts."

// MonitorService sweeps the fleet in the background and raises an alert the
// first time an engine enters the urgent tier (and notes when it leaves).
// Only the edge-trigger map is kept in memory; assessments themselves are
// never persisted.
type MonitorService struct {
	reg     *registry.Registry
	health  Health
	alerts  AlertPublisher // nil when no broker is configured
	metrics *observability.Metrics
	log     *logger.Logger

	mu     sync.Mutex
	urgent map[string]bool
}

func NewMonitorService(reg *registry.Registry, health Health, alerts AlertPublisher, m *observability.Metrics, log *logger.Logger) *MonitorService {
	return &MonitorService{
		reg:     reg,
		health:  health,
		alerts:  alerts,
		metrics: m,
		log:     log,
		urgent:  make(map[string]bool),
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *MonitorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.sweep(ctx, now.UTC())
		}
	}
}

// sweep assesses every registered engine once.
func (s *MonitorService) sweep(ctx context.Context, now time.Time) {
	for _, rec := range s.reg.List() {
		assessment, err := s.health.Assess(rec.EngineID)
		if err != nil {
			continue
		}

		isUrgent := assessment.MaintenanceRecommendation == jedt.RecommendImmediate
		if s.transition(rec.EngineID, isUrgent) {
			if isUrgent {
				s.raiseAlert(ctx, rec, assessment, now)
			} else if s.log != nil {
				s.log.Infow("engine_left_urgent_tier", "engine_id", rec.EngineID)
			}
		}
	}
}

// transition records the engine's urgent flag and reports whether it changed.
func (s *MonitorService) transition(engineID string, isUrgent bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.urgent[engineID] == isUrgent {
		return false
	}
	s.urgent[engineID] = isUrgent
	return true
}

// raiseAlert logs the alert and publishes it when a broker is configured.
func (s *MonitorService) raiseAlert(ctx context.Context, rec jedt.EngineRecord, a jedt.HealthAssessment, now time.Time) {
	alert := jedt.FleetAlert{
		EngineID:            rec.EngineID,
		HealthScore:         rec.HealthScore,
		RemainingUsefulLife: a.RemainingUsefulLife,
		Recommendation:      a.MaintenanceRecommendation,
		OccurredAt:          now,
	}

	if s.log != nil {
		s.log.Warnw("engine_urgent_maintenance",
			"engine_id", rec.EngineID,
			"health_score", rec.HealthScore,
			"remaining_useful_life", a.RemainingUsefulLife,
		)
	}

	if s.alerts == nil {
		return
	}
	payload, err := json.Marshal(alert)
	if err != nil {
		return
	}
	if err := s.alerts.Publish(ctx, alertSubjectPrefix+rec.EngineID, payload); err != nil {
		if s.log != nil {
			s.log.Errorw("alert_publish_failed", "engine_id", rec.EngineID, "err", err)
		}
		return
	}
	if s.metrics != nil {
		s.metrics.AlertsPublished.Inc()
	}
}
