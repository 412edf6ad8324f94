package service

import (
	"fmt"
	"math"
	"time"

	jedt "github.com/varunpaulreddy/JEDT"
	"github.com/varunpaulreddy/JEDT/internal/observability"
	"github.com/varunpaulreddy/JEDT/internal/registry"
)

// ----------- Assessment constants -----------
const (
	lifeExtensionFactor = 1.3  // estimated total life = accumulated cycles × 1.3
	baseDegradationRate = 0.15 // % per 100 cycles
	fanDegradationRate  = 0.05 // extra when Fan Degradation is present
	variableCondsRate   = 0.03 // extra for FD002/FD004 variable flight conditions
	maxFaultProbability = 0.8  // probability never reaches certainty

	criticalHealthGate = 80.0 // below this, combustor/turbine join the list
)

// Recommendation thresholds, least to most severe; the lowest matching tier
// wins.
const (
	routineHealthMin    = 85.0
	inspectionHealthMin = 75.0
	urgentHealthMax     = 70.0
)

// HealthService derives the maintenance picture for one engine from its
// registry record. Unlike the telemetry generator, an unknown id here is an
// explicit failure naming the id; callers rely on that asymmetry.
type HealthService struct {
	reg     *registry.Registry
	metrics *observability.Metrics
}

func NewHealthService(reg *registry.Registry, m *observability.Metrics) *HealthService {
	return &HealthService{reg: reg, metrics: m}
}

// Assess computes a fresh HealthAssessment for engineID.
func (s *HealthService) Assess(engineID string) (jedt.HealthAssessment, error) {
	rec, ok := s.reg.Lookup(engineID)
	if !ok {
		return jedt.HealthAssessment{}, fmt.Errorf("assess %q: %w", engineID, jedt.ErrEngineNotFound)
	}

	estimatedTotalLife := float64(rec.Cycles) * lifeExtensionFactor
	rul := int(math.Round(estimatedTotalLife - float64(rec.Cycles)))
	if rul < 0 {
		rul = 0
	}

	a := jedt.HealthAssessment{
		EngineID:                  rec.EngineID,
		RemainingUsefulLife:       rul,
		DegradationRate:           degradationRate(rec),
		FaultProbability:          faultProbability(rec.HealthScore),
		CriticalComponents:        criticalComponents(rec),
		MaintenanceRecommendation: recommendation(rec.HealthScore),
		GeneratedAt:               time.Now().UTC(),
	}

	if s.metrics != nil {
		s.metrics.Assessments.Inc()
	}
	return a, nil
}

// degradationRate starts from the fleet base and is biased by fault modes and
// by the variable-flight-condition datasets.
func degradationRate(rec jedt.EngineRecord) float64 {
	rate := baseDegradationRate
	if hasFault(rec.FaultModes, jedt.FaultFanDegradation) {
		rate += fanDegradationRate
	}
	if rec.DatasetClass == jedt.DatasetFD002 || rec.DatasetClass == jedt.DatasetFD004 {
		rate += variableCondsRate
	}
	return round2(rate)
}

// faultProbability maps health onto [0, 0.8]; the cap is by construction.
func faultProbability(healthScore float64) float64 {
	return math.Max(0, (100-healthScore)/100*maxFaultProbability)
}

// criticalComponents unions the fault-mode-gated part sets, then adds the
// combustor and turbine blades once health drops below the gate regardless of
// fault mode.
func criticalComponents(rec jedt.EngineRecord) []string {
	var parts []string
	if hasFault(rec.FaultModes, jedt.FaultHPCDegradation) {
		parts = append(parts, jedt.ComponentHPC, jedt.ComponentCompressorBlade)
	}
	if hasFault(rec.FaultModes, jedt.FaultFanDegradation) {
		parts = append(parts, jedt.ComponentFanBlade, jedt.ComponentFanDisk)
	}
	if rec.HealthScore < criticalHealthGate {
		parts = append(parts, jedt.ComponentCombustor, jedt.ComponentTurbineBlade)
	}
	return parts
}

// recommendation picks exactly one of the four tiers.
func recommendation(healthScore float64) string {
	switch {
	case healthScore < urgentHealthMax:
		return jedt.RecommendImmediate
	case healthScore < inspectionHealthMin:
		return jedt.RecommendMaintenance
	case healthScore < routineHealthMin:
		return jedt.RecommendInspection
	default:
		return jedt.RecommendRoutine
	}
}

func hasFault(modes []string, want string) bool {
	for _, m := range modes {
		if m == want {
			return true
		}
	}
	return false
}
