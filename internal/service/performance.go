package service

import (
	"math"

	jedt "github.com/varunpaulreddy/JEDT"
	"github.com/varunpaulreddy/JEDT/internal/registry"
)

// ----------- Performance derivation constants -----------
const (
	perfSampleCycles = 10 // length of the internal series; only the last reading is kept

	fuelFlowNominal   = 2500.0 // pph reference for fuel efficiency
	egtNominalC       = 650.0  // °C reference for thermal efficiency
	minFuelEfficiency = 0.7
	minThermalEff     = 0.75
	ratedThrustLbf    = 24000.0
)

// PerformanceService reduces a short synthetic series into headline metrics
// for the dashboard cards. Like the telemetry generator it goes silent on an
// unknown id: the ok return is false and no error is raised.
type PerformanceService struct {
	reg       *registry.Registry
	telemetry Telemetry
}

func NewPerformanceService(reg *registry.Registry, telemetry Telemetry) *PerformanceService {
	return &PerformanceService{reg: reg, telemetry: telemetry}
}

// Derive samples a fresh 10-cycle series and summarizes its last reading.
func (s *PerformanceService) Derive(engineID string) (jedt.PerformanceMetrics, bool) {
	rec, ok := s.reg.Lookup(engineID)
	if !ok {
		return jedt.PerformanceMetrics{}, false
	}
	series := s.telemetry.Generate(engineID, perfSampleCycles)
	if len(series) == 0 {
		return jedt.PerformanceMetrics{}, false
	}
	last := series[len(series)-1]

	return jedt.PerformanceMetrics{
		EngineID:          rec.EngineID,
		FuelEfficiency:    round3(fuelEfficiency(last.FuelFlow)),
		ThermalEfficiency: round3(thermalEfficiency(last.EGT)),
		ThrustOutput:      int(math.Round(ratedThrustLbf * rec.HealthScore / 100)),
	}, true
}

// Both efficiencies are floor-clamped; they never go below their minimums no
// matter how extreme the sampled fuel flow or EGT is.
func fuelEfficiency(fuelFlow float64) float64 {
	return math.Max(minFuelEfficiency, 1-(fuelFlow-fuelFlowNominal)/fuelFlowNominal)
}

func thermalEfficiency(egt float64) float64 {
	return math.Max(minThermalEff, 1-(egt-egtNominalC)/egtNominalC)
}
