package service

import (
	"math"
	"math/rand"
	"time"

	jedt "github.com/varunpaulreddy/JEDT"
	"github.com/varunpaulreddy/JEDT/internal/registry"
)

// ----------- Trend constants -----------
const (
	trendHealthStart = 95.0 // synthetic decay curve start
	trendHealthEnd   = 85.0 // synthetic decay curve end
	trendJitter      = 1.0  // uniform half-range added per day

	componentJitter = 1.5 // uniform half-range on component health
)

// componentProfile drives the five-row component breakdown. Offsets apply to
// the record's health score: penalty when any of the component's parts sit on
// the critical list, bonus otherwise; the status flag compares against the
// per-component threshold.
type componentProfile struct {
	Name      string
	Parts     []string // critical-component names that belong to this component
	Penalty   float64
	Bonus     float64
	Threshold float64
}

var componentProfiles = []componentProfile{
	{Name: "Fan", Parts: []string{jedt.ComponentFanBlade, jedt.ComponentFanDisk}, Penalty: 7.5, Bonus: 1.5, Threshold: 80},
	{Name: "Compressor", Parts: []string{jedt.ComponentHPC, jedt.ComponentCompressorBlade}, Penalty: 8.5, Bonus: 1.0, Threshold: 80},
	{Name: "Combustor", Parts: []string{jedt.ComponentCombustor}, Penalty: 5.0, Bonus: 2.5, Threshold: 75},
	{Name: "Turbine", Parts: []string{jedt.ComponentTurbineBlade}, Penalty: 6.0, Bonus: 2.0, Threshold: 75},
	{Name: "Nozzle", Parts: nil, Penalty: 0, Bonus: 3.0, Threshold: 70},
}

// HistoryService produces the time-bucketed trend and the per-component
// breakdown used by the dashboard charts. The health trajectory in History is
// an independent synthetic decay curve, NOT derived from the sensor values
// each point is paired with.
type HistoryService struct {
	reg       *registry.Registry
	telemetry Telemetry
	health    Health
	seed      func() int64
}

func NewHistoryService(reg *registry.Registry, telemetry Telemetry, health Health) *HistoryService {
	return &HistoryService{reg: reg, telemetry: telemetry, health: health, seed: defaultSeed}
}

// History returns one point per simulated day, oldest first, ending today.
// Unknown ids follow the telemetry generator's silent-empty policy.
func (s *HistoryService) History(engineID string, days int) []jedt.HistoryPoint {
	rec, ok := s.reg.Lookup(engineID)
	if !ok || days <= 0 {
		return []jedt.HistoryPoint{}
	}

	series := s.telemetry.Generate(engineID, days)
	if len(series) == 0 {
		return []jedt.HistoryPoint{}
	}

	rng := rand.New(rand.NewSource(s.seed()))
	today := time.Now().UTC().Truncate(24 * time.Hour)
	span := float64(days - 1)
	if span < 1 {
		span = 1
	}

	out := make([]jedt.HistoryPoint, 0, days)
	for i, reading := range series {
		decay := trendHealthStart - (trendHealthStart-trendHealthEnd)*float64(i)/span
		hs := clamp(decay+uniform(rng, trendJitter), 0, 100)

		out = append(out, jedt.HistoryPoint{
			Date:           today.AddDate(0, 0, -(days - 1 - i)),
			HealthScore:    round1(hs),
			FuelEfficiency: round3(fuelEfficiency(reading.FuelFlow)),
			Temperature:    reading.EGT,
			Vibration:      reading.Vibration,
			Cycles:         rec.Cycles - (days - 1 - i),
		})
	}
	return out
}

// ComponentHealth breaks one assessment into the five major components. It is
// built on Assess, so an unknown id propagates ErrEngineNotFound.
func (s *HistoryService) ComponentHealth(engineID string) ([]jedt.ComponentHealth, error) {
	assessment, err := s.health.Assess(engineID)
	if err != nil {
		return nil, err
	}
	rec, _ := s.reg.Lookup(engineID) // present: Assess succeeded

	rng := rand.New(rand.NewSource(s.seed()))
	out := make([]jedt.ComponentHealth, 0, len(componentProfiles))
	for _, p := range componentProfiles {
		offset := p.Bonus
		if anyCritical(assessment.CriticalComponents, p.Parts) {
			offset = -p.Penalty
		}
		health := round1(clamp(rec.HealthScore+offset+uniform(rng, componentJitter), 0, 100))

		status := jedt.ComponentStatusNormal
		if health < p.Threshold {
			status = jedt.ComponentStatusAttention
		}
		out = append(out, jedt.ComponentHealth{Component: p.Name, Health: health, Status: status})
	}
	return out, nil
}

func anyCritical(critical, parts []string) bool {
	for _, part := range parts {
		for _, c := range critical {
			if c == part {
				return true
			}
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
