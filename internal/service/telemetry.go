package service

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	jedt "github.com/varunpaulreddy/JEDT"
	"github.com/varunpaulreddy/JEDT/internal/observability"
	"github.com/varunpaulreddy/JEDT/internal/registry"
)

// ----------- Channel baselines (CMAPSS FD001 nominal point) -----------
const (
	t2Base      = 518.67  // fan inlet temperature °R
	t24Base     = 642.68  // LPC outlet temperature °R
	t30Base     = 1589.70 // HPC outlet temperature °R
	t50Base     = 1408.50 // LPT outlet temperature °R
	htBleedBase = 390.0   // bleed enthalpy

	p2Base   = 14.62  // fan inlet pressure psia
	p15Base  = 21.61  // bypass-duct pressure psia
	p24Base  = 19.05  // HPC inlet pressure psia
	p30Base  = 554.36 // HPC outlet pressure psia
	ps30Base = 47.47  // HPC outlet static pressure psia

	nfBase = 2388.0 // fan physical speed rpm
	ncBase = 9065.0 // core physical speed rpm

	traBase      = 100.0  // throttle resolver angle %
	pcnfrBase    = 100.0  // demanded corrected fan speed %
	phiBase      = 521.66 // fuel flow ratio pps/psi
	bprBase      = 8.42   // bypass ratio
	farBBase     = 0.03   // burner fuel-air ratio
	w31Base      = 38.86  // HPT coolant bleed lbm/s
	w32Base      = 23.32  // LPT coolant bleed lbm/s
	fuelFlowBase = 2500.0 // fuel flow pph
	vibBase      = 0.52   // vibration in/s
)

// ----------- Degradation coupling -----------
const (
	// Simulated degradation never collapses below this health factor; values
	// stay physically plausible even for very long series.
	minHealthFactor = 0.6

	t24Wear  = 15.0 // °R added to T24 at full wear
	t30Wear  = 40.0 // °R added to T30 at full wear
	t50Wear  = 60.0 // °R added to T50 at full wear
	speedSag = 0.02 // fractional Nf/Nc loss at full wear
	p30Sag   = 0.05 // fractional P30 loss at full wear
	fuelRise = 0.15 // fractional fuel flow increase at full wear
	vibRise  = 0.85 // in/s added to vibration at full wear

	pressureJitter = 0.01   // multiplicative noise half-range on pressure/ratio channels
	n1Rated        = 2400.0 // rpm at 100% N1
	n2Rated        = 9100.0 // rpm at 100% N2
	tRefRankine    = 518.67 // corrected-speed temperature reference °R
	rankineOffset  = 459.67
)

const cycleSpacing = time.Hour // simulated spacing between readings in a series

// TelemetryService produces synthetic per-cycle sensor series for registered
// engines. Each call builds a fresh *rand.Rand from the seed function, so
// concurrent calls never share a noise source; the default seed keeps the
// documented different-output-per-call behavior, while tests pin it for
// deterministic series.
type TelemetryService struct {
	reg     *registry.Registry
	metrics *observability.Metrics
	seed    func() int64
}

func NewTelemetryService(reg *registry.Registry, m *observability.Metrics) *TelemetryService {
	return &TelemetryService{reg: reg, metrics: m, seed: defaultSeed}
}

var seedSeq atomic.Int64

// defaultSeed mixes wall time with a counter so near-simultaneous calls still
// draw distinct noise.
func defaultSeed() int64 {
	return time.Now().UnixNano() + seedSeq.Add(1)
}

// Generate returns one reading per cycle 1..cycleCount, ascending. An unknown
// engine id returns an empty series, not an error; contrast with
// HealthService.Assess.
func (s *TelemetryService) Generate(engineID string, cycleCount int) []jedt.SensorReading {
	rec, ok := s.reg.Lookup(engineID)
	if !ok || cycleCount <= 0 {
		return []jedt.SensorReading{}
	}

	params := paramsFor(rec.DatasetClass)
	rng := rand.New(rand.NewSource(s.seed()))
	now := time.Now().UTC()

	out := make([]jedt.SensorReading, 0, cycleCount)
	for c := 1; c <= cycleCount; c++ {
		ts := now.Add(-time.Duration(cycleCount-c) * cycleSpacing)
		out = append(out, s.reading(rec, params, rng, c, ts))
	}

	if s.metrics != nil {
		s.metrics.ReadingsGenerated.Add(float64(len(out)))
		s.metrics.SeriesCycles.Observe(float64(cycleCount))
	}
	return out
}

// reading computes a single cycle. Primary channels come from baselines plus
// noise plus the wear term; derived channels are algebraic over the already
// rounded primaries, so EGT/EPR/N1/N2 can be re-derived exactly in tests.
func (s *TelemetryService) reading(rec jedt.EngineRecord, p datasetParams, rng *rand.Rand, cycle int, ts time.Time) jedt.SensorReading {
	wear := 1 - healthFactor(cycle, rec.Cycles)

	// Fresh draws for every channel: multiplicative for pressures/ratios,
	// additive for temperatures/speeds.
	pn := func() float64 { return 1 + uniform(rng, pressureJitter) }
	tn := func() float64 { return uniform(rng, p.TempVariation/2) }

	r := jedt.SensorReading{
		EngineID:  rec.EngineID,
		Cycle:     cycle,
		Timestamp: ts,

		Altitude: round0(math.Max(0, p.AltitudeBase+tn()*100)),
		Mach:     round3(p.MachBase * pn()),
		TRA:      round1(traBase * pn()),

		T2:      round1(t2Base + tn()),
		T24:     round1(t24Base + t24Wear*wear + tn()),
		T30:     round1(t30Base + t30Wear*wear + tn()),
		T50:     round1(t50Base + t50Wear*wear + tn()),
		HtBleed: round0(htBleedBase + tn()),

		P2:   round2(p2Base * pn()),
		P15:  round2(p15Base * pn()),
		P24:  round2(p24Base * pn()),
		P30:  round2(p30Base * (1 - p30Sag*wear) * pn()),
		Ps30: round2(ps30Base * pn()),

		Nf:    round1(nfBase*(1-speedSag*wear) + tn()),
		Nc:    round1(ncBase*(1-speedSag*wear) + tn()),
		NfDmd: round1(nfBase + tn()),

		PCNfRDmd:  round2(pcnfrBase * pn()),
		Phi:       round2(phiBase * pn()),
		BPR:       round2(bprBase * pn()),
		FarB:      round4(farBBase * pn()),
		W31:       round2(w31Base * pn()),
		W32:       round2(w32Base * pn()),
		FuelFlow:  round1(fuelFlowBase * (1 + fuelRise*wear) * pn()),
		Vibration: round3((vibBase + vibRise*wear) * pn()),
	}

	// Derived channels.
	r.EGT = round1((r.T30 - rankineOffset) * 5.0 / 9.0)
	r.N1 = round1(r.Nf / n1Rated * 100)
	r.N2 = round1(r.Nc / n2Rated * 100)
	r.EPR = round4(r.P24 / r.P2)
	corr := math.Sqrt(r.T2 / tRefRankine)
	r.NRf = round2(r.Nf / corr)
	r.NRc = round2(r.Nc / corr)

	return r
}

// healthFactor bounds the simulated degradation across a generated series.
// Values bottom out at minHealthFactor; a long series drifts, it never
// collapses to zero.
func healthFactor(cycle, accumulated int) float64 {
	degradation := 1 - float64(cycle)/(float64(accumulated)*1.2)
	return math.Max(minHealthFactor, degradation)
}

// uniform draws from [-halfRange, +halfRange].
func uniform(rng *rand.Rand, halfRange float64) float64 {
	return (rng.Float64()*2 - 1) * halfRange
}

// Fixed per-channel precision; golden tests re-derive channels through the
// same rounding.
func round0(v float64) float64 { return math.Round(v) }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
