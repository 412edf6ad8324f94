package jedt

import (
	"errors"
	"time"
)

// DatasetClass tags an engine with the CMAPSS dataset whose operating
// conditions it simulates.
type DatasetClass string

const (
	DatasetFD001 DatasetClass = "FD001" // sea level, single fault mode
	DatasetFD002 DatasetClass = "FD002" // six flight conditions
	DatasetFD003 DatasetClass = "FD003" // sea level, two fault modes
	DatasetFD004 DatasetClass = "FD004" // six flight conditions, two fault modes
)

// Fault modes carried by fleet records.
const (
	FaultHPCDegradation = "HPC Degradation"
	FaultFanDegradation = "Fan Degradation"
)

// Engine status values shown on the fleet overview.
const (
	StatusOperational    = "OPERATIONAL"
	StatusMaintenanceDue = "MAINTENANCE_DUE"
	StatusCritical       = "CRITICAL"
)

// ErrEngineNotFound is returned by operations that fail explicitly on an
// unknown engine id. The telemetry and performance generators deliberately do
// NOT return it; they go silent-empty instead (see service docs).
var ErrEngineNotFound = errors.New("engine not found")

// EngineRecord is one fleet catalog entry. Records are immutable after the
// registry is built at startup.
type EngineRecord struct {
	EngineID        string       `json:"engine_id"` // <DATASET>-<DATASET_CODE>-<sequence>
	DatasetClass    DatasetClass `json:"dataset_class"`
	Cycles          int          `json:"cycles"`       // accumulated operating cycles
	HealthScore     float64      `json:"health_score"` // authoritative, 0..100
	Status          string       `json:"status"`       // OPERATIONAL | MAINTENANCE_DUE | CRITICAL
	FaultModes      []string     `json:"fault_modes,omitempty"`
	LastMaintenance time.Time    `json:"last_maintenance"`
	NextMaintenance time.Time    `json:"next_maintenance"`
}

// SensorReading is one simulated cycle of CMAPSS-style channels. Readings are
// generated fresh on every call and never persisted.
type SensorReading struct {
	EngineID  string    `json:"engine_id"`
	Cycle     int       `json:"cycle"`
	Timestamp time.Time `json:"timestamp"`

	// Operating settings.
	Altitude float64 `json:"altitude"` // ft
	Mach     float64 `json:"mach"`
	TRA      float64 `json:"tra"` // throttle resolver angle, %

	// Temperatures (°R except EGT).
	T2      float64 `json:"t2"`       // fan inlet
	T24     float64 `json:"t24"`      // LPC outlet
	T30     float64 `json:"t30"`      // HPC outlet
	T50     float64 `json:"t50"`      // LPT outlet
	HtBleed float64 `json:"ht_bleed"` // bleed enthalpy

	// Pressures (psia).
	P2   float64 `json:"p2"`   // fan inlet
	P15  float64 `json:"p15"`  // bypass duct
	P24  float64 `json:"p24"`  // HPC inlet
	P30  float64 `json:"p30"`  // HPC outlet
	Ps30 float64 `json:"ps30"` // HPC outlet static

	// Shaft speeds (rpm).
	Nf    float64 `json:"nf"`     // fan physical
	Nc    float64 `json:"nc"`     // core physical
	NfDmd float64 `json:"nf_dmd"` // demanded fan speed

	// Ratios and flows.
	PCNfRDmd  float64 `json:"pcnfr_dmd"` // demanded corrected fan speed, %
	Phi       float64 `json:"phi"`       // fuel flow ratio, pps/psi
	BPR       float64 `json:"bpr"`       // bypass ratio
	FarB      float64 `json:"far_b"`     // burner fuel-air ratio
	W31       float64 `json:"w31"`       // HPT coolant bleed, lbm/s
	W32       float64 `json:"w32"`       // LPT coolant bleed, lbm/s
	FuelFlow  float64 `json:"fuel_flow"` // pph
	Vibration float64 `json:"vibration"` // in/s

	// Derived channels (algebraic over the rounded primaries above).
	EGT float64 `json:"egt"` // exhaust gas temperature, °C
	N1  float64 `json:"n1"`  // fan speed, % rated
	N2  float64 `json:"n2"`  // core speed, % rated
	EPR float64 `json:"epr"` // engine pressure ratio, p24/p2
	NRf float64 `json:"nrf"` // corrected fan speed, rpm
	NRc float64 `json:"nrc"` // corrected core speed, rpm
}

// Maintenance recommendation tiers, least to most severe. Exactly one is
// returned per assessment.
const (
	RecommendRoutine     = "Continue normal operations"
	RecommendInspection  = "Schedule inspection within 50 cycles"
	RecommendMaintenance = "Schedule maintenance within 25 cycles"
	RecommendImmediate   = "URGENT: Immediate maintenance required"
)

// Component names referenced by critical-component lists.
const (
	ComponentHPC             = "High Pressure Compressor"
	ComponentCompressorBlade = "Compressor Blades"
	ComponentFanBlade        = "Fan Blades"
	ComponentFanDisk         = "Fan Disk"
	ComponentCombustor       = "Combustor"
	ComponentTurbineBlade    = "Turbine Blades"
)

// HealthAssessment is the derived maintenance picture for one engine.
type HealthAssessment struct {
	EngineID                  string    `json:"engine_id"`
	RemainingUsefulLife       int       `json:"remaining_useful_life"` // cycles, >= 0
	DegradationRate           float64   `json:"degradation_rate"`      // % per 100 cycles
	FaultProbability          float64   `json:"fault_probability"`     // 0..0.8
	CriticalComponents        []string  `json:"critical_components"`
	MaintenanceRecommendation string    `json:"maintenance_recommendation"`
	GeneratedAt               time.Time `json:"generated_at"`
}

// PerformanceMetrics summarizes a short sensor series into headline numbers.
type PerformanceMetrics struct {
	EngineID          string  `json:"engine_id"`
	FuelEfficiency    float64 `json:"fuel_efficiency"`    // >= 0.7
	ThermalEfficiency float64 `json:"thermal_efficiency"` // >= 0.75
	ThrustOutput      int     `json:"thrust_output_lbf"`
}

// HistoryPoint is one simulated day on the health-trend chart. The health
// trajectory is an independent synthetic decay curve, not derived from the
// sensor values it is paired with.
type HistoryPoint struct {
	Date           time.Time `json:"date"`
	HealthScore    float64   `json:"health_score"`
	FuelEfficiency float64   `json:"fuel_efficiency"`
	Temperature    float64   `json:"temperature"` // EGT, °C
	Vibration      float64   `json:"vibration"`   // in/s
	Cycles         int       `json:"cycles"`
}

// Component status flags on the per-component breakdown.
const (
	ComponentStatusNormal    = "NORMAL"
	ComponentStatusAttention = "ATTENTION"
)

// ComponentHealth is one row of the five-component breakdown.
type ComponentHealth struct {
	Component string  `json:"component"`
	Health    float64 `json:"health"` // 0..100
	Status    string  `json:"status"` // NORMAL | ATTENTION
}

// Maintenance work types accepted by the maintenance log.
const (
	MaintInspection  = "INSPECTION"
	MaintRepair      = "REPAIR"
	MaintOverhaul    = "OVERHAUL"
	MaintReplacement = "REPLACEMENT"
)

// MaintenanceEvent is one operator-entered maintenance log entry.
type MaintenanceEvent struct {
	EventID     string    `json:"event_id"`
	EngineID    string    `json:"engine_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // INSPECTION | REPAIR | OVERHAUL | REPLACEMENT
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}

// FleetAlert is the payload published when an engine enters the urgent tier.
type FleetAlert struct {
	EngineID            string    `json:"engine_id"`
	HealthScore         float64   `json:"health_score"`
	RemainingUsefulLife int       `json:"remaining_useful_life"`
	Recommendation      string    `json:"recommendation"`
	OccurredAt          time.Time `json:"occurred_at"`
}

// Operator is a dashboard user account.
type Operator struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // never exposed
}
