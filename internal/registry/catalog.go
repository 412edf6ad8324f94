package registry

import (
	"time"

	jedt "github.com/varunpaulreddy/JEDT"
)

// DefaultCatalog returns the built-in fleet. It seeds the engines table on
// first start; after that the database copy is authoritative, so a deployment
// can extend the fleet without recompiling.
func DefaultCatalog() []jedt.EngineRecord {
	return []jedt.EngineRecord{
		{
			EngineID:        "CMAPSS-FD001-001",
			DatasetClass:    jedt.DatasetFD001,
			Cycles:          362,
			HealthScore:     92.5,
			Status:          jedt.StatusOperational,
			FaultModes:      []string{jedt.FaultHPCDegradation},
			LastMaintenance: date(2026, 5, 14),
			NextMaintenance: date(2026, 11, 2),
		},
		{
			EngineID:        "CMAPSS-FD001-002",
			DatasetClass:    jedt.DatasetFD001,
			Cycles:          418,
			HealthScore:     88.2,
			Status:          jedt.StatusOperational,
			FaultModes:      []string{jedt.FaultHPCDegradation},
			LastMaintenance: date(2026, 3, 28),
			NextMaintenance: date(2026, 9, 30),
		},
		{
			EngineID:        "CMAPSS-FD002-001",
			DatasetClass:    jedt.DatasetFD002,
			Cycles:          253,
			HealthScore:     91.0,
			Status:          jedt.StatusOperational,
			FaultModes:      []string{jedt.FaultHPCDegradation},
			LastMaintenance: date(2026, 6, 9),
			NextMaintenance: date(2026, 12, 18),
		},
		{
			EngineID:        "CMAPSS-FD002-002",
			DatasetClass:    jedt.DatasetFD002,
			Cycles:          531,
			HealthScore:     76.8,
			Status:          jedt.StatusMaintenanceDue,
			FaultModes:      []string{jedt.FaultHPCDegradation},
			LastMaintenance: date(2026, 1, 21),
			NextMaintenance: date(2026, 9, 5),
		},
		{
			EngineID:        "CMAPSS-FD003-001",
			DatasetClass:    jedt.DatasetFD003,
			Cycles:          197,
			HealthScore:     95.3,
			Status:          jedt.StatusOperational,
			FaultModes:      []string{jedt.FaultFanDegradation},
			LastMaintenance: date(2026, 7, 2),
			NextMaintenance: date(2027, 1, 15),
		},
		{
			EngineID:        "CMAPSS-FD003-002",
			DatasetClass:    jedt.DatasetFD003,
			Cycles:          340,
			HealthScore:     83.4,
			Status:          jedt.StatusOperational,
			FaultModes:      []string{jedt.FaultHPCDegradation},
			LastMaintenance: date(2026, 4, 17),
			NextMaintenance: date(2026, 10, 8),
		},
		{
			EngineID:        "CMAPSS-FD004-001",
			DatasetClass:    jedt.DatasetFD004,
			Cycles:          289,
			HealthScore:     72.1,
			Status:          jedt.StatusMaintenanceDue,
			FaultModes:      []string{jedt.FaultFanDegradation},
			LastMaintenance: date(2026, 2, 11),
			NextMaintenance: date(2026, 8, 29),
		},
		{
			EngineID:        "CMAPSS-FD004-002",
			DatasetClass:    jedt.DatasetFD004,
			Cycles:          145,
			HealthScore:     68.9,
			Status:          jedt.StatusCritical,
			FaultModes:      []string{jedt.FaultHPCDegradation, jedt.FaultFanDegradation},
			LastMaintenance: date(2026, 6, 25),
			NextMaintenance: date(2026, 8, 24),
		},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
