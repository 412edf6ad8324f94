package service

import (
	jedt "github.com/varunpaulreddy/JEDT"
)

// datasetParams are the simulated operating conditions for one CMAPSS dataset
// class. FD001/FD003 fly a single sea-level condition with little variation;
// FD002/FD004 fly high-altitude profiles with much noisier temperatures.
type datasetParams struct {
	AltitudeBase  float64 // ft
	MachBase      float64
	TempVariation float64 // peak-to-peak additive noise on temp/speed channels, °R
}

// The table is closed: exactly the four tagged dataset variants.
var datasetTable = map[jedt.DatasetClass]datasetParams{
	jedt.DatasetFD001: {AltitudeBase: 0, MachBase: 0.25, TempVariation: 5},
	jedt.DatasetFD002: {AltitudeBase: 42000, MachBase: 0.84, TempVariation: 15},
	jedt.DatasetFD003: {AltitudeBase: 0, MachBase: 0.25, TempVariation: 8},
	jedt.DatasetFD004: {AltitudeBase: 42000, MachBase: 0.84, TempVariation: 18},
}

// paramsFor resolves the operating conditions for a dataset class. Unknown
// classes fall back to the FD001 sea-level profile rather than failing; the
// registry only ever carries the four known classes.
func paramsFor(class jedt.DatasetClass) datasetParams {
	if p, ok := datasetTable[class]; ok {
		return p
	}
	return datasetTable[jedt.DatasetFD001]
}
