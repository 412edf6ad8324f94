package service

import "time"

// MaintenanceParams is the payload for recording a maintenance event.
type MaintenanceParams struct {
	EngineID    string
	Type        string // INSPECTION | REPAIR | OVERHAUL | REPLACEMENT
	Description string
	Metadata    any
}

// MaintenanceFilter narrows maintenance log queries.
type MaintenanceFilter struct {
	EngineID string    // "" means all engines
	From     time.Time // inclusive; zero means no lower bound
	To       time.Time // inclusive; zero means no upper bound
	Type     string    // "", or one of the maintenance work types
}
