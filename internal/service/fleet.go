package service

import (
	jedt "github.com/varunpaulreddy/JEDT"
	"github.com/varunpaulreddy/JEDT/internal/registry"
)

// FleetService exposes read-only registry views to the HTTP layer.
type FleetService struct {
	reg *registry.Registry
}

func NewFleetService(reg *registry.Registry) *FleetService {
	return &FleetService{reg: reg}
}

// List returns the whole fleet in catalog order.
func (s *FleetService) List() []jedt.EngineRecord {
	return s.reg.List()
}

// Get returns one record; ok is false for unknown ids. Whether that surfaces
// as a 404 or a default is the caller's decision, not the registry's.
func (s *FleetService) Get(engineID string) (jedt.EngineRecord, bool) {
	return s.reg.Lookup(engineID)
}
