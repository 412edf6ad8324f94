package registry

import (
	"fmt"

	jedt "github.com/varunpaulreddy/JEDT"
)

// Registry is the immutable in-memory fleet catalog. It is built once at
// process start and never mutated afterward, so it is safe for concurrent
// readers without locking.
type Registry struct {
	records []jedt.EngineRecord
	byID    map[string]int
}

// New builds a registry from the given records, preserving their order.
// Duplicate engine ids are a configuration error.
func New(records []jedt.EngineRecord) (*Registry, error) {
	r := &Registry{
		records: make([]jedt.EngineRecord, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	copy(r.records, records)
	for i, rec := range r.records {
		if rec.EngineID == "" {
			return nil, fmt.Errorf("registry record %d has empty engine id", i)
		}
		if _, dup := r.byID[rec.EngineID]; dup {
			return nil, fmt.Errorf("duplicate engine id %q in registry", rec.EngineID)
		}
		r.byID[rec.EngineID] = i
	}
	return r, nil
}

// Lookup returns the record for id. The second return is false when the id is
// unknown; callers decide whether that is an error (see service policies).
func (r *Registry) Lookup(id string) (jedt.EngineRecord, bool) {
	i, ok := r.byID[id]
	if !ok {
		return jedt.EngineRecord{}, false
	}
	return r.records[i], true
}

// List returns all records in insertion order. The slice is a copy; callers
// may not reach the registry's backing storage.
func (r *Registry) List() []jedt.EngineRecord {
	out := make([]jedt.EngineRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Len reports the fleet size.
func (r *Registry) Len() int { return len(r.records) }
