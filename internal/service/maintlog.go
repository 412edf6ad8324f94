package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jedt "github.com/varunpaulreddy/JEDT"
	"github.com/varunpaulreddy/JEDT/internal/registry"
	"github.com/varunpaulreddy/JEDT/internal/repository"

	"github.com/google/uuid"
)

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	errInvalidWorkType  = errors.New("invalid work type: must be INSPECTION, REPAIR, OVERHAUL, or REPLACEMENT")
	errEmptyDescription = errors.New("description is required")
)

// MaintenanceLogService owns the operator-entered maintenance history. Unlike
// generated telemetry, these records ARE persisted: they are catalog data
// about the physical fleet, not simulator output.
type MaintenanceLogService struct {
	reg       *registry.Registry
	maintRepo repository.MaintenanceRepo
}

func NewMaintenanceLogService(reg *registry.Registry, maintRepo repository.MaintenanceRepo) *MaintenanceLogService {
	return &MaintenanceLogService{reg: reg, maintRepo: maintRepo}
}

// Record validates and appends one maintenance event. Unknown engines fail
// explicitly: a log entry for an engine outside the fleet is operator error.
func (s *MaintenanceLogService) Record(ctx context.Context, p MaintenanceParams) (jedt.MaintenanceEvent, error) {
	if _, ok := s.reg.Lookup(p.EngineID); !ok {
		return jedt.MaintenanceEvent{}, fmt.Errorf("record maintenance for %q: %w", p.EngineID, jedt.ErrEngineNotFound)
	}

	workType := normalizeWorkType(p.Type)
	if !validWorkType(workType) {
		return jedt.MaintenanceEvent{}, errInvalidWorkType
	}
	if strings.TrimSpace(p.Description) == "" {
		return jedt.MaintenanceEvent{}, errEmptyDescription
	}

	e := jedt.MaintenanceEvent{
		EventID:     uuid.NewString(),
		EngineID:    p.EngineID,
		OccurredAt:  time.Now().UTC(),
		Type:        workType,
		Description: strings.TrimSpace(p.Description),
		Metadata:    p.Metadata,
	}
	if err := s.maintRepo.Append(ctx, e); err != nil {
		return jedt.MaintenanceEvent{}, err
	}
	return e, nil
}

// List returns maintenance events matching the filter, oldest first.
func (s *MaintenanceLogService) List(ctx context.Context, f MaintenanceFilter) ([]jedt.MaintenanceEvent, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}

	workType := normalizeWorkType(f.Type)
	if workType != "" && !validWorkType(workType) {
		return nil, errInvalidWorkType
	}
	return s.maintRepo.List(ctx, f.EngineID, from, to, workType)
}

// normalizeToUTC returns t in UTC, preserving zero values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeWorkType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func validWorkType(s string) bool {
	switch s {
	case jedt.MaintInspection, jedt.MaintRepair, jedt.MaintOverhaul, jedt.MaintReplacement:
		return true
	}
	return false
}
