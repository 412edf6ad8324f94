package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	jedt "github.com/varunpaulreddy/JEDT"
	"github.com/varunpaulreddy/JEDT/internal/registry"
)

func TestAssess_KnownEngines(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name       string
		engineID   string
		assertFunc func(t *testing.T, got jedt.HealthAssessment)
	}

	svc := NewHealthService(newTestRegistry(t), nil)

	cases := []testCase{
		{
			name:     "healthy single-fault engine",
			engineID: "CMAPSS-FD001-001",
			assertFunc: func(t *testing.T, got jedt.HealthAssessment) {
				if got.RemainingUsefulLife != 109 {
					t.Errorf("RUL: want 109, got %d", got.RemainingUsefulLife)
				}
				if got.DegradationRate != 0.15 {
					t.Errorf("degradation rate: want 0.15, got %v", got.DegradationRate)
				}
				if got.FaultProbability != 0.06 {
					t.Errorf("fault probability: want 0.06, got %v", got.FaultProbability)
				}
				wantParts := []string{jedt.ComponentHPC, jedt.ComponentCompressorBlade}
				if len(got.CriticalComponents) != len(wantParts) {
					t.Fatalf("critical components: want %v, got %v", wantParts, got.CriticalComponents)
				}
				for i, p := range wantParts {
					if got.CriticalComponents[i] != p {
						t.Errorf("critical component %d: want %q, got %q", i, p, got.CriticalComponents[i])
					}
				}
				if got.MaintenanceRecommendation != jedt.RecommendRoutine {
					t.Errorf("recommendation: want %q, got %q", jedt.RecommendRoutine, got.MaintenanceRecommendation)
				}
			},
		},
		{
			name:     "critical dual-fault engine",
			engineID: "CMAPSS-FD004-002",
			assertFunc: func(t *testing.T, got jedt.HealthAssessment) {
				if got.DegradationRate != 0.23 {
					t.Errorf("degradation rate: want 0.23, got %v", got.DegradationRate)
				}
				if got.MaintenanceRecommendation != jedt.RecommendImmediate {
					t.Errorf("recommendation: want %q, got %q", jedt.RecommendImmediate, got.MaintenanceRecommendation)
				}
				// HPC pair, fan pair, plus combustor and turbine below the gate.
				if len(got.CriticalComponents) != 6 {
					t.Fatalf("critical components: want 6, got %v", got.CriticalComponents)
				}
				if got.RemainingUsefulLife != 44 {
					t.Errorf("RUL: want 44, got %d", got.RemainingUsefulLife)
				}
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := svc.Assess(tc.engineID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.EngineID != tc.engineID {
				t.Fatalf("engine id: want %q, got %q", tc.engineID, got.EngineID)
			}
			if got.GeneratedAt.IsZero() || got.GeneratedAt.Location() != time.UTC {
				t.Fatalf("GeneratedAt must be set in UTC, got %v", got.GeneratedAt)
			}
			tc.assertFunc(t, got)
		})
	}
}

func TestAssess_UnknownEngine(t *testing.T) {
	t.Parallel()

	svc := NewHealthService(newTestRegistry(t), nil)

	_, err := svc.Assess("CMAPSS-FD009-001")
	if err == nil {
		t.Fatalf("expected error for unknown engine")
	}
	if !errors.Is(err, jedt.ErrEngineNotFound) {
		t.Fatalf("expected ErrEngineNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "CMAPSS-FD009-001") {
		t.Fatalf("error should name the engine id, got %q", err.Error())
	}
}

func TestFaultProbability_BoundedByCap(t *testing.T) {
	t.Parallel()

	if got := faultProbability(100); got != 0 {
		t.Fatalf("perfect health: want 0, got %v", got)
	}
	if got := faultProbability(0); got != maxFaultProbability {
		t.Fatalf("zero health: want %v, got %v", maxFaultProbability, got)
	}
	for hs := 0.0; hs <= 100; hs += 2.5 {
		p := faultProbability(hs)
		if p < 0 || p > maxFaultProbability {
			t.Fatalf("health %v: probability %v outside [0, %v]", hs, p, maxFaultProbability)
		}
	}
}

func TestRecommendation_TierBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		health float64
		want   string
	}{
		{92.5, jedt.RecommendRoutine},
		{85, jedt.RecommendRoutine},
		{84.9, jedt.RecommendInspection},
		{75, jedt.RecommendInspection},
		{74.9, jedt.RecommendMaintenance},
		{70, jedt.RecommendMaintenance},
		{69.9, jedt.RecommendImmediate},
		{0, jedt.RecommendImmediate},
	}
	for _, tc := range cases {
		if got := recommendation(tc.health); got != tc.want {
			t.Fatalf("health %v: want %q, got %q", tc.health, tc.want, got)
		}
	}
}

func TestDegradationRate_FaultAndConditionBias(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rec  jedt.EngineRecord
		want float64
	}{
		{
			name: "base rate",
			rec:  jedt.EngineRecord{DatasetClass: jedt.DatasetFD001, FaultModes: []string{jedt.FaultHPCDegradation}},
			want: 0.15,
		},
		{
			name: "fan fault adds",
			rec:  jedt.EngineRecord{DatasetClass: jedt.DatasetFD003, FaultModes: []string{jedt.FaultFanDegradation}},
			want: 0.2,
		},
		{
			name: "variable conditions add",
			rec:  jedt.EngineRecord{DatasetClass: jedt.DatasetFD002, FaultModes: []string{jedt.FaultHPCDegradation}},
			want: 0.18,
		},
		{
			name: "both add",
			rec:  jedt.EngineRecord{DatasetClass: jedt.DatasetFD004, FaultModes: []string{jedt.FaultHPCDegradation, jedt.FaultFanDegradation}},
			want: 0.23,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := degradationRate(tc.rec); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestAssess_WholeCatalogStaysInBounds(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t, registry.DefaultCatalog()...)
	svc := NewHealthService(reg, nil)

	for _, rec := range reg.List() {
		got, err := svc.Assess(rec.EngineID)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", rec.EngineID, err)
		}
		if got.RemainingUsefulLife < 0 {
			t.Errorf("%s: negative RUL %d", rec.EngineID, got.RemainingUsefulLife)
		}
		if got.FaultProbability < 0 || got.FaultProbability > maxFaultProbability {
			t.Errorf("%s: fault probability %v out of bounds", rec.EngineID, got.FaultProbability)
		}
		if got.MaintenanceRecommendation == "" {
			t.Errorf("%s: empty recommendation", rec.EngineID)
		}
	}
}
