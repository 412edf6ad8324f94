package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jedt "github.com/varunpaulreddy/JEDT"
	"github.com/varunpaulreddy/JEDT/internal/service"
)

func TestMaintenanceHandler_ListAndValidation(t *testing.T) {
	auth := &mockAuth{parseID: 99}
	now := time.Now().UTC().Truncate(time.Second)
	records := []jedt.MaintenanceEvent{
		{EventID: "e1", EngineID: "CMAPSS-FD001-001", OccurredAt: now, Type: jedt.MaintInspection, Description: "borescope"},
		{EventID: "e2", EngineID: "CMAPSS-FD001-001", OccurredAt: now.Add(1 * time.Second), Type: jedt.MaintRepair, Description: "blade swap"},
	}
	maint := &mockMaintenanceLog{resp: records}
	s := &service.Service{
		Authorization:  auth,
		MaintenanceLog: maint,
	}
	r := newTestRouter(s)

	// Missing/invalid 'from' -> 400
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/maintenance?from=notatime", nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}
	var e map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &e)
	if e["error"] != errFromInvalid {
		t.Fatalf("expected error %q, got %q", errFromInvalid, e["error"])
	}

	// Valid range, engine and type (lowercase type should be normalized to upper in service call)
	w = httptest.NewRecorder()
	q := "/api/v1/maintenance?engine_id=CMAPSS-FD001-001&from=" + now.Format(time.RFC3339) +
		"&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&type=repair"
	req = httptest.NewRequest(http.MethodGet, q, nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("maintenance status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count   int                     `json:"count"`
		Records []jedt.MaintenanceEvent `json:"records"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Records) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if maint.lastFilter.Type != jedt.MaintRepair {
		t.Fatalf("expected filter type REPAIR, got %q", maint.lastFilter.Type)
	}
	if maint.lastFilter.EngineID != "CMAPSS-FD001-001" {
		t.Fatalf("expected filter engine id, got %q", maint.lastFilter.EngineID)
	}
}

func TestMaintenanceHandler_ListDateOnlyToIsEndOfDay(t *testing.T) {
	auth := &mockAuth{parseID: 99}
	maint := &mockMaintenanceLog{}
	s := &service.Service{
		Authorization:  auth,
		MaintenanceLog: maint,
	}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/maintenance?from=2026-08-01&to=2026-08-02", nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("maintenance status=%d, body=%s", w.Code, w.Body.String())
	}

	wantFrom := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC).Add(24*time.Hour - time.Nanosecond)
	if !maint.lastFilter.From.Equal(wantFrom) {
		t.Fatalf("filter from=%v, want %v", maint.lastFilter.From, wantFrom)
	}
	if !maint.lastFilter.To.Equal(wantTo) {
		t.Fatalf("filter to=%v, want end of day %v", maint.lastFilter.To, wantTo)
	}

	// Inverted range -> 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/maintenance?from=2026-08-03&to=2026-08-02", nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}
}

func TestMaintenanceHandler_ListServiceError(t *testing.T) {
	auth := &mockAuth{parseID: 99}
	maint := &mockMaintenanceLog{listErr: errors.New("db down")}
	s := &service.Service{
		Authorization:  auth,
		MaintenanceLog: maint,
	}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/maintenance", nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on service error, got %d", w.Code)
	}
}

func TestMaintenanceHandler_Record(t *testing.T) {
	auth := &mockAuth{parseID: 99}
	event := jedt.MaintenanceEvent{
		EventID:     "evt-1",
		EngineID:    "CMAPSS-FD001-001",
		OccurredAt:  time.Now().UTC().Truncate(time.Second),
		Type:        jedt.MaintRepair,
		Description: "replaced stage 2 blade set",
	}
	maint := &mockMaintenanceLog{event: event}
	s := &service.Service{
		Authorization:  auth,
		MaintenanceLog: maint,
	}
	r := newTestRouter(s)

	// Valid request -> 201 and the recorded event
	body := bytes.NewBufferString(`{"engine_id":"CMAPSS-FD001-001","type":"repair","description":"replaced stage 2 blade set","metadata":{"stage":2}}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/maintenance", body)
	req.Header.Set("Content-Type", "application/json")
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("record status=%d, body=%s", w.Code, w.Body.String())
	}
	var got jedt.MaintenanceEvent
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if got.EventID != "evt-1" || got.Type != jedt.MaintRepair {
		t.Fatalf("unexpected event: %+v", got)
	}
	if maint.lastParams.EngineID != "CMAPSS-FD001-001" || maint.lastParams.Type != "repair" {
		t.Fatalf("wrong Record params: %+v", maint.lastParams)
	}
	if maint.lastParams.Metadata == nil {
		t.Fatalf("metadata not forwarded: %+v", maint.lastParams)
	}

	// Missing required field -> 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/maintenance", bytes.NewBufferString(`{"engine_id":"CMAPSS-FD001-001","type":"repair"}`))
	req.Header.Set("Content-Type", "application/json")
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing description, got %d", w.Code)
	}

	// Unknown engine -> 404
	maint.recordErr = fmt.Errorf("record maintenance for %q: %w", "CMAPSS-FD009-001", jedt.ErrEngineNotFound)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/maintenance",
		bytes.NewBufferString(`{"engine_id":"CMAPSS-FD009-001","type":"repair","description":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown engine, got %d", w.Code)
	}

	// Validation failure from the service -> 400
	maint.recordErr = errors.New("invalid work type: must be INSPECTION, REPAIR, OVERHAUL, or REPLACEMENT")
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/maintenance",
		bytes.NewBufferString(`{"engine_id":"CMAPSS-FD001-001","type":"polish","description":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid work type, got %d", w.Code)
	}
}
