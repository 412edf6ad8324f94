package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	jedt "github.com/varunpaulreddy/JEDT"
	"github.com/varunpaulreddy/JEDT/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockFleet struct {
	records []jedt.EngineRecord
}

func (m *mockFleet) List() []jedt.EngineRecord {
	return m.records
}
func (m *mockFleet) Get(engineID string) (jedt.EngineRecord, bool) {
	for _, rec := range m.records {
		if rec.EngineID == engineID {
			return rec, true
		}
	}
	return jedt.EngineRecord{}, false
}

type mockTelemetry struct {
	readings   []jedt.SensorReading
	lastID     string
	lastCycles int
	calls      int
}

func (m *mockTelemetry) Generate(engineID string, cycleCount int) []jedt.SensorReading {
	m.calls++
	m.lastID = engineID
	m.lastCycles = cycleCount
	return m.readings
}

type mockHealth struct {
	assessment jedt.HealthAssessment
	err        error
	lastID     string
}

func (m *mockHealth) Assess(engineID string) (jedt.HealthAssessment, error) {
	m.lastID = engineID
	return m.assessment, m.err
}

type mockPerformance struct {
	metrics jedt.PerformanceMetrics
	ok      bool
}

func (m *mockPerformance) Derive(engineID string) (jedt.PerformanceMetrics, bool) {
	return m.metrics, m.ok
}

type mockHistory struct {
	points     []jedt.HistoryPoint
	components []jedt.ComponentHealth
	err        error
	lastID     string
	lastDays   int
}

func (m *mockHistory) History(engineID string, days int) []jedt.HistoryPoint {
	m.lastID = engineID
	m.lastDays = days
	return m.points
}
func (m *mockHistory) ComponentHealth(engineID string) ([]jedt.ComponentHealth, error) {
	m.lastID = engineID
	return m.components, m.err
}

type mockMaintenanceLog struct {
	event      jedt.MaintenanceEvent
	recordErr  error
	resp       []jedt.MaintenanceEvent
	listErr    error
	lastParams service.MaintenanceParams
	lastFilter service.MaintenanceFilter
}

func (m *mockMaintenanceLog) Record(ctx context.Context, p service.MaintenanceParams) (jedt.MaintenanceEvent, error) {
	m.lastParams = p
	return m.event, m.recordErr
}
func (m *mockMaintenanceLog) List(ctx context.Context, f service.MaintenanceFilter) ([]jedt.MaintenanceEvent, error) {
	m.lastFilter = f
	return m.resp, m.listErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
