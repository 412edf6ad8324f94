package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	jedt "github.com/varunpaulreddy/JEDT"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errEngineNotFound  = "engine not found"
	errGetAssessment   = "failed to compute assessment"
	errGetComponents   = "failed to compute component health"
	errInvalidBodyPref = "invalid body: "

	defaultTelemetryCycles = 30
	maxTelemetryCycles     = 500
	defaultHistoryDays     = 30
	maxHistoryDays         = 365
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// parseBoundedInt reads an integer query parameter clamped to [1, max],
// falling back to def when absent or unparsable.
func parseBoundedInt(c *gin.Context, name string, def, max int) int {
	s := c.Query(name)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	if v > max {
		return max
	}
	return v
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      List fleet engines
// @Tags         engines
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, engines"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/engines [get]
// @Security     BearerAuth
func (h *Handler) listEngines(c *gin.Context) {
	engines := h.services.Fleet.List()
	c.JSON(http.StatusOK, gin.H{
		"count":   len(engines),
		"engines": engines,
	})
}

// @Summary      Get one engine record
// @Tags         engines
// @Produce      json
// @Param        id   path      string  true  "Engine id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/engines/{id} [get]
// @Security     BearerAuth
func (h *Handler) getEngine(c *gin.Context) {
	rec, ok := h.services.Fleet.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errEngineNotFound})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// @Summary      Generate a sensor series
// @Description  Returns freshly simulated readings; unknown engine ids yield an empty series, not an error.
// @Tags         engines
// @Produce      json
// @Param        id      path   string  true   "Engine id"
// @Param        cycles  query  int     false  "Number of cycles (1..500, default 30)"
// @Success      200  {object}  map[string]interface{}  "count, readings"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/engines/{id}/telemetry [get]
// @Security     BearerAuth
func (h *Handler) getTelemetry(c *gin.Context) {
	cycles := parseBoundedInt(c, "cycles", defaultTelemetryCycles, maxTelemetryCycles)
	readings := h.services.Telemetry.Generate(c.Param("id"), cycles)
	c.JSON(http.StatusOK, gin.H{
		"count":    len(readings),
		"readings": readings,
	})
}

// @Summary      Health assessment
// @Tags         engines
// @Produce      json
// @Param        id   path      string  true  "Engine id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/engines/{id}/assessment [get]
// @Security     BearerAuth
func (h *Handler) getAssessment(c *gin.Context) {
	assessment, err := h.services.Health.Assess(c.Param("id"))
	if err != nil {
		if errors.Is(err, jedt.ErrEngineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errEngineNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetAssessment, "assessment_failed", err, "engine_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, assessment)
}

// @Summary      Performance metrics
// @Tags         engines
// @Produce      json
// @Param        id   path      string  true  "Engine id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/engines/{id}/performance [get]
// @Security     BearerAuth
func (h *Handler) getPerformance(c *gin.Context) {
	metrics, ok := h.services.Performance.Derive(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errEngineNotFound})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// @Summary      Degradation history
// @Description  Daily health trend; unknown engine ids yield an empty series, not an error.
// @Tags         engines
// @Produce      json
// @Param        id    path   string  true   "Engine id"
// @Param        days  query  int     false  "Number of days (1..365, default 30)"
// @Success      200  {object}  map[string]interface{}  "count, points"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/engines/{id}/history [get]
// @Security     BearerAuth
func (h *Handler) getHistory(c *gin.Context) {
	days := parseBoundedInt(c, "days", defaultHistoryDays, maxHistoryDays)
	points := h.services.History.History(c.Param("id"), days)
	c.JSON(http.StatusOK, gin.H{
		"count":  len(points),
		"points": points,
	})
}

// @Summary      Component health breakdown
// @Tags         engines
// @Produce      json
// @Param        id   path      string  true  "Engine id"
// @Success      200  {object}  map[string]interface{}  "count, components"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/engines/{id}/components [get]
// @Security     BearerAuth
func (h *Handler) getComponents(c *gin.Context) {
	components, err := h.services.History.ComponentHealth(c.Param("id"))
	if err != nil {
		if errors.Is(err, jedt.ErrEngineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errEngineNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetComponents, "component_health_failed", err, "engine_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":      len(components),
		"components": components,
	})
}
