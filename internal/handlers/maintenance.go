package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	jedt "github.com/varunpaulreddy/JEDT"
	"github.com/varunpaulreddy/JEDT/internal/service"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// Request DTO for recording maintenance.
type maintenanceRequest struct {
	EngineID    string `json:"engine_id" binding:"required"`
	Type        string `json:"type" binding:"required"` // INSPECTION | REPAIR | OVERHAUL | REPLACEMENT
	Description string `json:"description" binding:"required"`
	Metadata    any    `json:"metadata,omitempty"`
}

// RecordMaintenanceRequest is an exported model for Swagger docs of the maintenance payload.
type RecordMaintenanceRequest struct {
	// Engine the work was performed on
	EngineID string `json:"engine_id" example:"CMAPSS-FD001-001"`
	// Work type. Allowed: INSPECTION, REPAIR, OVERHAUL, REPLACEMENT
	Type string `json:"type" example:"INSPECTION"`
	// Free-form description of the work performed
	Description string `json:"description" example:"Borescope inspection of HPC stages 1-3"`
	// Optional structured details
	Metadata any `json:"metadata,omitempty"`
}

// @Summary      List maintenance records
// @Description  Filter records by engine, date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'), and work type. If 'to' is date-only, it is treated as end-of-day inclusive.
// @Tags         maintenance
// @Produce      json
// @Param        engine_id  query   string  false  "Engine id"  example(CMAPSS-FD001-001)
// @Param        from       query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2026-08-01)
// @Param        to         query   string  false  "End of range. Date-only treated as end of day."  example(2026-08-31)
// @Param        type       query   string  false  "Work type"  Enums(INSPECTION,REPAIR,OVERHAUL,REPLACEMENT)
// @Success      200   {object}  map[string]interface{}  "count, records"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/maintenance [get]
// @Security     BearerAuth
func (h *Handler) listMaintenance(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		from time.Time
		to   time.Time
		// Normalize work type: trim spaces and uppercase to match expected values.
		workType = strings.ToUpper(strings.TrimSpace(c.Query("type")))
		engineID = strings.TrimSpace(c.Query("engine_id"))
		err      error
	)
	// Parse 'from' (optional)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	// Parse 'to' (optional). If only a date is provided, make it end-of-day inclusive.
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		// If the user didn't include a time component, treat "to" as the end of that day.
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	// Validate range if both provided
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must be <= 'to'"})
		return
	}
	records, err := h.services.MaintenanceLog.List(ctx, service.MaintenanceFilter{
		EngineID: engineID,
		From:     from,
		To:       to,
		Type:     workType,
	})
	if err != nil {
		if h.log != nil {
			h.log.Errorw("maintenance_list_failed", "err", err, "engine_id", engineID, "from", from, "to", to, "type", workType)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load maintenance records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(records),
		"records": records,
	})
}

// @Summary      Record maintenance work
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        body  body   RecordMaintenanceRequest  true  "Maintenance payload"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/maintenance [post]
// @Security     BearerAuth
func (h *Handler) recordMaintenance(c *gin.Context) {
	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	params := service.MaintenanceParams{
		EngineID:    req.EngineID,
		Type:        req.Type,
		Description: req.Description,
		Metadata:    req.Metadata,
	}
	event, err := h.services.MaintenanceLog.Record(ctx, params)
	if err != nil {
		// Unknown engine surfaces as 404; validation failures as 400.
		if h.log != nil {
			h.log.Infow("maintenance_record_failed", "err", err, "engine_id", req.EngineID)
		}
		code := http.StatusBadRequest
		if errors.Is(err, jedt.ErrEngineNotFound) {
			code = http.StatusNotFound
		}
		c.JSON(code, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, event)
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2026-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
