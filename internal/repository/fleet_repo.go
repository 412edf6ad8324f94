package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	jedt "github.com/varunpaulreddy/JEDT"
)

type FleetSQLite struct {
	db *sql.DB
}

func NewFleetSQLite(db *sql.DB) *FleetSQLite {
	return &FleetSQLite{db: db}
}

// constants and helpers for clarity and reuse
const (
	insertEngineSQL = `
		INSERT INTO engines (engine_id, dataset_class, cycles, health_score, status, fault_modes, last_maintenance, next_maintenance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	countEnginesSQL = `SELECT COUNT(*) FROM engines`

	selectEnginesSQL = `
		SELECT engine_id, dataset_class, cycles, health_score, status, fault_modes, last_maintenance, next_maintenance
		FROM engines ORDER BY seq ASC
	`
)

// marshalFaultModes converts the slice to a JSON string.
func marshalFaultModes(modes []string) (string, error) {
	b, err := json.Marshal(modes)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalFaultModes parses a JSON string into a slice.
func unmarshalFaultModes(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var modes []string
	if err := json.Unmarshal([]byte(s), &modes); err != nil {
		return nil, err
	}
	return modes, nil
}

// Seed inserts catalog records in one transaction. Intended for a fresh
// database only; callers check Count first.
func (r *FleetSQLite) Seed(ctx context.Context, records []jedt.EngineRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, rec := range records {
		modesJSONStr, err := marshalFaultModes(rec.FaultModes)
		if err != nil {
			return fmt.Errorf("marshal fault modes for %q: %w", rec.EngineID, err)
		}
		if _, err := tx.ExecContext(ctx, insertEngineSQL,
			rec.EngineID,
			string(rec.DatasetClass),
			rec.Cycles,
			rec.HealthScore,
			rec.Status,
			modesJSONStr,
			rec.LastMaintenance.UTC().Format("2006-01-02 15:04:05"),
			rec.NextMaintenance.UTC().Format("2006-01-02 15:04:05"),
		); err != nil {
			return fmt.Errorf("insert engine %q: %w", rec.EngineID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}

// Count reports how many engines the catalog holds.
func (r *FleetSQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countEnginesSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count engines: %w", err)
	}
	return n, nil
}

// LoadAll fetches every engine in catalog order.
func (r *FleetSQLite) LoadAll(ctx context.Context) ([]jedt.EngineRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectEnginesSQL)
	if err != nil {
		return nil, fmt.Errorf("select engines: %w", err)
	}
	defer rows.Close()

	out := make([]jedt.EngineRecord, 0, 16)
	for rows.Next() {
		var (
			rec          jedt.EngineRecord
			datasetClass string
			modesJSONStr string
			lastMaint    time.Time
			nextMaint    time.Time
		)
		if err := rows.Scan(
			&rec.EngineID,
			&datasetClass,
			&rec.Cycles,
			&rec.HealthScore,
			&rec.Status,
			&modesJSONStr,
			&lastMaint,
			&nextMaint,
		); err != nil {
			return nil, fmt.Errorf("scan engine row: %w", err)
		}
		modes, err := unmarshalFaultModes(modesJSONStr)
		if err != nil {
			return nil, fmt.Errorf("unmarshal fault modes for %q: %w", rec.EngineID, err)
		}
		rec.DatasetClass = jedt.DatasetClass(datasetClass)
		rec.FaultModes = modes
		rec.LastMaintenance = lastMaint.UTC()
		rec.NextMaintenance = nextMaint.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
