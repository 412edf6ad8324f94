package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	jedt "github.com/varunpaulreddy/JEDT"
)

type MaintenanceSQLite struct {
	db *sql.DB
}

func NewMaintenanceSQLite(db *sql.DB) *MaintenanceSQLite { return &MaintenanceSQLite{db: db} }

// Append inserts a new maintenance record. If EventID or OccurredAt are empty, they’re set.
func (r *MaintenanceSQLite) Append(ctx context.Context, e jedt.MaintenanceEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	// marshal metadata if present
	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	// Insert with SQLite TIMESTAMP format "YYYY-MM-DD HH:MM:SS"
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO maintenance_events (id, engine_id, occurred_at, type, description, meta)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		e.EventID,
		e.EngineID,
		e.OccurredAt.Format("2006-01-02 15:04:05"),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Description,
		metaPtr,
	)

	return err
}

// List returns records filtered by engine, [from, to] (inclusive) and/or type, ordered ASC.
func (r *MaintenanceSQLite) List(ctx context.Context, engineID string, from, to time.Time, typ string) ([]jedt.MaintenanceEvent, error) {
	var (
		conds []string
		args  []any
	)

	if engineID = strings.TrimSpace(engineID); engineID != "" {
		conds = append(conds, "engine_id = ?")
		args = append(args, engineID)
	}
	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, engine_id, occurred_at, type, description, meta FROM maintenance_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]jedt.MaintenanceEvent, 0, 64)
	for rows.Next() {
		var ev jedt.MaintenanceEvent
		var metaStr sql.NullString
		if err := rows.Scan(&ev.EventID, &ev.EngineID, &ev.OccurredAt, &ev.Type, &ev.Description, &metaStr); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
