package repository

import (
	"context"
	"database/sql"
	"time"

	jedt "github.com/varunpaulreddy/JEDT"
)

type OperatorRepo interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*jedt.Operator, error)
}

type FleetRepo interface {
	Seed(ctx context.Context, records []jedt.EngineRecord) error
	Count(ctx context.Context) (int, error)
	LoadAll(ctx context.Context) ([]jedt.EngineRecord, error)
}

type MaintenanceRepo interface {
	Append(ctx context.Context, e jedt.MaintenanceEvent) error
	List(ctx context.Context, engineID string, from, to time.Time, typ string) ([]jedt.MaintenanceEvent, error)
}

type Repository struct {
	Fleet       FleetRepo
	Maintenance MaintenanceRepo
	Operators   OperatorRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Fleet:       NewFleetSQLite(db),
		Maintenance: NewMaintenanceSQLite(db),
		Operators:   NewOperatorRepository(db),
	}
}
