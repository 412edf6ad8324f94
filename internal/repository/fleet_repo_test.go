package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	jedt "github.com/varunpaulreddy/JEDT"
	"github.com/varunpaulreddy/JEDT/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func seedRecords() []jedt.EngineRecord {
	return []jedt.EngineRecord{
		{
			EngineID:        "CMAPSS-FD001-001",
			DatasetClass:    jedt.DatasetFD001,
			Cycles:          362,
			HealthScore:     92.5,
			Status:          jedt.StatusOperational,
			FaultModes:      []string{jedt.FaultHPCDegradation},
			LastMaintenance: time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC),
			NextMaintenance: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			EngineID:        "CMAPSS-FD004-002",
			DatasetClass:    jedt.DatasetFD004,
			Cycles:          145,
			HealthScore:     68.9,
			Status:          jedt.StatusCritical,
			FaultModes:      []string{jedt.FaultHPCDegradation, jedt.FaultFanDegradation},
			LastMaintenance: time.Date(2026, 6, 25, 0, 0, 0, 0, time.UTC),
			NextMaintenance: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestFleetSQLite_Seed_InsertsAllRecordsInOneTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {

		}
	}(db)

	repo := repository.NewFleetSQLite(db)
	records := seedRecords()

	// We don't have direct access to the private SQL constant, so match by fragment.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO engines")).
		WithArgs(
			"CMAPSS-FD001-001",
			"FD001",
			362,
			92.5,
			jedt.StatusOperational,
			`["HPC Degradation"]`, // JSON marshaled fault modes
			"2026-05-14 00:00:00", // timestamps stored as SQLite strings
			"2026-11-02 00:00:00",
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO engines")).
		WithArgs(
			"CMAPSS-FD004-002",
			"FD004",
			145,
			68.9,
			jedt.StatusCritical,
			`["HPC Degradation","Fan Degradation"]`,
			"2026-06-25 00:00:00",
			"2026-08-24 00:00:00",
		).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	if err := repo.Seed(context.Background(), records); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFleetSQLite_Seed_ExecErrorRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {

		}
	}(db)

	repo := repository.NewFleetSQLite(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO engines")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = repo.Seed(context.Background(), seedRecords())
	if err == nil {
		t.Fatalf("Seed() expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFleetSQLite_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {

		}
	}(db)

	repo := repository.NewFleetSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM engines")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 8 {
		t.Fatalf("Count() = %d, want 8", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFleetSQLite_Count_QueryErrorIsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {

		}
	}(db)

	repo := repository.NewFleetSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM engines")).
		WillReturnError(errors.New("db down"))

	_, err = repo.Count(context.Background())
	if err == nil {
		t.Fatalf("Count() expected error, got nil")
	}
}

func TestFleetSQLite_LoadAll_HappyPath_UnmarshalsAndUTC(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {

		}
	}(db)

	repo := repository.NewFleetSQLite(db)

	cols := []string{"engine_id", "dataset_class", "cycles", "health_score", "status", "fault_modes", "last_maintenance", "next_maintenance"}
	locNY, _ := time.LoadLocation("America/New_York")
	nonUTC := time.Date(2026, 2, 1, 8, 30, 0, 0, locNY)

	rows := sqlmock.NewRows(cols).
		AddRow(
			"CMAPSS-FD002-001",
			"FD002",
			253,
			91.0,
			jedt.StatusOperational,
			`["HPC Degradation"]`,
			nonUTC, // DB gives a non-UTC time; LoadAll should convert to UTC
			nonUTC.Add(180*24*time.Hour),
		).
		AddRow(
			"CMAPSS-FD003-001",
			"FD003",
			197,
			95.3,
			jedt.StatusOperational,
			"", // empty fault_modes column -> nil slice
			nonUTC,
			nonUTC.Add(120*24*time.Hour),
		)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT engine_id, dataset_class, cycles, health_score, status, fault_modes, last_maintenance, next_maintenance")).
		WillReturnRows(rows)

	got, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadAll() returned %d records, want 2", len(got))
	}

	first := got[0]
	if first.EngineID != "CMAPSS-FD002-001" ||
		first.DatasetClass != jedt.DatasetFD002 ||
		first.Cycles != 253 ||
		first.HealthScore != 91.0 ||
		first.Status != jedt.StatusOperational {
		t.Fatalf("LoadAll() unexpected fields: %+v", first)
	}
	if want := []string{jedt.FaultHPCDegradation}; !equalModeSlices(first.FaultModes, want) {
		t.Fatalf("LoadAll() fault modes mismatch: got=%v want=%v", first.FaultModes, want)
	}
	if first.LastMaintenance.Location() != time.UTC {
		t.Fatalf("LoadAll() LastMaintenance not UTC: %v (%v)", first.LastMaintenance, first.LastMaintenance.Location())
	}
	if first.NextMaintenance.Location() != time.UTC {
		t.Fatalf("LoadAll() NextMaintenance not UTC: %v (%v)", first.NextMaintenance, first.NextMaintenance.Location())
	}

	if got[1].FaultModes != nil {
		t.Fatalf("LoadAll() expected nil fault modes for empty column, got %v", got[1].FaultModes)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFleetSQLite_LoadAll_InvalidFaultModesJSON_ReturnsError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {

		}
	}(db)

	repo := repository.NewFleetSQLite(db)

	cols := []string{"engine_id", "dataset_class", "cycles", "health_score", "status", "fault_modes", "last_maintenance", "next_maintenance"}
	rows := sqlmock.NewRows(cols).
		AddRow(
			"CMAPSS-FD001-001",
			"FD001",
			100,
			90.0,
			jedt.StatusOperational,
			`{not: "an array"}`, // invalid for []string
			time.Now(),
			time.Now(),
		)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT engine_id, dataset_class, cycles, health_score, status, fault_modes, last_maintenance, next_maintenance")).
		WillReturnRows(rows)

	_, err = repo.LoadAll(context.Background())
	if err == nil {
		t.Fatalf("LoadAll() expected error due to invalid fault modes JSON, got nil")
	}
}

// Helpers

func equalModeSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
