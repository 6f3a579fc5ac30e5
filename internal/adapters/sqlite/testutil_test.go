package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/fieldops/internal/adapters/sqlite"
	"github.com/example/fieldops/internal/db"
	"github.com/example/fieldops/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// Using db.GetSchemaSQL() keeps these tests honest about column drift.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	// An in-memory database lives and dies with its connection; keep the
	// pool at one so every query sees the same database.
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := conn.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return conn
}

func seedWorker(t *testing.T, conn *sql.DB, id string, effective *float64) {
	t.Helper()
	repo := sqlite.NewWorkerRepository(conn)
	err := repo.Create(context.Background(), &secondary.WorkerRecord{
		ID:            id,
		Name:          "Test Worker " + id,
		EffectiveRate: effective,
	})
	if err != nil {
		t.Fatalf("failed to seed worker %s: %v", id, err)
	}
}

func seedWorkOrder(t *testing.T, conn *sql.DB, id string) {
	t.Helper()
	repo := sqlite.NewWorkOrderRepository(conn)
	err := repo.Create(context.Background(), &secondary.WorkOrderRecord{
		ID:    id,
		Title: "Test Order " + id,
	})
	if err != nil {
		t.Fatalf("failed to seed work order %s: %v", id, err)
	}
}

func seedLineItem(t *testing.T, conn *sql.DB, id, workOrderID string) {
	t.Helper()
	repo := sqlite.NewLineItemRepository(conn)
	err := repo.Create(context.Background(), &secondary.LineItemRecord{
		ID:          id,
		WorkOrderID: workOrderID,
		Title:       "Test Item " + id,
	})
	if err != nil {
		t.Fatalf("failed to seed line item %s: %v", id, err)
	}
}

func seedEquipment(t *testing.T, conn *sql.DB, id string, hourlyCost float64) {
	t.Helper()
	repo := sqlite.NewEquipmentRepository(conn)
	err := repo.Create(context.Background(), &secondary.EquipmentRecord{
		ID:         id,
		Name:       "Test Equipment " + id,
		HourlyCost: hourlyCost,
	})
	if err != nil {
		t.Fatalf("failed to seed equipment %s: %v", id, err)
	}
}

func seedLoadout(t *testing.T, conn *sql.DB, id string, equipmentIDs ...string) {
	t.Helper()
	repo := sqlite.NewLoadoutRepository(conn)
	ctx := context.Background()
	if err := repo.Create(ctx, &secondary.LoadoutRecord{ID: id, Name: "Test Loadout " + id}); err != nil {
		t.Fatalf("failed to seed loadout %s: %v", id, err)
	}
	for _, eqID := range equipmentIDs {
		if err := repo.AddEquipment(ctx, id, eqID); err != nil {
			t.Fatalf("failed to attach equipment %s: %v", eqID, err)
		}
	}
}

func fptr(v float64) *float64 {
	return &v
}
