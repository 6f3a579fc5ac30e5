package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/fieldops/internal/adapters/sqlite"
	"github.com/example/fieldops/internal/ports/secondary"
)

func openEntry(id, workerID, workOrderID string, startedAt time.Time) *secondary.TimeEntryRecord {
	return &secondary.TimeEntryRecord{
		ID:          id,
		WorkerID:    workerID,
		WorkOrderID: workOrderID,
		TaskType:    "support",
		TaskLabel:   "travel",
		StartedAt:   startedAt,
		LaborRate:   50.0,
	}
}

func TestTimeEntryCreateAndGet(t *testing.T) {
	conn := setupTestDB(t)
	seedWorker(t, conn, "EMP-001", fptr(50.0))
	seedWorkOrder(t, conn, "WO-001")
	seedLineItem(t, conn, "LI-001", "WO-001")

	repo := sqlite.NewTimeEntryRepository(conn)
	ctx := context.Background()
	startedAt := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	entry := &secondary.TimeEntryRecord{
		ID:            "entry-1",
		WorkerID:      "EMP-001",
		WorkOrderID:   "WO-001",
		LineItemID:    "LI-001",
		TaskType:      "productive",
		TaskLabel:     "mowing",
		StartedAt:     startedAt,
		LaborRate:     50.0,
		EquipmentRate: 10.0,
	}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "entry-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.WorkerID != "EMP-001" || got.LineItemID != "LI-001" {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if !got.StartedAt.Equal(startedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, startedAt)
	}
	if got.LaborRate != 50.0 || got.EquipmentRate != 10.0 {
		t.Errorf("rate snapshot mismatch: labor %v equipment %v", got.LaborRate, got.EquipmentRate)
	}
	if got.EndedAt != nil || got.DurationHours != nil || got.TotalCost != nil {
		t.Error("open entry must have nil ended_at, duration and cost")
	}
}

func TestTimeEntryGetByIDNotFound(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewTimeEntryRepository(conn)

	_, err := repo.GetByID(context.Background(), "no-such-entry")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTimeEntrySecondOpenInsertConflicts(t *testing.T) {
	conn := setupTestDB(t)
	seedWorker(t, conn, "EMP-001", fptr(50.0))
	seedWorkOrder(t, conn, "WO-001")

	repo := sqlite.NewTimeEntryRepository(conn)
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	if err := repo.Create(ctx, openEntry("entry-1", "EMP-001", "WO-001", start)); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	err := repo.Create(ctx, openEntry("entry-2", "EMP-001", "WO-001", start.Add(time.Minute)))
	if !errors.Is(err, secondary.ErrOpenTimerExists) {
		t.Errorf("expected ErrOpenTimerExists, got %v", err)
	}
}

func TestTimeEntryClosedInsertNeverConflicts(t *testing.T) {
	conn := setupTestDB(t)
	seedWorker(t, conn, "EMP-001", fptr(50.0))
	seedWorkOrder(t, conn, "WO-001")

	repo := sqlite.NewTimeEntryRepository(conn)
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	if err := repo.Create(ctx, openEntry("entry-1", "EMP-001", "WO-001", start)); err != nil {
		t.Fatalf("open Create() error = %v", err)
	}

	// A backdated closed entry for the same worker is fine alongside the
	// open timer: the uniqueness constraint only covers open rows.
	end := start.Add(-time.Hour)
	closed := openEntry("entry-2", "EMP-001", "WO-001", start.Add(-2*time.Hour))
	closed.EndedAt = &end
	closed.DurationHours = fptr(1.0)
	closed.TotalCost = fptr(50.0)

	if err := repo.Create(ctx, closed); err != nil {
		t.Errorf("closed Create() error = %v", err)
	}
}

func TestTimeEntryGetOpenByWorker(t *testing.T) {
	conn := setupTestDB(t)
	seedWorker(t, conn, "EMP-001", fptr(50.0))
	seedWorkOrder(t, conn, "WO-001")

	repo := sqlite.NewTimeEntryRepository(conn)
	ctx := context.Background()

	got, err := repo.GetOpenByWorker(ctx, "EMP-001")
	if err != nil {
		t.Fatalf("GetOpenByWorker() error = %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for idle worker, got %+v", got)
	}

	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	if err := repo.Create(ctx, openEntry("entry-1", "EMP-001", "WO-001", start)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err = repo.GetOpenByWorker(ctx, "EMP-001")
	if err != nil {
		t.Fatalf("GetOpenByWorker() error = %v", err)
	}
	if got == nil || got.ID != "entry-1" {
		t.Errorf("expected entry-1, got %+v", got)
	}
}

func TestTimeEntryClose(t *testing.T) {
	conn := setupTestDB(t)
	seedWorker(t, conn, "EMP-001", fptr(50.0))
	seedWorkOrder(t, conn, "WO-001")

	repo := sqlite.NewTimeEntryRepository(conn)
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	if err := repo.Create(ctx, openEntry("entry-1", "EMP-001", "WO-001", start)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Close(ctx, "entry-1", end, 2.0, 100.0, "done"); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "entry-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.EndedAt == nil || !got.EndedAt.Equal(end) {
		t.Errorf("EndedAt = %v, want %v", got.EndedAt, end)
	}
	if got.DurationHours == nil || *got.DurationHours != 2.0 {
		t.Errorf("DurationHours = %v, want 2.0", got.DurationHours)
	}
	if got.TotalCost == nil || *got.TotalCost != 100.0 {
		t.Errorf("TotalCost = %v, want 100.0", got.TotalCost)
	}
	if got.Note != "done" {
		t.Errorf("Note = %q, want %q", got.Note, "done")
	}

	// Worker is free to start a new timer once the old one closed
	if err := repo.Create(ctx, openEntry("entry-2", "EMP-001", "WO-001", end)); err != nil {
		t.Errorf("Create() after close error = %v", err)
	}
}

func TestTimeEntryDoubleCloseGuarded(t *testing.T) {
	conn := setupTestDB(t)
	seedWorker(t, conn, "EMP-001", fptr(50.0))
	seedWorkOrder(t, conn, "WO-001")

	repo := sqlite.NewTimeEntryRepository(conn)
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	if err := repo.Create(ctx, openEntry("entry-1", "EMP-001", "WO-001", start)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Close(ctx, "entry-1", start.Add(time.Hour), 1.0, 50.0, ""); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}

	err := repo.Close(ctx, "entry-1", start.Add(2*time.Hour), 2.0, 100.0, "")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double close, got %v", err)
	}

	// The original close result must be untouched
	got, err := repo.GetByID(ctx, "entry-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if *got.DurationHours != 1.0 {
		t.Errorf("DurationHours = %v, want 1.0 from the first close", *got.DurationHours)
	}
}

func TestTimeEntryListFilters(t *testing.T) {
	conn := setupTestDB(t)
	seedWorker(t, conn, "EMP-001", fptr(50.0))
	seedWorker(t, conn, "EMP-002", nil)
	seedWorkOrder(t, conn, "WO-001")
	seedLineItem(t, conn, "LI-001", "WO-001")

	repo := sqlite.NewTimeEntryRepository(conn)
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	// Closed productive entry on LI-001
	end := start.Add(time.Hour)
	closed := &secondary.TimeEntryRecord{
		ID: "entry-1", WorkerID: "EMP-001", WorkOrderID: "WO-001", LineItemID: "LI-001",
		TaskType: "productive", TaskLabel: "mowing", StartedAt: start,
		EndedAt: &end, LaborRate: 50.0, DurationHours: fptr(1.0), TotalCost: fptr(50.0),
	}
	if err := repo.Create(ctx, closed); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	// Open entry by another worker
	if err := repo.Create(ctx, openEntry("entry-2", "EMP-002", "WO-001", end)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	all, err := repo.ListByWorkOrder(ctx, "WO-001")
	if err != nil {
		t.Fatalf("ListByWorkOrder() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListByWorkOrder() = %d entries, want 2", len(all))
	}

	closedOnly, err := repo.ListClosedByWorkOrder(ctx, "WO-001")
	if err != nil {
		t.Fatalf("ListClosedByWorkOrder() error = %v", err)
	}
	if len(closedOnly) != 1 || closedOnly[0].ID != "entry-1" {
		t.Errorf("ListClosedByWorkOrder() = %+v, want just entry-1", closedOnly)
	}

	byItem, err := repo.ListClosedByLineItem(ctx, "LI-001")
	if err != nil {
		t.Fatalf("ListClosedByLineItem() error = %v", err)
	}
	if len(byItem) != 1 || byItem[0].ID != "entry-1" {
		t.Errorf("ListClosedByLineItem() = %+v, want just entry-1", byItem)
	}
}
