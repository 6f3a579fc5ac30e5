package app

import (
	"context"
	"testing"
	"time"

	"github.com/example/fieldops/internal/ports/secondary"
)

func newRollupFixture() (*RollupServiceImpl, *mockTimeEntryRepository, *mockWorkOrderRepository, *mockLineItemRepository) {
	entries := newMockTimeEntryRepository()
	workOrders := newMockWorkOrderRepository()
	lineItems := newMockLineItemRepository()
	svc := NewRollupService(entries, workOrders, lineItems)
	return svc, entries, workOrders, lineItems
}

func closedEntry(id, workOrderID, lineItemID, taskType string, startedAt time.Time, hours, cost float64) *secondary.TimeEntryRecord {
	end := startedAt.Add(time.Duration(hours * float64(time.Hour)))
	return &secondary.TimeEntryRecord{
		ID:            id,
		WorkerID:      "EMP-001",
		WorkOrderID:   workOrderID,
		LineItemID:    lineItemID,
		TaskType:      taskType,
		StartedAt:     startedAt,
		EndedAt:       &end,
		DurationHours: &hours,
		TotalCost:     &cost,
	}
}

func TestRecomputeWorkOrder(t *testing.T) {
	svc, entries, workOrders, _ := newRollupFixture()
	ctx := context.Background()
	day := time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC)

	workOrders.workOrders["WO-001"] = &secondary.WorkOrderRecord{ID: "WO-001"}
	entries.entries["e1"] = closedEntry("e1", "WO-001", "LI-001", "productive", day, 2.0, 120.0)
	entries.entries["e2"] = closedEntry("e2", "WO-001", "", "support", day.Add(2*time.Hour), 0.5, 30.0)
	entries.entries["e3"] = closedEntry("e3", "WO-001", "LI-002", "productive", day.Add(3*time.Hour), 1.0, 60.0)

	// An open entry must not count
	entries.entries["e4"] = &secondary.TimeEntryRecord{
		ID: "e4", WorkerID: "EMP-002", WorkOrderID: "WO-001",
		TaskType: "productive", LineItemID: "LI-001", StartedAt: day.Add(4 * time.Hour),
	}

	if err := svc.RecomputeWorkOrder(ctx, "WO-001"); err != nil {
		t.Fatalf("RecomputeWorkOrder() error = %v", err)
	}

	wo := workOrders.workOrders["WO-001"]
	if wo.ActualProductiveHours != 3.0 {
		t.Errorf("productive hours = %v, want 3.0", wo.ActualProductiveHours)
	}
	if wo.ActualSupportHours != 0.5 {
		t.Errorf("support hours = %v, want 0.5", wo.ActualSupportHours)
	}
	if wo.ActualTotalCost != 210.0 {
		t.Errorf("total cost = %v, want 210.0", wo.ActualTotalCost)
	}
}

func TestRecomputeWorkOrderIdempotent(t *testing.T) {
	svc, entries, workOrders, _ := newRollupFixture()
	ctx := context.Background()
	day := time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC)

	workOrders.workOrders["WO-001"] = &secondary.WorkOrderRecord{ID: "WO-001"}
	entries.entries["e1"] = closedEntry("e1", "WO-001", "", "support", day, 1.25, 50.0)

	for i := 0; i < 3; i++ {
		if err := svc.RecomputeWorkOrder(ctx, "WO-001"); err != nil {
			t.Fatalf("RecomputeWorkOrder() run %d error = %v", i, err)
		}
	}

	wo := workOrders.workOrders["WO-001"]
	if wo.ActualSupportHours != 1.25 || wo.ActualTotalCost != 50.0 {
		t.Errorf("totals drifted across replays: %v hours, %v cost", wo.ActualSupportHours, wo.ActualTotalCost)
	}
}

func TestRecomputeWorkOrderNoEntries(t *testing.T) {
	svc, _, workOrders, _ := newRollupFixture()

	workOrders.workOrders["WO-001"] = &secondary.WorkOrderRecord{
		ID:                    "WO-001",
		ActualProductiveHours: 5.0, // stale cache from deleted entries
		ActualTotalCost:       300.0,
	}

	if err := svc.RecomputeWorkOrder(context.Background(), "WO-001"); err != nil {
		t.Fatalf("RecomputeWorkOrder() error = %v", err)
	}

	wo := workOrders.workOrders["WO-001"]
	if wo.ActualProductiveHours != 0 || wo.ActualSupportHours != 0 || wo.ActualTotalCost != 0 {
		t.Errorf("expected totals reset to zero, got %+v", wo)
	}
}

func TestRecomputeLineItem(t *testing.T) {
	svc, entries, _, lineItems := newRollupFixture()
	ctx := context.Background()
	day := time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC)

	lineItems.items["LI-001"] = &secondary.LineItemRecord{
		ID:             "LI-001",
		WorkOrderID:    "WO-001",
		EstimatedHours: 3.0,
		EstimatedScore: 140.0,
	}
	entries.entries["e1"] = closedEntry("e1", "WO-001", "LI-001", "productive", day, 2.0, 120.0)
	entries.entries["e2"] = closedEntry("e2", "WO-001", "LI-001", "productive", day.Add(2*time.Hour), 1.5, 90.0)

	if err := svc.RecomputeLineItem(ctx, "LI-001"); err != nil {
		t.Fatalf("RecomputeLineItem() error = %v", err)
	}

	li := lineItems.items["LI-001"]
	if li.ActualHours != 3.5 {
		t.Errorf("actual hours = %v, want 3.5", li.ActualHours)
	}
	if li.ProductionRate == nil || *li.ProductionRate != 40.0 {
		t.Errorf("production rate = %v, want 40.0 (score 140 / 3.5h)", li.ProductionRate)
	}
	if li.Variance != 0.5 {
		t.Errorf("variance = %v, want 0.5 (3.5h actual vs 3h estimated)", li.Variance)
	}
}

func TestRecomputeLineItemZeroHours(t *testing.T) {
	svc, _, _, lineItems := newRollupFixture()

	lineItems.items["LI-001"] = &secondary.LineItemRecord{
		ID:             "LI-001",
		WorkOrderID:    "WO-001",
		EstimatedHours: 3.0,
		EstimatedScore: 140.0,
		ActualHours:    2.0, // stale
		ProductionRate: fptr(70.0),
		Variance:       -1.0,
	}

	if err := svc.RecomputeLineItem(context.Background(), "LI-001"); err != nil {
		t.Fatalf("RecomputeLineItem() error = %v", err)
	}

	li := lineItems.items["LI-001"]
	if li.ActualHours != 0 {
		t.Errorf("actual hours = %v, want 0", li.ActualHours)
	}
	if li.ProductionRate != nil {
		t.Errorf("production rate = %v, want nil with zero hours", *li.ProductionRate)
	}
	if li.Variance != 0 {
		t.Errorf("variance = %v, want 0", li.Variance)
	}
}

func TestRecomputeLineItemDanglingReference(t *testing.T) {
	// Entries reference line items weakly; recomputing a deleted item is
	// a no-op, not an error.
	svc, entries, _, _ := newRollupFixture()
	day := time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC)
	entries.entries["e1"] = closedEntry("e1", "WO-001", "LI-404", "productive", day, 2.0, 120.0)

	if err := svc.RecomputeLineItem(context.Background(), "LI-404"); err != nil {
		t.Errorf("expected nil for missing line item, got %v", err)
	}
}
