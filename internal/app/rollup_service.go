package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/ports/secondary"
)

// RollupServiceImpl implements the RollupService interface.
//
// Both recomputes are full replays: they read the complete current set of
// closed entries instead of applying incremental deltas. Edits, deletions
// and backdated entries therefore never leave the cached totals drifted,
// and running a recompute twice with no new data yields identical results.
type RollupServiceImpl struct {
	entryRepo     secondary.TimeEntryRepository
	workOrderRepo secondary.WorkOrderRepository
	lineItemRepo  secondary.LineItemRepository
}

// NewRollupService creates a new RollupService with injected dependencies.
func NewRollupService(
	entryRepo secondary.TimeEntryRepository,
	workOrderRepo secondary.WorkOrderRepository,
	lineItemRepo secondary.LineItemRepository,
) *RollupServiceImpl {
	return &RollupServiceImpl{
		entryRepo:     entryRepo,
		workOrderRepo: workOrderRepo,
		lineItemRepo:  lineItemRepo,
	}
}

// RecomputeWorkOrder replays the work order's closed entries, partitions
// hours by task classification and persists the three totals in one update.
// Open entries never contribute until stopped.
func (s *RollupServiceImpl) RecomputeWorkOrder(ctx context.Context, workOrderID string) error {
	entries, err := s.entryRepo.ListClosedByWorkOrder(ctx, workOrderID)
	if err != nil {
		return fmt.Errorf("failed to list closed entries for %s: %w", workOrderID, err)
	}

	var productive, support, totalCost float64
	for _, e := range entries {
		if e.DurationHours == nil || e.TotalCost == nil {
			continue
		}
		if e.TaskType == primary.TaskTypeSupport {
			support += *e.DurationHours
		} else {
			productive += *e.DurationHours
		}
		totalCost += *e.TotalCost
	}

	if err := s.workOrderRepo.UpdateActuals(ctx, workOrderID, productive, support, totalCost); err != nil {
		return fmt.Errorf("failed to persist work order %s rollup: %w", workOrderID, err)
	}
	return nil
}

// RecomputeLineItem replays the closed entries referencing a line item.
// Zero productive hours leave the production rate unset rather than
// dividing by zero. A line item that no longer exists is skipped: time
// entries reference line items weakly and may outlive them.
func (s *RollupServiceImpl) RecomputeLineItem(ctx context.Context, lineItemID string) error {
	li, err := s.lineItemRepo.GetByID(ctx, lineItemID)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get line item %s: %w", lineItemID, err)
	}

	entries, err := s.entryRepo.ListClosedByLineItem(ctx, lineItemID)
	if err != nil {
		return fmt.Errorf("failed to list closed entries for %s: %w", lineItemID, err)
	}

	var hours float64
	for _, e := range entries {
		if e.DurationHours != nil {
			hours += *e.DurationHours
		}
	}

	var rate *float64
	var variance float64
	if hours > 0 {
		r := li.EstimatedScore / hours
		rate = &r
		variance = hours - li.EstimatedHours
	}

	if err := s.lineItemRepo.UpdateActuals(ctx, lineItemID, hours, rate, variance); err != nil {
		return fmt.Errorf("failed to persist line item %s rollup: %w", lineItemID, err)
	}
	return nil
}

// Ensure RollupServiceImpl implements the interface
var _ primary.RollupService = (*RollupServiceImpl)(nil)
