package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/ports/secondary"
)

// LineItemServiceImpl implements the LineItemService interface, including
// the completion cascade onto the owning work order.
type LineItemServiceImpl struct {
	lineItemRepo  secondary.LineItemRepository
	workOrderRepo secondary.WorkOrderRepository

	now func() time.Time
}

// NewLineItemService creates a new LineItemService with injected dependencies.
func NewLineItemService(
	lineItemRepo secondary.LineItemRepository,
	workOrderRepo secondary.WorkOrderRepository,
) *LineItemServiceImpl {
	return &LineItemServiceImpl{
		lineItemRepo:  lineItemRepo,
		workOrderRepo: workOrderRepo,
		now:           time.Now,
	}
}

// AddLineItem creates a line item and adds its estimates to the work
// order's estimated totals.
func (s *LineItemServiceImpl) AddLineItem(ctx context.Context, req primary.AddLineItemRequest) (*primary.AddLineItemResponse, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: line item title is required", ErrInvalidInput)
	}
	if req.EstimatedHours < 0 || req.EstimatedCost < 0 || req.EstimatedScore < 0 {
		return nil, fmt.Errorf("%w: estimates must not be negative", ErrInvalidInput)
	}

	if _, err := s.workOrderRepo.GetByID(ctx, req.WorkOrderID); err != nil {
		return nil, fmt.Errorf("failed to resolve work order %s: %w", req.WorkOrderID, err)
	}

	nextID, err := s.lineItemRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate line item ID: %w", err)
	}

	record := &secondary.LineItemRecord{
		ID:             nextID,
		WorkOrderID:    req.WorkOrderID,
		Title:          req.Title,
		Status:         primary.StatusNotStarted,
		EstimatedHours: req.EstimatedHours,
		EstimatedCost:  req.EstimatedCost,
		EstimatedScore: req.EstimatedScore,
	}
	if err := s.lineItemRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create line item: %w", err)
	}

	if err := s.workOrderRepo.AdjustEstimates(ctx, req.WorkOrderID, req.EstimatedHours, req.EstimatedCost); err != nil {
		return nil, fmt.Errorf("failed to adjust work order estimates: %w", err)
	}

	created, err := s.lineItemRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created line item: %w", err)
	}

	return &primary.AddLineItemResponse{
		LineItemID: created.ID,
		LineItem:   recordToLineItem(created),
	}, nil
}

// GetLineItem retrieves a line item by ID.
func (s *LineItemServiceImpl) GetLineItem(ctx context.Context, lineItemID string) (*primary.LineItem, error) {
	record, err := s.lineItemRepo.GetByID(ctx, lineItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get line item %s: %w", lineItemID, err)
	}
	return recordToLineItem(record), nil
}

// ListLineItems lists the line items of a work order.
func (s *LineItemServiceImpl) ListLineItems(ctx context.Context, workOrderID string) ([]*primary.LineItem, error) {
	records, err := s.lineItemRepo.ListByWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	items := make([]*primary.LineItem, len(records))
	for i, r := range records {
		items[i] = recordToLineItem(r)
	}
	return items, nil
}

// MarkComplete completes a line item, then re-reads every sibling on the
// work order: the work order cascades to completed (with a completion
// timestamp) iff all of them, including this one, are now completed.
// Re-reading rather than counting down a cached counter keeps concurrent
// completions convergent.
func (s *LineItemServiceImpl) MarkComplete(ctx context.Context, lineItemID string) error {
	item, err := s.lineItemRepo.GetByID(ctx, lineItemID)
	if err != nil {
		return fmt.Errorf("failed to get line item %s: %w", lineItemID, err)
	}

	completedAt := s.now()
	if err := s.lineItemRepo.UpdateStatus(ctx, lineItemID, primary.StatusCompleted, &completedAt); err != nil {
		return fmt.Errorf("failed to complete line item %s: %w", lineItemID, err)
	}

	siblings, err := s.lineItemRepo.ListByWorkOrder(ctx, item.WorkOrderID)
	if err != nil {
		return fmt.Errorf("failed to list sibling line items: %w", err)
	}
	allCompleted := true
	for _, sib := range siblings {
		if sib.Status != primary.StatusCompleted {
			allCompleted = false
			break
		}
	}

	if allCompleted {
		if err := s.workOrderRepo.UpdateStatus(ctx, item.WorkOrderID, primary.StatusCompleted, &completedAt); err != nil {
			return fmt.Errorf("failed to complete work order %s: %w", item.WorkOrderID, err)
		}
		return nil
	}

	// Partial completion still counts as activity on a dormant order
	wo, err := s.workOrderRepo.GetByID(ctx, item.WorkOrderID)
	if err != nil {
		return fmt.Errorf("failed to get work order %s: %w", item.WorkOrderID, err)
	}
	if wo.Status == primary.StatusNotStarted {
		if err := s.workOrderRepo.UpdateStatus(ctx, wo.ID, primary.StatusInProgress, nil); err != nil {
			return fmt.Errorf("failed to update work order status: %w", err)
		}
	}
	return nil
}

// Reopen reverts a completed line item to in_progress. Reopening one item
// always reopens a completed parent, regardless of siblings, and clears
// its completion timestamp.
func (s *LineItemServiceImpl) Reopen(ctx context.Context, lineItemID string) error {
	item, err := s.lineItemRepo.GetByID(ctx, lineItemID)
	if err != nil {
		return fmt.Errorf("failed to get line item %s: %w", lineItemID, err)
	}
	if item.Status != primary.StatusCompleted {
		return fmt.Errorf("%w: line item %s is %s, only completed items can be reopened", ErrInvalidInput, lineItemID, item.Status)
	}

	if err := s.lineItemRepo.UpdateStatus(ctx, lineItemID, primary.StatusInProgress, nil); err != nil {
		return fmt.Errorf("failed to reopen line item %s: %w", lineItemID, err)
	}

	wo, err := s.workOrderRepo.GetByID(ctx, item.WorkOrderID)
	if err != nil {
		return fmt.Errorf("failed to get work order %s: %w", item.WorkOrderID, err)
	}
	if wo.Status == primary.StatusCompleted {
		if err := s.workOrderRepo.UpdateStatus(ctx, wo.ID, primary.StatusInProgress, nil); err != nil {
			return fmt.Errorf("failed to reopen work order %s: %w", wo.ID, err)
		}
	}
	return nil
}

// DeleteLineItem deletes a line item and subtracts its estimates from the
// work order's totals. The subtraction clamps at zero so floating-point
// drift can never push the estimated totals negative. Time entries that
// referenced the item keep their dangling reference; the work-order
// rollup still counts them.
func (s *LineItemServiceImpl) DeleteLineItem(ctx context.Context, lineItemID string) error {
	item, err := s.lineItemRepo.GetByID(ctx, lineItemID)
	if err != nil {
		return fmt.Errorf("failed to get line item %s: %w", lineItemID, err)
	}

	if err := s.lineItemRepo.Delete(ctx, lineItemID); err != nil {
		return fmt.Errorf("failed to delete line item %s: %w", lineItemID, err)
	}

	if err := s.workOrderRepo.AdjustEstimates(ctx, item.WorkOrderID, -item.EstimatedHours, -item.EstimatedCost); err != nil {
		return fmt.Errorf("failed to adjust work order estimates: %w", err)
	}
	return nil
}

func recordToLineItem(r *secondary.LineItemRecord) *primary.LineItem {
	return &primary.LineItem{
		ID:             r.ID,
		WorkOrderID:    r.WorkOrderID,
		Title:          r.Title,
		Status:         r.Status,
		EstimatedHours: r.EstimatedHours,
		EstimatedCost:  r.EstimatedCost,
		EstimatedScore: r.EstimatedScore,
		ActualHours:    r.ActualHours,
		ProductionRate: r.ProductionRate,
		Variance:       r.Variance,
		CompletedAt:    r.CompletedAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// Ensure LineItemServiceImpl implements the interface
var _ primary.LineItemService = (*LineItemServiceImpl)(nil)
