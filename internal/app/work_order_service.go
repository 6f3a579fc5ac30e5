package app

import (
	"context"
	"fmt"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/ports/secondary"
)

// WorkOrderServiceImpl implements the WorkOrderService interface.
type WorkOrderServiceImpl struct {
	workOrderRepo secondary.WorkOrderRepository
	loadoutRepo   secondary.LoadoutRepository
}

// NewWorkOrderService creates a new WorkOrderService with injected dependencies.
func NewWorkOrderService(
	workOrderRepo secondary.WorkOrderRepository,
	loadoutRepo secondary.LoadoutRepository,
) *WorkOrderServiceImpl {
	return &WorkOrderServiceImpl{
		workOrderRepo: workOrderRepo,
		loadoutRepo:   loadoutRepo,
	}
}

// CreateWorkOrder creates a new work order.
func (s *WorkOrderServiceImpl) CreateWorkOrder(ctx context.Context, req primary.CreateWorkOrderRequest) (*primary.CreateWorkOrderResponse, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: work order title is required", ErrInvalidInput)
	}

	nextID, err := s.workOrderRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate work order ID: %w", err)
	}

	record := &secondary.WorkOrderRecord{
		ID:       nextID,
		Title:    req.Title,
		Customer: req.Customer,
		Status:   primary.StatusNotStarted,
	}
	if err := s.workOrderRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create work order: %w", err)
	}

	created, err := s.workOrderRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created work order: %w", err)
	}

	return &primary.CreateWorkOrderResponse{
		WorkOrderID: created.ID,
		WorkOrder:   recordToWorkOrder(created),
	}, nil
}

// GetWorkOrder retrieves a work order by ID.
func (s *WorkOrderServiceImpl) GetWorkOrder(ctx context.Context, workOrderID string) (*primary.WorkOrder, error) {
	record, err := s.workOrderRepo.GetByID(ctx, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get work order %s: %w", workOrderID, err)
	}
	return recordToWorkOrder(record), nil
}

// ListWorkOrders lists work orders with optional filters.
func (s *WorkOrderServiceImpl) ListWorkOrders(ctx context.Context, filters primary.WorkOrderFilters) ([]*primary.WorkOrder, error) {
	records, err := s.workOrderRepo.List(ctx, secondary.WorkOrderFilters{
		Status:   filters.Status,
		Customer: filters.Customer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}

	workOrders := make([]*primary.WorkOrder, len(records))
	for i, r := range records {
		workOrders[i] = recordToWorkOrder(r)
	}
	return workOrders, nil
}

// AssignLoadout assigns a loadout to a work order. An empty loadout ID
// clears the assignment. Timers already running keep the rates they
// snapshotted at start.
func (s *WorkOrderServiceImpl) AssignLoadout(ctx context.Context, workOrderID, loadoutID string) error {
	if _, err := s.workOrderRepo.GetByID(ctx, workOrderID); err != nil {
		return fmt.Errorf("failed to get work order %s: %w", workOrderID, err)
	}
	if loadoutID != "" {
		if _, err := s.loadoutRepo.GetByID(ctx, loadoutID); err != nil {
			return fmt.Errorf("failed to get loadout %s: %w", loadoutID, err)
		}
	}
	if err := s.workOrderRepo.AssignLoadout(ctx, workOrderID, loadoutID); err != nil {
		return fmt.Errorf("failed to assign loadout: %w", err)
	}
	return nil
}

// DeleteWorkOrder deletes a work order along with its line items and time
// entries.
func (s *WorkOrderServiceImpl) DeleteWorkOrder(ctx context.Context, workOrderID string) error {
	if _, err := s.workOrderRepo.GetByID(ctx, workOrderID); err != nil {
		return fmt.Errorf("failed to get work order %s: %w", workOrderID, err)
	}
	if err := s.workOrderRepo.Delete(ctx, workOrderID); err != nil {
		return fmt.Errorf("failed to delete work order %s: %w", workOrderID, err)
	}
	return nil
}

func recordToWorkOrder(r *secondary.WorkOrderRecord) *primary.WorkOrder {
	return &primary.WorkOrder{
		ID:                    r.ID,
		Title:                 r.Title,
		Customer:              r.Customer,
		Status:                r.Status,
		LoadoutID:             r.LoadoutID,
		EstimatedHours:        r.EstimatedHours,
		EstimatedCost:         r.EstimatedCost,
		ActualProductiveHours: r.ActualProductiveHours,
		ActualSupportHours:    r.ActualSupportHours,
		ActualTotalCost:       r.ActualTotalCost,
		CompletedAt:           r.CompletedAt,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}

// Ensure WorkOrderServiceImpl implements the interface
var _ primary.WorkOrderService = (*WorkOrderServiceImpl)(nil)
