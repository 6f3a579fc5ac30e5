package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/fieldops/internal/core/costing"
	"github.com/example/fieldops/internal/core/timeclock"
	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/ports/secondary"
)

// TimerServiceImpl implements the TimerService interface.
type TimerServiceImpl struct {
	entryRepo     secondary.TimeEntryRepository
	workerRepo    secondary.WorkerRepository
	workOrderRepo secondary.WorkOrderRepository
	lineItemRepo  secondary.LineItemRepository
	rates         primary.RateService
	rollups       primary.RollupService

	now func() time.Time
}

// NewTimerService creates a new TimerService with injected dependencies.
func NewTimerService(
	entryRepo secondary.TimeEntryRepository,
	workerRepo secondary.WorkerRepository,
	workOrderRepo secondary.WorkOrderRepository,
	lineItemRepo secondary.LineItemRepository,
	rates primary.RateService,
	rollups primary.RollupService,
) *TimerServiceImpl {
	return &TimerServiceImpl{
		entryRepo:     entryRepo,
		workerRepo:    workerRepo,
		workOrderRepo: workOrderRepo,
		lineItemRepo:  lineItemRepo,
		rates:         rates,
		rollups:       rollups,
		now:           time.Now,
	}
}

// Start opens a timer for a worker. Rates are resolved once here and
// snapshotted onto the entry; later rate-config changes never alter an
// in-progress timer.
func (s *TimerServiceImpl) Start(ctx context.Context, req primary.StartTimerRequest) (*primary.TimeEntry, error) {
	open, err := s.entryRepo.GetOpenByWorker(ctx, req.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check open timer: %w", err)
	}

	guard := timeclock.CanStart(timeclock.StartContext{
		WorkerID:     req.WorkerID,
		TaskType:     req.TaskType,
		LineItemID:   req.LineItemID,
		HasOpenTimer: open != nil,
	})
	if !guard.Allowed {
		if open != nil {
			return nil, fmt.Errorf("%w: %s", ErrTimerActive, guard.Reason)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, guard.Reason)
	}

	// Validate references before any write
	if _, err := s.workerRepo.GetByID(ctx, req.WorkerID); err != nil {
		return nil, fmt.Errorf("failed to resolve worker %s: %w", req.WorkerID, err)
	}
	wo, err := s.workOrderRepo.GetByID(ctx, req.WorkOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve work order %s: %w", req.WorkOrderID, err)
	}
	var li *secondary.LineItemRecord
	if req.LineItemID != "" {
		li, err = s.lineItemRepo.GetByID(ctx, req.LineItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve line item %s: %w", req.LineItemID, err)
		}
		if li.WorkOrderID != req.WorkOrderID {
			return nil, fmt.Errorf("%w: line item %s belongs to %s, not %s", ErrInvalidInput, li.ID, li.WorkOrderID, req.WorkOrderID)
		}
	}

	rates, err := s.rates.Resolve(ctx, req.WorkerID, req.WorkOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve rates: %w", err)
	}

	record := &secondary.TimeEntryRecord{
		ID:            uuid.NewString(),
		WorkerID:      req.WorkerID,
		WorkOrderID:   req.WorkOrderID,
		LineItemID:    req.LineItemID,
		TaskType:      req.TaskType,
		TaskLabel:     req.TaskLabel,
		StartedAt:     s.now(),
		LaborRate:     rates.LaborRate,
		EquipmentRate: rates.EquipmentRate,
	}

	if err := s.entryRepo.Create(ctx, record); err != nil {
		// The store's uniqueness guarantee closes the race between the
		// open-timer check above and this insert.
		if errors.Is(err, secondary.ErrOpenTimerExists) {
			return nil, fmt.Errorf("%w: stop the active timer first", ErrTimerActive)
		}
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}

	// First activity moves dormant scope into progress
	if wo.Status == primary.StatusNotStarted {
		if err := s.workOrderRepo.UpdateStatus(ctx, wo.ID, primary.StatusInProgress, nil); err != nil {
			return nil, fmt.Errorf("failed to update work order status: %w", err)
		}
	}
	if li != nil && li.Status == primary.StatusNotStarted {
		if err := s.lineItemRepo.UpdateStatus(ctx, li.ID, primary.StatusInProgress, nil); err != nil {
			return nil, fmt.Errorf("failed to update line item status: %w", err)
		}
	}

	return recordToTimeEntry(record), nil
}

// Stop closes an open entry. The rollups for the owning work order and
// line item run synchronously, so callers observe updated totals as soon
// as Stop returns.
func (s *TimerServiceImpl) Stop(ctx context.Context, req primary.StopTimerRequest) (*primary.StopTimerResult, error) {
	entry, err := s.entryRepo.GetByID(ctx, req.TimeEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get time entry %s: %w", req.TimeEntryID, err)
	}
	if entry.EndedAt != nil {
		return nil, fmt.Errorf("%w: %s", ErrEntryClosed, entry.ID)
	}

	end := s.now()
	result := costing.Compute(entry.StartedAt, end, entry.LaborRate, entry.EquipmentRate)

	if err := s.entryRepo.Close(ctx, entry.ID, end, result.DurationHours, result.TotalCost, req.Note); err != nil {
		// The guarded update matched no open row: a concurrent stop won.
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrEntryClosed, entry.ID)
		}
		return nil, fmt.Errorf("failed to close time entry: %w", err)
	}

	if err := s.rollups.RecomputeWorkOrder(ctx, entry.WorkOrderID); err != nil {
		return nil, fmt.Errorf("failed to recompute work order %s: %w", entry.WorkOrderID, err)
	}
	if entry.LineItemID != "" {
		if err := s.rollups.RecomputeLineItem(ctx, entry.LineItemID); err != nil {
			return nil, fmt.Errorf("failed to recompute line item %s: %w", entry.LineItemID, err)
		}
	}

	closed, err := s.entryRepo.GetByID(ctx, entry.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch closed entry: %w", err)
	}

	return &primary.StopTimerResult{
		Entry:         recordToTimeEntry(closed),
		DurationHours: result.DurationHours,
		TotalCost:     result.TotalCost,
	}, nil
}

// GetOpen returns the worker's open entry, or nil when idle.
func (s *TimerServiceImpl) GetOpen(ctx context.Context, workerID string) (*primary.TimeEntry, error) {
	record, err := s.entryRepo.GetOpenByWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get open timer: %w", err)
	}
	if record == nil {
		return nil, nil
	}
	return recordToTimeEntry(record), nil
}

// AddManualEntry records an already-closed backdated entry. The interval
// is validated up front; the entry never passes through the open state, so
// it cannot collide with a running timer.
func (s *TimerServiceImpl) AddManualEntry(ctx context.Context, req primary.ManualEntryRequest) (*primary.TimeEntry, error) {
	duration := req.EndedAt.Sub(req.StartedAt).Hours()

	guard := timeclock.CanAddManualEntry(timeclock.ManualEntryContext{
		TaskType:      req.TaskType,
		LineItemID:    req.LineItemID,
		DurationHours: duration,
	})
	if !guard.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, guard.Reason)
	}

	if _, err := s.workerRepo.GetByID(ctx, req.WorkerID); err != nil {
		return nil, fmt.Errorf("failed to resolve worker %s: %w", req.WorkerID, err)
	}
	if _, err := s.workOrderRepo.GetByID(ctx, req.WorkOrderID); err != nil {
		return nil, fmt.Errorf("failed to resolve work order %s: %w", req.WorkOrderID, err)
	}
	if req.LineItemID != "" {
		li, err := s.lineItemRepo.GetByID(ctx, req.LineItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve line item %s: %w", req.LineItemID, err)
		}
		if li.WorkOrderID != req.WorkOrderID {
			return nil, fmt.Errorf("%w: line item %s belongs to %s, not %s", ErrInvalidInput, li.ID, li.WorkOrderID, req.WorkOrderID)
		}
	}

	rates, err := s.rates.Resolve(ctx, req.WorkerID, req.WorkOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve rates: %w", err)
	}

	result := costing.Compute(req.StartedAt, req.EndedAt, rates.LaborRate, rates.EquipmentRate)
	ended := req.EndedAt

	record := &secondary.TimeEntryRecord{
		ID:            uuid.NewString(),
		WorkerID:      req.WorkerID,
		WorkOrderID:   req.WorkOrderID,
		LineItemID:    req.LineItemID,
		TaskType:      req.TaskType,
		TaskLabel:     req.TaskLabel,
		StartedAt:     req.StartedAt,
		EndedAt:       &ended,
		LaborRate:     rates.LaborRate,
		EquipmentRate: rates.EquipmentRate,
		DurationHours: &result.DurationHours,
		TotalCost:     &result.TotalCost,
		Note:          req.Note,
	}

	if err := s.entryRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create manual entry: %w", err)
	}

	if err := s.rollups.RecomputeWorkOrder(ctx, req.WorkOrderID); err != nil {
		return nil, fmt.Errorf("failed to recompute work order %s: %w", req.WorkOrderID, err)
	}
	if req.LineItemID != "" {
		if err := s.rollups.RecomputeLineItem(ctx, req.LineItemID); err != nil {
			return nil, fmt.Errorf("failed to recompute line item %s: %w", req.LineItemID, err)
		}
	}

	return recordToTimeEntry(record), nil
}

// ListEntries returns all entries for a work order, oldest first.
func (s *TimerServiceImpl) ListEntries(ctx context.Context, workOrderID string) ([]*primary.TimeEntry, error) {
	records, err := s.entryRepo.ListByWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	entries := make([]*primary.TimeEntry, len(records))
	for i, r := range records {
		entries[i] = recordToTimeEntry(r)
	}
	return entries, nil
}

func recordToTimeEntry(r *secondary.TimeEntryRecord) *primary.TimeEntry {
	return &primary.TimeEntry{
		ID:            r.ID,
		WorkerID:      r.WorkerID,
		WorkOrderID:   r.WorkOrderID,
		LineItemID:    r.LineItemID,
		TaskType:      r.TaskType,
		TaskLabel:     r.TaskLabel,
		StartedAt:     r.StartedAt,
		EndedAt:       r.EndedAt,
		LaborRate:     r.LaborRate,
		EquipmentRate: r.EquipmentRate,
		DurationHours: r.DurationHours,
		TotalCost:     r.TotalCost,
		Note:          r.Note,
	}
}

// Ensure TimerServiceImpl implements the interface
var _ primary.TimerService = (*TimerServiceImpl)(nil)
