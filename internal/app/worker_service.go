package app

import (
	"context"
	"fmt"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/ports/secondary"
)

// WorkerServiceImpl implements the WorkerService interface.
type WorkerServiceImpl struct {
	workerRepo secondary.WorkerRepository
}

// NewWorkerService creates a new WorkerService with injected dependencies.
func NewWorkerService(workerRepo secondary.WorkerRepository) *WorkerServiceImpl {
	return &WorkerServiceImpl{workerRepo: workerRepo}
}

// CreateWorker creates a new worker.
func (s *WorkerServiceImpl) CreateWorker(ctx context.Context, req primary.CreateWorkerRequest) (*primary.Worker, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: worker name is required", ErrInvalidInput)
	}
	if (req.EffectiveRate != nil && *req.EffectiveRate < 0) || (req.BurdenedRate != nil && *req.BurdenedRate < 0) {
		return nil, fmt.Errorf("%w: hourly rates must not be negative", ErrInvalidInput)
	}

	nextID, err := s.workerRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate worker ID: %w", err)
	}

	record := &secondary.WorkerRecord{
		ID:            nextID,
		Name:          req.Name,
		Role:          req.Role,
		EffectiveRate: req.EffectiveRate,
		BurdenedRate:  req.BurdenedRate,
		Status:        "active",
	}
	if err := s.workerRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	created, err := s.workerRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created worker: %w", err)
	}
	return recordToWorker(created), nil
}

// GetWorker retrieves a worker by ID.
func (s *WorkerServiceImpl) GetWorker(ctx context.Context, workerID string) (*primary.Worker, error) {
	record, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker %s: %w", workerID, err)
	}
	return recordToWorker(record), nil
}

// ListWorkers lists workers, optionally filtered by status.
func (s *WorkerServiceImpl) ListWorkers(ctx context.Context, status string) ([]*primary.Worker, error) {
	records, err := s.workerRepo.List(ctx, secondary.WorkerFilters{Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	workers := make([]*primary.Worker, len(records))
	for i, r := range records {
		workers[i] = recordToWorker(r)
	}
	return workers, nil
}

// SetRates updates the hourly rates. Running timers keep the rates they
// snapshotted at start; only future entries see the change.
func (s *WorkerServiceImpl) SetRates(ctx context.Context, workerID string, effective, burdened *float64) error {
	if (effective != nil && *effective < 0) || (burdened != nil && *burdened < 0) {
		return fmt.Errorf("%w: hourly rates must not be negative", ErrInvalidInput)
	}
	if _, err := s.workerRepo.GetByID(ctx, workerID); err != nil {
		return fmt.Errorf("failed to get worker %s: %w", workerID, err)
	}
	if err := s.workerRepo.UpdateRates(ctx, workerID, effective, burdened); err != nil {
		return fmt.Errorf("failed to update rates for %s: %w", workerID, err)
	}
	return nil
}

func recordToWorker(r *secondary.WorkerRecord) *primary.Worker {
	return &primary.Worker{
		ID:            r.ID,
		Name:          r.Name,
		Role:          r.Role,
		EffectiveRate: r.EffectiveRate,
		BurdenedRate:  r.BurdenedRate,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// Ensure WorkerServiceImpl implements the interface
var _ primary.WorkerService = (*WorkerServiceImpl)(nil)
