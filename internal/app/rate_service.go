package app

import (
	"context"
	"fmt"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/ports/secondary"
)

// DefaultLaborRate is the final fallback hourly labor rate applied when a
// worker has neither an effective nor a fully-burdened rate configured.
// Business default inherited from the ops team; confirm before changing.
const DefaultLaborRate = 40.00

// RateServiceImpl implements the RateService interface.
type RateServiceImpl struct {
	workerRepo    secondary.WorkerRepository
	workOrderRepo secondary.WorkOrderRepository
	loadoutRepo   secondary.LoadoutRepository
}

// NewRateService creates a new RateService with injected dependencies.
func NewRateService(
	workerRepo secondary.WorkerRepository,
	workOrderRepo secondary.WorkOrderRepository,
	loadoutRepo secondary.LoadoutRepository,
) *RateServiceImpl {
	return &RateServiceImpl{
		workerRepo:    workerRepo,
		workOrderRepo: workOrderRepo,
		loadoutRepo:   loadoutRepo,
	}
}

// Resolve computes the hourly rate pair for a worker on a work order.
// Labor falls through three tiers: effective rate, fully-burdened rate,
// DefaultLaborRate. Unset rate fields never fail; only a missing worker
// or work order does.
func (s *RateServiceImpl) Resolve(ctx context.Context, workerID, workOrderID string) (*primary.ResolvedRates, error) {
	worker, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve worker %s: %w", workerID, err)
	}

	labor := DefaultLaborRate
	switch {
	case worker.EffectiveRate != nil:
		labor = *worker.EffectiveRate
	case worker.BurdenedRate != nil:
		labor = *worker.BurdenedRate
	}

	wo, err := s.workOrderRepo.GetByID(ctx, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve work order %s: %w", workOrderID, err)
	}

	var equipment float64
	if wo.LoadoutID != "" {
		equipment, err = s.loadoutRepo.SumHourlyCost(ctx, wo.LoadoutID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum loadout %s equipment cost: %w", wo.LoadoutID, err)
		}
	}

	return &primary.ResolvedRates{
		LaborRate:     labor,
		EquipmentRate: equipment,
	}, nil
}

// Ensure RateServiceImpl implements the interface
var _ primary.RateService = (*RateServiceImpl)(nil)
