package primary

import "context"

// RateService defines the primary port for rate resolution.
type RateService interface {
	// Resolve computes the effective hourly labor rate for the worker
	// and the hourly equipment rate contributed by the work order's
	// assigned loadout. Read-only; never fails on unset rate fields.
	Resolve(ctx context.Context, workerID, workOrderID string) (*ResolvedRates, error)
}

// ResolvedRates is the hourly rate pair snapshotted onto a time entry.
type ResolvedRates struct {
	LaborRate     float64
	EquipmentRate float64
}
