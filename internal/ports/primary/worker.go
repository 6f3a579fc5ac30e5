package primary

import "context"

// WorkerService defines the primary port for worker reference data.
type WorkerService interface {
	// CreateWorker creates a new worker.
	CreateWorker(ctx context.Context, req CreateWorkerRequest) (*Worker, error)

	// GetWorker retrieves a worker by ID.
	GetWorker(ctx context.Context, workerID string) (*Worker, error)

	// ListWorkers lists workers, optionally filtered by status.
	ListWorkers(ctx context.Context, status string) ([]*Worker, error)

	// SetRates updates the hourly rates. Nil clears a rate, dropping
	// resolution to the next fallback tier.
	SetRates(ctx context.Context, workerID string, effective, burdened *float64) error
}

// CreateWorkerRequest contains parameters for creating a worker.
type CreateWorkerRequest struct {
	Name          string
	Role          string   // Optional
	EffectiveRate *float64 // Optional
	BurdenedRate  *float64 // Optional
}

// Worker is the service-level view of a worker.
type Worker struct {
	ID            string
	Name          string
	Role          string
	EffectiveRate *float64
	BurdenedRate  *float64
	Status        string
	CreatedAt     string
	UpdatedAt     string
}
