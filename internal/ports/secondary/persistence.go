// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by repositories when the referenced entity does
// not exist. Services wrap it with the entity ID for the caller.
var ErrNotFound = errors.New("not found")

// ErrOpenTimerExists is returned when inserting an open time entry for a
// worker who already has one. The store enforces this atomically, so a
// racing second start surfaces here rather than creating a second open row.
var ErrOpenTimerExists = errors.New("open timer already exists for worker")

// WorkerRepository defines the secondary port for worker persistence.
type WorkerRepository interface {
	// Create persists a new worker.
	Create(ctx context.Context, worker *WorkerRecord) error

	// GetByID retrieves a worker by its ID.
	GetByID(ctx context.Context, id string) (*WorkerRecord, error)

	// List retrieves workers matching the given filters.
	List(ctx context.Context, filters WorkerFilters) ([]*WorkerRecord, error)

	// UpdateRates sets the effective and fully-burdened hourly rates.
	// A nil rate clears the stored value.
	UpdateRates(ctx context.Context, id string, effective, burdened *float64) error

	// GetNextID returns the next available worker ID.
	GetNextID(ctx context.Context) (string, error)
}

// WorkerRecord represents a worker as stored in persistence.
type WorkerRecord struct {
	ID            string
	Name          string
	Role          string
	EffectiveRate *float64 // nil when unset; rate resolution falls back
	BurdenedRate  *float64 // nil when unset
	Status        string
	CreatedAt     string
	UpdatedAt     string
}

// WorkerFilters contains filter options for querying workers.
type WorkerFilters struct {
	Status string
}

// EquipmentRepository defines the secondary port for equipment persistence.
type EquipmentRepository interface {
	// Create persists a new equipment item.
	Create(ctx context.Context, eq *EquipmentRecord) error

	// GetByID retrieves an equipment item by its ID.
	GetByID(ctx context.Context, id string) (*EquipmentRecord, error)

	// List retrieves all equipment items.
	List(ctx context.Context) ([]*EquipmentRecord, error)

	// GetNextID returns the next available equipment ID.
	GetNextID(ctx context.Context) (string, error)
}

// EquipmentRecord represents an equipment item as stored in persistence.
type EquipmentRecord struct {
	ID         string
	Name       string
	HourlyCost float64
	Status     string
	CreatedAt  string
	UpdatedAt  string
}

// LoadoutRepository defines the secondary port for loadout persistence.
type LoadoutRepository interface {
	// Create persists a new loadout.
	Create(ctx context.Context, loadout *LoadoutRecord) error

	// GetByID retrieves a loadout with its equipment items.
	GetByID(ctx context.Context, id string) (*LoadoutRecord, error)

	// List retrieves all loadouts.
	List(ctx context.Context) ([]*LoadoutRecord, error)

	// AddEquipment attaches an equipment item to the loadout.
	AddEquipment(ctx context.Context, loadoutID, equipmentID string) error

	// RemoveEquipment detaches an equipment item from the loadout.
	RemoveEquipment(ctx context.Context, loadoutID, equipmentID string) error

	// SumHourlyCost returns the combined hourly cost of the loadout's
	// equipment. Zero for an empty or missing loadout.
	SumHourlyCost(ctx context.Context, loadoutID string) (float64, error)

	// GetNextID returns the next available loadout ID.
	GetNextID(ctx context.Context) (string, error)
}

// LoadoutRecord represents a loadout as stored in persistence.
type LoadoutRecord struct {
	ID        string
	Name      string
	Equipment []*EquipmentRecord // populated by GetByID
	CreatedAt string
	UpdatedAt string
}

// WorkOrderRepository defines the secondary port for work order persistence.
type WorkOrderRepository interface {
	// Create persists a new work order.
	Create(ctx context.Context, wo *WorkOrderRecord) error

	// GetByID retrieves a work order by its ID.
	GetByID(ctx context.Context, id string) (*WorkOrderRecord, error)

	// List retrieves work orders matching the given filters.
	List(ctx context.Context, filters WorkOrderFilters) ([]*WorkOrderRecord, error)

	// Delete removes a work order. Its time entries and line items go
	// with it (ON DELETE CASCADE).
	Delete(ctx context.Context, id string) error

	// AssignLoadout sets (or clears, with empty ID) the assigned loadout.
	AssignLoadout(ctx context.Context, id, loadoutID string) error

	// UpdateStatus sets the work order status and its completion
	// timestamp (nil clears it).
	UpdateStatus(ctx context.Context, id, status string, completedAt *time.Time) error

	// UpdateActuals persists the three rollup totals in one update.
	UpdateActuals(ctx context.Context, id string, productiveHours, supportHours, totalCost float64) error

	// AdjustEstimates adds the deltas to the estimated totals, clamped
	// at zero. The adjustment is a single atomic update.
	AdjustEstimates(ctx context.Context, id string, deltaHours, deltaCost float64) error

	// GetNextID returns the next available work order ID.
	GetNextID(ctx context.Context) (string, error)
}

// WorkOrderRecord represents a work order as stored in persistence.
// The actual_* fields are rollup caches owned by the aggregator.
type WorkOrderRecord struct {
	ID                    string
	Title                 string
	Customer              string
	Status                string
	LoadoutID             string // empty when no loadout assigned
	EstimatedHours        float64
	EstimatedCost         float64
	ActualProductiveHours float64
	ActualSupportHours    float64
	ActualTotalCost       float64
	CompletedAt           string // RFC3339, empty when not completed
	CreatedAt             string
	UpdatedAt             string
}

// WorkOrderFilters contains filter options for querying work orders.
type WorkOrderFilters struct {
	Status   string
	Customer string
	Limit    int
}

// LineItemRepository defines the secondary port for line item persistence.
type LineItemRepository interface {
	// Create persists a new line item.
	Create(ctx context.Context, li *LineItemRecord) error

	// GetByID retrieves a line item by its ID.
	GetByID(ctx context.Context, id string) (*LineItemRecord, error)

	// ListByWorkOrder retrieves all line items for a work order.
	ListByWorkOrder(ctx context.Context, workOrderID string) ([]*LineItemRecord, error)

	// Delete removes a line item. Time entries referencing it keep their
	// (now dangling) reference.
	Delete(ctx context.Context, id string) error

	// UpdateStatus sets the line item status and its completion
	// timestamp (nil clears it).
	UpdateStatus(ctx context.Context, id, status string, completedAt *time.Time) error

	// UpdateActuals persists the rollup fields. A nil productionRate
	// stores NULL (the item has no productive hours yet).
	UpdateActuals(ctx context.Context, id string, actualHours float64, productionRate *float64, variance float64) error

	// GetNextID returns the next available line item ID.
	GetNextID(ctx context.Context) (string, error)
}

// LineItemRecord represents a line item as stored in persistence.
type LineItemRecord struct {
	ID             string
	WorkOrderID    string
	Title          string
	Status         string
	EstimatedHours float64
	EstimatedCost  float64
	EstimatedScore float64
	ActualHours    float64
	ProductionRate *float64 // nil until the item has productive hours
	Variance       float64
	CompletedAt    string // RFC3339, empty when not completed
	CreatedAt      string
	UpdatedAt      string
}

// TimeEntryRepository defines the secondary port for time entry persistence.
type TimeEntryRepository interface {
	// Create persists a new time entry, open (EndedAt nil) or already
	// closed (manual backdated entry). Returns ErrOpenTimerExists when
	// an open entry is inserted for a worker who already has one.
	Create(ctx context.Context, entry *TimeEntryRecord) error

	// GetByID retrieves a time entry by its ID.
	GetByID(ctx context.Context, id string) (*TimeEntryRecord, error)

	// GetOpenByWorker returns the worker's open entry, or nil when the
	// worker is idle.
	GetOpenByWorker(ctx context.Context, workerID string) (*TimeEntryRecord, error)

	// Close terminates an open entry, setting end instant, duration,
	// cost and note in one update guarded on the entry still being
	// open. Returns ErrNotFound when no open row matched.
	Close(ctx context.Context, id string, endedAt time.Time, durationHours, totalCost float64, note string) error

	// ListByWorkOrder retrieves all entries (open and closed) for a
	// work order, oldest first.
	ListByWorkOrder(ctx context.Context, workOrderID string) ([]*TimeEntryRecord, error)

	// ListClosedByWorkOrder retrieves the closed entries for a work
	// order. Open entries never contribute to rollups.
	ListClosedByWorkOrder(ctx context.Context, workOrderID string) ([]*TimeEntryRecord, error)

	// ListClosedByLineItem retrieves the closed entries referencing a
	// line item.
	ListClosedByLineItem(ctx context.Context, lineItemID string) ([]*TimeEntryRecord, error)
}

// TimeEntryRecord represents a time entry as stored in persistence.
// An entry is open when EndedAt is nil; DurationHours and TotalCost are
// set together with EndedAt and never before.
type TimeEntryRecord struct {
	ID            string
	WorkerID      string
	WorkOrderID   string
	LineItemID    string // empty for support entries; may dangle after line item deletion
	TaskType      string // "productive" or "support"
	TaskLabel     string
	StartedAt     time.Time
	EndedAt       *time.Time
	LaborRate     float64
	EquipmentRate float64
	DurationHours *float64
	TotalCost     *float64
	Note          string
	CreatedAt     string
}
