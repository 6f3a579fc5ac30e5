package primary

import (
	"context"
	"time"
)

// Task classifications for time entries.
const (
	TaskTypeProductive = "productive" // billable work tied to a line item
	TaskTypeSupport    = "support"    // overhead work tied only to the work order
)

// TimerService defines the primary port for the time clock.
type TimerService interface {
	// Start opens a timer for a worker. Fails with ErrTimerActive when
	// the worker already has an open timer anywhere in the system.
	// Rates are resolved and snapshotted at start; later rate changes
	// never alter an in-progress timer.
	Start(ctx context.Context, req StartTimerRequest) (*TimeEntry, error)

	// Stop closes an open entry, computes its duration and cost, and
	// synchronously recomputes the owning work order and line item
	// before returning.
	Stop(ctx context.Context, req StopTimerRequest) (*StopTimerResult, error)

	// GetOpen returns the worker's open entry, or nil when idle.
	GetOpen(ctx context.Context, workerID string) (*TimeEntry, error)

	// AddManualEntry records an already-closed backdated entry and
	// triggers the same rollups as Stop.
	AddManualEntry(ctx context.Context, req ManualEntryRequest) (*TimeEntry, error)

	// ListEntries returns all entries for a work order, oldest first.
	ListEntries(ctx context.Context, workOrderID string) ([]*TimeEntry, error)
}

// StartTimerRequest contains parameters for starting a timer.
type StartTimerRequest struct {
	WorkerID    string
	WorkOrderID string
	LineItemID  string // required for productive entries, empty for support
	TaskType    string // TaskTypeProductive or TaskTypeSupport
	TaskLabel   string
}

// StopTimerRequest contains parameters for stopping a timer.
type StopTimerRequest struct {
	TimeEntryID string
	Note        string // Optional
}

// StopTimerResult contains the computed outcome of a stop.
type StopTimerResult struct {
	Entry         *TimeEntry
	DurationHours float64
	TotalCost     float64
}

// ManualEntryRequest contains parameters for a backdated entry.
type ManualEntryRequest struct {
	WorkerID    string
	WorkOrderID string
	LineItemID  string // required for productive entries
	TaskType    string
	TaskLabel   string
	StartedAt   time.Time
	EndedAt     time.Time // must be after StartedAt
	Note        string    // Optional
}

// TimeEntry is the service-level view of one interval of work.
// Open entries have nil EndedAt, DurationHours and TotalCost.
type TimeEntry struct {
	ID            string
	WorkerID      string
	WorkOrderID   string
	LineItemID    string
	TaskType      string
	TaskLabel     string
	StartedAt     time.Time
	EndedAt       *time.Time
	LaborRate     float64
	EquipmentRate float64
	DurationHours *float64
	TotalCost     *float64
	Note          string
}

// Open reports whether the entry is still running.
func (e *TimeEntry) Open() bool {
	return e.EndedAt == nil
}
