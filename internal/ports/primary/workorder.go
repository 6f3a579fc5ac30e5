package primary

import "context"

// Work order and line item status values.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// WorkOrderService defines the primary port for work order operations.
type WorkOrderService interface {
	// CreateWorkOrder creates a new work order.
	CreateWorkOrder(ctx context.Context, req CreateWorkOrderRequest) (*CreateWorkOrderResponse, error)

	// GetWorkOrder retrieves a work order by ID.
	GetWorkOrder(ctx context.Context, workOrderID string) (*WorkOrder, error)

	// ListWorkOrders lists work orders with optional filters.
	ListWorkOrders(ctx context.Context, filters WorkOrderFilters) ([]*WorkOrder, error)

	// AssignLoadout assigns a loadout to a work order. An empty loadout
	// ID clears the assignment.
	AssignLoadout(ctx context.Context, workOrderID, loadoutID string) error

	// DeleteWorkOrder deletes a work order along with its line items
	// and time entries.
	DeleteWorkOrder(ctx context.Context, workOrderID string) error
}

// CreateWorkOrderRequest contains parameters for creating a work order.
type CreateWorkOrderRequest struct {
	Title    string
	Customer string // Optional
}

// CreateWorkOrderResponse contains the result of creating a work order.
type CreateWorkOrderResponse struct {
	WorkOrderID string
	WorkOrder   *WorkOrder
}

// WorkOrderFilters contains filter options for listing work orders.
type WorkOrderFilters struct {
	Status   string
	Customer string
}

// WorkOrder is the service-level snapshot of a work order, carrying the
// rollup caches maintained by the aggregator.
type WorkOrder struct {
	ID                    string
	Title                 string
	Customer              string
	Status                string
	LoadoutID             string
	EstimatedHours        float64
	EstimatedCost         float64
	ActualProductiveHours float64
	ActualSupportHours    float64
	ActualTotalCost       float64
	CompletedAt           string
	CreatedAt             string
	UpdatedAt             string
}
