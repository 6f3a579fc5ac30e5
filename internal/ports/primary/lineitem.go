package primary

import "context"

// LineItemService defines the primary port for line item operations,
// including the completion cascade onto the owning work order.
type LineItemService interface {
	// AddLineItem creates a line item and adds its estimates to the
	// work order's estimated totals.
	AddLineItem(ctx context.Context, req AddLineItemRequest) (*AddLineItemResponse, error)

	// GetLineItem retrieves a line item by ID.
	GetLineItem(ctx context.Context, lineItemID string) (*LineItem, error)

	// ListLineItems lists the line items of a work order.
	ListLineItems(ctx context.Context, workOrderID string) ([]*LineItem, error)

	// MarkComplete completes a line item. The work order cascades to
	// completed iff every sibling line item is now completed.
	MarkComplete(ctx context.Context, lineItemID string) error

	// Reopen reverts a completed line item to in_progress. A completed
	// work order is unconditionally reopened with it.
	Reopen(ctx context.Context, lineItemID string) error

	// DeleteLineItem deletes a line item and subtracts its estimates
	// from the work order's totals, clamped at zero.
	DeleteLineItem(ctx context.Context, lineItemID string) error
}

// AddLineItemRequest contains parameters for adding a line item.
type AddLineItemRequest struct {
	WorkOrderID    string
	Title          string
	EstimatedHours float64
	EstimatedCost  float64
	EstimatedScore float64 // normalized productivity units for the production rate
}

// AddLineItemResponse contains the result of adding a line item.
type AddLineItemResponse struct {
	LineItemID string
	LineItem   *LineItem
}

// LineItem is the service-level snapshot of a line item. ProductionRate
// is nil until the item has productive hours (never NaN or Inf).
type LineItem struct {
	ID             string
	WorkOrderID    string
	Title          string
	Status         string
	EstimatedHours float64
	EstimatedCost  float64
	EstimatedScore float64
	ActualHours    float64
	ProductionRate *float64
	Variance       float64
	CompletedAt    string
	CreatedAt      string
	UpdatedAt      string
}
