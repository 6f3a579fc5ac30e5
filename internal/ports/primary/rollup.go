package primary

import "context"

// RollupService defines the primary port for derived-total recomputation.
// Both operations are idempotent full replays over the closed time entries:
// they always read the complete current set rather than applying deltas, so
// edits, deletions and re-runs converge to the same totals.
type RollupService interface {
	// RecomputeWorkOrder recomputes actual productive/support hours and
	// actual total cost for a work order and persists them in one update.
	RecomputeWorkOrder(ctx context.Context, workOrderID string) error

	// RecomputeLineItem recomputes actual hours, production rate and
	// variance for a line item. A line item that no longer exists is
	// skipped without error (time entries reference it weakly).
	RecomputeLineItem(ctx context.Context, lineItemID string) error
}
