package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/fieldops/internal/ports/secondary"
)

// WorkOrderRepository implements secondary.WorkOrderRepository with SQLite.
type WorkOrderRepository struct {
	db *sql.DB
}

// NewWorkOrderRepository creates a new SQLite work order repository.
func NewWorkOrderRepository(db *sql.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

const workOrderSelectCols = "id, title, customer, status, loadout_id, estimated_hours, estimated_cost, actual_productive_hours, actual_support_hours, actual_total_cost, completed_at, created_at, updated_at"

// scanWorkOrder scans a work order row into a WorkOrderRecord.
func scanWorkOrder(scanner interface {
	Scan(dest ...any) error
}) (*secondary.WorkOrderRecord, error) {
	var (
		customer    sql.NullString
		loadoutID   sql.NullString
		completedAt sql.NullTime
		createdAt   time.Time
		updatedAt   time.Time
	)

	record := &secondary.WorkOrderRecord{}
	err := scanner.Scan(
		&record.ID, &record.Title, &customer, &record.Status, &loadoutID,
		&record.EstimatedHours, &record.EstimatedCost,
		&record.ActualProductiveHours, &record.ActualSupportHours, &record.ActualTotalCost,
		&completedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Customer = customer.String
	record.LoadoutID = loadoutID.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	if completedAt.Valid {
		record.CompletedAt = completedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// Create persists a new work order.
func (r *WorkOrderRepository) Create(ctx context.Context, wo *secondary.WorkOrderRecord) error {
	var customer, loadoutID sql.NullString
	if wo.Customer != "" {
		customer = sql.NullString{String: wo.Customer, Valid: true}
	}
	if wo.LoadoutID != "" {
		loadoutID = sql.NullString{String: wo.LoadoutID, Valid: true}
	}

	status := wo.Status
	if status == "" {
		status = "not_started"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO work_orders (id, title, customer, status, loadout_id, estimated_hours, estimated_cost) VALUES (?, ?, ?, ?, ?, ?, ?)",
		wo.ID, wo.Title, customer, status, loadoutID, wo.EstimatedHours, wo.EstimatedCost,
	)
	if err != nil {
		return fmt.Errorf("failed to create work order: %w", err)
	}

	return nil
}

// GetByID retrieves a work order by its ID.
func (r *WorkOrderRepository) GetByID(ctx context.Context, id string) (*secondary.WorkOrderRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+workOrderSelectCols+" FROM work_orders WHERE id = ?",
		id,
	)

	record, err := scanWorkOrder(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("work order %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work order: %w", err)
	}

	return record, nil
}

// List retrieves work orders matching the given filters.
func (r *WorkOrderRepository) List(ctx context.Context, filters secondary.WorkOrderFilters) ([]*secondary.WorkOrderRecord, error) {
	query := "SELECT " + workOrderSelectCols + " FROM work_orders WHERE 1=1"
	var args []any

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.Customer != "" {
		query += " AND customer = ?"
		args = append(args, filters.Customer)
	}
	query += " ORDER BY id"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	defer rows.Close()

	var records []*secondary.WorkOrderRecord
	for rows.Next() {
		record, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work order: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work orders: %w", err)
	}

	return records, nil
}

// Delete removes a work order. Line items and time entries cascade.
func (r *WorkOrderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM work_orders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete work order: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("work order %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// AssignLoadout sets (or clears, with empty ID) the assigned loadout.
func (r *WorkOrderRepository) AssignLoadout(ctx context.Context, id, loadoutID string) error {
	var val sql.NullString
	if loadoutID != "" {
		val = sql.NullString{String: loadoutID, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE work_orders SET loadout_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		val, id,
	)
	if err != nil {
		return fmt.Errorf("failed to assign loadout: %w", err)
	}
	return nil
}

// UpdateStatus sets the work order status and completion timestamp.
func (r *WorkOrderRepository) UpdateStatus(ctx context.Context, id, status string, completedAt *time.Time) error {
	var val sql.NullTime
	if completedAt != nil {
		val = sql.NullTime{Time: *completedAt, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE work_orders SET status = ?, completed_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, val, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update work order status: %w", err)
	}
	return nil
}

// UpdateActuals persists the three rollup totals in one update.
func (r *WorkOrderRepository) UpdateActuals(ctx context.Context, id string, productiveHours, supportHours, totalCost float64) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE work_orders SET actual_productive_hours = ?, actual_support_hours = ?, actual_total_cost = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		productiveHours, supportHours, totalCost, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update work order actuals: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check actuals update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("work order %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// AdjustEstimates adds the deltas to the estimated totals in one atomic
// update, clamped at zero so drift can never push them negative.
func (r *WorkOrderRepository) AdjustEstimates(ctx context.Context, id string, deltaHours, deltaCost float64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE work_orders SET estimated_hours = MAX(0, estimated_hours + ?), estimated_cost = MAX(0, estimated_cost + ?), updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		deltaHours, deltaCost, id,
	)
	if err != nil {
		return fmt.Errorf("failed to adjust work order estimates: %w", err)
	}
	return nil
}

// GetNextID returns the next available work order ID. Based on the max
// existing suffix, not row count, so deletions never recycle IDs.
func (r *WorkOrderRepository) GetNextID(ctx context.Context) (string, error) {
	var max int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM work_orders",
	).Scan(&max)
	if err != nil {
		return "", fmt.Errorf("failed to get max work order ID: %w", err)
	}
	return fmt.Sprintf("WO-%03d", max+1), nil
}

// Ensure WorkOrderRepository implements the interface
var _ secondary.WorkOrderRepository = (*WorkOrderRepository)(nil)
