package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/fieldops/internal/ports/secondary"
)

// LineItemRepository implements secondary.LineItemRepository with SQLite.
type LineItemRepository struct {
	db *sql.DB
}

// NewLineItemRepository creates a new SQLite line item repository.
func NewLineItemRepository(db *sql.DB) *LineItemRepository {
	return &LineItemRepository{db: db}
}

const lineItemSelectCols = "id, work_order_id, title, status, estimated_hours, estimated_cost, estimated_score, actual_hours, production_rate, variance, completed_at, created_at, updated_at"

// scanLineItem scans a line item row into a LineItemRecord.
func scanLineItem(scanner interface {
	Scan(dest ...any) error
}) (*secondary.LineItemRecord, error) {
	var (
		productionRate sql.NullFloat64
		completedAt    sql.NullTime
		createdAt      time.Time
		updatedAt      time.Time
	)

	record := &secondary.LineItemRecord{}
	err := scanner.Scan(
		&record.ID, &record.WorkOrderID, &record.Title, &record.Status,
		&record.EstimatedHours, &record.EstimatedCost, &record.EstimatedScore,
		&record.ActualHours, &productionRate, &record.Variance,
		&completedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if productionRate.Valid {
		rate := productionRate.Float64
		record.ProductionRate = &rate
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	if completedAt.Valid {
		record.CompletedAt = completedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// Create persists a new line item.
func (r *LineItemRepository) Create(ctx context.Context, li *secondary.LineItemRecord) error {
	status := li.Status
	if status == "" {
		status = "not_started"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO line_items (id, work_order_id, title, status, estimated_hours, estimated_cost, estimated_score) VALUES (?, ?, ?, ?, ?, ?, ?)",
		li.ID, li.WorkOrderID, li.Title, status, li.EstimatedHours, li.EstimatedCost, li.EstimatedScore,
	)
	if err != nil {
		return fmt.Errorf("failed to create line item: %w", err)
	}

	return nil
}

// GetByID retrieves a line item by its ID.
func (r *LineItemRepository) GetByID(ctx context.Context, id string) (*secondary.LineItemRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+lineItemSelectCols+" FROM line_items WHERE id = ?",
		id,
	)

	record, err := scanLineItem(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("line item %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get line item: %w", err)
	}

	return record, nil
}

// ListByWorkOrder retrieves all line items for a work order.
func (r *LineItemRepository) ListByWorkOrder(ctx context.Context, workOrderID string) ([]*secondary.LineItemRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+lineItemSelectCols+" FROM line_items WHERE work_order_id = ? ORDER BY id",
		workOrderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	defer rows.Close()

	var records []*secondary.LineItemRecord
	for rows.Next() {
		record, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate line items: %w", err)
	}

	return records, nil
}

// Delete removes a line item. Time entries keep their reference.
func (r *LineItemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM line_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete line item: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("line item %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// UpdateStatus sets the line item status and completion timestamp.
func (r *LineItemRepository) UpdateStatus(ctx context.Context, id, status string, completedAt *time.Time) error {
	var val sql.NullTime
	if completedAt != nil {
		val = sql.NullTime{Time: *completedAt, Valid: true}
	}
	result, err := r.db.ExecContext(ctx,
		"UPDATE line_items SET status = ?, completed_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, val, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update line item status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check status update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("line item %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// UpdateActuals persists the rollup fields. A nil productionRate stores
// NULL, keeping the "no productive hours yet" state distinct from zero.
func (r *LineItemRepository) UpdateActuals(ctx context.Context, id string, actualHours float64, productionRate *float64, variance float64) error {
	var rate sql.NullFloat64
	if productionRate != nil {
		rate = sql.NullFloat64{Float64: *productionRate, Valid: true}
	}
	result, err := r.db.ExecContext(ctx,
		"UPDATE line_items SET actual_hours = ?, production_rate = ?, variance = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		actualHours, rate, variance, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update line item actuals: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check actuals update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("line item %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// GetNextID returns the next available line item ID. Based on the max
// existing suffix, not row count, so deletions never recycle IDs.
func (r *LineItemRepository) GetNextID(ctx context.Context) (string, error) {
	var max int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM line_items",
	).Scan(&max)
	if err != nil {
		return "", fmt.Errorf("failed to get max line item ID: %w", err)
	}
	return fmt.Sprintf("LI-%03d", max+1), nil
}

// Ensure LineItemRepository implements the interface
var _ secondary.LineItemRepository = (*LineItemRepository)(nil)
