// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/example/fieldops/internal/ports/secondary"
)

// TimeEntryRepository implements secondary.TimeEntryRepository with SQLite.
type TimeEntryRepository struct {
	db *sql.DB
}

// NewTimeEntryRepository creates a new SQLite time entry repository.
func NewTimeEntryRepository(db *sql.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

const timeEntrySelectCols = "id, worker_id, work_order_id, line_item_id, task_type, task_label, started_at, ended_at, labor_rate, equipment_rate, duration_hours, total_cost, note, created_at"

// scanTimeEntry scans a time entry row into a TimeEntryRecord.
func scanTimeEntry(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TimeEntryRecord, error) {
	var (
		lineItemID    sql.NullString
		startedAt     time.Time
		endedAt       sql.NullTime
		durationHours sql.NullFloat64
		totalCost     sql.NullFloat64
		note          sql.NullString
		createdAt     time.Time
	)

	record := &secondary.TimeEntryRecord{}
	err := scanner.Scan(
		&record.ID, &record.WorkerID, &record.WorkOrderID, &lineItemID,
		&record.TaskType, &record.TaskLabel, &startedAt, &endedAt,
		&record.LaborRate, &record.EquipmentRate, &durationHours, &totalCost,
		&note, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	record.LineItemID = lineItemID.String
	record.StartedAt = startedAt
	record.Note = note.String
	record.CreatedAt = createdAt.Format(time.RFC3339)

	if endedAt.Valid {
		t := endedAt.Time
		record.EndedAt = &t
	}
	if durationHours.Valid {
		d := durationHours.Float64
		record.DurationHours = &d
	}
	if totalCost.Valid {
		c := totalCost.Float64
		record.TotalCost = &c
	}

	return record, nil
}

// Create persists a new time entry, open or already closed. The partial
// unique index on open entries turns a racing second open insert for the
// same worker into ErrOpenTimerExists instead of a second open row.
func (r *TimeEntryRepository) Create(ctx context.Context, entry *secondary.TimeEntryRecord) error {
	var lineItemID, note sql.NullString
	var endedAt sql.NullTime
	var durationHours, totalCost sql.NullFloat64

	if entry.LineItemID != "" {
		lineItemID = sql.NullString{String: entry.LineItemID, Valid: true}
	}
	if entry.Note != "" {
		note = sql.NullString{String: entry.Note, Valid: true}
	}
	if entry.EndedAt != nil {
		endedAt = sql.NullTime{Time: *entry.EndedAt, Valid: true}
	}
	if entry.DurationHours != nil {
		durationHours = sql.NullFloat64{Float64: *entry.DurationHours, Valid: true}
	}
	if entry.TotalCost != nil {
		totalCost = sql.NullFloat64{Float64: *entry.TotalCost, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO time_entries (id, worker_id, work_order_id, line_item_id, task_type, task_label, started_at, ended_at, labor_rate, equipment_rate, duration_hours, total_cost, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.WorkerID, entry.WorkOrderID, lineItemID, entry.TaskType, entry.TaskLabel,
		entry.StartedAt, endedAt, entry.LaborRate, entry.EquipmentRate, durationHours, totalCost, note,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) &&
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique &&
			strings.Contains(err.Error(), "time_entries.worker_id") {
			return fmt.Errorf("worker %s: %w", entry.WorkerID, secondary.ErrOpenTimerExists)
		}
		return fmt.Errorf("failed to create time entry: %w", err)
	}

	return nil
}

// GetByID retrieves a time entry by its ID.
func (r *TimeEntryRepository) GetByID(ctx context.Context, id string) (*secondary.TimeEntryRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+timeEntrySelectCols+" FROM time_entries WHERE id = ?",
		id,
	)

	record, err := scanTimeEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("time entry %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}

	return record, nil
}

// GetOpenByWorker returns the worker's open entry, or nil when idle.
func (r *TimeEntryRepository) GetOpenByWorker(ctx context.Context, workerID string) (*secondary.TimeEntryRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+timeEntrySelectCols+" FROM time_entries WHERE worker_id = ? AND ended_at IS NULL",
		workerID,
	)

	record, err := scanTimeEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open time entry: %w", err)
	}

	return record, nil
}

// Close terminates an open entry. The update is guarded on the entry
// still being open so a raced double stop matches no row.
func (r *TimeEntryRepository) Close(ctx context.Context, id string, endedAt time.Time, durationHours, totalCost float64, note string) error {
	var noteVal sql.NullString
	if note != "" {
		noteVal = sql.NullString{String: note, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE time_entries SET ended_at = ?, duration_hours = ?, total_cost = ?, note = ? WHERE id = ? AND ended_at IS NULL",
		endedAt, durationHours, totalCost, noteVal, id,
	)
	if err != nil {
		return fmt.Errorf("failed to close time entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check close result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("open time entry %s: %w", id, secondary.ErrNotFound)
	}

	return nil
}

// ListByWorkOrder retrieves all entries for a work order, oldest first.
func (r *TimeEntryRepository) ListByWorkOrder(ctx context.Context, workOrderID string) ([]*secondary.TimeEntryRecord, error) {
	return r.list(ctx,
		"SELECT "+timeEntrySelectCols+" FROM time_entries WHERE work_order_id = ? ORDER BY started_at",
		workOrderID,
	)
}

// ListClosedByWorkOrder retrieves the closed entries for a work order.
func (r *TimeEntryRepository) ListClosedByWorkOrder(ctx context.Context, workOrderID string) ([]*secondary.TimeEntryRecord, error) {
	return r.list(ctx,
		"SELECT "+timeEntrySelectCols+" FROM time_entries WHERE work_order_id = ? AND ended_at IS NOT NULL ORDER BY started_at",
		workOrderID,
	)
}

// ListClosedByLineItem retrieves the closed entries referencing a line item.
func (r *TimeEntryRepository) ListClosedByLineItem(ctx context.Context, lineItemID string) ([]*secondary.TimeEntryRecord, error) {
	return r.list(ctx,
		"SELECT "+timeEntrySelectCols+" FROM time_entries WHERE line_item_id = ? AND ended_at IS NOT NULL ORDER BY started_at",
		lineItemID,
	)
}

func (r *TimeEntryRepository) list(ctx context.Context, query string, args ...any) ([]*secondary.TimeEntryRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var records []*secondary.TimeEntryRecord
	for rows.Next() {
		record, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time entries: %w", err)
	}

	return records, nil
}

// Ensure TimeEntryRepository implements the interface
var _ secondary.TimeEntryRepository = (*TimeEntryRepository)(nil)
