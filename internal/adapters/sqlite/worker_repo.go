package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/fieldops/internal/ports/secondary"
)

// WorkerRepository implements secondary.WorkerRepository with SQLite.
type WorkerRepository struct {
	db *sql.DB
}

// NewWorkerRepository creates a new SQLite worker repository.
func NewWorkerRepository(db *sql.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

const workerSelectCols = "id, name, role, effective_rate, burdened_rate, status, created_at, updated_at"

// scanWorker scans a worker row into a WorkerRecord.
func scanWorker(scanner interface {
	Scan(dest ...any) error
}) (*secondary.WorkerRecord, error) {
	var (
		role          sql.NullString
		effectiveRate sql.NullFloat64
		burdenedRate  sql.NullFloat64
		createdAt     time.Time
		updatedAt     time.Time
	)

	record := &secondary.WorkerRecord{}
	err := scanner.Scan(
		&record.ID, &record.Name, &role, &effectiveRate, &burdenedRate,
		&record.Status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Role = role.String
	if effectiveRate.Valid {
		rate := effectiveRate.Float64
		record.EffectiveRate = &rate
	}
	if burdenedRate.Valid {
		rate := burdenedRate.Float64
		record.BurdenedRate = &rate
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Create persists a new worker.
func (r *WorkerRepository) Create(ctx context.Context, worker *secondary.WorkerRecord) error {
	var role sql.NullString
	if worker.Role != "" {
		role = sql.NullString{String: worker.Role, Valid: true}
	}

	status := worker.Status
	if status == "" {
		status = "active"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO workers (id, name, role, effective_rate, burdened_rate, status) VALUES (?, ?, ?, ?, ?, ?)",
		worker.ID, worker.Name, role, nullFloat(worker.EffectiveRate), nullFloat(worker.BurdenedRate), status,
	)
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}

	return nil
}

// GetByID retrieves a worker by its ID.
func (r *WorkerRepository) GetByID(ctx context.Context, id string) (*secondary.WorkerRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+workerSelectCols+" FROM workers WHERE id = ?",
		id,
	)

	record, err := scanWorker(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("worker %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}

	return record, nil
}

// List retrieves workers matching the given filters.
func (r *WorkerRepository) List(ctx context.Context, filters secondary.WorkerFilters) ([]*secondary.WorkerRecord, error) {
	query := "SELECT " + workerSelectCols + " FROM workers WHERE 1=1"
	var args []any

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var records []*secondary.WorkerRecord
	for rows.Next() {
		record, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workers: %w", err)
	}

	return records, nil
}

// UpdateRates sets the hourly rates. Nil clears a stored rate.
func (r *WorkerRepository) UpdateRates(ctx context.Context, id string, effective, burdened *float64) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE workers SET effective_rate = ?, burdened_rate = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		nullFloat(effective), nullFloat(burdened), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update worker rates: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rate update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("worker %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// GetNextID returns the next available worker ID.
func (r *WorkerRepository) GetNextID(ctx context.Context) (string, error) {
	var max int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM workers",
	).Scan(&max)
	if err != nil {
		return "", fmt.Errorf("failed to get max worker ID: %w", err)
	}
	return fmt.Sprintf("EMP-%03d", max+1), nil
}

// nullFloat converts an optional float into its sql representation.
func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// Ensure WorkerRepository implements the interface
var _ secondary.WorkerRepository = (*WorkerRepository)(nil)
