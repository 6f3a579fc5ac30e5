package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/fieldops/internal/ports/secondary"
)

// EquipmentRepository implements secondary.EquipmentRepository with SQLite.
type EquipmentRepository struct {
	db *sql.DB
}

// NewEquipmentRepository creates a new SQLite equipment repository.
func NewEquipmentRepository(db *sql.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

const equipmentSelectCols = "id, name, hourly_cost, status, created_at, updated_at"

// scanEquipment scans an equipment row into an EquipmentRecord.
func scanEquipment(scanner interface {
	Scan(dest ...any) error
}) (*secondary.EquipmentRecord, error) {
	var createdAt, updatedAt time.Time

	record := &secondary.EquipmentRecord{}
	err := scanner.Scan(
		&record.ID, &record.Name, &record.HourlyCost, &record.Status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Create persists a new equipment item.
func (r *EquipmentRepository) Create(ctx context.Context, eq *secondary.EquipmentRecord) error {
	status := eq.Status
	if status == "" {
		status = "active"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO equipment (id, name, hourly_cost, status) VALUES (?, ?, ?, ?)",
		eq.ID, eq.Name, eq.HourlyCost, status,
	)
	if err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}

	return nil
}

// GetByID retrieves an equipment item by its ID.
func (r *EquipmentRepository) GetByID(ctx context.Context, id string) (*secondary.EquipmentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+equipmentSelectCols+" FROM equipment WHERE id = ?",
		id,
	)

	record, err := scanEquipment(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("equipment %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}

	return record, nil
}

// List retrieves all equipment items.
func (r *EquipmentRepository) List(ctx context.Context) ([]*secondary.EquipmentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+equipmentSelectCols+" FROM equipment ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer rows.Close()

	var records []*secondary.EquipmentRecord
	for rows.Next() {
		record, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate equipment: %w", err)
	}

	return records, nil
}

// GetNextID returns the next available equipment ID.
func (r *EquipmentRepository) GetNextID(ctx context.Context) (string, error) {
	var max int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM equipment",
	).Scan(&max)
	if err != nil {
		return "", fmt.Errorf("failed to get max equipment ID: %w", err)
	}
	return fmt.Sprintf("EQ-%03d", max+1), nil
}

// Ensure EquipmentRepository implements the interface
var _ secondary.EquipmentRepository = (*EquipmentRepository)(nil)
