package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/fieldops/internal/ports/secondary"
)

// LoadoutRepository implements secondary.LoadoutRepository with SQLite.
type LoadoutRepository struct {
	db *sql.DB
}

// NewLoadoutRepository creates a new SQLite loadout repository.
func NewLoadoutRepository(db *sql.DB) *LoadoutRepository {
	return &LoadoutRepository{db: db}
}

// Create persists a new loadout.
func (r *LoadoutRepository) Create(ctx context.Context, loadout *secondary.LoadoutRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO loadouts (id, name) VALUES (?, ?)",
		loadout.ID, loadout.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to create loadout: %w", err)
	}
	return nil
}

// GetByID retrieves a loadout with its equipment items.
func (r *LoadoutRepository) GetByID(ctx context.Context, id string) (*secondary.LoadoutRecord, error) {
	var createdAt, updatedAt time.Time
	record := &secondary.LoadoutRecord{}

	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM loadouts WHERE id = ?",
		id,
	).Scan(&record.ID, &record.Name, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("loadout %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loadout: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	rows, err := r.db.QueryContext(ctx,
		`SELECT e.id, e.name, e.hourly_cost, e.status, e.created_at, e.updated_at
		 FROM loadout_equipment le
		 JOIN equipment e ON e.id = le.equipment_id
		 WHERE le.loadout_id = ?
		 ORDER BY e.id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list loadout equipment: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loadout equipment: %w", err)
		}
		record.Equipment = append(record.Equipment, eq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loadout equipment: %w", err)
	}

	return record, nil
}

// List retrieves all loadouts with their equipment.
func (r *LoadoutRepository) List(ctx context.Context) ([]*secondary.LoadoutRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM loadouts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list loadouts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan loadout: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loadouts: %w", err)
	}

	var records []*secondary.LoadoutRecord
	for _, id := range ids {
		record, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// AddEquipment attaches an equipment item to the loadout.
func (r *LoadoutRepository) AddEquipment(ctx context.Context, loadoutID, equipmentID string) error {
	var max int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM loadout_equipment",
	).Scan(&max)
	if err != nil {
		return fmt.Errorf("failed to get max loadout equipment ID: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO loadout_equipment (id, loadout_id, equipment_id) VALUES (?, ?, ?)",
		fmt.Sprintf("LE-%03d", max+1), loadoutID, equipmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to add equipment to loadout: %w", err)
	}
	return nil
}

// RemoveEquipment detaches an equipment item from the loadout.
func (r *LoadoutRepository) RemoveEquipment(ctx context.Context, loadoutID, equipmentID string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM loadout_equipment WHERE loadout_id = ? AND equipment_id = ?",
		loadoutID, equipmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove equipment from loadout: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check remove result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("equipment %s in loadout %s: %w", equipmentID, loadoutID, secondary.ErrNotFound)
	}
	return nil
}

// SumHourlyCost returns the combined hourly cost of the loadout's
// equipment. Zero for an empty or missing loadout.
func (r *LoadoutRepository) SumHourlyCost(ctx context.Context, loadoutID string) (float64, error) {
	var sum float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(e.hourly_cost), 0)
		 FROM loadout_equipment le
		 JOIN equipment e ON e.id = le.equipment_id
		 WHERE le.loadout_id = ?`,
		loadoutID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum loadout equipment cost: %w", err)
	}
	return sum, nil
}

// GetNextID returns the next available loadout ID.
func (r *LoadoutRepository) GetNextID(ctx context.Context) (string, error) {
	var max int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM loadouts",
	).Scan(&max)
	if err != nil {
		return "", fmt.Errorf("failed to get max loadout ID: %w", err)
	}
	return fmt.Sprintf("LOAD-%03d", max+1), nil
}

// Ensure LoadoutRepository implements the interface
var _ secondary.LoadoutRepository = (*LoadoutRepository)(nil)
