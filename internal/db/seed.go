package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures.
// Uses realistic IDs and data that exercises the rate fallback tiers
// and the loadout equipment sum.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().Format(time.RFC3339)

	// Workers - one per rate tier (effective, burdened-only, neither)
	workers := []struct {
		id, name, role string
		effective      sql.NullFloat64
		burdened       sql.NullFloat64
	}{
		{"EMP-001", "Ray Delgado", "foreman", f(62.50), f(78.00)},
		{"EMP-002", "Kim Osei", "operator", sql.NullFloat64{}, f(55.00)},
		{"EMP-003", "Pat Boone", "laborer", sql.NullFloat64{}, sql.NullFloat64{}},
	}
	for _, w := range workers {
		if _, err := database.Exec(
			"INSERT INTO workers (id, name, role, effective_rate, burdened_rate, status, created_at) VALUES (?, ?, ?, ?, ?, 'active', ?)",
			w.id, w.name, w.role, w.effective, w.burdened, now,
		); err != nil {
			return fmt.Errorf("seed workers: %w", err)
		}
	}

	// Equipment
	equipment := []struct {
		id, name   string
		hourlyCost float64
	}{
		{"EQ-001", "Skid steer", 35.00},
		{"EQ-002", "Hydroseeder", 22.50},
		{"EQ-003", "Dump trailer", 8.00},
	}
	for _, e := range equipment {
		if _, err := database.Exec(
			"INSERT INTO equipment (id, name, hourly_cost, status, created_at) VALUES (?, ?, ?, 'active', ?)",
			e.id, e.name, e.hourlyCost, now,
		); err != nil {
			return fmt.Errorf("seed equipment: %w", err)
		}
	}

	// Loadout with two equipment items (hourly sum 57.50)
	if _, err := database.Exec(
		"INSERT INTO loadouts (id, name, created_at) VALUES ('LOAD-001', 'seeding-crew', ?)", now,
	); err != nil {
		return fmt.Errorf("seed loadouts: %w", err)
	}
	for i, eqID := range []string{"EQ-001", "EQ-002"} {
		if _, err := database.Exec(
			"INSERT INTO loadout_equipment (id, loadout_id, equipment_id, created_at) VALUES (?, 'LOAD-001', ?, ?)",
			fmt.Sprintf("LE-%03d", i+1), eqID, now,
		); err != nil {
			return fmt.Errorf("seed loadout equipment: %w", err)
		}
	}

	// Work order with two line items
	if _, err := database.Exec(
		`INSERT INTO work_orders (id, title, customer, status, loadout_id, estimated_hours, estimated_cost, created_at)
		 VALUES ('WO-001', 'Hillside revegetation', 'Crestline HOA', 'not_started', 'LOAD-001', 46, 5290, ?)`, now,
	); err != nil {
		return fmt.Errorf("seed work orders: %w", err)
	}

	lineItems := []struct {
		id, title      string
		estHours       float64
		estCost        float64
		estScore       float64
	}{
		{"LI-001", "Grade and prep slope", 30, 3450, 12000},
		{"LI-002", "Hydroseed upper bench", 16, 1840, 9500},
	}
	for _, li := range lineItems {
		if _, err := database.Exec(
			`INSERT INTO line_items (id, work_order_id, title, status, estimated_hours, estimated_cost, estimated_score, created_at)
			 VALUES (?, 'WO-001', ?, 'not_started', ?, ?, ?, ?)`,
			li.id, li.title, li.estHours, li.estCost, li.estScore, now,
		); err != nil {
			return fmt.Errorf("seed line items: %w", err)
		}
	}

	return nil
}

func f(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}
