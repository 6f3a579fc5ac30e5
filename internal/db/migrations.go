package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_note_to_time_entries",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_estimated_cost_to_line_items",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_one_open_timer_index",
		Up:      migrationV3,
	},
}

// RunMigrations executes all pending migrations
func RunMigrations() error {
	db, err := GetDB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}

	// Create schema_version table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(db); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("✓ Migration %d completed\n", migration.Version)
	}

	return nil
}

// migrationV1 adds the free-text note column to time entries
func migrationV1(db *sql.DB) error {
	if hasColumn(db, "time_entries", "note") {
		return nil
	}
	_, err := db.Exec("ALTER TABLE time_entries ADD COLUMN note TEXT")
	return err
}

// migrationV2 adds estimated_cost to line items so add/delete can maintain
// the work order's estimated totals
func migrationV2(db *sql.DB) error {
	if hasColumn(db, "line_items", "estimated_cost") {
		return nil
	}
	_, err := db.Exec("ALTER TABLE line_items ADD COLUMN estimated_cost REAL NOT NULL DEFAULT 0")
	return err
}

// migrationV3 backfills the partial unique index enforcing a single open
// timer per worker. Installs that predate it may hold multiple open timers;
// the oldest entry is kept open and later ones are closed zero-length.
func migrationV3(db *sql.DB) error {
	_, err := db.Exec(`
		UPDATE time_entries SET ended_at = started_at, duration_hours = 0, total_cost = 0
		WHERE ended_at IS NULL AND id NOT IN (
			SELECT id FROM time_entries t
			WHERE t.ended_at IS NULL
			GROUP BY t.worker_id
			HAVING t.started_at = MIN(t.started_at)
		)
	`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_one_open_timer_per_worker
			ON time_entries(worker_id) WHERE ended_at IS NULL
	`)
	return err
}

// hasColumn reports whether the table already carries the column.
func hasColumn(db *sql.DB, table, column string) bool {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return false
		}
		if name == column {
			return true
		}
	}
	return false
}
