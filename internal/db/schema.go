package db

// SchemaSQL is the complete modern schema for fresh fieldops installs.
// This schema reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(): if repository code references a column that
// doesn't exist here, tests fail immediately with "no such column".
//
// IMPORTANT: Keep this in sync with the migration list in migrations.go.
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Workers (field employees who log time)
CREATE TABLE IF NOT EXISTS workers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	role TEXT,
	effective_rate REAL,
	burdened_rate REAL,
	status TEXT NOT NULL CHECK(status IN ('active', 'inactive')) DEFAULT 'active',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Equipment (machines with an hourly operating cost)
CREATE TABLE IF NOT EXISTS equipment (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	hourly_cost REAL NOT NULL DEFAULT 0,
	status TEXT NOT NULL CHECK(status IN ('active', 'retired')) DEFAULT 'active',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Loadouts (reusable bundles of equipment assignable to a work order)
CREATE TABLE IF NOT EXISTS loadouts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS loadout_equipment (
	id TEXT PRIMARY KEY,
	loadout_id TEXT NOT NULL,
	equipment_id TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (loadout_id) REFERENCES loadouts(id) ON DELETE CASCADE,
	FOREIGN KEY (equipment_id) REFERENCES equipment(id) ON DELETE CASCADE,
	UNIQUE(loadout_id, equipment_id)
);

-- Work orders (customer jobs aggregating scope and cost)
-- actual_* columns are rollup caches; the source of truth is the closed
-- time_entries rows for the work order.
CREATE TABLE IF NOT EXISTS work_orders (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	customer TEXT,
	status TEXT NOT NULL CHECK(status IN ('not_started', 'in_progress', 'completed')) DEFAULT 'not_started',
	loadout_id TEXT,
	estimated_hours REAL NOT NULL DEFAULT 0,
	estimated_cost REAL NOT NULL DEFAULT 0,
	actual_productive_hours REAL NOT NULL DEFAULT 0,
	actual_support_hours REAL NOT NULL DEFAULT 0,
	actual_total_cost REAL NOT NULL DEFAULT 0,
	completed_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (loadout_id) REFERENCES loadouts(id) ON DELETE SET NULL
);

-- Line items (billable scope units within a work order)
-- production_rate stays NULL until the item has productive hours.
CREATE TABLE IF NOT EXISTS line_items (
	id TEXT PRIMARY KEY,
	work_order_id TEXT NOT NULL,
	title TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('not_started', 'in_progress', 'completed')) DEFAULT 'not_started',
	estimated_hours REAL NOT NULL DEFAULT 0,
	estimated_cost REAL NOT NULL DEFAULT 0,
	estimated_score REAL NOT NULL DEFAULT 0,
	actual_hours REAL NOT NULL DEFAULT 0,
	production_rate REAL,
	variance REAL NOT NULL DEFAULT 0,
	completed_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (work_order_id) REFERENCES work_orders(id) ON DELETE CASCADE
);

-- Time entries (one interval of work by one worker)
-- line_item_id is a weak reference: the line item may be deleted later,
-- so there is deliberately no FK on it.
CREATE TABLE IF NOT EXISTS time_entries (
	id TEXT PRIMARY KEY,
	worker_id TEXT NOT NULL,
	work_order_id TEXT NOT NULL,
	line_item_id TEXT,
	task_type TEXT NOT NULL CHECK(task_type IN ('productive', 'support')),
	task_label TEXT NOT NULL,
	started_at DATETIME NOT NULL,
	ended_at DATETIME,
	labor_rate REAL NOT NULL DEFAULT 0,
	equipment_rate REAL NOT NULL DEFAULT 0,
	duration_hours REAL,
	total_cost REAL,
	note TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (worker_id) REFERENCES workers(id),
	FOREIGN KEY (work_order_id) REFERENCES work_orders(id) ON DELETE CASCADE
);

-- At most one open timer per worker, system-wide. A racing second insert
-- fails the index instead of creating a second open entry.
CREATE UNIQUE INDEX IF NOT EXISTS idx_one_open_timer_per_worker
	ON time_entries(worker_id) WHERE ended_at IS NULL;

CREATE INDEX IF NOT EXISTS idx_time_entries_work_order ON time_entries(work_order_id);
CREATE INDEX IF NOT EXISTS idx_time_entries_line_item ON time_entries(line_item_id);
CREATE INDEX IF NOT EXISTS idx_line_items_work_order ON line_items(work_order_id);
`

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Completely fresh install - create modern schema directly and mark
		// all migrations as applied so they never run against it.
		if _, err := db.Exec(SchemaSQL); err != nil {
			return err
		}
		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
