// Package sqlite implements the repository interfaces on an embedded SQLite
// database via the pure-Go modernc.org/sqlite driver (no CGo, so the binary
// cross-compiles cleanly).
//
// SQLite is the durable deployment mode: users, recipes, and meal plans all
// survive a process restart. WAL mode lets reads proceed while a write is in
// flight, and SQLite's own locking serializes concurrent writes to the file,
// which covers the per-partition write discipline the stores require.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps the connection pool and implements all three repository
// interfaces. Constructed at process start, closed on shutdown.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for a throwaway database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads during a write.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool, flushing the WAL and releasing the file
// lock. Always deferred next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Users returns the credential store view of this database.
func (db *DB) Users() *UserDB {
	return &UserDB{conn: db.conn}
}

// Recipes returns the recipe store view of this database.
func (db *DB) Recipes() *RecipeDB {
	return &RecipeDB{conn: db.conn}
}

// MealPlans returns the meal plan store view of this database.
func (db *DB) MealPlans() *MealPlanDB {
	return &MealPlanDB{conn: db.conn}
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it idempotent
// across restarts.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			email         TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// Recipe ids are unique per owner, not globally — the primary key is
	// the (owner, id) pair.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS recipes (
			owner_email  TEXT NOT NULL REFERENCES users(email),
			id           INTEGER NOT NULL,
			name         TEXT NOT NULL,
			ingredients  TEXT NOT NULL DEFAULT '',
			instructions TEXT NOT NULL DEFAULT '',
			image_url    TEXT NOT NULL DEFAULT '',
			favorite     INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (owner_email, id)
		);
		CREATE INDEX IF NOT EXISTS idx_recipes_owner ON recipes(owner_email);
	`)
	if err != nil {
		return fmt.Errorf("creating recipes table: %w", err)
	}

	// One plan row per user, replaced wholesale on save. The plan itself is
	// stored as JSON — it's an opaque weekday→ids mapping the database
	// never needs to query into.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS meal_plans (
			owner_email TEXT PRIMARY KEY REFERENCES users(email),
			plan        TEXT NOT NULL DEFAULT '{}',
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating meal_plans table: %w", err)
	}

	return nil
}
