package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/johnmclaughlin205/Mortgages/internal/config"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    last_name TEXT NOT NULL,
    first_name TEXT NOT NULL,
    street TEXT NOT NULL,
    city TEXT NOT NULL,
    state TEXT NOT NULL,
    zip_code TEXT NOT NULL,
    loan_amount REAL NOT NULL,
    estimated_value REAL NOT NULL,
    occupancy_type TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_customers_state ON customers(state);
CREATE INDEX IF NOT EXISTS idx_customers_last_name ON customers(last_name);`

// NewDB opens (or creates) the file-backed pipeline database and bootstraps
// the customers table and its indexes. AUTOINCREMENT keeps deleted row ids
// from ever being reassigned.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is empty in configuration")
	}

	logger.Info("Opening SQLite database...", "path", cfg.Path)
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}

	// Single connection: the tool is single-user and SQLite allows one
	// writer at a time.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := verifyConnection(ctx, db, logger); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Successfully opened SQLite database.", "path", cfg.Path)
	return db, nil
}

// InitSchema creates the customers table and its secondary indexes if they
// do not exist yet.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

func verifyConnection(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	logger.Info("Pinging database...")
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("Failed to ping database", "error", err)
		return fmt.Errorf("failed to ping database on connect: %w", err)
	}

	return nil
}
