package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is idempotent so Migrate can run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS cash_card (
		id     BIGSERIAL PRIMARY KEY,
		amount NUMERIC(19,2) NOT NULL CHECK (amount >= 0),
		owner  VARCHAR(255) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cash_card_owner ON cash_card (owner)`,
	`CREATE TABLE IF NOT EXISTS users (
		username      VARCHAR(255) PRIMARY KEY,
		password_hash VARCHAR(255) NOT NULL,
		roles         TEXT[] NOT NULL DEFAULT '{}'
	)`,
}

// Migrate creates the cash card and user tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return tx.Commit()
}
