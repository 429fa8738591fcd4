package store

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates the comparison table and index.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Statements run one at a time so a failure names a single statement.
var schema = []string{`
CREATE TABLE IF NOT EXISTS tax_record (
    id TEXT PRIMARY KEY,
    label TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    annual_income TEXT NOT NULL,
    total_deductions TEXT NOT NULL,
    taxable_old TEXT NOT NULL,
    tax_old TEXT NOT NULL,
    taxable_new TEXT NOT NULL,
    tax_new TEXT NOT NULL,
    net_annual_old TEXT NOT NULL,
    net_annual_new TEXT NOT NULL,
    net_monthly_old TEXT NOT NULL,
    net_monthly_new TEXT NOT NULL,
    cheaper TEXT NOT NULL CHECK (cheaper IN ('old', 'new', 'equal')),
    payload TEXT NOT NULL
)`, `
CREATE INDEX IF NOT EXISTS idx_tax_record_created_at ON tax_record(created_at)`,
}
