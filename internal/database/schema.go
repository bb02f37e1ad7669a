package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the DDL for the two collections backing the platform.
const Schema = `
	CREATE TABLE IF NOT EXISTS foods (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		status TEXT NOT NULL DEFAULT 'available',
		donor_email TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_foods_status_quantity ON foods(status, quantity DESC);
	CREATE INDEX IF NOT EXISTS idx_foods_status_date ON foods(status, date DESC);
	CREATE INDEX IF NOT EXISTS idx_foods_donor_email ON foods(donor_email);

	CREATE TABLE IF NOT EXISTS food_requests (
		id UUID PRIMARY KEY,
		food_id UUID NOT NULL,
		req_email TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'requested',
		date TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_food_requests_req_email ON food_requests(req_email, status);
`

// EnsureSchema creates the tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
