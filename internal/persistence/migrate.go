package persistence

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

var (
	//go:embed migrations/0001_runs.up.sql
	migration0001Up string
	//go:embed sqlite/0001_runs.sql
	sqliteSchema string
)

func MigratePostgres(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("nil database handle")
	}
	// Serialize migration DDL across concurrent processes/tests.
	if _, err := db.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, int64(64250423391944125)); err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	defer func() {
		_, _ = db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, int64(64250423391944125))
	}()

	if _, err := db.ExecContext(ctx, migration0001Up); err != nil {
		return fmt.Errorf("apply migration 0001_runs.up.sql: %w", err)
	}
	return nil
}

func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("nil database handle")
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("init sqlite schema: %w", err)
	}
	return nil
}
