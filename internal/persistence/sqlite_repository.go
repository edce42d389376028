package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
)

type sqliteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (creating when needed) the database file at path and
// initialises its schema.
func OpenSQLite(path string) (Repository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := MigrateSQLite(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteRepository{db: db}, nil
}

func (r *sqliteRepository) SaveRun(record RunRecord) error {
	_, err := r.db.Exec(
		`INSERT INTO runs (run_id, input_path, lines, player1_wins, player2_wins, ties, workers, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.InputPath,
		record.Lines,
		record.Player1Wins,
		record.Player2Wins,
		record.Ties,
		record.Workers,
		record.StartedAt.UTC(),
		record.FinishedAt.UTC(),
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return ErrRunAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (r *sqliteRepository) GetRun(id string) (RunRecord, bool, error) {
	out, err := scanRun(r.db.QueryRow(
		`SELECT run_id, input_path, lines, player1_wins, player2_wins, ties, workers, started_at, finished_at
		 FROM runs WHERE run_id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, false, nil
	}
	if err != nil {
		return RunRecord{}, false, fmt.Errorf("get run: %w", err)
	}
	return out, true, nil
}

func (r *sqliteRepository) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.Query(
		`SELECT run_id, input_path, lines, player1_wins, player2_wins, ties, workers, started_at, finished_at
		 FROM runs ORDER BY started_at DESC, run_id ASC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func (r *sqliteRepository) Close() error {
	return r.db.Close()
}
