package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const (
	postgresConnectTimeout = 10 * time.Second
	postgresMaxOpenConns   = 4
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

// OpenPostgres connects to dsn, applies migrations and returns a repository
// that owns the connection pool.
func OpenPostgres(dsn string) (Repository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(postgresMaxOpenConns)

	ctx, cancel := context.WithTimeout(context.Background(), postgresConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	if err := MigratePostgres(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres migration failed: %w", err)
	}
	return NewPostgresRepository(db), nil
}

func (r *postgresRepository) SaveRun(record RunRecord) error {
	const q = `
INSERT INTO runs (
  run_id, input_path, lines, player1_wins, player2_wins, ties, workers, started_at, finished_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`
	_, err := r.db.ExecContext(context.Background(), q,
		record.ID,
		record.InputPath,
		record.Lines,
		record.Player1Wins,
		record.Player2Wins,
		record.Ties,
		record.Workers,
		record.StartedAt,
		record.FinishedAt,
	)
	if isUniqueViolation(err) {
		return ErrRunAlreadyExists
	}
	return err
}

func (r *postgresRepository) GetRun(id string) (RunRecord, bool, error) {
	const q = `
SELECT run_id, input_path, lines, player1_wins, player2_wins, ties, workers, started_at, finished_at
FROM runs
WHERE run_id = $1
`
	out, err := scanRun(r.db.QueryRowContext(context.Background(), q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, false, nil
	}
	if err != nil {
		return RunRecord{}, false, err
	}
	return out, true, nil
}

func (r *postgresRepository) ListRuns(limit int) ([]RunRecord, error) {
	const q = `
SELECT run_id, input_path, lines, player1_wins, player2_wins, ties, workers, started_at, finished_at
FROM runs
ORDER BY started_at DESC, run_id ASC
LIMIT $1
`
	var bound sql.NullInt64
	if limit > 0 {
		bound = sql.NullInt64{Int64: int64(limit), Valid: true}
	}
	rows, err := r.db.QueryContext(context.Background(), q, bound)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRuns(rows)
}

func (r *postgresRepository) Close() error {
	return r.db.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var out RunRecord
	err := row.Scan(
		&out.ID,
		&out.InputPath,
		&out.Lines,
		&out.Player1Wins,
		&out.Player2Wins,
		&out.Ties,
		&out.Workers,
		&out.StartedAt,
		&out.FinishedAt,
	)
	return out, err
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	out := make([]RunRecord, 0)
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
