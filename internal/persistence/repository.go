package persistence

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

var (
	ErrRunNotFound      = errors.New("run not found")
	ErrRunAlreadyExists = errors.New("run already exists")
	ErrUnknownDriver    = errors.New("unknown store driver")
)

// RunRecord is the summary of one successful scoring run.
type RunRecord struct {
	ID          string
	InputPath   string
	Lines       int
	Player1Wins int
	Player2Wins int
	Ties        int
	Workers     int
	StartedAt   time.Time
	FinishedAt  time.Time
}

func (r RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

type Repository interface {
	SaveRun(record RunRecord) error
	GetRun(id string) (RunRecord, bool, error)
	// ListRuns returns the most recent runs first; limit <= 0 returns all.
	ListRuns(limit int) ([]RunRecord, error)
	Close() error
}

type inMemoryRepository struct {
	mu sync.RWMutex

	runs map[string]RunRecord
}

// NewInMemoryRepository keeps runs for the life of the process only. The CLI
// never opens it; it backs tests and callers embedding the scorer.
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		runs: make(map[string]RunRecord),
	}
}

func (r *inMemoryRepository) SaveRun(record RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.runs[record.ID]; exists {
		return ErrRunAlreadyExists
	}
	r.runs[record.ID] = record
	return nil
}

func (r *inMemoryRepository) GetRun(id string) (RunRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.runs[id]
	if !ok {
		return RunRecord{}, false, nil
	}
	return record, true, nil
}

func (r *inMemoryRepository) ListRuns(limit int) ([]RunRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]RunRecord, 0, len(r.runs))
	for _, record := range r.runs {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *inMemoryRepository) Close() error {
	return nil
}

// Open returns the repository for driver. The "none" driver returns a nil
// repository and no error: history is simply not recorded.
func Open(driver string, dsn string) (Repository, error) {
	switch driver {
	case "", "none":
		return nil, nil
	case "sqlite":
		return OpenSQLite(dsn)
	case "postgres":
		return OpenPostgres(dsn)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDriver, driver)
	}
}
