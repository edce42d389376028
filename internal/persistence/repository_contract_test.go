package persistence

import (
	"errors"
	"testing"
	"time"
)

func runRepositoryContractTests(t *testing.T, mkRepo func(t *testing.T) Repository) {
	t.Helper()

	base := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)

	t.Run("Contract_SaveAndGetRun", func(t *testing.T) {
		repo := mkRepo(t)
		rec := runRecord("run-1", base)
		if err := repo.SaveRun(rec); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}

		got, ok, err := repo.GetRun("run-1")
		if err != nil {
			t.Fatalf("GetRun failed: %v", err)
		}
		if !ok {
			t.Fatal("expected run to exist")
		}
		assertSameRun(t, rec, got)
	})

	t.Run("Contract_GetMissingRun", func(t *testing.T) {
		repo := mkRepo(t)
		_, ok, err := repo.GetRun("missing")
		if err != nil {
			t.Fatalf("GetRun failed: %v", err)
		}
		if ok {
			t.Fatal("expected missing run")
		}
	})

	t.Run("Contract_SaveDuplicateReturnsErrRunAlreadyExists", func(t *testing.T) {
		repo := mkRepo(t)
		rec := runRecord("dup", base)
		if err := repo.SaveRun(rec); err != nil {
			t.Fatalf("SaveRun first insert failed: %v", err)
		}
		if err := repo.SaveRun(rec); !errors.Is(err, ErrRunAlreadyExists) {
			t.Fatalf("expected ErrRunAlreadyExists, got %v", err)
		}
	})

	t.Run("Contract_ListRunsNewestFirstWithLimit", func(t *testing.T) {
		repo := mkRepo(t)
		for i, id := range []string{"r1", "r3", "r2"} {
			offset := map[string]int{"r1": 1, "r2": 2, "r3": 3}[id]
			if err := repo.SaveRun(runRecord(id, base.Add(time.Duration(offset)*time.Minute))); err != nil {
				t.Fatalf("SaveRun %d failed: %v", i, err)
			}
		}

		all, err := repo.ListRuns(0)
		if err != nil {
			t.Fatalf("ListRuns failed: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(all))
		}
		if all[0].ID != "r3" || all[1].ID != "r2" || all[2].ID != "r1" {
			t.Fatalf("expected [r3 r2 r1], got [%s %s %s]", all[0].ID, all[1].ID, all[2].ID)
		}

		limited, err := repo.ListRuns(2)
		if err != nil {
			t.Fatalf("ListRuns(2) failed: %v", err)
		}
		if len(limited) != 2 || limited[0].ID != "r3" {
			t.Fatalf("expected two newest runs, got %+v", limited)
		}
	})
}

func runRecord(id string, startedAt time.Time) RunRecord {
	return RunRecord{
		ID:          id,
		InputPath:   "testdata/poker.txt",
		Lines:       1000,
		Player1Wins: 376,
		Player2Wins: 624,
		Ties:        0,
		Workers:     4,
		StartedAt:   startedAt,
		FinishedAt:  startedAt.Add(1500 * time.Millisecond),
	}
}

func assertSameRun(t *testing.T, want RunRecord, got RunRecord) {
	t.Helper()
	if !want.StartedAt.Equal(got.StartedAt) || !want.FinishedAt.Equal(got.FinishedAt) {
		t.Fatalf("timestamps differ: want %v..%v, got %v..%v", want.StartedAt, want.FinishedAt, got.StartedAt, got.FinishedAt)
	}
	got.StartedAt, got.FinishedAt = want.StartedAt, want.FinishedAt
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got.Duration() != 1500*time.Millisecond {
		t.Fatalf("unexpected duration %v", got.Duration())
	}
}
