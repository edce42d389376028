package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/imaddar/poker-arena/services/showdown/internal/persistence"
)

var errNoHistoryStore = errors.New("no run history store configured (use --store sqlite --dsn <file>)")

func (a *app) historyCommand() *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded scoring runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.settings(cmd)
			if err != nil {
				return err
			}
			repo, err := persistence.Open(cfg.Store.Driver, cfg.Store.DSN)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			if repo == nil {
				return errNoHistoryStore
			}
			defer repo.Close()

			runs, err := repo.ListRuns(limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if jsonOutput {
				return writeHistoryJSON(a, runs)
			}
			return renderHistory(a, runs)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to list (0 = all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print runs as JSON")
	return cmd
}

type historyEntry struct {
	RunID       string `json:"run_id"`
	InputPath   string `json:"input_path"`
	Lines       int    `json:"lines"`
	Player1Wins int    `json:"player_1_wins"`
	Player2Wins int    `json:"player_2_wins"`
	Ties        int    `json:"ties"`
	Workers     int    `json:"workers"`
	StartedAt   string `json:"started_at"`
	DurationMS  int64  `json:"duration_ms"`
}

func mapHistory(runs []persistence.RunRecord) []historyEntry {
	out := make([]historyEntry, 0, len(runs))
	for _, run := range runs {
		out = append(out, historyEntry{
			RunID:       run.ID,
			InputPath:   run.InputPath,
			Lines:       run.Lines,
			Player1Wins: run.Player1Wins,
			Player2Wins: run.Player2Wins,
			Ties:        run.Ties,
			Workers:     run.Workers,
			StartedAt:   run.StartedAt.UTC().Format("2006-01-02T15:04:05Z"),
			DurationMS:  run.Duration().Milliseconds(),
		})
	}
	return out
}

func writeHistoryJSON(a *app, runs []persistence.RunRecord) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(mapHistory(runs))
}

func renderHistory(a *app, runs []persistence.RunRecord) error {
	if len(runs) == 0 {
		fmt.Fprintln(a.stdout, "no runs recorded")
		return nil
	}
	data := pterm.TableData{{"Run", "Started", "Input", "Lines", "Player 1", "Player 2", "Ties"}}
	for _, entry := range mapHistory(runs) {
		data = append(data, []string{
			entry.RunID[:min(8, len(entry.RunID))],
			entry.StartedAt,
			entry.InputPath,
			strconv.Itoa(entry.Lines),
			strconv.Itoa(entry.Player1Wins),
			strconv.Itoa(entry.Player2Wins),
			strconv.Itoa(entry.Ties),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(a.stdout).WithData(data).Render()
}
