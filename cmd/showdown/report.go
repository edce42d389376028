package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/imaddar/poker-arena/services/showdown/internal/rules"
	"github.com/imaddar/poker-arena/services/showdown/internal/tally"
)

type buildRunReportInput struct {
	RunID      string
	InputPath  string
	Workers    int
	Result     tally.Result
	StartedAt  time.Time
	FinishedAt time.Time
}

type runReport struct {
	RunID       string              `json:"run_id"`
	InputPath   string              `json:"input_path"`
	Workers     int                 `json:"workers"`
	Lines       int                 `json:"lines"`
	Player1Wins int                 `json:"player_1_wins"`
	Player2Wins int                 `json:"player_2_wins"`
	Ties        int                 `json:"ties"`
	StartedAt   time.Time           `json:"started_at"`
	FinishedAt  time.Time           `json:"finished_at"`
	DurationMS  int64               `json:"duration_ms"`
	Categories  []runReportCategory `json:"categories"`
}

type runReportCategory struct {
	Rank     int    `json:"rank"`
	Category string `json:"category"`
	Player1  int    `json:"player_1"`
	Player2  int    `json:"player_2"`
}

func buildRunReport(input buildRunReportInput) runReport {
	report := runReport{
		RunID:       input.RunID,
		InputPath:   input.InputPath,
		Workers:     input.Workers,
		Lines:       input.Result.Lines,
		Player1Wins: input.Result.Player1,
		Player2Wins: input.Result.Player2,
		Ties:        input.Result.Ties,
		StartedAt:   input.StartedAt,
		FinishedAt:  input.FinishedAt,
		DurationMS:  input.FinishedAt.Sub(input.StartedAt).Milliseconds(),
		Categories:  make([]runReportCategory, 0, len(rules.Categories)),
	}

	// Strongest category first.
	for i := len(rules.Categories) - 1; i >= 0; i-- {
		category := rules.Categories[i]
		report.Categories = append(report.Categories, runReportCategory{
			Rank:     int(category),
			Category: category.String(),
			Player1:  input.Result.Categories[0][category],
			Player2:  input.Result.Categories[1][category],
		})
	}
	return report
}

func renderTotals(report runReport) string {
	return fmt.Sprintf("Player 1: %d hands\nPlayer 2: %d hands\n", report.Player1Wins, report.Player2Wins)
}

func renderRunSummary(report runReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Rounds:   %d\n", report.Lines))
	b.WriteString(fmt.Sprintf("Ties:     %d\n", report.Ties))
	b.WriteString(fmt.Sprintf("Workers:  %d\n", report.Workers))
	b.WriteString(fmt.Sprintf("Duration: %dms\n\n", report.DurationMS))
	b.WriteString(fmt.Sprintf("%-16s %9s %9s\n", "Category", "Player 1", "Player 2"))
	for _, row := range report.Categories {
		if row.Player1 == 0 && row.Player2 == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("%-16s %9d %9d\n", row.Category, row.Player1, row.Player2))
	}

	return pterm.DefaultBox.
		WithTitle(pterm.LightGreen("SHOWDOWN")).
		WithTitleTopCenter().
		WithHorizontalPadding(2).
		Sprintln(strings.TrimRight(b.String(), "\n"))
}

func writeRunReportJSON(path string, report runReport) error {
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}
