package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/imaddar/poker-arena/services/showdown/internal/config"
	"github.com/imaddar/poker-arena/services/showdown/internal/metrics"
	"github.com/imaddar/poker-arena/services/showdown/internal/persistence"
	"github.com/imaddar/poker-arena/services/showdown/internal/tally"
)

type scoreOptions struct {
	workers         int
	reportPath      string
	metricsTextfile string
	summary         bool
}

func (o *scoreOptions) bind(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.workers, "workers", "w", 0, "parallel chunks (0 = one per CPU)")
	cmd.Flags().StringVar(&o.reportPath, "report", "", "write a JSON run report to this path")
	cmd.Flags().StringVar(&o.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this textfile")
	cmd.Flags().BoolVar(&o.summary, "summary", false, "print a category breakdown after the totals")
}

func (a *app) scoreCommand() *cobra.Command {
	opts := &scoreOptions{}
	cmd := &cobra.Command{
		Use:   "score <file>",
		Short: "Count the rounds won by each player (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScore(cmd, args[0], opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func (a *app) runScore(cmd *cobra.Command, path string, opts *scoreOptions) error {
	cfg, err := a.settings(cmd)
	if err != nil {
		return err
	}
	applyScoreFlags(cmd, &cfg, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	repo, err := persistence.Open(cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	if repo != nil {
		defer repo.Close()
	}

	m := metrics.New()
	scorer, err := tally.New(tally.Config{Workers: cfg.Workers, Logger: a.logger, Observer: m})
	if err != nil {
		return err
	}

	startedAt := time.Now().UTC()
	a.logger.Info("reading file", "path", path)
	lines, err := tally.ReadLines(path)
	if err != nil {
		return err
	}

	a.logger.Debug("scoring", "lines", len(lines), "workers", scorer.Workers())
	result, err := scorer.Score(cmd.Context(), lines)
	if err != nil {
		return err
	}
	finishedAt := time.Now().UTC()
	m.ObserveRunDuration(finishedAt.Sub(startedAt))

	report := buildRunReport(buildRunReportInput{
		RunID:      uuid.NewString(),
		InputPath:  path,
		Workers:    scorer.Workers(),
		Result:     result,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	})

	if cfg.Report.Path != "" {
		if err := writeRunReportJSON(cfg.Report.Path, report); err != nil {
			return fmt.Errorf("write run report: %w", err)
		}
	}
	if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		return err
	}
	if repo != nil {
		if err := repo.SaveRun(runRecordFromReport(report)); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
	}

	fmt.Fprint(a.stdout, renderTotals(report))
	if opts.summary {
		fmt.Fprint(a.stdout, renderRunSummary(report))
	}

	a.logger.Info("run complete",
		"run_id", report.RunID,
		"lines", report.Lines,
		"player_1", report.Player1Wins,
		"player_2", report.Player2Wins,
		"ties", report.Ties,
		"duration_ms", report.DurationMS,
	)
	return nil
}

func applyScoreFlags(cmd *cobra.Command, cfg *config.Config, opts *scoreOptions) {
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("report") {
		cfg.Report.Path = opts.reportPath
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = opts.metricsTextfile
	}
}

func runRecordFromReport(report runReport) persistence.RunRecord {
	return persistence.RunRecord{
		ID:          report.RunID,
		InputPath:   report.InputPath,
		Lines:       report.Lines,
		Player1Wins: report.Player1Wins,
		Player2Wins: report.Player2Wins,
		Ties:        report.Ties,
		Workers:     report.Workers,
		StartedAt:   report.StartedAt,
		FinishedAt:  report.FinishedAt,
	}
}
