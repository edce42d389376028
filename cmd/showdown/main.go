package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/imaddar/poker-arena/services/showdown/internal/config"
)

var version = "dev"

var errMissingFilename = errors.New("missing filename (usage: showdown <file>, or - for stdin)")

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

// app carries the process boundaries so commands can be exercised in tests.
type app struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	configPath string
	logLevel   string
	storeName  string
	storeDSN   string

	logger *slog.Logger
}

func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer, getenv func(string) string) int {
	a := &app{stdout: stdout, stderr: stderr, getenv: getenv}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		pterm.Error.WithWriter(stderr).Println(err.Error())
		return 1
	}
	return 0
}

func (a *app) rootCommand() *cobra.Command {
	score := &scoreOptions{}
	root := &cobra.Command{
		Use:   "showdown [file]",
		Short: "Score head-to-head five card poker rounds",
		Long: `showdown reads a file where every line holds two five card hands
(player 1's five cards, then player 2's) and reports how many rounds each
player won. A-2-3-4-5 does not count as a straight.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errMissingFilename
			}
			return a.runScore(cmd, args[0], score)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (.yaml, .yml, .json, .jsonc)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.storeName, "store", "", "run history store: none, sqlite, postgres")
	root.PersistentFlags().StringVar(&a.storeDSN, "dsn", "", "run history store DSN (sqlite file path or postgres URL)")
	score.bind(root)

	root.AddCommand(a.scoreCommand())
	root.AddCommand(a.rankCommand())
	root.AddCommand(a.generateCommand())
	root.AddCommand(a.historyCommand())
	return root
}

// settings resolves defaults < config file < environment < flags and installs
// the logger.
func (a *app) settings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(a.getenv); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("store") {
		cfg.Store.Driver = a.storeName
	}
	if flags.Changed("dsn") {
		cfg.Store.DSN = a.storeDSN
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return cfg, err
	}
	a.logger = newLogger(a.stderr, level)
	return cfg, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := pterm.DefaultLogger.WithWriter(w).WithLevel(ptermLevel(level))
	return slog.New(pterm.NewSlogHandler(logger))
}

func ptermLevel(level slog.Level) pterm.LogLevel {
	switch {
	case level <= slog.LevelDebug:
		return pterm.LogLevelDebug
	case level <= slog.LevelInfo:
		return pterm.LogLevelInfo
	case level <= slog.LevelWarn:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelError
	}
}
