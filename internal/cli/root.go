// Package cli implements the gitsim command line: the HTTP server, the
// terminal UI, a line REPL and one-shot execution.
package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kurobon/gitsim/internal/config"
	"github.com/kurobon/gitsim/internal/lesson"
	"github.com/kurobon/gitsim/internal/metrics"
	"github.com/kurobon/gitsim/internal/progress"
	"github.com/kurobon/gitsim/internal/simulator"
	"github.com/kurobon/gitsim/internal/state"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

// app holds the resources every subcommand shares
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	tracker  *progress.Tracker
	svc      *simulator.Service
	lessons  *lesson.Engine
}

func newApp(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		return nil, err
	}

	store, err := progress.Open(cfg.ProgressOptions(), logger.Named("progress"))
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("failed to open progress store: %w", err)
	}
	tracker := progress.NewTracker(store, logger.Named("progress"))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sessions := state.NewSessionManager()
	svc := simulator.New(sessions, tracker, simulator.Options{
		XPPerCommand:  cfg.Simulator.XPPerCommand,
		DefaultUserID: cfg.Simulator.UserID,
	}, logger.Named("simulator"), metrics.New(registry))

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		tracker:  tracker,
		svc:      svc,
		lessons:  lesson.NewEngine(lesson.Builtin(), sessions, tracker, logger.Named("lesson")),
	}, nil
}

// Close releases the progress store and flushes the logger
func (a *app) Close() {
	if err := a.tracker.Close(); err != nil {
		a.logger.Warn("failed to close progress store", zap.Error(err))
	}
	a.logger.Sync()
}

// NewRootCommand builds the gitsim command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "gitsim",
		Short: "Interactive git learning simulator",
		Long: `gitsim simulates a small git repository in memory. Type git commands
and watch files, branches and commits change, from a browser (serve),
a full-screen terminal (tui), a plain line prompt (repl) or a script (exec).`,
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "Path to a TOML config file (default $GITSIM_CONFIG)")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level (debug|info|warn|error)")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newREPLCmd(opts))
	root.AddCommand(newExecCmd(opts))
	root.AddCommand(newLessonsCmd(opts))
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
