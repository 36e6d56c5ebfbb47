package main

import (
	"fmt"
	"os"

	"github.com/san-kum/reactorsim/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	dataDir  string
	verbose  bool
	logLevel string
	logger   = zap.NewNop()
)

// main registers the command tree. With no subcommand it opens the
// interactive control room.
func main() {
	rootCmd := &cobra.Command{
		Use:           "reactorsim",
		Short:         "reactor core simulator and control room",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".reactorsim", "data directory for archived runs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newRunCmd(),
		newLiveCmd(),
		newScenarioCmd(),
		newSweepCmd(),
		newMonteCarloCmd(),
		newTuneCmd(),
		newPresetsCmd(),
		newInitConfigCmd(),
		newRunsCmd(),
		newShowCmd(),
		newExportCmd(),
		newAnalyzeCmd(),
		newPhaseCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// initLogger builds the process logger. Terminal UIs own the screen, so
// they keep the no-op logger.
func initLogger(cmd *cobra.Command) error {
	if cmd.Name() == "reactorsim" || cmd.Name() == "live" {
		return nil
	}

	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	return nil
}
