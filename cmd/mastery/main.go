// Package main implements the mastery CLI: a local practice-time tracker
// with a terminal dashboard and scripting subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mastery/cmd/mastery/ui"
	"mastery/internal/config"
	"mastery/internal/store"
	"mastery/internal/tracker"
)

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool

	// Logger
	logger *zap.Logger

	cfg config.Config
)

// rootCmd launches the interactive dashboard when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "mastery",
	Short: "mastery - track practice hours toward skill mastery",
	Long: `mastery tracks accumulated practice time across named skills,
maps hours to a proficiency level (New through Mastery on a 0-10000
hour scale), and persists everything to a local SQLite database.

Run without arguments to open the interactive dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.DatabasePath = dbPath
		}

		zcfg := zap.NewProductionConfig()
		if verbose || cfg.Debug {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		st, tr, err := openTracker()
		if err != nil {
			return err
		}
		defer st.Close()

		tm := tracker.NewTimer(tr, cfg.TickInterval(), logger)
		return ui.Run(tr, tm)
	},
}

// openTracker opens the store and reconstructs (or bootstraps) the profile.
func openTracker() (*store.Store, *tracker.Tracker, error) {
	st, err := store.Open(cfg.DatabasePath, logger)
	if err != nil {
		return nil, nil, err
	}
	tr, err := tracker.Load(st, cfg.Username, logger)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, tr, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.mastery/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
