package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags.
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "retrospect",
	Short: "Player retrospectives from engine-evaluated game records",
	Long: `Retrospect analyzes a corpus of recorded chess games for one player.

Each game is evaluated move by move through an external engine, the
evaluations are cached on disk, and the results are aggregated into a
win-probability trajectory, blunder counts by game phase, and win/loss
records per opponent.

Examples:
  # Analyze all PGN files in a directory
  retrospect analyze --player "Alice" --engine /usr/local/bin/evalchess ./games

  # Show evaluation cache statistics
  retrospect cache stats`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// newLogger builds the CLI logger. Verbose mode switches to the
// human-readable development encoder at debug level.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
