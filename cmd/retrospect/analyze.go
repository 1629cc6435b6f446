package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/retrospect"
	"github.com/discochess/retrospect/internal/codec"
	"github.com/discochess/retrospect/internal/evalcache"
	"github.com/discochess/retrospect/internal/evalcache/diskstore"
	"github.com/discochess/retrospect/internal/evalcache/lrustore"
	"github.com/discochess/retrospect/internal/oracle"
	"github.com/discochess/retrospect/internal/reporting"
	statslogger "github.com/discochess/retrospect/internal/stats/logger"
)

var (
	analyzePlayer  string
	analyzeEngine  string
	analyzeFormat  string
	analyzeWorkers int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path...]",
	Short: "Analyze a corpus of PGN games for one player",
	Long: `Run every game through the evaluation engine and aggregate the
results into a player retrospective.

Each path is either a PGN file or a directory scanned for *.pgn files.
Evaluations are cached under the cache directory, so re-running over a
grown corpus only evaluates new games.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzePlayer, "player", "p", "", "tracked player name (exact match)")
	analyzeCmd.Flags().StringVarP(&analyzeEngine, "engine", "e", "", "path to the evaluation engine binary")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "", "report format: text or markdown")
	analyzeCmd.Flags().IntVarP(&analyzeWorkers, "workers", "w", 0, "games processed concurrently")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	if cfg.Player == "" {
		return fmt.Errorf("no player given; use --player or set player in the config")
	}
	if cfg.Engine == "" {
		return fmt.Errorf("no engine given; use --engine or set engine in the config")
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	corpus, err := collectSources(args)
	if err != nil {
		return err
	}
	if len(corpus) == 0 {
		return fmt.Errorf("no PGN files found under %v", args)
	}

	cache, err := openCache(cfg, logger)
	if err != nil {
		return err
	}

	engine := oracle.NewEngine(cfg.Engine,
		oracle.WithArgs(cfg.EngineArgs...),
		oracle.WithTimeout(cfg.EngineTimeout),
		oracle.WithLogger(logger),
	)

	analyzer, err := retrospect.New(
		retrospect.WithPlayer(cfg.Player),
		retrospect.WithEvaluator(engine),
		retrospect.WithCache(cache),
		retrospect.WithBinCount(cfg.Bins),
		retrospect.WithBlunderThreshold(cfg.Threshold),
		retrospect.WithWorkers(cfg.Workers),
		retrospect.WithStats(statslogger.New(logger)),
		retrospect.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer analyzer.Close()

	report, err := analyzer.Run(cmd.Context(), corpus)
	if err != nil {
		return fmt.Errorf("analyzing corpus: %w", err)
	}

	switch cfg.Format {
	case "markdown":
		reporting.NewMarkdownReport(os.Stdout).Write(report)
	default:
		reporting.NewTextReport(os.Stdout).Write(report)
	}
	return nil
}

// applyFlags overlays explicitly-set command flags onto the config.
func applyFlags(cmd *cobra.Command, cfg *Config) {
	if cmd.Flags().Changed("player") {
		cfg.Player = analyzePlayer
	}
	if cmd.Flags().Changed("engine") {
		cfg.Engine = analyzeEngine
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = analyzeFormat
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = analyzeWorkers
	}
}

// collectSources expands each path into PGN sources. Directories are
// scanned non-recursively for *.pgn files in name order.
func collectSources(paths []string) ([]retrospect.Source, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(path, "*.pgn"))
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", path, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return retrospect.Files(files...), nil
}

// openCache builds the disk-backed evaluation cache with an LRU front,
// verifying the directory's manifest against the configured codec and
// engine first.
func openCache(cfg *Config, logger *zap.Logger) (*evalcache.Cache, error) {
	c, _ := codec.ByName(cfg.Codec)

	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	if err := evalcache.EnsureManifest(cfg.CacheDir, cfg.Codec, filepath.Base(cfg.Engine)); err != nil {
		return nil, err
	}

	disk, err := diskstore.New(cfg.CacheDir, c)
	if err != nil {
		return nil, err
	}
	front, err := lrustore.New(disk, cfg.LRUSize)
	if err != nil {
		return nil, err
	}
	return evalcache.New(front, evalcache.WithLogger(logger)), nil
}
