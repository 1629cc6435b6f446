package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/discochess/retrospect/internal/evalcache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the evaluation cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics about the evaluation cache",
	Long: `Display statistics about the evaluation cache including:
- Number of cached game evaluations
- Total size on disk
- The engine and codec the cache was built with`,
	RunE: runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached evaluation",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	manifest, err := evalcache.ReadManifest(cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("cache directory %q has no manifest; run 'retrospect analyze' first", cfg.CacheDir)
	}

	entriesDir := filepath.Join(cfg.CacheDir, "entries")
	var entryCount int
	var totalSize int64
	err = filepath.WalkDir(entriesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return err
		}
		entryCount++
		info, err := d.Info()
		if err != nil {
			return nil
		}
		totalSize += info.Size()
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("walking cache entries: %w", err)
	}

	fmt.Printf("Cache directory: %s\n", cfg.CacheDir)
	fmt.Printf("Engine:          %s\n", manifest.Engine)
	fmt.Printf("Codec:           %s\n", manifest.Codec)
	fmt.Printf("Created:         %s\n", manifest.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Entries:         %d\n", entryCount)
	fmt.Printf("Total size:      %s\n", formatBytes(totalSize))

	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if _, err := evalcache.ReadManifest(cfg.CacheDir); err != nil {
		return fmt.Errorf("%q does not look like a cache directory (no manifest)", cfg.CacheDir)
	}

	if err := os.RemoveAll(cfg.CacheDir); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	fmt.Printf("Cleared %s\n", cfg.CacheDir)
	return nil
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
