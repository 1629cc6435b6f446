// Package main provides the retrospect CLI for analyzing a player's
// game corpus: win-probability trajectory, blunders by phase, and
// opponent records.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
