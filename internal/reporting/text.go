package reporting

import (
	"fmt"
	"io"

	"github.com/discochess/retrospect"
	"github.com/discochess/retrospect/internal/analysis"
)

// TextReport renders a report as plain terminal text.
type TextReport struct {
	w io.Writer
}

// NewTextReport creates a new plain-text report writer.
func NewTextReport(w io.Writer) *TextReport {
	return &TextReport{w: w}
}

// Write renders the full report.
func (r *TextReport) Write(report *retrospect.Report) {
	fmt.Fprintf(r.w, "Retrospective: %s\n", report.Player)
	fmt.Fprintf(r.w, "Games analyzed: %d (skipped %d)\n", report.GamesAnalyzed, report.Skipped.Total())
	fmt.Fprintln(r.w)

	fmt.Fprintln(r.w, "Win probability by game progress:")
	bins := len(report.WinRateByBin)
	for i, mean := range report.WinRateByBin {
		lo := i * 100 / bins
		hi := (i + 1) * 100 / bins
		fmt.Fprintf(r.w, "  %3d-%3d%%  %.3f\n", lo, hi, mean)
	}
	fmt.Fprintln(r.w)

	fmt.Fprintf(r.w, "Blunders: %d\n", len(report.Blunders))
	for _, phase := range analysis.Phases {
		fmt.Fprintf(r.w, "  %-11s %d\n", phase, report.BlundersByPhase[phase])
	}
	fmt.Fprintln(r.w)

	fmt.Fprintln(r.w, "Opponents:")
	for _, name := range sortedOpponents(report.Opponents) {
		rec := report.Opponents[name]
		fmt.Fprintf(r.w, "  %-20s %d-%d (%.1f%%)\n", name, rec.Wins, rec.Losses, rec.WinRate())
	}
}
