// Package reporting renders analysis reports for human consumption.
package reporting

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/discochess/retrospect"
	"github.com/discochess/retrospect/internal/analysis"
)

// MarkdownReport renders a report in Markdown format.
type MarkdownReport struct {
	w io.Writer
}

// NewMarkdownReport creates a new Markdown report writer.
func NewMarkdownReport(w io.Writer) *MarkdownReport {
	return &MarkdownReport{w: w}
}

// Write renders the full report.
func (r *MarkdownReport) Write(report *retrospect.Report) {
	r.writeHeader(report)
	r.writeTrajectory(report)
	r.writeBlunders(report)
	r.writeOpponents(report)
	r.writeSkipped(report)
	r.writeFooter(report)
}

func (r *MarkdownReport) writeHeader(report *retrospect.Report) {
	fmt.Fprintf(r.w, "# Retrospective: %s\n\n", report.Player)
	fmt.Fprintf(r.w, "Generated: %s\n\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(r.w, "- **Games analyzed:** %d\n", report.GamesAnalyzed)
	fmt.Fprintf(r.w, "- **Games skipped:** %d\n", report.Skipped.Total())
	fmt.Fprintf(r.w, "- **Blunders flagged:** %d\n", len(report.Blunders))
	fmt.Fprintln(r.w)
}

func (r *MarkdownReport) writeTrajectory(report *retrospect.Report) {
	fmt.Fprintln(r.w, "## Win Probability by Game Progress")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "```")

	width := 40
	bins := len(report.WinRateByBin)
	for i, mean := range report.WinRateByBin {
		barLen := int(mean * float64(width))
		if barLen > width {
			barLen = width
		}
		bar := strings.Repeat("█", barLen)
		lo := i * 100 / bins
		hi := (i + 1) * 100 / bins
		fmt.Fprintf(r.w, "%3d-%3d%% │ %-*s %.3f\n", lo, hi, width, bar, mean)
	}

	fmt.Fprintln(r.w, "```")
	fmt.Fprintln(r.w)
}

func (r *MarkdownReport) writeBlunders(report *retrospect.Report) {
	fmt.Fprintln(r.w, "## Blunders by Phase")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "| Phase | Blunders |")
	fmt.Fprintln(r.w, "|-------|----------|")
	for _, phase := range analysis.Phases {
		fmt.Fprintf(r.w, "| %s | %d |\n", phase, report.BlundersByPhase[phase])
	}
	fmt.Fprintln(r.w)

	if len(report.Blunders) == 0 {
		return
	}

	fmt.Fprintln(r.w, "### Worst Moves")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "| Game | Move | Phase | Drop |")
	fmt.Fprintln(r.w, "|------|------|-------|------|")
	for _, b := range worstBlunders(report.Blunders, 10) {
		fmt.Fprintf(r.w, "| %s | %d | %s | %.3f |\n", b.GameID, b.Move, b.Phase, b.Drop)
	}
	fmt.Fprintln(r.w)
}

func (r *MarkdownReport) writeOpponents(report *retrospect.Report) {
	fmt.Fprintln(r.w, "## Opponents")
	fmt.Fprintln(r.w)
	if len(report.Opponents) == 0 {
		fmt.Fprintln(r.w, "No resolved games.")
		fmt.Fprintln(r.w)
		return
	}

	fmt.Fprintln(r.w, "| Opponent | Wins | Losses | Win Rate |")
	fmt.Fprintln(r.w, "|----------|------|--------|----------|")
	for _, name := range sortedOpponents(report.Opponents) {
		rec := report.Opponents[name]
		fmt.Fprintf(r.w, "| %s | %d | %d | %.1f%% |\n", name, rec.Wins, rec.Losses, rec.WinRate())
	}
	fmt.Fprintln(r.w)
}

func (r *MarkdownReport) writeSkipped(report *retrospect.Report) {
	if report.Skipped.Total() == 0 {
		return
	}
	fmt.Fprintln(r.w, "## Skipped Games")
	fmt.Fprintln(r.w)
	s := report.Skipped
	writeSkipRow(r.w, "Unreadable record", s.UnreadableRecord)
	writeSkipRow(r.w, "Player not in game", s.AmbiguousParticipant)
	writeSkipRow(r.w, "Zero-length game", s.ZeroLength)
	writeSkipRow(r.w, "Evaluation unavailable", s.EvaluationUnavailable)
	writeSkipRow(r.w, "Unresolved outcome", s.UnresolvedOutcome)
	fmt.Fprintln(r.w)
}

func writeSkipRow(w io.Writer, label string, count int) {
	if count == 0 {
		return
	}
	fmt.Fprintf(w, "- **%s:** %d\n", label, count)
}

func (r *MarkdownReport) writeFooter(report *retrospect.Report) {
	fmt.Fprintln(r.w, "---")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "*Run %s*\n", report.RunID)
}

// worstBlunders returns up to n blunders ordered by drop, largest
// first. The input slice is not modified.
func worstBlunders(blunders []analysis.Blunder, n int) []analysis.Blunder {
	sorted := make([]analysis.Blunder, len(blunders))
	copy(sorted, blunders)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Drop > sorted[j].Drop
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func sortedOpponents(opponents map[string]retrospect.Record) []string {
	names := make([]string, 0, len(opponents))
	for name := range opponents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
