package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/dotcommander/agentfolio/internal/cue"
	"github.com/dotcommander/agentfolio/internal/scoring"
	"github.com/dotcommander/agentfolio/internal/store"
)

// ConsoleFormatter formats output for console display
type ConsoleFormatter struct {
	quiet   bool
	verbose bool
}

// NewConsoleFormatter creates a new ConsoleFormatter
func NewConsoleFormatter(quiet, verbose bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		quiet:   quiet,
		verbose: verbose,
	}
}

// FormatResult prints one agent's score card with a bar per category
func (f *ConsoleFormatter) FormatResult(result scoring.ScoreResult) error {
	if f.quiet {
		return nil
	}

	fmt.Println()
	fmt.Printf("%s %s\n", headerStyle.Render(result.Name), dimStyle.Render("(@"+result.Handle+")"))
	fmt.Printf("Score: %s  %s %s\n",
		scoreStyle(result.CompositeScore).Render(fmt.Sprintf("%d/100", result.CompositeScore)),
		boldStyle.Render(result.Tier.Label),
		dimStyle.Render("- "+result.Tier.Description))
	fmt.Println()

	for _, category := range scoring.AllCategories() {
		cs, ok := result.CategoryScores[category]
		if !ok {
			continue
		}
		fmt.Printf("  %-10s %s %3d\n", category, renderBar(cs.Score, cs.MaxScore, BarWidth, scoreColor(cs.Score)), cs.Score)
		if f.verbose && cs.Notes != "" {
			fmt.Printf("  %-10s %s\n", "", dimStyle.Render(cs.Notes))
		}
	}
	fmt.Println()

	var extras []string
	if decayApplied(result) {
		extras = append(extras, "decay applied")
	}
	if mult, gained, ok := boostOf(result); ok && gained > 0 {
		extras = append(extras, fmt.Sprintf("skills boost +%d (x%.2f)", gained, mult))
	}
	if len(extras) > 0 {
		fmt.Println(dimStyle.Render(strings.Join(extras, ", ")))
	}

	sources := "none"
	if len(result.DataSources) > 0 {
		sources = strings.Join(result.DataSources, ", ")
	}
	fmt.Printf("Sources: %s\n", sources)
	return nil
}

// FormatBatch prints the leaderboard and any profiles that failed
func (f *ConsoleFormatter) FormatBatch(report BatchReport) error {
	if f.quiet {
		return nil
	}

	agents := report.Index.Agents
	if len(agents) > 0 {
		fmt.Println(headerStyle.Render("LEADERBOARD"))
		for _, a := range agents {
			fmt.Printf("  %3d. %-24s %3d  %s\n", a.Rank, a.Handle,
				a.CompositeScore, scoreStyle(a.CompositeScore).Render(a.Tier))
		}
		fmt.Println()
	}

	for _, failure := range report.Failures {
		fmt.Printf("%s %s: %s\n", errorStyle.Render("✗"), failure.File, failure.Error)
	}

	summary := fmt.Sprintf("%d scored, %d failed", report.Scored, len(report.Failures))
	if report.Duration > 0 {
		summary += fmt.Sprintf(" (%s)", formatDuration(report.Duration))
	}
	if len(report.Failures) == 0 {
		fmt.Println(okStyle.Render("✓ " + summary))
	} else {
		fmt.Println(summary)
	}
	if f.verbose && report.Saved && report.Index.RunID != "" {
		fmt.Println(dimStyle.Render("run " + report.Index.RunID))
	}
	return nil
}

// FormatSummary prints the tier distribution of stored scores
func (f *ConsoleFormatter) FormatSummary(summary store.Summary) error {
	if f.quiet {
		return nil
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("AGENT REPUTATION SUMMARY"))
	fmt.Printf("Agents scored: %d   Average composite: %.1f\n", summary.TotalAgents, summary.AverageComposite)
	fmt.Println()

	fmt.Println(boldStyle.Render("TIER DISTRIBUTION"))
	for _, tc := range summary.Tiers {
		label := fmt.Sprintf("%-11s (%2d+)", tc.Tier, tc.MinScore)
		fmt.Printf("  %s: %-4d (%5.1f%%)  %s\n",
			scoreStyle(tc.MinScore).Render(label), tc.Count, tc.Percent,
			renderBar(tc.Count, summary.TotalAgents, 10, scoreColor(tc.MinScore)))
	}

	if summary.TotalAgents > 0 {
		fmt.Println()
		fmt.Println(boldStyle.Render("CATEGORY AVERAGES"))
		for _, category := range scoring.AllCategories() {
			avg := summary.CategoryAverages[category]
			fmt.Printf("  %-10s %s %5.1f\n", category, renderBar(int(avg), scoring.MaxCategoryScore, BarWidth, scoreColor(int(avg))), avg)
		}
	}

	printEntries("TOP AGENTS", summary.Top)
	printEntries("LOWEST SCORING", summary.Lowest)
	fmt.Println()
	return nil
}

func printEntries(title string, entries []store.IndexEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(boldStyle.Render(title))
	for i, e := range entries {
		handle := e.Handle
		if len(handle) > 32 {
			handle = handle[:29] + "..."
		}
		fmt.Printf("  %s %-32s %3d %s\n", dimStyle.Render(fmt.Sprintf("%d.", i+1)), handle,
			e.CompositeScore, scoreStyle(e.CompositeScore).Render(e.Tier))
	}
}

// FormatValidation prints agent card issues
func (f *ConsoleFormatter) FormatValidation(report ValidationReport) error {
	if f.quiet {
		return nil
	}

	if report.Valid() {
		fmt.Printf("%s %s\n", okStyle.Render("✓"), report.File)
	} else {
		fmt.Printf("%s %s\n", errorStyle.Render("✗"), report.File)
	}

	for _, issue := range report.Issues {
		if issue.Severity == cue.SeverityWarning && !f.verbose && !report.Valid() {
			continue
		}
		prefix, style := "    ⚠ ", warnStyle
		if issue.Severity == cue.SeverityError {
			prefix, style = "    ✘ ", errorStyle
		}
		where := issue.Path
		if where == "" {
			where = "(card)"
		}
		fmt.Printf("%s%s: %s\n", prefix, style.Render(where), issue.Message)
	}
	if report.Suppressed > 0 {
		fmt.Println(dimStyle.Render(fmt.Sprintf("    %d known issue(s) suppressed by baseline", report.Suppressed)))
	}
	return nil
}

// FormatFeatured prints the featured agent or the rotation history
func (f *ConsoleFormatter) FormatFeatured(report FeaturedReport) error {
	if f.quiet {
		return nil
	}

	switch report.Action {
	case FeaturedHistory:
		if len(report.History) == 0 {
			fmt.Println("No featured agents yet")
			return nil
		}
		fmt.Println(headerStyle.Render("FEATURED HISTORY"))
		for _, e := range report.History {
			fmt.Printf("  %s to %s  %-24s %s\n", e.WeekStart, e.WeekEnd, e.Handle, dimStyle.Render(e.Reason))
		}
		return nil
	}

	if report.Current == nil {
		fmt.Println("No featured agent")
		return nil
	}

	c := report.Current
	if report.Action == FeaturedSelect && report.Changed {
		printCelebration(fmt.Sprintf("Agent of the Week: %s (@%s)", c.Name, c.Handle))
	} else {
		if report.Action == FeaturedSelect {
			fmt.Println(dimStyle.Render("No rotation needed. Current agent still active."))
		}
		fmt.Printf("%s %s %s\n", c.Badge, headerStyle.Render(c.Name), dimStyle.Render("(@"+c.Handle+")"))
	}
	fmt.Printf("  Week: %s to %s\n", c.WeekStart, c.WeekEnd)
	fmt.Printf("  Reason: %s\n", c.Reason)
	if c.Tier != "" {
		fmt.Printf("  Score: %d (%s)\n", c.CompositeScore, c.Tier)
	}
	return nil
}

// formatDuration returns a compact duration string
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
