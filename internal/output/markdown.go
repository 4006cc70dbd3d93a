package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/dotcommander/agentfolio/internal/scoring"
	"github.com/dotcommander/agentfolio/internal/store"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct {
	verbose    bool
	outputFile string
	now        func() time.Time
}

// NewMarkdownFormatter creates a new MarkdownFormatter
func NewMarkdownFormatter(verbose bool, outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{
		verbose:    verbose,
		outputFile: outputFile,
		now:        time.Now,
	}
}

// FormatResult renders one agent's score as a table
func (f *MarkdownFormatter) FormatResult(result scoring.ScoreResult) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s (@%s)\n\n", escapeCell(result.Name), result.Handle)
	fmt.Fprintf(&b, "**Composite Score:** %d/100\n\n", result.CompositeScore)
	fmt.Fprintf(&b, "**Tier:** %s (%s)\n\n", result.Tier.Label, result.Tier.Description)
	fmt.Fprintf(&b, "**Calculated:** %s\n\n", result.CalculatedAt.UTC().Format(time.RFC3339))

	b.WriteString("## Categories\n\n")
	if f.verbose {
		b.WriteString("| Category | Score | Sources | Notes |\n")
		b.WriteString("|----------|-------|---------|-------|\n")
	} else {
		b.WriteString("| Category | Score |\n")
		b.WriteString("|----------|-------|\n")
	}
	for _, category := range scoring.AllCategories() {
		cs, ok := result.CategoryScores[category]
		if !ok {
			continue
		}
		if f.verbose {
			fmt.Fprintf(&b, "| %s | %d/%d | %s | %s |\n", category, cs.Score, cs.MaxScore,
				strings.Join(cs.DataSources, ", "), escapeCell(cs.Notes))
		} else {
			fmt.Fprintf(&b, "| %s | %d/%d |\n", category, cs.Score, cs.MaxScore)
		}
	}
	b.WriteString("\n")

	if mult, gained, ok := boostOf(result); ok {
		fmt.Fprintf(&b, "**Skills Boost:** x%.2f (+%d)\n\n", mult, gained)
	}
	if decayApplied(result) {
		b.WriteString("**Decay:** applied\n\n")
	}
	if len(result.DataSources) > 0 {
		fmt.Fprintf(&b, "**Sources:** %s\n", strings.Join(result.DataSources, ", "))
	}

	return emit(f.outputFile, b.String())
}

// FormatBatch renders the leaderboard
func (f *MarkdownFormatter) FormatBatch(report BatchReport) error {
	var b strings.Builder

	b.WriteString("# Agent Leaderboard\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", f.now().Format("2006-01-02 15:04:05"))
	if report.Index.RunID != "" {
		fmt.Fprintf(&b, "**Run:** `%s`\n\n", report.Index.RunID)
	}

	if len(report.Index.Agents) == 0 {
		b.WriteString("*No agents scored.*\n\n")
	} else {
		b.WriteString("| Rank | Agent | Score | Tier |\n")
		b.WriteString("|------|-------|-------|------|\n")
		for _, a := range report.Index.Agents {
			fmt.Fprintf(&b, "| %d | %s (@%s) | %d | %s |\n", a.Rank, escapeCell(a.Name), a.Handle, a.CompositeScore, a.Tier)
		}
		b.WriteString("\n")
	}

	if len(report.Failures) > 0 {
		b.WriteString("## Failures\n\n")
		for _, failure := range report.Failures {
			fmt.Fprintf(&b, "- **%s** - %s\n", failure.File, failure.Error)
		}
		b.WriteString("\n")
	}

	return emit(f.outputFile, b.String())
}

// FormatSummary renders the tier distribution
func (f *MarkdownFormatter) FormatSummary(summary store.Summary) error {
	var b strings.Builder

	b.WriteString("# Agent Reputation Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Agents Scored | %d |\n", summary.TotalAgents)
	fmt.Fprintf(&b, "| Average Composite | %.1f |\n\n", summary.AverageComposite)

	b.WriteString("## Tier Distribution\n\n")
	b.WriteString("| Tier | Min Score | Agents | Share |\n")
	b.WriteString("|------|-----------|--------|-------|\n")
	for _, tc := range summary.Tiers {
		fmt.Fprintf(&b, "| %s | %d | %d | %.1f%% |\n", tc.Tier, tc.MinScore, tc.Count, tc.Percent)
	}
	b.WriteString("\n")

	if len(summary.Top) > 0 {
		b.WriteString("## Top Agents\n\n")
		for i, e := range summary.Top {
			fmt.Fprintf(&b, "%d. **%s** - %d (%s)\n", i+1, e.Handle, e.CompositeScore, e.Tier)
		}
		b.WriteString("\n")
	}

	return emit(f.outputFile, b.String())
}

// FormatValidation renders agent card issues
func (f *MarkdownFormatter) FormatValidation(report ValidationReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Agent Card Validation: %s\n\n", report.File)
	fmt.Fprintf(&b, "Status: %s\n\n", getStatusEmoji(report.Valid()))

	if len(report.Issues) == 0 {
		b.WriteString("*No issues found.*\n")
	} else {
		b.WriteString("| Severity | Field | Message |\n")
		b.WriteString("|----------|-------|---------|\n")
		for _, issue := range report.Issues {
			fmt.Fprintf(&b, "| %s | `%s` | %s |\n", issue.Severity, issue.Path, escapeCell(issue.Message))
		}
	}
	if report.Suppressed > 0 {
		fmt.Fprintf(&b, "\n*%d known issue(s) suppressed by baseline.*\n", report.Suppressed)
	}

	return emit(f.outputFile, b.String())
}

// FormatFeatured renders the featured agent or history
func (f *MarkdownFormatter) FormatFeatured(report FeaturedReport) error {
	var b strings.Builder

	if report.Action == FeaturedHistory {
		b.WriteString("# Agent of the Week History\n\n")
		if len(report.History) == 0 {
			b.WriteString("*No featured agents yet.*\n")
		} else {
			b.WriteString("| Week | Agent | Reason |\n")
			b.WriteString("|------|-------|--------|\n")
			for _, e := range report.History {
				fmt.Fprintf(&b, "| %s to %s | %s (@%s) | %s |\n", e.WeekStart, e.WeekEnd, escapeCell(e.Name), e.Handle, escapeCell(e.Reason))
			}
		}
		return emit(f.outputFile, b.String())
	}

	b.WriteString("# Agent of the Week\n\n")
	if report.Current == nil {
		b.WriteString("*No featured agent.*\n")
		return emit(f.outputFile, b.String())
	}
	c := report.Current
	fmt.Fprintf(&b, "%s **%s** (@%s)\n\n", c.Badge, c.Name, c.Handle)
	fmt.Fprintf(&b, "- **Week:** %s to %s\n", c.WeekStart, c.WeekEnd)
	fmt.Fprintf(&b, "- **Reason:** %s\n", c.Reason)
	if c.Tier != "" {
		fmt.Fprintf(&b, "- **Score:** %d (%s)\n", c.CompositeScore, c.Tier)
	}
	return emit(f.outputFile, b.String())
}

// getStatusEmoji returns an emoji for the status
func getStatusEmoji(success bool) string {
	if success {
		return "✅"
	}
	return "❌"
}

// escapeCell keeps pipes and newlines from breaking table rows
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
