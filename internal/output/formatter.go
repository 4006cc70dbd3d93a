package output

import (
	"fmt"
	"os"
	"time"

	"github.com/dotcommander/agentfolio/internal/cue"
	"github.com/dotcommander/agentfolio/internal/featured"
	"github.com/dotcommander/agentfolio/internal/scoring"
	"github.com/dotcommander/agentfolio/internal/store"
)

// Formatter renders command results in one output format
type Formatter interface {
	FormatResult(result scoring.ScoreResult) error
	FormatBatch(report BatchReport) error
	FormatSummary(summary store.Summary) error
	FormatValidation(report ValidationReport) error
	FormatFeatured(report FeaturedReport) error
}

// BatchReport is the outcome of scoring a directory of profiles
type BatchReport struct {
	Index    store.Index
	Scored   int
	Failures []BatchFailure
	Duration time.Duration
	Saved    bool
}

// BatchFailure records a profile that could not be scored
type BatchFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// ValidationReport is the outcome of validating one agent card
type ValidationReport struct {
	File       string
	Issues     []cue.ValidationError
	Suppressed int
}

// Valid reports whether the card has no errors
func (r ValidationReport) Valid() bool {
	return !cue.HasErrors(r.Issues)
}

// Featured report actions
const (
	FeaturedSelect  = "select"
	FeaturedCurrent = "current"
	FeaturedHistory = "history"
)

// FeaturedReport is the outcome of a featured subcommand
type FeaturedReport struct {
	Action  string
	Changed bool
	Current *featured.Entry
	History []featured.Entry
}

// emit writes content to outputFile, or stdout when no file is set
func emit(outputFile, content string) error {
	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(content), 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", outputFile, err)
		}
		return nil
	}
	fmt.Print(content)
	return nil
}

// boostOf reads the skills boost from result metadata, whether freshly
// calculated or restored from JSON.
func boostOf(result scoring.ScoreResult) (mult float64, gained int, ok bool) {
	switch b := result.Metadata["skills_boost"].(type) {
	case scoring.BoostResult:
		return b.Multiplier, b.PointsGained, true
	case map[string]any:
		m, mOK := b["multiplier"].(float64)
		g, gOK := b["points_gained"].(float64)
		if mOK && gOK {
			return m, int(g), true
		}
	}
	return 0, 0, false
}

// decayApplied reports whether the result went through time decay
func decayApplied(result scoring.ScoreResult) bool {
	applied, _ := result.Metadata["decay_applied"].(bool)
	return applied
}
