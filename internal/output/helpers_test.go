package output

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/dotcommander/agentfolio/internal/cue"
	"github.com/dotcommander/agentfolio/internal/featured"
	"github.com/dotcommander/agentfolio/internal/scoring"
	"github.com/dotcommander/agentfolio/internal/store"
)

var testNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns what it printed
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fnErr := fn()
	w.Close()
	os.Stdout = old
	out := <-done

	if fnErr != nil {
		t.Fatalf("unexpected error: %v", fnErr)
	}
	return out
}

func sampleResult() scoring.ScoreResult {
	scores := map[scoring.Category]scoring.CategoryScore{}
	values := map[scoring.Category]int{
		scoring.CategoryCode:      57,
		scoring.CategoryContent:   77,
		scoring.CategoryIdentity:  100,
		scoring.CategorySocial:    0,
		scoring.CategoryEconomic:  9,
		scoring.CategoryCommunity: 0,
	}
	for category, v := range values {
		scores[category] = scoring.NewCategoryScore(category, float64(v), nil, []string{"github"}, "")
	}
	code := scores[scoring.CategoryCode]
	code.Notes = "Decay: 40% over 400 days"
	scores[scoring.CategoryCode] = code

	return scoring.ScoreResult{
		Handle:         "helper",
		Name:           "Helper Bot",
		CompositeScore: 52,
		Tier:           scoring.TierActive,
		CategoryScores: scores,
		CalculatedAt:   testNow,
		DataSources:    []string{"a2a", "devto", "github"},
		Metadata: map[string]any{
			"decay_applied": true,
			"skills_boost":  scoring.BoostResult{Multiplier: 1.08, PointsGained: 3, RawScore: 49, BoostedScore: 52},
		},
	}
}

func sampleBatch() BatchReport {
	return BatchReport{
		Index: store.Index{
			Version: store.IndexVersion,
			RunID:   "run-1",
			Agents: []store.IndexEntry{
				{Rank: 1, Handle: "alpha", Name: "Alpha", CompositeScore: 91, Tier: "Pioneer"},
				{Rank: 2, Handle: "beta", Name: "Beta | Bot", CompositeScore: 40, Tier: "Active"},
			},
		},
		Scored:   2,
		Failures: []BatchFailure{{File: "broken.json", Error: "invalid profile"}},
		Duration: 1500 * time.Millisecond,
		Saved:    true,
	}
}

func sampleSummary() store.Summary {
	return store.Summarize([]scoring.ScoreResult{
		{Handle: "alpha", CompositeScore: 91, Tier: scoring.TierPioneer},
		{Handle: "beta", CompositeScore: 40, Tier: scoring.TierActive},
	}, 3)
}

func sampleValidation(valid bool) ValidationReport {
	issues := []cue.ValidationError{{Path: "skills", Message: "incomplete value", Severity: cue.SeverityWarning}}
	if !valid {
		issues = append(issues, cue.ValidationError{Path: "name", Message: "field is required", Severity: cue.SeverityError})
	}
	return ValidationReport{File: "agent.json", Issues: issues}
}

func sampleEntry() *featured.Entry {
	return &featured.Entry{
		ID:             "id-1",
		Handle:         "alpha",
		Name:           "Alpha",
		WeekStart:      "2026-09-28",
		WeekEnd:        "2026-10-04",
		Reason:         "Consistent content creation across platforms",
		Badge:          featured.Badge,
		CompositeScore: 91,
		Tier:           "Pioneer",
	}
}
