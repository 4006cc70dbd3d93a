package baseline

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dotcommander/agentfolio/internal/cue"
)

// DefaultFile is the baseline file name used when none is given
const DefaultFile = ".agentfoliobaseline.json"

// Baseline is a snapshot of accepted agent card issues that validation should not report again
type Baseline struct {
	Version      string   `json:"version"`
	CreatedAt    string   `json:"created_at"`
	Fingerprints []string `json:"fingerprints"`
	index        map[string]bool
}

var (
	quotedPattern = regexp.MustCompile(`"[^"]+"`)
	numberPattern = regexp.MustCompile(`\b\d+(\.\d+)?\b`)
)

// CreateBaseline builds a baseline from the given issues, dropping duplicates
func CreateBaseline(issues []cue.ValidationError, now time.Time) *Baseline {
	b := &Baseline{
		Version:      "1.0",
		CreatedAt:    now.UTC().Format(time.RFC3339),
		Fingerprints: make([]string, 0, len(issues)),
		index:        make(map[string]bool, len(issues)),
	}
	for _, issue := range issues {
		fp := fingerprint(issue)
		if !b.index[fp] {
			b.index[fp] = true
			b.Fingerprints = append(b.Fingerprints, fp)
		}
	}
	sort.Strings(b.Fingerprints)
	return b
}

// LoadBaseline reads a baseline file
func LoadBaseline(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline file: %w", err)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse baseline file: %w", err)
	}

	b.index = make(map[string]bool, len(b.Fingerprints))
	for _, fp := range b.Fingerprints {
		b.index[fp] = true
	}
	return &b, nil
}

// LoadOptional reads a baseline file, returning nil when it does not exist
func LoadOptional(path string) (*Baseline, error) {
	b, err := LoadBaseline(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return b, err
}

// SaveBaseline writes the baseline as indented JSON
func (b *Baseline) SaveBaseline(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write baseline file: %w", err)
	}
	return nil
}

// IsKnown reports whether issue is in the baseline
func (b *Baseline) IsKnown(issue cue.ValidationError) bool {
	if b == nil || b.index == nil {
		return false
	}
	return b.index[fingerprint(issue)]
}

// Filter returns the issues not in the baseline and how many were suppressed.
// A nil baseline suppresses nothing.
func (b *Baseline) Filter(issues []cue.ValidationError) ([]cue.ValidationError, int) {
	if b == nil {
		return issues, 0
	}
	kept := make([]cue.ValidationError, 0, len(issues))
	suppressed := 0
	for _, issue := range issues {
		if b.IsKnown(issue) {
			suppressed++
			continue
		}
		kept = append(kept, issue)
	}
	return kept, suppressed
}

// fingerprint hashes file, field path, severity and the normalized message
func fingerprint(issue cue.ValidationError) string {
	data := strings.Join([]string{
		filepath.ToSlash(issue.File),
		issue.Path,
		issue.Severity,
		normalizeMessage(issue.Message),
	}, "|")
	return fmt.Sprintf("%x", sha256.Sum256([]byte(data)))
}

// normalizeMessage replaces quoted values and numbers with placeholders so
// an issue keeps its fingerprint when only the offending value changes.
func normalizeMessage(msg string) string {
	msg = quotedPattern.ReplaceAllString(msg, `"*"`)
	msg = numberPattern.ReplaceAllString(msg, "N")
	return strings.Join(strings.Fields(msg), " ")
}
