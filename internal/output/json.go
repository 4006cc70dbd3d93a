package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dotcommander/agentfolio/internal/cue"
	"github.com/dotcommander/agentfolio/internal/featured"
	"github.com/dotcommander/agentfolio/internal/scoring"
	"github.com/dotcommander/agentfolio/internal/store"
)

// ToolName and Version appear in report headers
const ToolName = "agentfolio"

var Version = "1.0.0"

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	indent     bool
	outputFile string
	now        func() time.Time
}

// NewJSONFormatter creates a new JSONFormatter
func NewJSONFormatter(indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		indent:     indent,
		outputFile: outputFile,
		now:        time.Now,
	}
}

// JSONHeader contains report metadata
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// JSONBatchReport is the batch command document
type JSONBatchReport struct {
	Header   JSONHeader     `json:"header"`
	Summary  JSONBatchStats `json:"summary"`
	Index    store.Index    `json:"index"`
	Failures []BatchFailure `json:"failures"`
}

// JSONBatchStats contains batch counts
type JSONBatchStats struct {
	Scored   int    `json:"scored"`
	Failed   int    `json:"failed"`
	Saved    bool   `json:"saved"`
	Duration string `json:"duration"`
}

// JSONValidationReport is the validate command document
type JSONValidationReport struct {
	File       string                `json:"file"`
	Valid      bool                  `json:"valid"`
	Issues     []cue.ValidationError `json:"issues"`
	Suppressed int                   `json:"suppressed,omitempty"`
}

// JSONFeaturedReport is the featured command document
type JSONFeaturedReport struct {
	Action  string           `json:"action"`
	Changed bool             `json:"changed"`
	Current *featured.Entry  `json:"current"`
	History []featured.Entry `json:"history,omitempty"`
}

func (f *JSONFormatter) header() JSONHeader {
	return JSONHeader{
		Tool:      ToolName,
		Version:   Version,
		Timestamp: f.now().Format(time.RFC3339),
	}
}

// FormatResult writes the score document
func (f *JSONFormatter) FormatResult(result scoring.ScoreResult) error {
	return f.write(result)
}

// FormatBatch writes the leaderboard and failures
func (f *JSONFormatter) FormatBatch(report BatchReport) error {
	failures := report.Failures
	if failures == nil {
		failures = []BatchFailure{}
	}
	index := report.Index
	if index.Agents == nil {
		index.Agents = []store.IndexEntry{}
	}
	return f.write(JSONBatchReport{
		Header: f.header(),
		Summary: JSONBatchStats{
			Scored:   report.Scored,
			Failed:   len(failures),
			Saved:    report.Saved,
			Duration: report.Duration.Round(time.Millisecond).String(),
		},
		Index:    index,
		Failures: failures,
	})
}

// FormatSummary writes the tier distribution
func (f *JSONFormatter) FormatSummary(summary store.Summary) error {
	return f.write(summary)
}

// FormatValidation writes card issues
func (f *JSONFormatter) FormatValidation(report ValidationReport) error {
	issues := report.Issues
	if issues == nil {
		issues = []cue.ValidationError{}
	}
	return f.write(JSONValidationReport{
		File:       report.File,
		Valid:      report.Valid(),
		Issues:     issues,
		Suppressed: report.Suppressed,
	})
}

// FormatFeatured writes the featured agent or history
func (f *JSONFormatter) FormatFeatured(report FeaturedReport) error {
	return f.write(JSONFeaturedReport(report))
}

func (f *JSONFormatter) write(v any) error {
	var jsonBytes []byte
	var err error

	if f.indent {
		jsonBytes, err = json.MarshalIndent(v, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	return emit(f.outputFile, string(jsonBytes)+"\n")
}
