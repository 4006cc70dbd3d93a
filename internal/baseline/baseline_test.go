package baseline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dotcommander/agentfolio/internal/cue"
)

var created = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func TestCreateBaseline(t *testing.T) {
	issues := []cue.ValidationError{
		{File: "cards/helper.json", Path: "name", Message: "incomplete value string", Severity: cue.SeverityError},
		{File: "cards/helper.json", Path: "skills", Message: "incomplete value", Severity: cue.SeverityWarning},
		{File: "cards/helper.json", Path: "name", Message: "incomplete value string", Severity: cue.SeverityError},
	}

	b := CreateBaseline(issues, created)

	if b.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", b.Version)
	}
	if b.CreatedAt != "2026-10-01T09:00:00Z" {
		t.Errorf("Expected created_at 2026-10-01T09:00:00Z, got %s", b.CreatedAt)
	}
	if len(b.Fingerprints) != 2 {
		t.Errorf("Expected 2 unique fingerprints, got %d", len(b.Fingerprints))
	}
	if len(b.index) != 2 {
		t.Errorf("Expected index with 2 entries, got %d", len(b.index))
	}
}

func TestIsKnown(t *testing.T) {
	known := cue.ValidationError{File: "a.json", Path: "url", Message: `invalid value "http://x" (out of bound =~"^https://")`, Severity: cue.SeverityWarning}
	other := cue.ValidationError{File: "b.json", Path: "url", Message: known.Message, Severity: cue.SeverityWarning}

	b := CreateBaseline([]cue.ValidationError{known}, created)

	if !b.IsKnown(known) {
		t.Error("Expected issue to be known")
	}
	if b.IsKnown(other) {
		t.Error("Same issue in another file should not be known")
	}

	changedValue := known
	changedValue.Message = `invalid value "http://y" (out of bound =~"^https://")`
	if !b.IsKnown(changedValue) {
		t.Error("Changing only the quoted value should keep the fingerprint")
	}

	var nilBaseline *Baseline
	if nilBaseline.IsKnown(known) {
		t.Error("nil baseline knows nothing")
	}
}

func TestFilter(t *testing.T) {
	accepted := cue.ValidationError{File: "a.json", Path: "skills", Message: "incomplete value", Severity: cue.SeverityWarning}
	fresh := cue.ValidationError{File: "a.json", Path: "name", Message: "field is required", Severity: cue.SeverityError}

	b := CreateBaseline([]cue.ValidationError{accepted}, created)
	kept, suppressed := b.Filter([]cue.ValidationError{accepted, fresh})

	if suppressed != 1 {
		t.Errorf("Expected 1 suppressed, got %d", suppressed)
	}
	if len(kept) != 1 || kept[0].Path != "name" {
		t.Errorf("Expected only the new issue to remain, got %+v", kept)
	}

	var nilBaseline *Baseline
	kept, suppressed = nilBaseline.Filter([]cue.ValidationError{accepted})
	if suppressed != 0 || len(kept) != 1 {
		t.Errorf("nil baseline should pass everything through, got %d kept, %d suppressed", len(kept), suppressed)
	}
}

func TestSaveAndLoadBaseline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFile)
	issue := cue.ValidationError{File: "a.json", Path: "name", Message: "required", Severity: cue.SeverityError}

	if err := CreateBaseline([]cue.ValidationError{issue}, created).SaveBaseline(path); err != nil {
		t.Fatalf("SaveBaseline failed: %v", err)
	}

	loaded, err := LoadBaseline(path)
	if err != nil {
		t.Fatalf("LoadBaseline failed: %v", err)
	}
	if !loaded.IsKnown(issue) {
		t.Error("Loaded baseline should know the saved issue")
	}
}

func TestLoadBaselineErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadBaseline(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBaseline(bad); err == nil {
		t.Error("Expected error for invalid JSON")
	}

	b, err := LoadOptional(filepath.Join(dir, "missing.json"))
	if err != nil || b != nil {
		t.Errorf("LoadOptional on a missing file should return nil, nil; got %v, %v", b, err)
	}
}

func TestNormalizeMessage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`conflicting values "1.0" and "2.0"`, `conflicting values "*" and "*"`},
		{"list has 0 items, want 1", "list has N items, want N"},
		{"  extra   spaces ", "extra spaces"},
	}
	for _, tt := range tests {
		if got := normalizeMessage(tt.in); got != tt.want {
			t.Errorf("normalizeMessage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
