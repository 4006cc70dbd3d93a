package cue

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/dotcommander/agentfolio/internal/scoring"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// Severity levels
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Schema definitions in schemas/agent_card.cue
const (
	DefAgentCard   = "#AgentCard"
	DefRecommended = "#Recommended"
)

// ValidationError represents one schema violation
type ValidationError struct {
	File     string `json:"file,omitempty"`
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func (e ValidationError) String() string {
	where := e.Path
	if where == "" {
		where = "(card)"
	}
	return fmt.Sprintf("%s: %s: %s", e.Severity, where, e.Message)
}

// Validator checks agent cards against the embedded CUE schemas
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}
}

// LoadSchemas compiles every embedded .cue file
func (v *Validator) LoadSchemas() error {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return fmt.Errorf("could not read embedded schemas: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return fmt.Errorf("reading schema %s: %w", entry.Name(), err)
		}

		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if instErr := inst.Err(); instErr != nil {
			return fmt.Errorf("compiling schema %s: %w", entry.Name(), instErr)
		}

		// agent_card.cue -> agent_card
		v.schemas[strings.TrimSuffix(entry.Name(), ".cue")] = inst.Value()
	}

	if len(v.schemas) == 0 {
		return fmt.Errorf("no CUE schemas embedded")
	}
	return nil
}

// ValidateCard checks a decoded agent card. Snake_case aliases are normalized first.
// Violations of #AgentCard are errors; gaps against #Recommended are warnings.
func (v *Validator) ValidateCard(card map[string]any) ([]ValidationError, error) {
	schema, ok := v.schemas["agent_card"]
	if !ok {
		return nil, fmt.Errorf("agent card schema not loaded")
	}
	if card == nil {
		card = map[string]any{}
	}
	normalized := scoring.NormalizeAgentCard(card)

	issues, err := v.validateAgainstSchema(schema, normalized, DefAgentCard, SeverityError)
	if err != nil {
		return nil, err
	}
	warnings, err := v.validateAgainstSchema(schema, normalized, DefRecommended, SeverityWarning)
	if err != nil {
		return nil, err
	}
	return append(issues, warnings...), nil
}

// ValidateCardFile reads a JSON or YAML card from disk and validates it
func (v *Validator) ValidateCardFile(filePath string) ([]ValidationError, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filePath, err)
	}

	card, err := ParseCard(content, filepath.Ext(filePath))
	if err != nil {
		return []ValidationError{{
			File:     filePath,
			Message:  err.Error(),
			Severity: SeverityError,
		}}, nil
	}

	issues, err := v.ValidateCard(card)
	if err != nil {
		return nil, err
	}
	for i := range issues {
		issues[i].File = filePath
	}
	return issues, nil
}

// ParseCard decodes card content by file extension; anything but .yaml/.yml is JSON
func ParseCard(content []byte, ext string) (map[string]any, error) {
	var card map[string]any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yamlv3.Unmarshal(content, &card); err != nil {
			return nil, fmt.Errorf("error parsing YAML card: %w", err)
		}
	default:
		if err := json.Unmarshal(content, &card); err != nil {
			return nil, fmt.Errorf("error parsing JSON card: %w", err)
		}
	}
	if card == nil {
		return nil, fmt.Errorf("agent card is empty")
	}
	return card, nil
}

// HasErrors reports whether any issue is an error rather than a warning
func HasErrors(issues []ValidationError) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// validateAgainstSchema unifies data with one definition of the schema
func (v *Validator) validateAgainstSchema(schema cue.Value, data map[string]any, definition, severity string) ([]ValidationError, error) {
	dataValue := v.ctx.Encode(data)
	if encErr := dataValue.Err(); encErr != nil {
		return nil, fmt.Errorf("error encoding data: %w", encErr)
	}

	def := schema.LookupPath(cue.ParsePath(definition))
	if !def.Exists() {
		return nil, fmt.Errorf("schema definition %s not found", definition)
	}

	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return extractErrorsFromCUE(err, severity), nil
	}

	// Concreteness catches missing required fields
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return extractErrorsFromCUE(err, severity), nil
	}

	return nil, nil
}

// extractErrorsFromCUE splits a CUE error into one ValidationError per path, sorted by path
func extractErrorsFromCUE(err error, severity string) []ValidationError {
	seen := make(map[string]bool)
	var out []ValidationError

	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		p := strings.Join(e.Path(), ".")

		key := p + "\x00" + msg
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, ValidationError{
			Path:     p,
			Message:  msg,
			Severity: severity,
		})
	}

	if len(out) == 0 {
		out = append(out, ValidationError{
			Message:  fmt.Sprintf("Schema validation failed: %v", err),
			Severity: severity,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
