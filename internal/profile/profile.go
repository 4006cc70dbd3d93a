// Package profile loads agent profile documents from JSON, YAML or Markdown files.
//
// A profile looks like:
//
//	handle: helper
//	name: Helper Bot
//	platforms:
//	  github:
//	    status: ok
//	    fetched_at: 2026-09-30T08:00:00Z
//	    public_repos: 12
//	  a2a:
//	    data:
//	      card: {...}
//
// A Markdown profile carries the same fields as YAML frontmatter; its body
// becomes the "bio" metadata entry.
//
// A platform block either nests its fields under "data" or lists them inline
// next to status, fetched_at and error. A block without a status is "unknown",
// so its numbers are not trusted. A bare string names a handle whose data has
// not been fetched yet.
package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dotcommander/agentfolio/internal/discovery"
	"github.com/dotcommander/agentfolio/internal/frontend"
	"github.com/dotcommander/agentfolio/internal/scoring"
)

var (
	// ErrProfileNotFound is returned when the profile file does not exist
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInvalidProfile is returned when the file cannot be parsed as a profile
	ErrInvalidProfile = errors.New("invalid profile")
)

// reservedKeys are platform block keys that never land in PlatformData.Data
var reservedKeys = map[string]bool{
	"status":     true,
	"fetched_at": true,
	"fetched":    true,
	"error":      true,
	"platform":   true,
	"data":       true,
}

// document is the on-disk shape shared by the JSON and YAML forms
type document struct {
	Handle    string         `json:"handle" yaml:"handle"`
	Name      string         `json:"name" yaml:"name"`
	Platforms map[string]any `json:"platforms" yaml:"platforms"`
	Metadata  map[string]any `json:"metadata" yaml:"metadata"`
}

// Load reads and parses a profile file. The format is picked by extension;
// unknown extensions are tried as JSON.
func Load(path string) (scoring.Profile, error) {
	absPath, err := discovery.ValidateFilePath(path)
	if err != nil {
		if errors.Is(err, discovery.ErrFileNotFound) {
			return scoring.Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, path)
		}
		return scoring.Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return scoring.Profile{}, fmt.Errorf("error reading profile %s: %w", path, err)
	}

	p, err := Parse(content, formatFor(absPath))
	if err != nil {
		return scoring.Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Format is the encoding of a profile document
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatJSON
	}
}

// Parse decodes a profile document
func Parse(content []byte, format Format) (scoring.Profile, error) {
	var doc document
	var bio string
	switch format {
	case FormatMarkdown:
		header, body, ok := frontend.Split(string(content))
		if !ok {
			return scoring.Profile{}, fmt.Errorf("%w: missing frontmatter", ErrInvalidProfile)
		}
		if err := yaml.Unmarshal([]byte(header), &doc); err != nil {
			return scoring.Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
		}
		bio = strings.TrimSpace(body)
	case FormatYAML:
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return scoring.Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return scoring.Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
		}
	}

	handle := strings.TrimSpace(doc.Handle)
	if handle == "" {
		return scoring.Profile{}, fmt.Errorf("%w: missing handle", ErrInvalidProfile)
	}

	name := strings.TrimSpace(doc.Name)
	if name == "" {
		name = handle
	}

	platforms := make(map[string]scoring.PlatformData, len(doc.Platforms))
	for key, raw := range doc.Platforms {
		platform := strings.ToLower(strings.TrimSpace(key))
		if platform == "" {
			continue
		}
		platforms[platform] = platformData(platform, raw)
	}

	metadata := normalize(doc.Metadata).(map[string]any)
	if _, set := metadata["bio"]; !set && bio != "" {
		metadata["bio"] = bio
	}

	return scoring.Profile{
		Handle:    handle,
		Name:      name,
		Platforms: platforms,
		Metadata:  metadata,
	}, nil
}

// platformData converts one platform block
func platformData(platform string, raw any) scoring.PlatformData {
	block, ok := normalize(raw).(map[string]any)
	if !ok || raw == nil {
		data := map[string]any{}
		if s, isString := raw.(string); isString && s != "" {
			data["handle"] = s
		}
		return scoring.NewPlatformData(platform, scoring.StatusUnavailable, data)
	}

	status := scoring.StatusUnknown
	if s, isString := block["status"].(string); isString && s != "" {
		status = s
	}

	data := map[string]any{}
	if nested, isMap := block["data"].(map[string]any); isMap {
		for k, v := range nested {
			data[k] = v
		}
	}
	for k, v := range block {
		if !reservedKeys[k] {
			data[k] = v
		}
	}

	if platform == "a2a" || platform == "domain" {
		for _, key := range []string{"card", "agent_card"} {
			if card, isMap := data[key].(map[string]any); isMap {
				data[key] = scoring.NormalizeAgentCard(card)
			}
		}
	}

	pd := scoring.NewPlatformData(platform, status, data)
	if errText, isString := block["error"].(string); isString {
		pd.Error = errText
	}
	for _, key := range []string{"fetched_at", "fetched"} {
		if t, ok := timestamp(block[key]); ok {
			pd.FetchedAt = t
			break
		}
	}
	return pd
}

func timestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		return scoring.ParseTimestamp(t)
	}
	return time.Time{}, false
}

// normalize converts decoder output into the shapes the scorers read:
// string-keyed maps, []any lists, float64 or int numbers and RFC3339 strings.
func normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeValue(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}
		return out
	default:
		return v
	}
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return normalize(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalizeValue(item)
		}
		return out
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return v
	}
}
