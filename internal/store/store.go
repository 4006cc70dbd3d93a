package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dotcommander/agentfolio/internal/logging"
	"github.com/dotcommander/agentfolio/internal/scoring"
)

// IndexFile is the leaderboard file name inside the scores directory
const IndexFile = "index.json"

// IndexVersion is written to every leaderboard index
const IndexVersion = "1.0"

var (
	// ErrNotFound is returned when no stored score exists for a handle
	ErrNotFound = errors.New("score not found")
	// ErrInvalidHandle is returned for handles that cannot name a file
	ErrInvalidHandle = errors.New("invalid handle")
)

// Store persists score results as one JSON file per agent
type Store struct {
	dir string
	log logging.Logger
}

// New creates a Store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir, log: logging.Named("store")}
}

// Dir returns the scores directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the file path for a handle: <dir>/<lower(handle)>.json
func (s *Store) Path(handle string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(handle))
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidHandle, handle)
	}
	return filepath.Join(s.dir, name+".json"), nil
}

// Save writes a score result and returns the file path.
func (s *Store) Save(result scoring.ScoreResult) (string, error) {
	path, err := s.Path(result.Handle)
	if err != nil {
		return "", err
	}
	if err := writeJSON(path, result); err != nil {
		return "", fmt.Errorf("failed to save score for %s: %w", result.Handle, err)
	}
	s.log.Debug("saved score", logging.String("handle", result.Handle), logging.String("path", path))
	return path, nil
}

// Load reads the stored score for a handle.
func (s *Store) Load(handle string) (scoring.ScoreResult, error) {
	path, err := s.Path(handle)
	if err != nil {
		return scoring.ScoreResult{}, err
	}
	return loadResult(path)
}

// LoadAll reads every stored score, sorted by handle. Unreadable files are skipped with a warning.
func (s *Store) LoadAll() ([]scoring.ScoreResult, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read scores directory: %w", err)
	}

	var results []scoring.ScoreResult
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || name == IndexFile {
			continue
		}
		result, err := loadResult(filepath.Join(s.dir, name))
		if err != nil {
			s.log.Warn("skipping unreadable score", logging.String("file", name), logging.Err(err))
			continue
		}
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		return strings.ToLower(results[i].Handle) < strings.ToLower(results[j].Handle)
	})
	return results, nil
}

func loadResult(path string) (scoring.ScoreResult, error) {
	var result scoring.ScoreResult
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return result, fmt.Errorf("failed to read score file: %w", err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("failed to parse score file %s: %w", path, err)
	}
	return result, nil
}

// IndexEntry is one leaderboard row
type IndexEntry struct {
	Rank           int    `json:"rank"`
	Handle         string `json:"handle"`
	Name           string `json:"name"`
	CompositeScore int    `json:"composite_score"`
	Tier           string `json:"tier"`
}

// Index is the leaderboard document
type Index struct {
	Version     string       `json:"version"`
	RunID       string       `json:"run_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Agents      []IndexEntry `json:"agents"`
}

// BuildIndex ranks results by composite score descending, then handle ascending.
func BuildIndex(results []scoring.ScoreResult, now time.Time) Index {
	return Index{
		Version:     IndexVersion,
		RunID:       uuid.NewString(),
		GeneratedAt: now.UTC(),
		Agents:      rank(results),
	}
}

func rank(results []scoring.ScoreResult) []IndexEntry {
	sorted := make([]scoring.ScoreResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CompositeScore != sorted[j].CompositeScore {
			return sorted[i].CompositeScore > sorted[j].CompositeScore
		}
		return strings.ToLower(sorted[i].Handle) < strings.ToLower(sorted[j].Handle)
	})

	agents := make([]IndexEntry, len(sorted))
	for i, r := range sorted {
		agents[i] = IndexEntry{
			Rank:           i + 1,
			Handle:         r.Handle,
			Name:           r.Name,
			CompositeScore: r.CompositeScore,
			Tier:           r.Tier.Label,
		}
	}
	return agents
}

// WriteIndex builds the leaderboard for results and writes it to <dir>/index.json.
func (s *Store) WriteIndex(results []scoring.ScoreResult, now time.Time) (Index, error) {
	index := BuildIndex(results, now)
	path := filepath.Join(s.dir, IndexFile)
	if err := writeJSON(path, index); err != nil {
		return index, fmt.Errorf("failed to write index: %w", err)
	}
	s.log.Info("wrote leaderboard index", logging.String("run_id", index.RunID), logging.Int("agents", len(index.Agents)))
	return index, nil
}

// LoadIndex reads the leaderboard index.
func (s *Store) LoadIndex() (Index, error) {
	var index Index
	data, err := os.ReadFile(filepath.Join(s.dir, IndexFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return index, fmt.Errorf("%w: %s", ErrNotFound, IndexFile)
		}
		return index, fmt.Errorf("failed to read index: %w", err)
	}
	if err := json.Unmarshal(data, &index); err != nil {
		return index, fmt.Errorf("failed to parse index: %w", err)
	}
	return index, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
