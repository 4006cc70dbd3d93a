// Package featured runs the weekly "agent of the week" rotation over stored scores.
package featured

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dotcommander/agentfolio/internal/logging"
	"github.com/dotcommander/agentfolio/internal/scoring"
)

// DateLayout is used for week boundaries in the history file
const DateLayout = "2006-01-02"

// Badge marks the featured agent
const Badge = "🏆"

// VerifiedMultiplier scales the selection weight of verified agents
const VerifiedMultiplier = 1.2

// AgentTypeAutonomous is the only agent type considered when a type is declared
const AgentTypeAutonomous = "autonomous"

// ErrNoEligible is returned when no candidate passes the eligibility rules
var ErrNoEligible = errors.New("no eligible agents")

// SelectionWeights weight category scores when drawing the featured agent
var SelectionWeights = map[scoring.Category]float64{
	scoring.CategoryIdentity: 0.3,
	scoring.CategoryEconomic: 0.15,
	scoring.CategoryContent:  0.1,
	scoring.CategoryCode:     0.05,
}

// CompositeSelectionWeight weights the composite score
const CompositeSelectionWeight = 0.4

var reasons = map[scoring.Category]string{
	scoring.CategoryIdentity:  "Strong identity verification with A2A-compliant agent card",
	scoring.CategoryContent:   "Consistent content creation across platforms",
	scoring.CategorySocial:    "Growing social presence and engagement",
	scoring.CategoryCommunity: "Active contributor to the agent ecosystem",
	scoring.CategoryEconomic:  "Verified economic activity on toku.agency",
}

// Candidate is one agent considered for the rotation
type Candidate struct {
	Handle         string
	Name           string
	CompositeScore int
	Tier           scoring.Tier
	Scores         map[scoring.Category]scoring.CategoryScore
	Verified       bool
	Type           string
}

// CandidateFromResult builds a Candidate from a stored score.
// "verified" and "type" are read from the result metadata.
func CandidateFromResult(r scoring.ScoreResult) Candidate {
	c := Candidate{
		Handle:         r.Handle,
		Name:           r.Name,
		CompositeScore: r.CompositeScore,
		Tier:           r.Tier,
		Scores:         r.CategoryScores,
	}
	if v, ok := r.Metadata["verified"].(bool); ok {
		c.Verified = v
	}
	if t, ok := r.Metadata["type"].(string); ok {
		c.Type = strings.ToLower(strings.TrimSpace(t))
	}
	if c.Name == "" {
		c.Name = c.Handle
	}
	return c
}

// CandidatesFromResults converts every result
func CandidatesFromResults(results []scoring.ScoreResult) []Candidate {
	out := make([]Candidate, len(results))
	for i, r := range results {
		out[i] = CandidateFromResult(r)
	}
	return out
}

func (c Candidate) score(category scoring.Category) int {
	return c.Scores[category].Score
}

// Weight is the candidate's draw weight
func (c Candidate) Weight() float64 {
	w := float64(c.CompositeScore) * CompositeSelectionWeight
	for _, category := range scoring.AllCategories() {
		w += float64(c.score(category)) * SelectionWeights[category]
	}
	if c.Verified {
		w *= VerifiedMultiplier
	}
	return w
}

// TopCategory returns the strongest category. Ties go to the earlier canonical category.
func (c Candidate) TopCategory() (scoring.Category, int) {
	best, bestScore := scoring.Category(""), -1
	for _, category := range scoring.AllCategories() {
		if s := c.score(category); s > bestScore {
			best, bestScore = category, s
		}
	}
	return best, bestScore
}

// Reason explains the pick from the strongest category
func (c Candidate) Reason() string {
	category, score := c.TopCategory()
	if category == scoring.CategoryCode {
		return fmt.Sprintf("Active development on GitHub (code score %d)", score)
	}
	if r, ok := reasons[category]; ok {
		return r
	}
	return fmt.Sprintf("Strong performance in %s", strings.ToUpper(string(category)))
}

// Entry is one featured week
type Entry struct {
	ID             string    `json:"id"`
	Handle         string    `json:"handle"`
	Name           string    `json:"name"`
	WeekStart      string    `json:"week_start"`
	WeekEnd        string    `json:"week_end"`
	Reason         string    `json:"reason"`
	Badge          string    `json:"badge"`
	CompositeScore int       `json:"composite_score"`
	Tier           string    `json:"tier"`
	SelectedAt     time.Time `json:"selected_at"`
}

// Criteria are the eligibility rules stored alongside the history
type Criteria struct {
	MinScore           int `json:"min_score"`
	ExcludeRecentWeeks int `json:"exclude_recent_weeks"`
}

// History is the persisted rotation state
type History struct {
	Current  *Entry   `json:"current,omitempty"`
	History  []Entry  `json:"history"`
	Criteria Criteria `json:"selection_criteria"`
	Updated  string   `json:"updated,omitempty"`
}

// recentHandles returns the lower-cased handles of the current entry and the last n archived entries
func (h *History) recentHandles(n int) map[string]bool {
	recent := make(map[string]bool)
	if h == nil {
		return recent
	}
	start := len(h.History) - n
	if start < 0 {
		start = 0
	}
	for _, e := range h.History[start:] {
		recent[strings.ToLower(e.Handle)] = true
	}
	if h.Current != nil {
		recent[strings.ToLower(h.Current.Handle)] = true
	}
	return recent
}

// WeekWindow returns the Monday and Sunday of the week containing t, in t's location.
func WeekWindow(t time.Time) (monday, sunday time.Time) {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	monday = day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// NeedsRotation reports whether the current entry's week has ended.
// A missing or unparseable week end always needs rotation.
func NeedsRotation(h *History, now time.Time) bool {
	if h == nil || h.Current == nil || h.Current.WeekEnd == "" {
		return true
	}
	end, err := time.ParseInLocation(DateLayout, h.Current.WeekEnd, now.Location())
	if err != nil {
		return true
	}
	return !now.Before(end.AddDate(0, 0, 1))
}

// Selector draws the featured agent
type Selector struct {
	minScore     int
	excludeWeeks int
	rng          *rand.Rand
	now          func() time.Time
	log          logging.Logger
}

// Option configures a Selector
type Option func(*Selector)

// WithMinScore sets the minimum composite score
func WithMinScore(score int) Option {
	return func(s *Selector) { s.minScore = score }
}

// WithExcludeRecentWeeks sets how many archived weeks block a repeat pick
func WithExcludeRecentWeeks(weeks int) Option {
	return func(s *Selector) { s.excludeWeeks = weeks }
}

// WithRand sets the random source
func WithRand(rng *rand.Rand) Option {
	return func(s *Selector) { s.rng = rng }
}

// WithClock sets the time source
func WithClock(now func() time.Time) Option {
	return func(s *Selector) { s.now = now }
}

// NewSelector creates a Selector. Defaults: min score 20, four excluded weeks.
func NewSelector(opts ...Option) *Selector {
	s := &Selector{
		minScore:     20,
		excludeWeeks: 4,
		now:          time.Now,
		log:          logging.Named("featured"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		now := s.now()
		s.rng = rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Unix())))
	}
	return s
}

// Criteria returns the rules this selector applies
func (s *Selector) Criteria() Criteria {
	return Criteria{MinScore: s.minScore, ExcludeRecentWeeks: s.excludeWeeks}
}

// Eligible filters candidates: not recently featured, autonomous when typed, composite at least the minimum.
func (s *Selector) Eligible(candidates []Candidate, h *History) []Candidate {
	recent := h.recentHandles(s.excludeWeeks)
	var out []Candidate
	for _, c := range candidates {
		switch {
		case recent[strings.ToLower(c.Handle)]:
			continue
		case c.Type != "" && c.Type != AgentTypeAutonomous:
			continue
		case c.CompositeScore < s.minScore:
			continue
		}
		out = append(out, c)
	}
	return out
}

// Pick draws one eligible candidate, weighted by Weight.
// When every weight is zero the draw is uniform.
func (s *Selector) Pick(candidates []Candidate, h *History) (Candidate, error) {
	eligible := s.Eligible(candidates, h)
	if len(eligible) == 0 {
		return Candidate{}, ErrNoEligible
	}

	var total float64
	for _, c := range eligible {
		total += c.Weight()
	}
	if total <= 0 {
		return eligible[s.rng.IntN(len(eligible))], nil
	}

	r := s.rng.Float64() * total
	var cumulative float64
	for _, c := range eligible {
		cumulative += c.Weight()
		if r < cumulative {
			return c, nil
		}
	}
	return eligible[len(eligible)-1], nil
}

// Rotate selects a new featured agent when the current week has ended and archives the old one.
// It reports whether h changed.
func (s *Selector) Rotate(candidates []Candidate, h *History) (bool, error) {
	if h == nil {
		return false, errors.New("featured history is nil")
	}
	now := s.now()
	if !NeedsRotation(h, now) {
		s.log.Debug("rotation not needed", logging.String("current", h.Current.Handle))
		return false, nil
	}

	picked, err := s.Pick(candidates, h)
	if err != nil {
		return false, err
	}

	if h.Current != nil {
		h.History = append(h.History, *h.Current)
	}
	monday, sunday := WeekWindow(now)
	h.Current = &Entry{
		ID:             uuid.NewString(),
		Handle:         picked.Handle,
		Name:           picked.Name,
		WeekStart:      monday.Format(DateLayout),
		WeekEnd:        sunday.Format(DateLayout),
		Reason:         picked.Reason(),
		Badge:          Badge,
		CompositeScore: picked.CompositeScore,
		Tier:           picked.Tier.Label,
		SelectedAt:     now.UTC(),
	}
	h.Criteria = s.Criteria()
	h.Updated = now.Format(DateLayout)

	s.log.Info("selected featured agent",
		logging.String("handle", picked.Handle),
		logging.String("week_start", h.Current.WeekStart),
		logging.Float64("weight", picked.Weight()))
	return true, nil
}

// LoadHistory reads the rotation file. A missing file yields an empty history.
func LoadHistory(path string) (*History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &History{}, nil
		}
		return nil, fmt.Errorf("failed to read featured history: %w", err)
	}
	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to parse featured history %s: %w", path, err)
	}
	return &h, nil
}

// SaveHistory writes the rotation file
func SaveHistory(path string, h *History) error {
	if h.History == nil {
		h.History = []Entry{}
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal featured history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write featured history: %w", err)
	}
	return nil
}
