package scoring

import (
	"strings"
	"time"
)

// MaxCategoryScore is the hard cap for every category score
const MaxCategoryScore = 100

// Category is one of the six reputation dimensions
type Category string

const (
	CategoryCode      Category = "code"      // GitHub activity
	CategoryContent   Category = "content"   // dev.to, blog posts
	CategoryIdentity  Category = "identity"  // A2A protocol compliance
	CategorySocial    Category = "social"    // X/Twitter presence
	CategoryEconomic  Category = "economic"  // toku.agency earnings
	CategoryCommunity Category = "community" // ClawHub contributions
)

// AllCategories returns every category in canonical order.
func AllCategories() []Category {
	return []Category{
		CategoryCode,
		CategoryContent,
		CategoryIdentity,
		CategorySocial,
		CategoryEconomic,
		CategoryCommunity,
	}
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(name string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllCategories() {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Tier is a named reputation band
type Tier struct {
	MinScore    int
	Label       string
	Description string
}

var (
	TierPioneer    = Tier{90, "Pioneer", "Top 10% of agents"}
	TierAutonomous = Tier{75, "Autonomous", "Self-sufficient agents"}
	TierRecognized = Tier{56, "Recognized", "Established presence"}
	TierActive     = Tier{36, "Active", "Regular activity"}
	TierBecoming   = Tier{16, "Becoming", "Getting started"}
	TierAwakening  = Tier{1, "Awakening", "Signal detected"}
	TierSignalZero = Tier{0, "Signal Zero", "No activity"}
)

// Tiers returns all tiers ordered from highest to lowest threshold.
func Tiers() []Tier {
	return []Tier{
		TierPioneer,
		TierAutonomous,
		TierRecognized,
		TierActive,
		TierBecoming,
		TierAwakening,
		TierSignalZero,
	}
}

// TierFromScore returns the reputation tier for a composite score.
// Thresholds are scanned high to low and the first match wins.
func TierFromScore(score int) Tier {
	for _, tier := range Tiers() {
		if tier.MinScore > 0 && score >= tier.MinScore {
			return tier
		}
	}
	return TierSignalZero
}

// ParseTier looks a tier up by its label.
func ParseTier(label string) (Tier, bool) {
	for _, tier := range Tiers() {
		if strings.EqualFold(tier.Label, strings.TrimSpace(label)) {
			return tier, true
		}
	}
	return TierSignalZero, false
}

func (t Tier) String() string {
	return t.Label
}

// Platform fetch statuses
const (
	StatusOK          = "ok"
	StatusError       = "error"
	StatusUnavailable = "unavailable"
	StatusSSLError    = "ssl_error"
	StatusNotFound    = "not_found"
	StatusUnknown     = "unknown"
)

// NormalizeStatus maps a raw status string to one of the known statuses.
func NormalizeStatus(status string) string {
	switch s := strings.ToLower(strings.TrimSpace(status)); s {
	case StatusOK, StatusError, StatusUnavailable, StatusSSLError, StatusNotFound:
		return s
	default:
		return StatusUnknown
	}
}

// PlatformData is one platform's fetch result. Calculators treat it as read-only.
type PlatformData struct {
	Platform  string
	Status    string
	Data      map[string]any
	FetchedAt time.Time
	Error     string
}

// NewPlatformData creates PlatformData with a normalized status
func NewPlatformData(platform, status string, data map[string]any) PlatformData {
	if data == nil {
		data = map[string]any{}
	}
	return PlatformData{
		Platform: platform,
		Status:   NormalizeStatus(status),
		Data:     data,
	}
}

// IsAvailable reports whether numeric fields in Data can be trusted.
func (p PlatformData) IsAvailable() bool {
	return p.Status == StatusOK && p.Error == ""
}

// Get returns a raw field value, or def when absent.
func (p PlatformData) Get(key string, def any) any {
	if v, ok := p.Data[key]; ok && v != nil {
		return v
	}
	return def
}

func (p PlatformData) platformOr(def string) string {
	if p.Platform != "" {
		return p.Platform
	}
	return def
}

// CategoryScore is the output of one category calculator
type CategoryScore struct {
	Category    Category           `json:"category"`
	Score       int                `json:"score"`
	RawScore    float64            `json:"-"`
	MaxScore    int                `json:"max_score"`
	Breakdown   map[string]float64 `json:"breakdown"`
	DataSources []string           `json:"data_sources"`
	Notes       string             `json:"notes,omitempty"`
}

// NewCategoryScore builds a CategoryScore whose Score is min(int(raw), 100), never negative.
func NewCategoryScore(category Category, raw float64, breakdown map[string]float64, sources []string, notes string) CategoryScore {
	if breakdown == nil {
		breakdown = map[string]float64{}
	}
	if sources == nil {
		sources = []string{}
	}
	return CategoryScore{
		Category:    category,
		Score:       capScore(raw),
		RawScore:    raw,
		MaxScore:    MaxCategoryScore,
		Breakdown:   breakdown,
		DataSources: sources,
		Notes:       notes,
	}
}

// FlatCategoryScore builds a score with no breakdown, used for status gates.
func FlatCategoryScore(category Category, score int, notes string) CategoryScore {
	return NewCategoryScore(category, float64(score), nil, nil, notes)
}

// Percentage returns the score as a percentage of MaxScore.
func (c CategoryScore) Percentage() float64 {
	if c.MaxScore == 0 {
		return 0
	}
	return float64(c.Score) / float64(c.MaxScore) * 100
}

// ScoreResult is the complete scoring result for one agent
type ScoreResult struct {
	Handle         string
	Name           string
	CompositeScore int
	Tier           Tier
	CategoryScores map[Category]CategoryScore
	CalculatedAt   time.Time
	DataSources    []string
	Metadata       map[string]any
}

// CategoryScore returns the score for one category, or 0 when absent.
func (r ScoreResult) CategoryScore(category Category) int {
	if cs, ok := r.CategoryScores[category]; ok {
		return cs.Score
	}
	return 0
}

// Scorer is the interface for category calculators
type Scorer interface {
	Category() Category
	Score(data PlatformData) CategoryScore
}

func capScore(raw float64) int {
	if raw <= 0 {
		return 0
	}
	score := int(raw)
	if score > MaxCategoryScore {
		return MaxCategoryScore
	}
	return score
}
