package scoring

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

// Profile is an agent's platform data as loaded from a profile document
type Profile struct {
	Handle    string
	Name      string
	Platforms map[string]PlatformData
	Metadata  map[string]any
}

// Calculator runs the full pipeline: category scores, decay, weighted composite, boost, tier.
// A Calculator holds no per-call state and is safe for concurrent use.
type Calculator struct {
	scorers map[Category]Scorer
	weights map[Category]float64
	decay   *DecayCalculator
	boost   *SkillsBoost
	now     func() time.Time
}

type calculatorSettings struct {
	scorers      []Scorer
	weights      map[Category]float64
	decayEnabled bool
	decay        *DecayCalculator
	decayConfigs map[Category]DecayConfig
	boostEnabled bool
	boost        *SkillsBoost
	now          func() time.Time
}

// Option configures a Calculator
type Option func(*calculatorSettings)

// WithCompositeWeights overrides the per-category composite weights.
// Categories absent from the map weigh 1.0.
func WithCompositeWeights(weights map[Category]float64) Option {
	return func(s *calculatorSettings) { s.weights = weights }
}

// WithDecay enables decay using d. A nil d builds one from the configured decay settings and clock.
func WithDecay(d *DecayCalculator) Option {
	return func(s *calculatorSettings) {
		s.decayEnabled = true
		s.decay = d
	}
}

// WithoutDecay disables time decay.
func WithoutDecay() Option {
	return func(s *calculatorSettings) {
		s.decayEnabled = false
		s.decay = nil
	}
}

// WithDecayConfigs replaces the per-category decay settings.
func WithDecayConfigs(configs map[Category]DecayConfig) Option {
	return func(s *calculatorSettings) { s.decayConfigs = configs }
}

// WithSkillsBoost enables the skills boost using b. A nil b uses NewSkillsBoost.
func WithSkillsBoost(b *SkillsBoost) Option {
	return func(s *calculatorSettings) {
		s.boostEnabled = true
		s.boost = b
	}
}

// WithoutSkillsBoost disables the skills boost.
func WithoutSkillsBoost() Option {
	return func(s *calculatorSettings) {
		s.boostEnabled = false
		s.boost = nil
	}
}

// WithClock sets the time source for decay and CalculatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *calculatorSettings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithScorers replaces the default scorer for each given scorer's category.
func WithScorers(scorers ...Scorer) Option {
	return func(s *calculatorSettings) { s.scorers = append(s.scorers, scorers...) }
}

// DefaultScorers returns one scorer per category with the default weight tables.
func DefaultScorers() map[Category]Scorer {
	return map[Category]Scorer{
		CategoryCode:      NewCodeScorer(nil),
		CategoryContent:   NewContentScorer(nil),
		CategoryIdentity:  NewIdentityScorer(nil),
		CategorySocial:    NewSocialScorer(nil),
		CategoryEconomic:  NewEconomicScorer(nil),
		CategoryCommunity: NewCommunityScorer(nil),
	}
}

// NewCalculator creates a Calculator. Decay and the skills boost are on by default.
func NewCalculator(opts ...Option) *Calculator {
	settings := calculatorSettings{
		weights:      CompositeWeights,
		decayEnabled: true,
		boostEnabled: true,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(&settings)
	}

	c := &Calculator{
		scorers: DefaultScorers(),
		weights: settings.weights,
		now:     settings.now,
	}
	if c.weights == nil {
		c.weights = CompositeWeights
	}
	for _, scorer := range settings.scorers {
		if scorer != nil {
			c.scorers[scorer.Category()] = scorer
		}
	}

	if settings.decayEnabled {
		c.decay = settings.decay
		if c.decay == nil {
			c.decay = NewDecayCalculator(settings.decayConfigs, WithDecayClock(settings.now))
		}
	}
	if settings.boostEnabled {
		c.boost = settings.boost
		if c.boost == nil {
			c.boost = NewSkillsBoost()
		}
	}
	return c
}

// DecayEnabled reports whether the calculator applies time decay.
func (c *Calculator) DecayEnabled() bool { return c.decay != nil }

// BoostEnabled reports whether the calculator applies the skills boost.
func (c *Calculator) BoostEnabled() bool { return c.boost != nil }

// PlatformsByCategory picks the platform block feeding each category.
// The first platform listed in CategoryPlatforms wins; missing categories get an unavailable block.
func PlatformsByCategory(platforms map[string]PlatformData) map[Category]PlatformData {
	out := make(map[Category]PlatformData, len(CategoryPlatforms))
	for _, category := range AllCategories() {
		data := PlatformData{Status: StatusUnavailable, Data: map[string]any{}}
		for _, name := range CategoryPlatforms[category] {
			if p, ok := platforms[name]; ok {
				data = p
				if data.Platform == "" {
					data.Platform = name
				}
				break
			}
		}
		out[category] = data
	}
	return out
}

// ScoreCategory runs the scorer for one category.
func (c *Calculator) ScoreCategory(category Category, data PlatformData) CategoryScore {
	scorer, ok := c.scorers[category]
	if !ok {
		return FlatCategoryScore(category, 0, fmt.Sprintf("No calculator for %s", category))
	}
	return scorer.Score(data)
}

// Composite returns the weighted average of category scores rounded half away from zero,
// plus a breakdown for metadata.
func (c *Calculator) Composite(scores map[Category]CategoryScore) (int, map[string]any) {
	var totalWeighted, totalWeight float64
	breakdown := make(map[string]any, len(scores)+3)

	for _, category := range AllCategories() {
		score, ok := scores[category]
		if !ok {
			continue
		}
		weight, ok := c.weights[category]
		if !ok {
			weight = 1.0
		}
		weighted := float64(score.Score) * weight
		totalWeighted += weighted
		totalWeight += weight
		breakdown[string(category)] = map[string]any{
			"score":    score.Score,
			"weight":   weight,
			"weighted": weighted,
		}
	}

	var composite int
	var average float64
	if totalWeight > 0 {
		average = totalWeighted / totalWeight
		composite = int(math.Round(average))
	}
	breakdown["total_weighted"] = totalWeighted
	breakdown["total_weight"] = totalWeight
	breakdown["raw_average"] = average

	return composite, breakdown
}

// Calculate scores an agent from its platform data. Neither platforms nor meta is modified.
func (c *Calculator) Calculate(handle, name string, platforms map[string]PlatformData, meta map[string]any) ScoreResult {
	byCategory := PlatformsByCategory(platforms)

	scores := make(map[Category]CategoryScore, len(byCategory))
	decayDetails := make(map[string]any)
	var sources []string

	for _, category := range AllCategories() {
		data := byCategory[category]
		score := c.ScoreCategory(category, data)

		if c.decay != nil {
			result := c.decay.Apply(score.Score, category, ActivityTimestamp(data, category))
			score = decayed(score, result)
			decayDetails[string(category)] = map[string]any{
				"raw_score":           result.RawScore,
				"decayed_score":       result.AdjustedScore,
				"decay_percent":       result.DecayPercent,
				"days_since_activity": result.DaysSinceActivity,
				"multiplier":          result.Multiplier,
			}
		}

		scores[category] = score
		if data.Platform != "" {
			sources = append(sources, score.DataSources...)
		}
	}

	composite, compositeBreakdown := c.Composite(scores)

	metadata := make(map[string]any, len(meta)+4)
	for k, v := range meta {
		metadata[k] = v
	}
	metadata["composite_breakdown"] = compositeBreakdown
	if c.decay != nil {
		metadata["decay_applied"] = true
		metadata["decay_details"] = decayDetails
	}

	final := composite
	if c.boost != nil {
		var signal *ActivitySignal
		if activity, ok := platforms[ActivityPlatform]; ok {
			signal = ActivitySignalFromPlatform(activity)
		}
		var boost BoostResult
		final, boost = c.boost.Apply(composite, scores, signal)
		metadata["skills_boost"] = boost
	}

	if name == "" {
		name = handle
	}

	return ScoreResult{
		Handle:         handle,
		Name:           name,
		CompositeScore: final,
		Tier:           TierFromScore(final),
		CategoryScores: scores,
		CalculatedAt:   c.now().UTC(),
		DataSources:    dedupSorted(sources),
		Metadata:       metadata,
	}
}

// CalculateProfile scores a loaded profile document.
func (c *Calculator) CalculateProfile(p Profile) ScoreResult {
	handle := p.Handle
	if handle == "" {
		handle = "unknown"
	}
	return c.Calculate(handle, p.Name, p.Platforms, p.Metadata)
}

// DecaySummary reports how much decay costs the profile across all categories.
// The second value is false when decay is disabled.
func (c *Calculator) DecaySummary(p Profile) (DecaySummary, bool) {
	if c.decay == nil {
		return DecaySummary{}, false
	}
	byCategory := PlatformsByCategory(p.Platforms)
	raw := make(map[Category]CategoryScore, len(byCategory))
	for _, category := range AllCategories() {
		raw[category] = c.ScoreCategory(category, byCategory[category])
	}
	return c.decay.Summary(raw, byCategory), true
}

// decayed returns a copy of score carrying the decayed value and a decay note.
// RawScore follows the decayed value; the value before decay stays in decay_details.
func decayed(score CategoryScore, result DecayResult) CategoryScore {
	note := fmt.Sprintf("Decay: %s%% over %d days", strconv.FormatFloat(result.DecayPercent, 'f', -1, 64), result.DaysSinceActivity)
	if score.Notes != "" {
		note = score.Notes + " | " + note
	}
	score.Score = result.AdjustedScore
	score.RawScore = float64(result.AdjustedScore)
	score.Notes = note
	return score
}

func dedupSorted(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok || item == "" {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
