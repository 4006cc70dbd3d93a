package scoring

import (
	"math"
	"strings"
	"time"
)

// DecayConfig controls how fast a category score fades without fresh activity
type DecayConfig struct {
	DailyDecayRate  float64 `json:"daily_decay_rate"`  // Percent per day, linear mode
	MaxDecayPercent float64 `json:"max_decay_percent"` // Floor is 1 - MaxDecayPercent/100
	GracePeriodDays int     `json:"grace_period_days"` // No decay up to and including this day
	HalfLifeDays    float64 `json:"half_life_days"`    // 0 selects linear mode
}

// Factor returns the multiplier for a given activity age, within [1-max/100, 1].
func (c DecayConfig) Factor(daysSinceActivity int) float64 {
	if daysSinceActivity <= c.GracePeriodDays {
		return 1.0
	}
	effective := float64(daysSinceActivity - c.GracePeriodDays)

	var multiplier float64
	if c.HalfLifeDays > 0 {
		multiplier = math.Pow(0.5, effective/c.HalfLifeDays)
	} else {
		decayPercent := math.Min(effective*c.DailyDecayRate, c.MaxDecayPercent)
		multiplier = 1.0 - decayPercent/100.0
	}

	return math.Max(multiplier, 1.0-c.MaxDecayPercent/100.0)
}

// DefaultDecayConfigs returns the per-category decay settings.
func DefaultDecayConfigs() map[Category]DecayConfig {
	return map[Category]DecayConfig{
		CategoryCode:      {DailyDecayRate: 0.5, MaxDecayPercent: 40, GracePeriodDays: 14, HalfLifeDays: 120},
		CategoryContent:   {DailyDecayRate: 1.0, MaxDecayPercent: 50, GracePeriodDays: 7, HalfLifeDays: 60},
		CategoryIdentity:  {DailyDecayRate: 0.1, MaxDecayPercent: 20, GracePeriodDays: 30, HalfLifeDays: 365},
		CategorySocial:    {DailyDecayRate: 2.0, MaxDecayPercent: 60, GracePeriodDays: 3, HalfLifeDays: 30},
		CategoryEconomic:  {DailyDecayRate: 0.3, MaxDecayPercent: 30, GracePeriodDays: 14, HalfLifeDays: 180},
		CategoryCommunity: {DailyDecayRate: 1.5, MaxDecayPercent: 50, GracePeriodDays: 7, HalfLifeDays: 90},
	}
}

// DecayResult describes one decay application
type DecayResult struct {
	AdjustedScore     int      `json:"adjusted_score"`
	RawScore          int      `json:"raw_score"`
	DecayPercent      float64  `json:"decay_percent"`
	DaysSinceActivity int      `json:"days_since_activity"`
	Multiplier        float64  `json:"multiplier"`
	Category          Category `json:"category"`
	GracePeriodDays   int      `json:"grace_period_days"`
	MaxDecayPercent   float64  `json:"max_decay_percent"`
}

// DecaySummary aggregates decay over every scored category
type DecaySummary struct {
	Categories          map[Category]DecayResult `json:"categories"`
	TotalRawScore       int                      `json:"total_raw_score"`
	TotalAdjustedScore  int                      `json:"total_adjusted_score"`
	OverallDecayPercent float64                  `json:"overall_decay_percent"`
	CalculatedAt        time.Time                `json:"calculated_at"`
}

// DecayCalculator applies time decay to category scores
type DecayCalculator struct {
	configs map[Category]DecayConfig
	now     func() time.Time
}

// DecayOption configures a DecayCalculator
type DecayOption func(*DecayCalculator)

// WithDecayClock overrides the time source.
func WithDecayClock(now func() time.Time) DecayOption {
	return func(d *DecayCalculator) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDecayCalculator creates a calculator. A nil configs map uses DefaultDecayConfigs.
func NewDecayCalculator(configs map[Category]DecayConfig, opts ...DecayOption) *DecayCalculator {
	if configs == nil {
		configs = DefaultDecayConfigs()
	}
	d := &DecayCalculator{configs: configs, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Config returns the decay settings for a category, falling back to identity's.
func (d *DecayCalculator) Config(category Category) DecayConfig {
	if cfg, ok := d.configs[category]; ok {
		return cfg
	}
	if cfg, ok := d.configs[CategoryIdentity]; ok {
		return cfg
	}
	return DefaultDecayConfigs()[CategoryIdentity]
}

// DaysSince returns whole days between t and now, never negative.
func (d *DecayCalculator) DaysSince(t time.Time) int {
	delta := d.now().Sub(t)
	if delta <= 0 {
		return 0
	}
	return int(delta.Hours() / 24)
}

// Apply decays rawScore. A nil lastActivity is treated as DefaultDaysSinceActivity old.
func (d *DecayCalculator) Apply(rawScore int, category Category, lastActivity *time.Time) DecayResult {
	cfg := d.Config(category)

	days := DefaultDaysSinceActivity
	if lastActivity != nil && !lastActivity.IsZero() {
		days = d.DaysSince(*lastActivity)
	}

	multiplier := cfg.Factor(days)

	return DecayResult{
		AdjustedScore:     int(float64(rawScore) * multiplier),
		RawScore:          rawScore,
		DecayPercent:      roundTo((1.0-multiplier)*100, 2),
		DaysSinceActivity: days,
		Multiplier:        roundTo(multiplier, 4),
		Category:          category,
		GracePeriodDays:   cfg.GracePeriodDays,
		MaxDecayPercent:   cfg.MaxDecayPercent,
	}
}

// Summary decays every category score using the matching platform's activity timestamp.
func (d *DecayCalculator) Summary(scores map[Category]CategoryScore, platforms map[Category]PlatformData) DecaySummary {
	summary := DecaySummary{
		Categories:   make(map[Category]DecayResult, len(scores)),
		CalculatedAt: d.now(),
	}

	for category, score := range scores {
		activity := ActivityTimestamp(platforms[category], category)
		result := d.Apply(score.Score, category, activity)
		summary.Categories[category] = result
		summary.TotalRawScore += score.Score
		summary.TotalAdjustedScore += result.AdjustedScore
	}

	if summary.TotalRawScore > 0 {
		ratio := float64(summary.TotalAdjustedScore) / float64(summary.TotalRawScore)
		summary.OverallDecayPercent = roundTo((1.0-ratio)*100, 2)
	}
	return summary
}

// ActivityTimestamp finds the latest activity time in platform data.
// Category-specific fields are tried first, then the fetch time. Returns nil when nothing is known.
func ActivityTimestamp(data PlatformData, category Category) *time.Time {
	fields := data.Data
	var found *time.Time

	switch category {
	case CategoryCode:
		found = latestIn(listField(fields, "repos"), "pushed_at", "updated_at")
		if found == nil {
			found = timeField(fields, "updated_at")
		}
	case CategoryContent:
		found = latestIn(listField(fields, "articles"), "published_at", "edited_at")
		if found == nil {
			found = timeField(fields, "last_article_at")
		}
	case CategorySocial:
		found = timeField(fields, "last_tweet_at", "created_at")
	case CategoryEconomic:
		found = timeField(fields, "last_job_completed_at", "updated_at")
	case CategoryCommunity:
		found = latestIn(listField(fields, "posts"), "created_at")
		if found == nil {
			found = timeField(fields, "last_post_at")
		}
	case CategoryIdentity:
		found = timeField(fields, "card_updated_at")
		if found == nil {
			if card := extractCard(fields); card != nil {
				found = timeField(card, "lastUpdated")
			}
		}
	}

	if found == nil && !data.FetchedAt.IsZero() {
		fetched := data.FetchedAt
		found = &fetched
	}
	return found
}

// timestampLayouts are tried in order when parsing activity timestamps
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts RFC3339 with or without a zone, or a bare date.
// Zone-less values are read as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// timeField returns the first parseable timestamp under keys.
func timeField(data map[string]any, keys ...string) *time.Time {
	for _, key := range keys {
		switch v := data[key].(type) {
		case time.Time:
			if !v.IsZero() {
				return &v
			}
		case string:
			if t, ok := ParseTimestamp(v); ok {
				return &t
			}
		}
	}
	return nil
}

// latestIn returns the newest timestamp across a list of objects,
// reading the first parseable key of each entry.
func latestIn(items []any, keys ...string) *time.Time {
	var latest *time.Time
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if t := timeField(obj, keys...); t != nil && (latest == nil || t.After(*latest)) {
			latest = t
		}
	}
	return latest
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
