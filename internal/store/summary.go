package store

import (
	"math"

	"github.com/dotcommander/agentfolio/internal/scoring"
)

// TierCount is the number of agents in one tier
type TierCount struct {
	Tier     string  `json:"tier"`
	MinScore int     `json:"min_score"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// Summary aggregates stored scores
type Summary struct {
	TotalAgents      int                          `json:"total_agents"`
	AverageComposite float64                      `json:"average_composite"`
	Tiers            []TierCount                  `json:"tiers"`
	CategoryAverages map[scoring.Category]float64 `json:"category_averages"`
	Top              []IndexEntry                 `json:"top"`
	Lowest           []IndexEntry                 `json:"lowest"`
}

// Summarize builds the tier distribution and the top and lowest n agents.
// Tiers are listed highest first, including empty ones.
func Summarize(results []scoring.ScoreResult, n int) Summary {
	s := Summary{
		TotalAgents:      len(results),
		CategoryAverages: make(map[scoring.Category]float64),
	}

	counts := make(map[string]int)
	categoryTotals := make(map[scoring.Category]int)
	var compositeTotal int
	for _, r := range results {
		counts[r.Tier.Label]++
		compositeTotal += r.CompositeScore
		for _, category := range scoring.AllCategories() {
			categoryTotals[category] += r.CategoryScore(category)
		}
	}

	for _, tier := range scoring.Tiers() {
		tc := TierCount{Tier: tier.Label, MinScore: tier.MinScore, Count: counts[tier.Label]}
		if s.TotalAgents > 0 {
			tc.Percent = round1(float64(tc.Count) / float64(s.TotalAgents) * 100)
		}
		s.Tiers = append(s.Tiers, tc)
	}

	if s.TotalAgents == 0 {
		return s
	}

	s.AverageComposite = round1(float64(compositeTotal) / float64(s.TotalAgents))
	for _, category := range scoring.AllCategories() {
		s.CategoryAverages[category] = round1(float64(categoryTotals[category]) / float64(s.TotalAgents))
	}

	ranked := rank(results)
	if n > len(ranked) {
		n = len(ranked)
	}
	if n > 0 {
		s.Top = append([]IndexEntry(nil), ranked[:n]...)
		for i := len(ranked) - 1; i >= len(ranked)-n; i-- {
			s.Lowest = append(s.Lowest, ranked[i])
		}
	}
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
