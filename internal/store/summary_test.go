package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/agentfolio/internal/scoring"
)

func TestSummarize(t *testing.T) {
	results := []scoring.ScoreResult{
		result("a", 92),
		result("b", 60),
		result("c", 58),
		result("d", 10),
	}

	s := Summarize(results, 2)

	assert.Equal(t, 4, s.TotalAgents)
	assert.Equal(t, 55.0, s.AverageComposite)
	assert.Equal(t, 55.0, s.CategoryAverages[scoring.CategoryCode])
	assert.Equal(t, 0.0, s.CategoryAverages[scoring.CategoryIdentity])

	require.Len(t, s.Tiers, len(scoring.Tiers()))
	byTier := map[string]TierCount{}
	for _, tc := range s.Tiers {
		byTier[tc.Tier] = tc
	}
	assert.Equal(t, 1, byTier["Pioneer"].Count)
	assert.Equal(t, 25.0, byTier["Pioneer"].Percent)
	assert.Equal(t, 2, byTier["Recognized"].Count)
	assert.Equal(t, 50.0, byTier["Recognized"].Percent)
	assert.Equal(t, 0, byTier["Active"].Count)
	assert.Equal(t, 1, byTier["Awakening"].Count)
	assert.Equal(t, "Pioneer", s.Tiers[0].Tier)

	require.Len(t, s.Top, 2)
	assert.Equal(t, "a", s.Top[0].Handle)
	assert.Equal(t, "b", s.Top[1].Handle)
	require.Len(t, s.Lowest, 2)
	assert.Equal(t, "d", s.Lowest[0].Handle)
	assert.Equal(t, "c", s.Lowest[1].Handle)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, 5)
	assert.Zero(t, s.TotalAgents)
	assert.Zero(t, s.AverageComposite)
	assert.Empty(t, s.Top)
	assert.Empty(t, s.Lowest)
	for _, tc := range s.Tiers {
		assert.Zero(t, tc.Count)
		assert.Zero(t, tc.Percent)
	}
}

func TestSummarize_NLargerThanResults(t *testing.T) {
	s := Summarize([]scoring.ScoreResult{result("solo", 40)}, 10)
	require.Len(t, s.Top, 1)
	require.Len(t, s.Lowest, 1)
	assert.Equal(t, "solo", s.Lowest[0].Handle)
}
