package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreResult_JSONRoundTrip(t *testing.T) {
	original := NewCalculator(WithClock(fixedClock)).Calculate("helper", "Helper", samplePlatforms(), nil)

	b, err := json.Marshal(original)
	require.NoError(t, err)

	var restored ScoreResult
	require.NoError(t, json.Unmarshal(b, &restored))

	assert.Equal(t, original.Handle, restored.Handle)
	assert.Equal(t, original.Name, restored.Name)
	assert.Equal(t, original.CompositeScore, restored.CompositeScore)
	assert.Equal(t, original.Tier, restored.Tier)
	assert.True(t, original.CalculatedAt.Equal(restored.CalculatedAt))
	assert.Equal(t, original.DataSources, restored.DataSources)
	require.Len(t, restored.CategoryScores, len(original.CategoryScores))
	for category, cs := range original.CategoryScores {
		got := restored.CategoryScores[category]
		assert.Equal(t, cs.Score, got.Score, category)
		assert.Equal(t, cs.MaxScore, got.MaxScore, category)
		assert.Equal(t, cs.Breakdown, got.Breakdown, category)
		assert.Equal(t, cs.Notes, got.Notes, category)
	}
	assert.Contains(t, restored.Metadata, "skills_boost")
}

func TestScoreResult_MarshalJSONShape(t *testing.T) {
	result := ScoreResult{
		Handle:         "helper",
		Name:           "Helper",
		CompositeScore: 90,
		Tier:           TierPioneer,
		CategoryScores: map[Category]CategoryScore{
			CategoryCode: NewCategoryScore(CategoryCode, 45, map[string]float64{"public_repos": 25}, []string{"github"}, ""),
		},
		CalculatedAt: fixedNow,
	}

	b, err := json.Marshal(result)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))

	assert.Equal(t, "Pioneer", doc["tier"])
	assert.Equal(t, "Top 10% of agents", doc["tier_description"])
	assert.Equal(t, "2026-10-01T12:00:00Z", doc["calculated_at"])
	assert.Equal(t, []any{}, doc["data_sources"])
	assert.Equal(t, map[string]any{}, doc["metadata"])

	code := doc["category_scores"].(map[string]any)["code"].(map[string]any)
	assert.Equal(t, 45.0, code["score"])
	assert.Equal(t, 100.0, code["max_score"])
	assert.Equal(t, 45.0, code["percentage"])
	assert.NotContains(t, code, "notes")
}

func TestScoreResult_UnmarshalJSON(t *testing.T) {
	t.Run("unknown tier label falls back to score", func(t *testing.T) {
		var r ScoreResult
		require.NoError(t, json.Unmarshal([]byte(`{"handle":"a","composite_score":60,"tier":"Legend"}`), &r))
		assert.Equal(t, TierRecognized, r.Tier)
	})

	t.Run("unknown categories are skipped", func(t *testing.T) {
		var r ScoreResult
		require.NoError(t, json.Unmarshal([]byte(`{"handle":"a","category_scores":{"karma":{"score":3},"code":{"score":40}}}`), &r))
		assert.Len(t, r.CategoryScores, 1)
		assert.Equal(t, 40, r.CategoryScore(CategoryCode))
		assert.Equal(t, MaxCategoryScore, r.CategoryScores[CategoryCode].MaxScore)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		var r ScoreResult
		assert.Error(t, json.Unmarshal([]byte(`{"handle":"a","calculated_at":"last week"}`), &r))
	})

	t.Run("malformed json", func(t *testing.T) {
		var r ScoreResult
		assert.Error(t, json.Unmarshal([]byte(`{"handle":`), &r))
	})
}
