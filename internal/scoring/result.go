package scoring

import (
	"encoding/json"
	"fmt"
	"time"
)

type categoryScoreDoc struct {
	Category    Category           `json:"category"`
	Score       int                `json:"score"`
	MaxScore    int                `json:"max_score"`
	Percentage  float64            `json:"percentage"`
	Breakdown   map[string]float64 `json:"breakdown"`
	DataSources []string           `json:"data_sources"`
	Notes       string             `json:"notes,omitempty"`
}

type scoreResultDoc struct {
	Handle          string                      `json:"handle"`
	Name            string                      `json:"name"`
	CompositeScore  int                         `json:"composite_score"`
	Tier            string                      `json:"tier"`
	TierDescription string                      `json:"tier_description"`
	CalculatedAt    string                      `json:"calculated_at"`
	CategoryScores  map[string]categoryScoreDoc `json:"category_scores"`
	DataSources     []string                    `json:"data_sources"`
	Metadata        map[string]any              `json:"metadata"`
}

// MarshalJSON writes the persisted score document.
func (r ScoreResult) MarshalJSON() ([]byte, error) {
	doc := scoreResultDoc{
		Handle:          r.Handle,
		Name:            r.Name,
		CompositeScore:  r.CompositeScore,
		Tier:            r.Tier.Label,
		TierDescription: r.Tier.Description,
		CategoryScores:  make(map[string]categoryScoreDoc, len(r.CategoryScores)),
		DataSources:     r.DataSources,
		Metadata:        r.Metadata,
	}
	if !r.CalculatedAt.IsZero() {
		doc.CalculatedAt = r.CalculatedAt.Format(time.RFC3339)
	}
	if doc.DataSources == nil {
		doc.DataSources = []string{}
	}
	if doc.Metadata == nil {
		doc.Metadata = map[string]any{}
	}
	for category, cs := range r.CategoryScores {
		doc.CategoryScores[string(category)] = categoryScoreDoc{
			Category:    cs.Category,
			Score:       cs.Score,
			MaxScore:    cs.MaxScore,
			Percentage:  roundTo(cs.Percentage(), 1),
			Breakdown:   cs.Breakdown,
			DataSources: cs.DataSources,
			Notes:       cs.Notes,
		}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON restores a result from its persisted document.
func (r *ScoreResult) UnmarshalJSON(b []byte) error {
	var doc scoreResultDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}

	tier, ok := ParseTier(doc.Tier)
	if !ok {
		tier = TierFromScore(doc.CompositeScore)
	}

	var calculatedAt time.Time
	if doc.CalculatedAt != "" {
		t, ok := ParseTimestamp(doc.CalculatedAt)
		if !ok {
			return fmt.Errorf("invalid calculated_at %q", doc.CalculatedAt)
		}
		calculatedAt = t
	}

	scores := make(map[Category]CategoryScore, len(doc.CategoryScores))
	for key, cs := range doc.CategoryScores {
		category, ok := ParseCategory(key)
		if !ok {
			continue
		}
		maxScore := cs.MaxScore
		if maxScore == 0 {
			maxScore = MaxCategoryScore
		}
		scores[category] = CategoryScore{
			Category:    category,
			Score:       cs.Score,
			RawScore:    float64(cs.Score),
			MaxScore:    maxScore,
			Breakdown:   cs.Breakdown,
			DataSources: cs.DataSources,
			Notes:       cs.Notes,
		}
	}

	*r = ScoreResult{
		Handle:         doc.Handle,
		Name:           doc.Name,
		CompositeScore: doc.CompositeScore,
		Tier:           tier,
		CategoryScores: scores,
		CalculatedAt:   calculatedAt,
		DataSources:    doc.DataSources,
		Metadata:       doc.Metadata,
	}
	return nil
}
