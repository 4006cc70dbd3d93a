package scoring

import (
	"fmt"
	"strings"
)

// CodeScorer scores GitHub activity on a 0-100 scale
type CodeScorer struct {
	weights WeightTable
}

// NewCodeScorer creates a CodeScorer. A nil table uses CodeWeights.
func NewCodeScorer(weights WeightTable) *CodeScorer {
	return &CodeScorer{weights: tableOrDefault(weights, CodeWeights)}
}

func (s *CodeScorer) Category() Category { return CategoryCode }

// Score evaluates GitHub profile data
func (s *CodeScorer) Score(data PlatformData) CategoryScore {
	if data.Status != StatusOK {
		return FlatCategoryScore(CategoryCode, 0, fmt.Sprintf("Platform status: %s", data.Status))
	}

	specs := []FieldSpec{
		{Name: "public_repos", Fields: []string{"public_repos"}},
		{Name: "recent_commits", Fields: []string{"recent_commits"}, Default: DefaultRecentCommits},
		{Name: "stars", Fields: []string{"stars", "total_stars"}},
		{Name: "prs_merged", Fields: []string{"prs_merged"}, Default: DefaultPRsMerged},
	}
	total, breakdown := ScoreFields(s.weights, data.Data, specs)

	bio := BinaryScore(s.weights["bio_signals"], hasAgentKeywords(data.Data))
	breakdown["bio_signals"] = bio
	total += bio

	return NewCategoryScore(CategoryCode, total, breakdown, []string{"github"}, "")
}

// hasAgentKeywords trusts the fetcher's flag, then falls back to scanning the bio.
func hasAgentKeywords(data map[string]any) bool {
	if anyBool(data, "bio_has_agent_keywords") {
		return true
	}
	bio := strings.ToLower(stringField(data, "bio"))
	if bio == "" {
		return false
	}
	for _, kw := range AgentKeywords {
		if strings.Contains(bio, kw) {
			return true
		}
	}
	return false
}
