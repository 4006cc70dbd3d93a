package scoring

import "fmt"

// ContentScorer scores dev.to and blog output
type ContentScorer struct {
	weights WeightTable
}

// NewContentScorer creates a ContentScorer. A nil table uses ContentWeights.
func NewContentScorer(weights WeightTable) *ContentScorer {
	return &ContentScorer{weights: tableOrDefault(weights, ContentWeights)}
}

func (s *ContentScorer) Category() Category { return CategoryContent }

// Score evaluates blogging platform data
func (s *ContentScorer) Score(data PlatformData) CategoryScore {
	if data.Status != StatusOK {
		return FlatCategoryScore(CategoryContent, 0, fmt.Sprintf("Platform status: %s", data.Status))
	}

	breakdown := make(map[string]float64, 4)
	var total float64

	articles := numberField(data.Data, 0, "article_count")
	breakdown["published_posts"] = LinearScore(s.weights["published_posts"], articles, 0)

	reactions := numberField(data.Data, 0, "total_reactions")
	breakdown["reactions"] = LinearScore(s.weights["reactions"], reactions, 0)

	// Follower count is rarely exposed; estimate from output when missing
	followers := numberField(data.Data, articles*FollowerEstimatePerPost, "followers")
	breakdown["followers"] = LinearScore(s.weights["followers"], followers/FollowerUnitSize, 0)

	var avgEngagement float64
	if articles > 0 {
		avgEngagement = reactions / articles
	}
	breakdown["engagement_rate"] = LinearScore(s.weights["engagement_rate"], avgEngagement, 0)

	for _, key := range []string{"published_posts", "reactions", "followers", "engagement_rate"} {
		total += breakdown[key]
	}

	return NewCategoryScore(CategoryContent, total, breakdown, []string{data.platformOr("devto")}, "")
}
