package scoring

// CommunityScorer scores ClawHub and OpenClaw contributions
type CommunityScorer struct {
	weights WeightTable
}

// NewCommunityScorer creates a CommunityScorer. A nil table uses CommunityWeights.
func NewCommunityScorer(weights WeightTable) *CommunityScorer {
	return &CommunityScorer{weights: tableOrDefault(weights, CommunityWeights)}
}

func (s *CommunityScorer) Category() Category { return CategoryCommunity }

// Score evaluates community data. There is no status gate: missing fields
// simply score zero.
func (s *CommunityScorer) Score(data PlatformData) CategoryScore {
	specs := []FieldSpec{
		{Name: "skills_submitted", Fields: []string{"skills_submitted"}},
		{Name: "prs_merged", Fields: []string{"prs_merged"}},
		{Name: "discord_engagement", Fields: []string{"discord_level"}},
		{Name: "documentation_contrib", Fields: []string{"documentation_contrib"}, Binary: true},
	}
	total, breakdown := ScoreFields(s.weights, data.Data, specs)

	var notes string
	if total <= 0 {
		notes = "No community data available"
	}
	return NewCategoryScore(CategoryCommunity, total, breakdown, []string{data.platformOr("clawhub")}, notes)
}
