package scoring

// SocialScorer scores X/Twitter presence
type SocialScorer struct {
	weights WeightTable
}

// NewSocialScorer creates a SocialScorer. A nil table uses SocialWeights.
func NewSocialScorer(weights WeightTable) *SocialScorer {
	return &SocialScorer{weights: tableOrDefault(weights, SocialWeights)}
}

func (s *SocialScorer) Category() Category { return CategorySocial }

// Score evaluates X profile data. Only an unavailable platform is gated;
// partial fetches still score what they carry.
func (s *SocialScorer) Score(data PlatformData) CategoryScore {
	if data.Status == StatusUnavailable {
		return FlatCategoryScore(CategorySocial, 0, "Platform unavailable")
	}

	specs := []FieldSpec{
		{Name: "followers", Fields: []string{"followers"}},
		{Name: "verified", Fields: []string{"verified", "following_verified"}, Binary: true},
		{Name: "tweet_frequency", Fields: []string{"tweet_count"}},
		{Name: "engagement_rate", Fields: []string{"engagement_rate"}},
		{Name: "account_age", Fields: []string{"account_age_months"}},
	}
	total, breakdown := ScoreFields(s.weights, data.Data, specs)

	return NewCategoryScore(CategorySocial, total, breakdown, []string{data.platformOr("x")}, "")
}
