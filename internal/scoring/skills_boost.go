package scoring

import "math"

// BoostTier maps a band of combined skill points to a score multiplier
type BoostTier struct {
	MinPoints  int
	MaxPoints  int
	Multiplier float64
}

// BoostTiers are scanned in order; the last tier is open-ended.
var BoostTiers = []BoostTier{
	{0, 0, 1.00},
	{1, 2, 1.03},
	{3, 4, 1.05},
	{5, 7, 1.08},
	{8, 10, 1.10},
	{11, math.MaxInt, 1.12},
}

// Skill point caps
const (
	MaxA2ASkillPoints      = 10
	MaxActivitySkillPoints = 10.0
	PointsPerA2ASkill      = 2
)

// ActivitySignal is an agent's external community activity, supplied as data
type ActivitySignal struct {
	Karma     int  `json:"karma"`
	Followers int  `json:"follower_count"`
	Posts     int  `json:"posts_count"`
	Comments  int  `json:"comments_count"`
	Verified  bool `json:"is_verified"`
}

// activityTier awards Points once a metric reaches Min
type activityTier struct {
	Min    int
	Points float64
}

var (
	karmaTiers    = []activityTier{{501, 1.5}, {101, 1.0}, {1, 0.5}}
	followerTiers = []activityTier{{51, 1.0}, {11, 0.5}, {1, 0.25}}
	postTiers     = []activityTier{{21, 1.0}, {6, 0.5}, {1, 0.25}}
	commentTiers  = []activityTier{{101, 1.0}, {21, 0.5}, {1, 0.25}}
)

// VerifiedActivityBonus is added when the activity account is verified
const VerifiedActivityBonus = 0.5

func tierPoints(value int, tiers []activityTier) float64 {
	for _, t := range tiers {
		if value >= t.Min {
			return t.Points
		}
	}
	return 0
}

// Points returns the activity skill points with a per-metric breakdown.
func (s ActivitySignal) Points() (float64, map[string]float64) {
	breakdown := map[string]float64{
		"karma":     tierPoints(s.Karma, karmaTiers),
		"followers": tierPoints(s.Followers, followerTiers),
		"posts":     tierPoints(s.Posts, postTiers),
		"comments":  tierPoints(s.Comments, commentTiers),
		"verified":  0,
	}
	if s.Verified {
		breakdown["verified"] = VerifiedActivityBonus
	}
	total := breakdown["karma"] + breakdown["followers"] + breakdown["posts"] + breakdown["comments"] + breakdown["verified"]
	return roundTo(total, 2), breakdown
}

// ActivitySignalFromPlatform reads an activity signal from a platform block.
// Returns nil when the block is not usable.
func ActivitySignalFromPlatform(data PlatformData) *ActivitySignal {
	if data.Status != StatusOK || len(data.Data) == 0 {
		return nil
	}
	return &ActivitySignal{
		Karma:     int(numberField(data.Data, 0, "karma")),
		Followers: int(numberField(data.Data, 0, "follower_count", "followers")),
		Posts:     int(numberField(data.Data, 0, "posts_count", "posts")),
		Comments:  int(numberField(data.Data, 0, "comments_count", "comments")),
		Verified:  anyBool(data.Data, "is_verified", "verified"),
	}
}

// BoostResult records how the skills boost changed the composite
type BoostResult struct {
	RawScore          int                `json:"raw_score"`
	CombinedPoints    float64            `json:"combined_points"`
	A2APoints         int                `json:"a2a_points"`
	A2ASkillCount     int                `json:"a2a_skill_count"`
	ActivityPoints    float64            `json:"activity_points"`
	ActivityBreakdown map[string]float64 `json:"activity_breakdown,omitempty"`
	HasActivityData   bool               `json:"has_activity_data"`
	Multiplier        float64            `json:"multiplier"`
	BoostPercent      int                `json:"boost_percent"`
	BoostedScore      int                `json:"boosted_score"`
	PointsGained      int                `json:"points_gained"`
}

// SkillsBoost multiplies the composite by a factor earned from declared skills and community activity
type SkillsBoost struct {
	tiers []BoostTier
}

// NewSkillsBoost creates a SkillsBoost using BoostTiers.
func NewSkillsBoost() *SkillsBoost {
	return &SkillsBoost{tiers: BoostTiers}
}

// Multiplier returns the boost multiplier for whole combined points.
func (b *SkillsBoost) Multiplier(points int) float64 {
	for _, t := range b.tiers {
		if points >= t.MinPoints && points <= t.MaxPoints {
			return t.Multiplier
		}
	}
	if points < 0 {
		return b.tiers[0].Multiplier
	}
	return b.tiers[len(b.tiers)-1].Multiplier
}

// A2ASkillCount derives the declared skill count from the identity breakdown.
func A2ASkillCount(scores map[Category]CategoryScore) int {
	identity, ok := scores[CategoryIdentity]
	if !ok {
		return 0
	}
	return int(identity.Breakdown["skills_defined"] / PointsPerA2ASkill)
}

// Calculate computes the boost for composite without applying it anywhere.
func (b *SkillsBoost) Calculate(composite int, scores map[Category]CategoryScore, signal *ActivitySignal) BoostResult {
	skillCount := A2ASkillCount(scores)
	a2aPoints := min(skillCount*PointsPerA2ASkill, MaxA2ASkillPoints)

	var activityPoints float64
	var activityBreakdown map[string]float64
	if signal != nil {
		activityPoints, activityBreakdown = signal.Points()
		activityPoints = math.Min(activityPoints, MaxActivitySkillPoints)
	}

	combined := roundTo(float64(a2aPoints)*0.5+activityPoints*0.5, 1)
	multiplier := b.Multiplier(int(combined))
	boosted := min(int(float64(composite)*multiplier), MaxCategoryScore)

	return BoostResult{
		RawScore:          composite,
		CombinedPoints:    combined,
		A2APoints:         a2aPoints,
		A2ASkillCount:     skillCount,
		ActivityPoints:    activityPoints,
		ActivityBreakdown: activityBreakdown,
		HasActivityData:   signal != nil,
		Multiplier:        multiplier,
		BoostPercent:      int(math.Round((multiplier - 1.0) * 100)),
		BoostedScore:      boosted,
		PointsGained:      boosted - composite,
	}
}

// Apply returns the boosted composite along with the boost details.
func (b *SkillsBoost) Apply(composite int, scores map[Category]CategoryScore, signal *ActivitySignal) (int, BoostResult) {
	result := b.Calculate(composite, scores, signal)
	return result.BoostedScore, result
}
