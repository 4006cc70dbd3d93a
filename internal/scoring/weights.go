package scoring

// WeightConfig configures one scoring dimension
type WeightConfig struct {
	MaxPoints     float64 // Cap for this dimension
	PointsPerUnit float64 // Points per measured unit
	UnitName      string
	Description   string
}

// WeightTable maps a breakdown key to its weight configuration
type WeightTable map[string]WeightConfig

// Default estimates used when a platform omits a field
const (
	DefaultRecentCommits     = 10 // GitHub API doesn't expose a cheap 90-day commit count
	DefaultPRsMerged         = 3
	FollowerEstimatePerPost  = 5 // Content follower proxy: articles * 5
	FollowerUnitSize         = 5.0
	EconomicPartialCredit    = 10
	DefaultDaysSinceActivity = 30
)

// AgentKeywords mark a GitHub bio as belonging to an agent or agent developer
var AgentKeywords = []string{
	"ai agent",
	"autonomous",
	"bot",
	"language model",
	"llm",
	"first officer",
	"agent developer",
}

// CodeWeights scores GitHub activity
var CodeWeights = WeightTable{
	"public_repos":   {25, 5.0, "repository", "Public repositories"},
	"recent_commits": {20, 2.0, "commit", "Recent commits (last 90 days)"},
	"stars":          {15, 0.2, "star", "Repository stars"},
	"bio_signals":    {10, 10.0, "keyword match", "Bio contains agent-related keywords"},
	"prs_merged":     {25, 5.0, "PR", "Merged pull requests"},
}

// ContentWeights scores dev.to and blog output
var ContentWeights = WeightTable{
	"published_posts": {40, 10.0, "post", "Published posts"},
	"reactions":       {30, 1.0, "reaction", "Total post reactions"},
	"followers":       {20, 5.0, "follower estimate", "Followers (per 5 followers)"},
	"engagement_rate": {10, 1.0, "engagement", "Average engagement per post"},
}

// IdentityWeights scores A2A v1.0 agent card compliance.
// The sum exceeds 100; the category is hard-capped.
var IdentityWeights = WeightTable{
	"schema_version":        {10, 10.0, "v1.0 compliance", "A2A schemaVersion is 1.0"},
	"required_fields":       {15, 15.0, "required fields", "All required A2A fields present"},
	"human_readable_id":     {10, 10.0, "valid ID", "humanReadableId follows org/agent format"},
	"provider_info":         {10, 10.0, "provider", "Provider name and optional URL/contact"},
	"endpoint_https":        {5, 5.0, "HTTPS endpoint", "Secure A2A endpoint URL"},
	"capabilities_declared": {10, 10.0, "capabilities", "Capabilities object present with a2aVersion"},
	"advanced_capabilities": {10, 2.0, "advanced feature", "Tools, streaming, push notifications"},
	"skills_defined":        {10, 2.0, "skill", "Skills defined (max 5 skills = 10 pts)"},
	"interfaces_declared":   {5, 5.0, "interface", "Supported transport interfaces"},
	"auth_schemes":          {5, 5.0, "auth scheme", "Authentication schemes defined"},
	"optional_metadata":     {5, 1.0, "metadata field", "Tags, icon, privacy/TOS URLs, last updated"},
	"has_agents_json":       {3, 3.0, "agents.json", "Has agents index file"},
	"has_llms_txt":          {2, 2.0, "llms.txt", "Has llms.txt for LLM discoverability"},
}

// Provider sub-points inside provider_info
const (
	ProviderNamePoints    = 6.0
	ProviderURLPoints     = 2.0
	ProviderContactPoints = 2.0
	// CapabilitiesPartialPoints is awarded when the capabilities object exists without a 1.0 version tag
	CapabilitiesPartialPoints = 5.0
)

// SocialWeights scores X/Twitter presence
var SocialWeights = WeightTable{
	"followers":       {30, 0.01, "follower", "Follower count"},
	"verified":        {10, 10.0, "verification", "Account is verified"},
	"tweet_frequency": {20, 0.4, "tweet", "Tweet count (activity level)"},
	"engagement_rate": {25, 2.5, "percent", "Engagement rate percentage"},
	"account_age":     {15, 1.0, "month", "Account age in months"},
}

// EconomicWeights scores toku.agency activity
var EconomicWeights = WeightTable{
	"has_profile":     {20, 20.0, "profile", "Has toku.agency profile"},
	"services_listed": {20, 5.0, "service", "Services listed"},
	"jobs_completed":  {40, 4.0, "job", "Completed jobs"},
	"reputation":      {15, 0.15, "reputation point", "Toku reputation score"},
	"earnings":        {5, 0.001, "dollar", "Total earnings in USD"},
}

// CommunityWeights scores ClawHub/OpenClaw contributions
var CommunityWeights = WeightTable{
	"skills_submitted":      {40, 10.0, "skill", "Skills submitted to ClawHub"},
	"prs_merged":            {30, 6.0, "PR", "PRs merged to OpenClaw"},
	"discord_engagement":    {20, 2.0, "level", "Discord engagement level"},
	"documentation_contrib": {10, 10.0, "docs", "Documentation contributions"},
}

// DefaultWeightTables returns the weight table for every category.
func DefaultWeightTables() map[Category]WeightTable {
	return map[Category]WeightTable{
		CategoryCode:      CodeWeights,
		CategoryContent:   ContentWeights,
		CategoryIdentity:  IdentityWeights,
		CategorySocial:    SocialWeights,
		CategoryEconomic:  EconomicWeights,
		CategoryCommunity: CommunityWeights,
	}
}

// CompositeWeights sets how much each category counts toward the composite.
// Identity counts double.
var CompositeWeights = map[Category]float64{
	CategoryCode:      1.0,
	CategoryContent:   1.0,
	CategoryIdentity:  2.0,
	CategorySocial:    1.0,
	CategoryEconomic:  1.0,
	CategoryCommunity: 1.0,
}

// CategoryPlatforms lists the platform names feeding each category.
// When a profile carries several, the first one listed wins.
var CategoryPlatforms = map[Category][]string{
	CategoryCode:      {"github"},
	CategoryContent:   {"devto", "blog"},
	CategoryIdentity:  {"a2a", "domain"},
	CategorySocial:    {"x", "twitter"},
	CategoryEconomic:  {"toku"},
	CategoryCommunity: {"clawhub", "openclaw"},
}

// CategoryForPlatform returns the category a platform name feeds.
func CategoryForPlatform(platform string) (Category, bool) {
	for category, platforms := range CategoryPlatforms {
		for _, p := range platforms {
			if p == platform {
				return category, true
			}
		}
	}
	return "", false
}

// ActivityPlatform names the profile block that carries the external activity signal for the skills boost
const ActivityPlatform = "moltbook"
