package scoring

import (
	"fmt"
	"math"
	"strings"
)

// IdentityScorer scores A2A v1.0 agent card compliance
type IdentityScorer struct {
	weights WeightTable
}

// NewIdentityScorer creates an IdentityScorer. A nil table uses IdentityWeights.
func NewIdentityScorer(weights WeightTable) *IdentityScorer {
	return &IdentityScorer{weights: tableOrDefault(weights, IdentityWeights)}
}

func (s *IdentityScorer) Category() Category { return CategoryIdentity }

// identityKeys fixes summation order for the breakdown
var identityKeys = []string{
	"schema_version",
	"required_fields",
	"human_readable_id",
	"provider_info",
	"endpoint_https",
	"capabilities_declared",
	"advanced_capabilities",
	"skills_defined",
	"interfaces_declared",
	"auth_schemes",
	"optional_metadata",
	"has_agents_json",
	"has_llms_txt",
}

// Score evaluates an agent card plus domain-level discovery files.
// An SSL failure still scores whatever card data was recovered.
func (s *IdentityScorer) Score(data PlatformData) CategoryScore {
	status := data.Status
	sslError := status == StatusSSLError || anyBool(data.Data, "ssl_error")
	card := extractCard(data.Data)

	if card == nil && status != StatusOK && status != StatusSSLError {
		return FlatCategoryScore(CategoryIdentity, 0, fmt.Sprintf("Platform status: %s (no agent card)", status))
	}

	var facts cardFacts
	if card != nil {
		facts = inspectCard(card)
	}

	w := s.weights
	breakdown := map[string]float64{
		"schema_version":        BinaryScore(w["schema_version"], facts.schemaV1),
		"required_fields":       float64(facts.requiredCount) / float64(len(RequiredCardFields)) * w["required_fields"].MaxPoints,
		"human_readable_id":     BinaryScore(w["human_readable_id"], facts.idValid),
		"provider_info":         math.Min(facts.providerScore, w["provider_info"].MaxPoints),
		"endpoint_https":        BinaryScore(w["endpoint_https"], facts.httpsEndpoint),
		"capabilities_declared": capabilitiesScore(w["capabilities_declared"], facts),
		"advanced_capabilities": LinearScore(w["advanced_capabilities"], float64(facts.capsFeatures), 0),
		"skills_defined":        LinearScore(w["skills_defined"], float64(facts.skills), 0),
		"interfaces_declared":   BinaryScore(w["interfaces_declared"], facts.interfaces > 0),
		"auth_schemes":          BinaryScore(w["auth_schemes"], facts.authSchemes > 0),
		"optional_metadata":     LinearScore(w["optional_metadata"], float64(facts.metadata), 0),
		"has_agents_json":       BinaryScore(w["has_agents_json"], anyBool(data.Data, "has_agents_json")),
		"has_llms_txt":          BinaryScore(w["has_llms_txt"], anyBool(data.Data, "has_llms_txt")),
	}

	var total float64
	for _, key := range identityKeys {
		total += breakdown[key]
	}

	notes := []string{"Status: " + status}
	if card != nil {
		schema := "other/missing"
		if facts.schemaV1 {
			schema = "1.0"
		}
		notes = append(notes,
			"A2A schema: "+schema,
			fmt.Sprintf("Skills: %d", facts.skills),
			fmt.Sprintf("Auth schemes: %d", facts.authSchemes),
			fmt.Sprintf("Interfaces: %d", facts.interfaces),
		)
	}
	if sslError {
		notes = append(notes, "SSL error - partial score")
	}

	return NewCategoryScore(CategoryIdentity, total, breakdown, []string{data.platformOr("a2a")}, strings.Join(notes, " | "))
}

// capabilitiesScore gives full points for an a2aVersion 1.0 capabilities
// object and partial credit, capped by the weight, for any other.
func capabilitiesScore(w WeightConfig, facts cardFacts) float64 {
	switch {
	case facts.capsV1:
		return w.MaxPoints
	case facts.capsDeclared:
		return math.Min(CapabilitiesPartialPoints, w.MaxPoints)
	}
	return 0
}
