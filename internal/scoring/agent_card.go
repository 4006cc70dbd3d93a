package scoring

import "strings"

// RequiredCardFields are the A2A v1.0 top-level fields every agent card must carry
var RequiredCardFields = []string{
	"schemaVersion",
	"humanReadableId",
	"agentVersion",
	"name",
	"description",
	"url",
	"provider",
	"capabilities",
	"authSchemes",
}

// cardAliases maps legacy snake_case keys to their A2A v1.0 camelCase form
var cardAliases = map[string]string{
	"schema_version":              "schemaVersion",
	"human_readable_id":           "humanReadableId",
	"agent_version":               "agentVersion",
	"auth_schemes":                "authSchemes",
	"supported_interfaces":        "supportedInterfaces",
	"icon_url":                    "iconUrl",
	"privacy_policy_url":          "privacyPolicyUrl",
	"terms_of_service_url":        "termsOfServiceUrl",
	"last_updated":                "lastUpdated",
	"support_contact":             "supportContact",
	"a2a_version":                 "a2aVersion",
	"mcp_version":                 "mcpVersion",
	"supports_tools":              "supportsTools",
	"supports_streaming":          "supportsStreaming",
	"supports_push_notifications": "supportsPushNotifications",
	"supported_message_parts":     "supportedMessageParts",
	"input_modes":                 "inputModes",
	"output_modes":                "outputModes",
	"service_identifier":          "serviceIdentifier",
	"token_url":                   "tokenUrl",
}

// NormalizeAgentCard returns a copy of card with every known snake_case alias
// rewritten to its camelCase key. Nested objects and lists are walked too.
// When both spellings are present the camelCase value wins.
func NormalizeAgentCard(card map[string]any) map[string]any {
	if card == nil {
		return nil
	}
	out := make(map[string]any, len(card))
	for key, value := range card {
		canonical := key
		if alias, ok := cardAliases[key]; ok {
			canonical = alias
			if _, exists := card[alias]; exists {
				continue
			}
		}
		out[canonical] = normalizeCardValue(value)
	}
	return out
}

func normalizeCardValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return NormalizeAgentCard(v)
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = normalizeCardValue(item)
		}
		return items
	default:
		return v
	}
}

// extractCard pulls the agent card from identity platform data, preferring "card".
func extractCard(data map[string]any) map[string]any {
	if card := mapField(data, "card", "agent_card"); card != nil {
		return NormalizeAgentCard(card)
	}
	return nil
}

// cardFacts is what the identity scorer learns from a normalized card
type cardFacts struct {
	schemaV1      bool
	requiredCount int
	idValid       bool
	providerScore float64
	httpsEndpoint bool
	capsDeclared  bool
	capsV1        bool
	capsFeatures  int
	skills        int
	interfaces    int
	authSchemes   int
	metadata      int
}

func inspectCard(card map[string]any) cardFacts {
	var f cardFacts
	f.schemaV1 = stringField(card, "schemaVersion") == "1.0"

	for _, field := range RequiredCardFields {
		if v, ok := card[field]; ok && v != nil {
			f.requiredCount++
		}
	}

	f.idValid = validHumanReadableID(stringField(card, "humanReadableId"))

	if provider := mapField(card, "provider"); provider != nil {
		if truthy(provider["name"]) {
			f.providerScore += ProviderNamePoints
		}
		if truthy(provider["url"]) {
			f.providerScore += ProviderURLPoints
		}
		if truthy(provider["supportContact"]) {
			f.providerScore += ProviderContactPoints
		}
	}

	f.httpsEndpoint = strings.HasPrefix(stringField(card, "url"), "https://")

	if caps := mapField(card, "capabilities"); caps != nil {
		f.capsDeclared = true
		f.capsV1 = stringField(caps, "a2aVersion") == "1.0"
		for _, feature := range []string{"supportsTools", "supportsStreaming", "supportsPushNotifications", "supportedMessageParts", "mcpVersion"} {
			if truthy(caps[feature]) {
				f.capsFeatures++
			}
		}
	}

	f.skills = countValid(listField(card, "skills"), "id", "name")
	f.interfaces = countValid(listField(card, "supportedInterfaces"), "url", "transport")
	f.authSchemes = countValid(listField(card, "authSchemes"), "scheme", "description")

	for _, field := range []string{"tags", "iconUrl", "privacyPolicyUrl", "termsOfServiceUrl", "lastUpdated"} {
		if truthy(card[field]) {
			f.metadata++
		}
	}
	return f
}

// validHumanReadableID checks the org/agent-name format.
func validHumanReadableID(id string) bool {
	parts := strings.Split(id, "/")
	return len(parts) == 2 && parts[0] != "" && parts[1] != ""
}

// countValid counts list entries that are objects with every key truthy.
func countValid(items []any, keys ...string) int {
	n := 0
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		valid := true
		for _, key := range keys {
			if !truthy(obj[key]) {
				valid = false
				break
			}
		}
		if valid {
			n++
		}
	}
	return n
}
