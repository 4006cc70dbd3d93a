package scoring

import "fmt"

// EconomicScorer scores toku.agency marketplace activity
type EconomicScorer struct {
	weights WeightTable
}

// NewEconomicScorer creates an EconomicScorer. A nil table uses EconomicWeights.
func NewEconomicScorer(weights WeightTable) *EconomicScorer {
	return &EconomicScorer{weights: tableOrDefault(weights, EconomicWeights)}
}

func (s *EconomicScorer) Category() Category { return CategoryEconomic }

// Score evaluates toku data. An unavailable platform earns partial credit
// because the handle is known to exist.
func (s *EconomicScorer) Score(data PlatformData) CategoryScore {
	switch data.Status {
	case StatusUnavailable:
		return FlatCategoryScore(CategoryEconomic, EconomicPartialCredit, "Handle exists but data unavailable (partial credit)")
	case StatusOK:
	default:
		return FlatCategoryScore(CategoryEconomic, 0, fmt.Sprintf("Platform status: %s", data.Status))
	}

	specs := []FieldSpec{
		{Name: "has_profile", Fields: []string{"has_profile"}, Binary: true},
		{Name: "services_listed", Fields: []string{"services_count"}},
		{Name: "jobs_completed", Fields: []string{"jobs_completed"}},
		{Name: "earnings", Fields: []string{"total_earnings_usd"}},
	}
	total, breakdown := ScoreFields(s.weights, data.Data, specs)

	var reputation float64
	if indicators := mapField(data.Data, "economic_indicators"); indicators != nil {
		reputation = numberField(indicators, 0, "economic_score_estimate")
	}
	breakdown["reputation"] = LinearScore(s.weights["reputation"], reputation, 0)
	total += breakdown["reputation"]

	return NewCategoryScore(CategoryEconomic, total, breakdown, []string{data.platformOr("toku")}, "")
}
