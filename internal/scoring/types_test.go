package scoring

import (
	"testing"
)

func TestTierFromScore(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		wantTier string
	}{
		{"Pioneer - top", 100, "Pioneer"},
		{"Pioneer - exact boundary", 90, "Pioneer"},
		{"Autonomous - just below Pioneer", 89, "Autonomous"},
		{"Autonomous - exact boundary", 75, "Autonomous"},
		{"Recognized - upper", 74, "Recognized"},
		{"Recognized - exact boundary", 56, "Recognized"},
		{"Active - upper", 55, "Active"},
		{"Active - exact boundary", 36, "Active"},
		{"Becoming - exact boundary", 16, "Becoming"},
		{"Awakening - upper", 15, "Awakening"},
		{"Awakening - exact boundary", 1, "Awakening"},
		{"Signal Zero", 0, "Signal Zero"},
		{"Signal Zero - negative", -5, "Signal Zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TierFromScore(tt.score)
			if got.Label != tt.wantTier {
				t.Errorf("TierFromScore(%d) = %q, want %q", tt.score, got.Label, tt.wantTier)
			}
		})
	}
}

func TestParseTier(t *testing.T) {
	for _, tier := range Tiers() {
		got, ok := ParseTier(tier.Label)
		if !ok || got != tier {
			t.Errorf("ParseTier(%q) = %v, %v", tier.Label, got, ok)
		}
	}
	if got, ok := ParseTier("signal zero"); !ok || got != TierSignalZero {
		t.Errorf("ParseTier is case sensitive: %v, %v", got, ok)
	}
	if _, ok := ParseTier("Legendary"); ok {
		t.Error("ParseTier accepted an unknown label")
	}
}

func TestParseCategory(t *testing.T) {
	if c, ok := ParseCategory(" Identity "); !ok || c != CategoryIdentity {
		t.Errorf("ParseCategory(Identity) = %q, %v", c, ok)
	}
	if _, ok := ParseCategory("karma"); ok {
		t.Error("ParseCategory accepted an unknown category")
	}
	if got := len(AllCategories()); got != 6 {
		t.Errorf("AllCategories() has %d entries, want 6", got)
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]string{
		"ok":          StatusOK,
		" OK ":        StatusOK,
		"ssl_error":   StatusSSLError,
		"not_found":   StatusNotFound,
		"unavailable": StatusUnavailable,
		"error":       StatusError,
		"timeout":     StatusUnknown,
		"":            StatusUnknown,
	}
	for in, want := range tests {
		if got := NormalizeStatus(in); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewCategoryScore(t *testing.T) {
	tests := []struct {
		name      string
		raw       float64
		wantScore int
	}{
		{"fractional truncates", 42.9, 42},
		{"capped at 100", 118, 100},
		{"exactly 100", 100, 100},
		{"negative clamps to zero", -3, 0},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := NewCategoryScore(CategoryCode, tt.raw, nil, nil, "")
			if cs.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", cs.Score, tt.wantScore)
			}
			if cs.MaxScore != MaxCategoryScore {
				t.Errorf("MaxScore = %d, want %d", cs.MaxScore, MaxCategoryScore)
			}
			if cs.Breakdown == nil || cs.DataSources == nil {
				t.Error("Breakdown and DataSources must be non-nil")
			}
		})
	}
}

func TestCategoryScore_Percentage(t *testing.T) {
	cs := NewCategoryScore(CategoryContent, 45, nil, nil, "")
	if got := cs.Percentage(); got != 45 {
		t.Errorf("Percentage() = %v, want 45", got)
	}
	if got := (CategoryScore{}).Percentage(); got != 0 {
		t.Errorf("zero MaxScore Percentage() = %v, want 0", got)
	}
}

func TestPlatformData(t *testing.T) {
	p := NewPlatformData("github", "OK", nil)
	if !p.IsAvailable() {
		t.Error("ok platform without error should be available")
	}
	if p.Data == nil {
		t.Error("NewPlatformData should allocate Data")
	}
	if got := p.Get("missing", 7); got != 7 {
		t.Errorf("Get default = %v, want 7", got)
	}

	p.Error = "rate limited"
	if p.IsAvailable() {
		t.Error("platform with an error should not be available")
	}
}

func TestCategoryForPlatform(t *testing.T) {
	tests := map[string]Category{
		"github":   CategoryCode,
		"devto":    CategoryContent,
		"blog":     CategoryContent,
		"a2a":      CategoryIdentity,
		"domain":   CategoryIdentity,
		"x":        CategorySocial,
		"twitter":  CategorySocial,
		"toku":     CategoryEconomic,
		"clawhub":  CategoryCommunity,
		"openclaw": CategoryCommunity,
	}
	for platform, want := range tests {
		got, ok := CategoryForPlatform(platform)
		if !ok || got != want {
			t.Errorf("CategoryForPlatform(%q) = %q, %v; want %q", platform, got, ok, want)
		}
	}
	if _, ok := CategoryForPlatform("moltbook"); ok {
		t.Error("moltbook does not feed a category")
	}
}
