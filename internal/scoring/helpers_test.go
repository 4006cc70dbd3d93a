package scoring

import (
	"math"
	"testing"
)

func TestLinearScore(t *testing.T) {
	w := WeightConfig{MaxPoints: 25, PointsPerUnit: 5}

	tests := []struct {
		name    string
		value   float64
		minimum float64
		want    float64
	}{
		{"zero", 0, 0, 0},
		{"below cap", 3, 0, 15},
		{"exactly at cap", 5, 0, 25},
		{"above cap", 40, 0, 25},
		{"below minimum", 2, 3, 0},
		{"above minimum", 5, 3, 10},
		{"negative value", -4, 0, 0},
		{"NaN", math.NaN(), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinearScore(w, tt.value, tt.minimum); got != tt.want {
				t.Errorf("LinearScore(%v, %v) = %v, want %v", tt.value, tt.minimum, got, tt.want)
			}
		})
	}
}

func TestBinaryScore(t *testing.T) {
	w := WeightConfig{MaxPoints: 10, PointsPerUnit: 10}
	if got := BinaryScore(w, true); got != 10 {
		t.Errorf("BinaryScore(true) = %v, want 10", got)
	}
	if got := BinaryScore(w, false); got != 0 {
		t.Errorf("BinaryScore(false) = %v, want 0", got)
	}
}

func TestScoreFields(t *testing.T) {
	table := WeightTable{
		"repos":   {MaxPoints: 25, PointsPerUnit: 5},
		"commits": {MaxPoints: 20, PointsPerUnit: 2},
		"flag":    {MaxPoints: 10, PointsPerUnit: 10},
	}
	specs := []FieldSpec{
		{Name: "repos", Fields: []string{"public_repos"}},
		{Name: "commits", Fields: []string{"recent_commits"}, Default: 4},
		{Name: "flag", Fields: []string{"a", "b"}, Binary: true},
		{Name: "unknown", Fields: []string{"whatever"}},
	}

	tests := []struct {
		name      string
		data      map[string]any
		wantTotal float64
		want      map[string]float64
	}{
		{
			name:      "all present",
			data:      map[string]any{"public_repos": 2, "recent_commits": 5, "b": true},
			wantTotal: 30,
			want:      map[string]float64{"repos": 10, "commits": 10, "flag": 10},
		},
		{
			name:      "defaults used",
			data:      map[string]any{},
			wantTotal: 8,
			want:      map[string]float64{"repos": 0, "commits": 8, "flag": 0},
		},
		{
			name:      "wrong types score zero",
			data:      map[string]any{"public_repos": "lots", "recent_commits": []any{1}, "a": "false"},
			wantTotal: 0,
			want:      map[string]float64{"repos": 0, "commits": 0, "flag": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, breakdown := ScoreFields(table, tt.data, specs)
			if total != tt.wantTotal {
				t.Errorf("total = %v, want %v", total, tt.wantTotal)
			}
			if _, ok := breakdown["unknown"]; ok {
				t.Error("breakdown contains a dimension with no weight")
			}
			for key, want := range tt.want {
				if got := breakdown[key]; got != want {
					t.Errorf("breakdown[%q] = %v, want %v", key, got, want)
				}
			}
		})
	}
}

func TestNumberField(t *testing.T) {
	data := map[string]any{
		"float":   3.5,
		"int":     7,
		"int64":   int64(9),
		"string":  " 12 ",
		"bad":     "twelve",
		"bool":    true,
		"nothing": nil,
	}

	tests := []struct {
		name string
		keys []string
		def  float64
		want float64
	}{
		{"float", []string{"float"}, 0, 3.5},
		{"int", []string{"int"}, 0, 7},
		{"int64", []string{"int64"}, 0, 9},
		{"numeric string", []string{"string"}, 0, 12},
		{"non-numeric string", []string{"bad"}, 5, 0},
		{"bool", []string{"bool"}, 0, 1},
		{"nil falls through", []string{"nothing", "int"}, 0, 7},
		{"missing uses default", []string{"missing"}, 42, 42},
		{"first present wins", []string{"int", "float"}, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := numberField(data, tt.def, tt.keys...); got != tt.want {
				t.Errorf("numberField(%v) = %v, want %v", tt.keys, got, tt.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{nil, false},
		{true, true},
		{false, false},
		{"true", true},
		{"false", false},
		{"", false},
		{"0", false},
		{0, false},
		{1.5, true},
		{[]any{}, false},
		{[]any{"x"}, true},
		{map[string]any{}, false},
		{map[string]any{"k": 1}, true},
	}

	for _, tt := range tests {
		if got := truthy(tt.value); got != tt.want {
			t.Errorf("truthy(%#v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
