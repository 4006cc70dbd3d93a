package scoring

import (
	"math"
	"strconv"
	"strings"
)

// FieldSpec binds a breakdown dimension to the data field that feeds it
type FieldSpec struct {
	Name    string   // Breakdown key, also the WeightTable key
	Fields  []string // Data keys tried in order
	Default float64  // Value used when no field is present
	Binary  bool     // Award MaxPoints when the field is truthy
}

// LinearScore returns min((value-minimum)*PointsPerUnit, MaxPoints), never negative.
func LinearScore(w WeightConfig, value, minimum float64) float64 {
	if math.IsNaN(value) || value < minimum {
		return 0
	}
	points := (value - minimum) * w.PointsPerUnit
	return math.Min(points, w.MaxPoints)
}

// BinaryScore returns MaxPoints when condition holds, otherwise 0.
func BinaryScore(w WeightConfig, condition bool) float64 {
	if condition {
		return w.MaxPoints
	}
	return 0
}

// ScoreFields scores the data against the specs slice.
func ScoreFields(table WeightTable, data map[string]any, specs []FieldSpec) (float64, map[string]float64) {
	var total float64
	breakdown := make(map[string]float64, len(specs))

	for _, spec := range specs {
		w, ok := table[spec.Name]
		if !ok {
			continue
		}
		var points float64
		if spec.Binary {
			points = BinaryScore(w, anyBool(data, spec.Fields...))
		} else {
			points = LinearScore(w, numberField(data, spec.Default, spec.Fields...), 0)
		}
		breakdown[spec.Name] = points
		total += points
	}

	return total, breakdown
}

// numberField returns the first numeric value found under keys, or def.
// Accepts any Go number type and numeric strings.
func numberField(data map[string]any, def float64, keys ...string) float64 {
	for _, key := range keys {
		raw, ok := data[key]
		if !ok || raw == nil {
			continue
		}
		if v, ok := toFloat(raw); ok {
			return v
		}
		return 0
	}
	return def
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// anyBool reports whether any of keys holds a truthy value
func anyBool(data map[string]any, keys ...string) bool {
	for _, key := range keys {
		if truthy(data[key]) {
			return true
		}
	}
	return false
}

// truthy follows JSON-ish truthiness: non-zero numbers, non-empty strings and collections, true.
func truthy(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s != "" && s != "false" && s != "0"
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		if f, ok := toFloat(v); ok {
			return f != 0
		}
		return true
	}
}

func stringField(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func mapField(data map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		if m, ok := data[key].(map[string]any); ok && len(m) > 0 {
			return m
		}
	}
	return nil
}

func listField(data map[string]any, keys ...string) []any {
	for _, key := range keys {
		if l, ok := data[key].([]any); ok {
			return l
		}
	}
	return nil
}

func tableOrDefault(table, fallback WeightTable) WeightTable {
	if table == nil {
		return fallback
	}
	return table
}
