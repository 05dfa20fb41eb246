package tools

import (
	"strconv"

	"github.com/carbonrobotics/arena-mcp-server/internal/arena"
)

// Accessors for decoded Arena payloads. The API omits fields freely and
// workspaces define their own attributes, so every accessor tolerates absent
// keys, nulls, and unexpected types instead of failing the whole render.

// value renders the scalar at key as text, or "" when absent.
func value(m arena.Object, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return formatNumber(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// valueOr is value with a fallback for missing data.
func valueOr(m arena.Object, key, fallback string) string {
	if s := value(m, key); s != "" {
		return s
	}
	return fallback
}

// object returns the nested object at key, or nil.
func object(m arena.Object, key string) arena.Object {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

// objects returns the array of objects at key, skipping non-object elements.
func objects(m arena.Object, key string) []arena.Object {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]arena.Object, 0, len(raw))
	for _, el := range raw {
		if obj, ok := el.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// flag returns the boolean at key, false when absent.
func flag(m arena.Object, key string) bool {
	b, ok := m[key].(bool)
	return ok && b
}

// intValue returns the integer at key. JSON numbers decode as float64.
func intValue(m arena.Object, key string) (int, bool) {
	f, ok := m[key].(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// formatNumber renders a JSON number without an exponent and without a
// trailing ".0" for whole values, matching how quantities read in a BOM.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
