package validation

// Coercion helpers over generic JSON values. Every helper is total: wrong
// shapes report !ok instead of panicking, which is what makes the validators
// safe to run on arbitrary model output.

func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func asSlice(v interface{}) ([]interface{}, bool) {
	s, ok := v.([]interface{})
	return s, ok
}

// asNumber accepts the numeric shapes encoding/json can produce plus plain
// Go ints fed in by tests.
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// stringOr returns the string at key, or the fallback when the key is
// missing or not a string.
func stringOr(m map[string]interface{}, key, fallback string) string {
	if s, ok := asString(m[key]); ok {
		return s
	}
	return fallback
}

// asStringSlice keeps only the string elements of a JSON array. A non-array
// yields an empty, non-nil slice.
func asStringSlice(v interface{}) []string {
	out := []string{}
	raw, ok := asSlice(v)
	if !ok {
		return out
	}
	for _, item := range raw {
		if s, ok := asString(item); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
