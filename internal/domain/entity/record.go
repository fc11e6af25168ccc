package entity

import (
	"encoding/json"
	"strconv"
	"strings"
)

// present reports whether a decoded JSON value counts as provided.
// Empty strings, zero numbers, false and null are all treated as absent,
// matching the required-field checks of the HTTP API.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}

// asString coerces a decoded JSON value to its string form.
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// parseAmount coerces a decoded JSON value to a float64. Numeric strings
// are accepted, anything else fails the parse.
func parseAmount(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// clipDescription trims surrounding whitespace and truncates the value to
// maxDescriptionLen characters.
func clipDescription(v any) string {
	s := strings.TrimSpace(asString(v))
	runes := []rune(s)
	if len(runes) > maxDescriptionLen {
		return string(runes[:maxDescriptionLen])
	}
	return s
}
