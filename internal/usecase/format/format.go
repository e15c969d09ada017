// Package format normalizes a raw answer into the most specific plausible
// type for transmission: boolean and numeric answers submit as JSON numbers
// and booleans, structured answers as objects, everything else as the string
// it already was.
package format

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Normalize is pure and total: it never fails, falling through to returning
// the input unchanged. Non-string inputs pass through as-is, so the function
// is idempotent.
func Normalize(raw any) any {
	s, ok := raw.(string)
	if !ok {
		if raw == nil {
			return ""
		}
		return raw
	}

	trimmed := strings.TrimSpace(s)

	if n, err := strconv.Atoi(trimmed); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}

	switch strings.ToLower(trimmed) {
	case "true", "yes":
		return true
	case "false", "no":
		return false
	}

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var v any
		if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
			return v
		}
	}

	return s
}
