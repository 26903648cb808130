package mapping

import (
	"fmt"
	"strings"
)

// FirstString returns the first non-empty string value found under the
// candidate keys, in order. The site forms have gone through several field
// naming schemes ("full-name", "full_name", "Full Name"); keeping the
// precedence rule in one helper keeps every caller consistent.
func FirstString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		value, ok := data[key]
		if !ok || value == nil {
			continue
		}
		s := coerceString(value)
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func coerceString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return fmt.Sprintf("%t", v)
	case float64:
		// JSON numbers decode as float64; render integers without a
		// trailing ".000000".
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return ""
	}
}
