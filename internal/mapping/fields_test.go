package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstString(t *testing.T) {
	data := map[string]any{
		"full-name": "",
		"full_name": "  ",
		"name":      "Jane",
		"Full Name": "Shadowed",
		"count":     float64(3),
		"flag":      true,
		"ratio":     2.5,
		"nothing":   nil,
	}

	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"first non-empty wins", []string{"full-name", "full_name", "name", "Full Name"}, "Jane"},
		{"empty and blank skipped", []string{"full-name", "full_name"}, ""},
		{"missing keys skipped", []string{"absent", "name"}, "Jane"},
		{"integer coerced", []string{"count"}, "3"},
		{"float coerced", []string{"ratio"}, "2.5"},
		{"bool coerced", []string{"flag"}, "true"},
		{"nil skipped", []string{"nothing", "name"}, "Jane"},
		{"no candidates", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstString(data, tt.keys...))
		})
	}
}
