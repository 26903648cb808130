package mapping

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Contact Form", "contact-form"},
		{"already slug", "contact-form", "contact-form"},
		{"mixed punctuation", "  Deep Clean!! (One-Time) ", "deep-clean-one-time"},
		{"repeated separators", "a___b---c", "a-b-c"},
		{"leading trailing junk", "--hello--", "hello"},
		{"unicode stripped", "café & crème", "caf-cr-me"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"punctuation only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSlug(tt.input))
		})
	}
}

func TestNormalizeSlug_OutputShape(t *testing.T) {
	slugPattern := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	inputs := []string{
		"Contact Form", "Newsletter CTA!", "  weird -- input__ here  ",
		"123 Numbers", "ALL CAPS", "éàè", "-", "a",
	}
	for _, input := range inputs {
		got := NormalizeSlug(input)
		if got != "" {
			assert.Regexp(t, slugPattern, got, "input %q", input)
		}
		// Idempotent: normalizing a slug is a no-op.
		assert.Equal(t, got, NormalizeSlug(got), "input %q", input)
	}
}

func TestNormalizeServiceType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"weekly", "routine"},
		{"Bi-Weekly", "routine"},
		{"Recurring", "routine"},
		{"deep cleaning", "deep-clean"},
		{"One Time Deep Clean", "deep-clean"},
		{"Move In / Move Out", "move"},
		{"move-out", "move"},
		{"Office", "commercial"},
		{"commercial suites", "commercial"},
		// Unrecognized slugs pass through so new backend categories work
		// without a deploy.
		{"window-washing", "window-washing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeServiceType(tt.input))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ten digits", "5551234567", "+15551234567"},
		{"formatted ten digits", "(555) 123-4567", "+15551234567"},
		{"eleven with leading one", "15551234567", "+15551234567"},
		{"formatted eleven", "1-555-123-4567", "+15551234567"},
		{"international with plus", "+44 20 7946 0958", "+442079460958"},
		{"too short passes through", "12345", "12345"},
		{"long without plus passes through", "005551234567890", "005551234567890"},
		{"empty", "", ""},
		{"no digits", "call me", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.input))
		})
	}
}

func TestNormalizePhone_NANPShape(t *testing.T) {
	// Every valid 10-digit and 1-prefixed 11-digit number must come out
	// as +1 followed by ten digits.
	for _, input := range []string{"2025550199", "12025550199", "202-555-0199", "1 (202) 555-0199"} {
		got := NormalizePhone(input)
		require.Len(t, got, 12, "input %q", input)
		assert.Equal(t, "+1", got[:2], "input %q", input)
	}
}

func TestParsePreferredSchedule(t *testing.T) {
	t.Run("RFC3339", func(t *testing.T) {
		got := ParsePreferredSchedule("2025-06-01T09:30:00Z")
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC), *got)
	})

	t.Run("date only", func(t *testing.T) {
		got := ParsePreferredSchedule("2025-06-01")
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("offset converted to UTC", func(t *testing.T) {
		got := ParsePreferredSchedule("2025-06-01T09:30:00-04:00")
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2025, 6, 1, 13, 30, 0, 0, time.UTC), *got)
	})

	t.Run("us format", func(t *testing.T) {
		got := ParsePreferredSchedule("06/01/2025")
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("invalid returns nil", func(t *testing.T) {
		assert.Nil(t, ParsePreferredSchedule("next tuesday-ish"))
	})

	t.Run("empty returns nil", func(t *testing.T) {
		assert.Nil(t, ParsePreferredSchedule(""))
		assert.Nil(t, ParsePreferredSchedule("   "))
	})
}

func TestExtractUTM(t *testing.T) {
	data := map[string]any{
		"utm_source":   " google ",
		"utm_medium":   "cpc",
		"utm_campaign": "",
		"utm_term":     nil,
		"referrer":     "https://example.com/landing",
		"email":        "not-a-utm@example.com",
		"utm_content":  42,
	}

	got := ExtractUTM(data)

	assert.Equal(t, map[string]string{
		"utm_source": "google",
		"utm_medium": "cpc",
		"referrer":   "https://example.com/landing",
	}, got)
}

func TestExtractMetadata(t *testing.T) {
	data := map[string]any{
		"full-name":    "Jane Doe",
		"Email":        "jane@example.com",
		"company":      "Acme",
		"How Did You ": "referral",
		"empty":        "",
		"nil-field":    nil,
		"utm_source":   "google",
		"budget":       5000.0,
	}
	known := []string{"full-name", "email"}

	got := ExtractMetadata(data, known)

	assert.Equal(t, map[string]any{
		"company":     "Acme",
		"how-did-you": "referral",
		"budget":      5000.0,
	}, got)

	// Promoted fields and the UTM whitelist never leak into metadata.
	assert.NotContains(t, got, "full-name")
	assert.NotContains(t, got, "email")
	assert.NotContains(t, got, "utm-source")
}
