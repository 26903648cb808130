package mapping

import (
	"regexp"
	"strings"
	"time"
)

var nonSlugRuns = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeSlug lowercases, trims and collapses free text into a stable
// hyphen-delimited key. Returns "" when nothing usable remains.
func NormalizeSlug(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" {
		return ""
	}
	s = nonSlugRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// serviceTypeSynonyms maps the slugs historically sent by the site forms to
// the four canonical categories. Unrecognized slugs pass through unchanged
// so new categories can be introduced backend-first.
var serviceTypeSynonyms = map[string]string{
	"routine":             "routine",
	"recurring":           "routine",
	"routine-care":        "routine",
	"weekly":              "routine",
	"bi-weekly":           "routine",
	"deep":                "deep-clean",
	"deep-clean":          "deep-clean",
	"deep-cleaning":       "deep-clean",
	"one-time-deep-clean": "deep-clean",
	"move":                "move",
	"move-clean":          "move",
	"move-in":             "move",
	"move-in-move-out":    "move",
	"move-out":            "move",
	"commercial":          "commercial",
	"office":              "commercial",
	"commercial-suites":   "commercial",
}

// NormalizeServiceType resolves a free-text service type to its canonical
// slug. Returns "" for empty input.
func NormalizeServiceType(value string) string {
	slug := NormalizeSlug(value)
	if slug == "" {
		return ""
	}
	if canonical, ok := serviceTypeSynonyms[slug]; ok {
		return canonical
	}
	return slug
}

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone coerces a phone input into an E.164-like string when it
// looks like a NANP number. Anything it cannot recognize is returned
// trimmed but otherwise untouched; this is best-effort formatting, not
// validation.
func NormalizePhone(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	digits := nonDigits.ReplaceAllString(value, "")
	if digits == "" {
		return ""
	}

	switch {
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits
	case len(digits) >= 11 && strings.HasPrefix(value, "+"):
		return "+" + digits
	}

	return strings.TrimSpace(value)
}

// scheduleLayouts are tried in order when parsing a preferred schedule.
var scheduleLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParsePreferredSchedule parses a date/time field into UTC. Unparseable or
// empty input yields nil rather than an error so a bad date never blocks
// the rest of the submission.
func ParsePreferredSchedule(value string) *time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	for _, layout := range scheduleLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}

// utmKeys is the whitelist of campaign-tracking fields forwarded verbatim.
var utmKeys = []string{"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content", "referrer"}

// ExtractUTM picks the known campaign-tracking keys out of the form data,
// trimmed, skipping empty values.
func ExtractUTM(data map[string]any) map[string]string {
	result := map[string]string{}
	for _, key := range utmKeys {
		if v, ok := data[key].(string); ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				result[key] = trimmed
			}
		}
	}
	return result
}

// ExtractMetadata collects the residual form fields that were not promoted
// to a named column. Keys are slug-normalized; fields whose normalized key
// collides with a known key are dropped, as are empty values. The UTM
// whitelist always counts as known so metadata never duplicates the utm
// column.
func ExtractMetadata(data map[string]any, knownKeys []string) map[string]any {
	known := make(map[string]struct{}, len(knownKeys)+len(utmKeys))
	for _, key := range knownKeys {
		if slug := NormalizeSlug(key); slug != "" {
			known[slug] = struct{}{}
		}
	}
	for _, key := range utmKeys {
		known[NormalizeSlug(key)] = struct{}{}
	}

	metadata := map[string]any{}
	for key, value := range data {
		slug := NormalizeSlug(key)
		if slug == "" {
			continue
		}
		if _, ok := known[slug]; ok {
			continue
		}
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		metadata[slug] = value
	}
	return metadata
}
