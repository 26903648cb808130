package mapping

import (
	"strings"

	"github.com/orbitlabs/formgate/internal/models"
)

const defaultSource = "webflow"

// Known-key lists handed to ExtractMetadata. Listed in every spelling the
// forms have used; ExtractMetadata slug-normalizes them before comparing.
var (
	inquiryKnownKeys = []string{
		"full-name", "full_name", "name",
		"email", "phone", "message",
		"service-type", "service_type",
		"preferred-date", "preferred_date",
		"form-target", "form_type",
	}
	newsletterKnownKeys = []string{
		"email", "full-name", "full_name", "name", "tags", "form-target",
	}
)

// Map classifies a submission and builds the normalized record for its
// kind. It never fails: submissions that match no known form vocabulary
// come back as KindUnknown with the raw payload attached, so the caller
// always has something to audit.
func Map(payload *models.SubmissionPayload) models.MappingResult {
	data := payload.Data

	formName := payload.FormName
	if formName == "" {
		formName = payload.Name
	}
	normalizedForm := NormalizeSlug(formName)
	target := NormalizeSlug(FirstString(data, "form-target", "form_type", "form-name"))

	isInquiry := strings.Contains(normalizedForm, "contact") ||
		strings.Contains(normalizedForm, "quote") ||
		target == "contact" || target == "quote" || target == "request-quote"

	isNewsletter := strings.Contains(normalizedForm, "newsletter") ||
		strings.Contains(normalizedForm, "cta") ||
		target == "newsletter" || target == "email-capture"

	baseSource := payload.SiteDomain
	if baseSource == "" {
		baseSource = payload.SiteName
	}
	if baseSource == "" {
		baseSource = defaultSource
	}

	// Inquiry wins when a form matches both vocabularies ("Contact
	// Newsletter CTA"); the tie-break is deliberate.
	switch {
	case isInquiry:
		return models.MappingResult{
			Kind:     models.KindInquiry,
			FormName: orDefault(formName, "contact"),
			Source:   baseSource + ":contact",
			Inquiry:  buildInquiry(data),
		}
	case isNewsletter:
		return models.MappingResult{
			Kind:       models.KindNewsletter,
			FormName:   orDefault(formName, "newsletter"),
			Source:     baseSource + ":newsletter",
			Newsletter: buildNewsletter(data),
		}
	default:
		return models.MappingResult{
			Kind:       models.KindUnknown,
			FormName:   orDefault(formName, "unknown"),
			Source:     baseSource + ":unknown",
			RawPayload: payload.Raw,
		}
	}
}

func buildInquiry(data map[string]any) *models.InquiryRecord {
	return &models.InquiryRecord{
		FullName:          FirstString(data, "full-name", "full_name", "name", "Full Name", "Full name"),
		Email:             normalizeEmail(FirstString(data, "email", "Email")),
		Phone:             optional(NormalizePhone(FirstString(data, "phone", "Phone"))),
		Message:           FirstString(data, "message", "Message"),
		ServiceTypeSlug:   optional(NormalizeServiceType(FirstString(data, "service-type", "Service Type"))),
		PreferredSchedule: ParsePreferredSchedule(FirstString(data, "preferred-date", "Preferred Date")),
		UTM:               ExtractUTM(data),
		Metadata:          ExtractMetadata(data, inquiryKnownKeys),
	}
}

func buildNewsletter(data map[string]any) *models.NewsletterRecord {
	return &models.NewsletterRecord{
		Email:    normalizeEmail(FirstString(data, "email", "Email")),
		FullName: optional(FirstString(data, "full-name", "full_name", "name", "Name", "First Name")),
		Tags:     normalizeTags(FirstString(data, "tags", "Tags")),
		UTM:      ExtractUTM(data),
		Metadata: ExtractMetadata(data, newsletterKnownKeys),
	}
}

// normalizeTags splits a comma-separated tag list into de-duplicated slugs,
// preserving first-seen order.
func normalizeTags(raw string) []string {
	tags := []string{}
	seen := map[string]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		slug := NormalizeSlug(part)
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		tags = append(tags, slug)
	}
	return tags
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
