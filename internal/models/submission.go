package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind identifies what a form submission was classified as.
type Kind string

const (
	KindInquiry    Kind = "inquiry"
	KindNewsletter Kind = "newsletter"
	KindUnknown    Kind = "unknown"
)

// SubmissionPayload is the decoded webhook body. Raw preserves the full
// decoded object so the audit log can store the submission verbatim even
// when classification fails.
type SubmissionPayload struct {
	FormName   string
	Name       string
	FormID     string
	ID         string
	SiteDomain string
	SiteName   string
	Data       map[string]any
	Raw        map[string]any
}

// ParseSubmission decodes a raw webhook body into a SubmissionPayload.
// The body must be a JSON object; anything else is rejected.
func ParseSubmission(raw []byte) (*SubmissionPayload, error) {
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}

	p := &SubmissionPayload{
		FormName: stringField(decoded, "formName"),
		Name:     stringField(decoded, "name"),
		FormID:   stringField(decoded, "formId"),
		ID:       stringField(decoded, "id"),
		Raw:      decoded,
		Data:     map[string]any{},
	}

	if site, ok := decoded["site"].(map[string]any); ok {
		p.SiteDomain = stringField(site, "domain")
		p.SiteName = stringField(site, "name")
	}
	if data, ok := decoded["data"].(map[string]any); ok {
		p.Data = data
	}

	return p, nil
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// InquiryRecord is the normalized shape of a contact / quote submission.
type InquiryRecord struct {
	FullName          string
	Email             string
	Phone             *string
	Message           string
	ServiceTypeSlug   *string
	PreferredSchedule *time.Time
	UTM               map[string]string
	Metadata          map[string]any
}

// NewsletterRecord is the normalized shape of a newsletter / CTA signup.
type NewsletterRecord struct {
	Email    string
	FullName *string
	Tags     []string
	UTM      map[string]string
	Metadata map[string]any
}

// MappingResult is the tagged outcome of classifying a submission. Exactly
// one of Inquiry/Newsletter is non-nil, matching Kind; unknown submissions
// keep the raw payload so the audit trail stays complete.
type MappingResult struct {
	Kind       Kind
	FormName   string
	Source     string
	Inquiry    *InquiryRecord
	Newsletter *NewsletterRecord
	RawPayload map[string]any
}

// AuditEvent mirrors a form_events row: one per inbound request, written
// before classification completes and updated once with the final state.
type AuditEvent struct {
	ID        string
	FormName  string
	Source    string
	Payload   map[string]any
	Processed bool
	Error     *string
}
