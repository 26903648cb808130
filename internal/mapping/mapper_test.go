package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitlabs/formgate/internal/models"
)

func payloadFor(formName string, data map[string]any) *models.SubmissionPayload {
	return &models.SubmissionPayload{
		FormName: formName,
		Data:     data,
		Raw:      map[string]any{"formName": formName, "data": data},
	}
}

func TestMap_InquiryRoundTrip(t *testing.T) {
	payload := payloadFor("Contact Form", map[string]any{
		"full-name": "Jane Doe",
		"email":     "JANE@EX.com ",
		"phone":     "5551234567",
		"message":   "hi",
	})

	result := Map(payload)

	require.Equal(t, models.KindInquiry, result.Kind)
	require.NotNil(t, result.Inquiry)
	assert.Nil(t, result.Newsletter)

	assert.Equal(t, "Jane Doe", result.Inquiry.FullName)
	assert.Equal(t, "jane@ex.com", result.Inquiry.Email)
	require.NotNil(t, result.Inquiry.Phone)
	assert.Equal(t, "+15551234567", *result.Inquiry.Phone)
	assert.Equal(t, "hi", result.Inquiry.Message)
	assert.Equal(t, "webflow:contact", result.Source)
	assert.Equal(t, "Contact Form", result.FormName)
}

func TestMap_InquiryPrecedenceOverNewsletter(t *testing.T) {
	// Matches both vocabularies; the inquiry check wins by design.
	payload := payloadFor("Contact Newsletter CTA", map[string]any{
		"email": "both@example.com",
	})

	result := Map(payload)

	assert.Equal(t, models.KindInquiry, result.Kind)
	assert.Equal(t, "webflow:contact", result.Source)
}

func TestMap_ClassificationTriggers(t *testing.T) {
	tests := []struct {
		name     string
		formName string
		data     map[string]any
		want     models.Kind
	}{
		{"contact in form name", "Main Contact", nil, models.KindInquiry},
		{"quote in form name", "Request a Quote", nil, models.KindInquiry},
		{"target contact", "Generic", map[string]any{"form-target": "contact"}, models.KindInquiry},
		{"target request-quote", "Generic", map[string]any{"form-target": "Request Quote"}, models.KindInquiry},
		{"newsletter in form name", "Footer Newsletter", nil, models.KindNewsletter},
		{"cta in form name", "Homepage CTA", nil, models.KindNewsletter},
		{"target email-capture", "Generic", map[string]any{"form-target": "email capture"}, models.KindNewsletter},
		{"target via form_type", "Generic", map[string]any{"form_type": "newsletter"}, models.KindNewsletter},
		{"no match", "Job Application", nil, models.KindUnknown},
		{"empty form", "", nil, models.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			if data == nil {
				data = map[string]any{}
			}
			result := Map(payloadFor(tt.formName, data))
			assert.Equal(t, tt.want, result.Kind)
		})
	}
}

func TestMap_InquiryFieldVariants(t *testing.T) {
	payload := payloadFor("Quote Request", map[string]any{
		"Full Name":      "Sam Carter",
		"Email":          "Sam@Example.COM",
		"Phone":          "1-555-000-1111",
		"Message":        "need a deep clean",
		"Service Type":   "Deep Cleaning",
		"Preferred Date": "2025-07-15",
		"utm_source":     "newsletter",
		"company":        "Carter LLC",
	})

	result := Map(payload)

	require.Equal(t, models.KindInquiry, result.Kind)
	rec := result.Inquiry
	assert.Equal(t, "Sam Carter", rec.FullName)
	assert.Equal(t, "sam@example.com", rec.Email)
	require.NotNil(t, rec.Phone)
	assert.Equal(t, "+15550001111", *rec.Phone)
	require.NotNil(t, rec.ServiceTypeSlug)
	assert.Equal(t, "deep-clean", *rec.ServiceTypeSlug)
	require.NotNil(t, rec.PreferredSchedule)
	assert.Equal(t, map[string]string{"utm_source": "newsletter"}, rec.UTM)
	assert.Equal(t, map[string]any{"company": "Carter LLC"}, rec.Metadata)
}

func TestMap_InquiryMissingOptionalFields(t *testing.T) {
	payload := payloadFor("Contact", map[string]any{
		"name":  "Min Imal",
		"email": "min@example.com",
	})

	result := Map(payload)

	require.Equal(t, models.KindInquiry, result.Kind)
	rec := result.Inquiry
	assert.Equal(t, "Min Imal", rec.FullName)
	assert.Nil(t, rec.Phone)
	assert.Nil(t, rec.ServiceTypeSlug)
	assert.Nil(t, rec.PreferredSchedule)
	assert.Empty(t, rec.Message)
	assert.Empty(t, rec.UTM)
	assert.Empty(t, rec.Metadata)
}

func TestMap_Newsletter(t *testing.T) {
	payload := payloadFor("Footer Newsletter Signup", map[string]any{
		"email":      "Subscriber@Example.com",
		"First Name": "Pat",
		"tags":       "Weekly Digest, promos,, weekly digest",
	})

	result := Map(payload)

	require.Equal(t, models.KindNewsletter, result.Kind)
	require.NotNil(t, result.Newsletter)
	assert.Nil(t, result.Inquiry)

	rec := result.Newsletter
	assert.Equal(t, "subscriber@example.com", rec.Email)
	require.NotNil(t, rec.FullName)
	assert.Equal(t, "Pat", *rec.FullName)
	// Tags are slugged and de-duplicated, order preserved.
	assert.Equal(t, []string{"weekly-digest", "promos"}, rec.Tags)
	assert.Equal(t, "webflow:newsletter", result.Source)
}

func TestMap_UnknownKeepsRawPayload(t *testing.T) {
	payload := payloadFor("Careers Form", map[string]any{"resume": "..."})

	result := Map(payload)

	require.Equal(t, models.KindUnknown, result.Kind)
	assert.Equal(t, "unknown", string(result.Kind))
	assert.Equal(t, payload.Raw, result.RawPayload)
	assert.Equal(t, "webflow:unknown", result.Source)
	assert.Equal(t, "Careers Form", result.FormName)
}

func TestMap_SourceUsesSiteIdentity(t *testing.T) {
	payload := &models.SubmissionPayload{
		FormName:   "Contact",
		SiteDomain: "example.com",
		Data:       map[string]any{},
		Raw:        map[string]any{},
	}
	assert.Equal(t, "example.com:contact", Map(payload).Source)

	payload = &models.SubmissionPayload{
		FormName: "Contact",
		SiteName: "Example Site",
		Data:     map[string]any{},
		Raw:      map[string]any{},
	}
	assert.Equal(t, "Example Site:contact", Map(payload).Source)
}

func TestMap_FormNameFallsBackToName(t *testing.T) {
	payload := &models.SubmissionPayload{
		Name: "Sidebar Contact",
		Data: map[string]any{},
		Raw:  map[string]any{},
	}
	result := Map(payload)
	assert.Equal(t, models.KindInquiry, result.Kind)
	assert.Equal(t, "Sidebar Contact", result.FormName)
}

func TestMap_DefaultFormNames(t *testing.T) {
	result := Map(&models.SubmissionPayload{
		Data: map[string]any{"form-target": "contact"},
		Raw:  map[string]any{},
	})
	assert.Equal(t, "contact", result.FormName)

	result = Map(&models.SubmissionPayload{
		Data: map[string]any{"form-target": "newsletter"},
		Raw:  map[string]any{},
	})
	assert.Equal(t, "newsletter", result.FormName)
}
