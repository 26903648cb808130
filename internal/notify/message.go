package notify

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/orbitlabs/formgate/internal/models"
)

// ChatMessage renders the envelope as a chat-webhook text message.
func ChatMessage(env Envelope) string {
	switch env.Kind {
	case models.KindInquiry:
		rec := env.Inquiry
		name := rec.FullName
		if name == "" {
			name = "Unknown"
		}
		lines := []string{fmt.Sprintf("*New inquiry from %s*", name)}
		if rec.Email != "" {
			lines = append(lines, "• Email: "+rec.Email)
		}
		if rec.Phone != nil {
			lines = append(lines, "• Phone: "+*rec.Phone)
		}
		if rec.ServiceTypeSlug != nil {
			lines = append(lines, "• Service type: "+*rec.ServiceTypeSlug)
		}
		if rec.PreferredSchedule != nil {
			lines = append(lines, "• Preferred schedule: "+rec.PreferredSchedule.Format(time.RFC3339))
		}
		if rec.Message != "" {
			lines = append(lines, "> "+rec.Message)
		}
		return strings.Join(lines, "\n")

	case models.KindNewsletter:
		rec := env.Newsletter
		name := ""
		if rec.FullName != nil {
			name = " – " + *rec.FullName
		}
		tags := ""
		if len(rec.Tags) > 0 {
			tags = fmt.Sprintf(" (%s)", strings.Join(rec.Tags, ", "))
		}
		return fmt.Sprintf("*New newsletter signup%s*: %s%s", name, rec.Email, tags)
	}

	return "Received form submission that could not be mapped automatically."
}

// EmailSubject renders the admin notification subject line.
func EmailSubject(env Envelope) string {
	switch env.Kind {
	case models.KindInquiry:
		name := "unknown contact"
		if env.Inquiry.FullName != "" {
			name = env.Inquiry.FullName
		}
		return "New inquiry from " + name
	case models.KindNewsletter:
		return "New newsletter signup"
	}
	return "New form submission"
}

// EmailHTML renders the admin notification body. Field values are escaped
// since they arrive straight from the public form.
func EmailHTML(env Envelope) string {
	lines := []string{fmt.Sprintf("<p>Type: <strong>%s</strong></p>", env.Kind)}

	appendLine := func(label, value string) {
		if value != "" {
			lines = append(lines, fmt.Sprintf("<p>%s: %s</p>", label, html.EscapeString(value)))
		}
	}

	switch env.Kind {
	case models.KindInquiry:
		rec := env.Inquiry
		appendLine("Name", rec.FullName)
		appendLine("Email", rec.Email)
		if rec.Phone != nil {
			appendLine("Phone", *rec.Phone)
		}
		if rec.ServiceTypeSlug != nil {
			appendLine("Service type", *rec.ServiceTypeSlug)
		}
		if rec.PreferredSchedule != nil {
			appendLine("Preferred schedule", rec.PreferredSchedule.Format(time.RFC3339))
		}
		if rec.Message != "" {
			lines = append(lines, fmt.Sprintf("<p>Message:</p><blockquote>%s</blockquote>", html.EscapeString(rec.Message)))
		}
	case models.KindNewsletter:
		rec := env.Newsletter
		if rec.FullName != nil {
			appendLine("Name", *rec.FullName)
		}
		appendLine("Email", rec.Email)
		if len(rec.Tags) > 0 {
			appendLine("Tags", strings.Join(rec.Tags, ", "))
		}
	}

	return strings.Join(lines, "\n")
}
