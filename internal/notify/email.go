package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultEmailEndpoint = "https://api.resend.com/emails"

// EmailChannel sends admin notifications through a transactional email
// API (Resend-style: POST {from, to, subject, html}).
type EmailChannel struct {
	endpoint   string
	apiKey     string
	from       string
	to         string
	httpClient *http.Client
}

// NewEmailChannel returns nil unless the API key, from-address and admin
// recipient are all configured.
func NewEmailChannel(apiKey, from, to string, timeout time.Duration) Channel {
	if apiKey == "" || from == "" || to == "" {
		return nil
	}
	return &EmailChannel{
		endpoint:   defaultEmailEndpoint,
		apiKey:     apiKey,
		from:       from,
		to:         to,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *EmailChannel) Name() string { return "email" }

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (c *EmailChannel) Send(ctx context.Context, env Envelope) error {
	body, err := json.Marshal(emailRequest{
		From:    c.from,
		To:      []string{c.to},
		Subject: EmailSubject(env),
		HTML:    EmailHTML(env),
	})
	if err != nil {
		return fmt.Errorf("marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("email API responded with status %d", resp.StatusCode)
	}
	return nil
}
