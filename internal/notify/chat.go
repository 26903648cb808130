package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ChatChannel posts submissions to a Slack-compatible incoming webhook.
type ChatChannel struct {
	webhookURL string
	httpClient *http.Client
}

// NewChatChannel returns nil when no webhook URL is configured, which the
// dispatcher treats as "channel disabled".
func NewChatChannel(webhookURL string, timeout time.Duration) Channel {
	if webhookURL == "" {
		return nil
	}
	return &ChatChannel{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *ChatChannel) Name() string { return "chat" }

func (c *ChatChannel) Send(ctx context.Context, env Envelope) error {
	body, err := json.Marshal(map[string]string{"text": ChatMessage(env)})
	if err != nil {
		return fmt.Errorf("marshal chat message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send chat notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chat webhook responded with status %d", resp.StatusCode)
	}
	return nil
}
