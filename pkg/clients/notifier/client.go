package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client delivers plain text notifications.
type Client interface {
	Send(ctx context.Context, text string) error
}

// WebhookClient posts notifications as JSON to an incoming-webhook URL
// (Slack, Mattermost, Discord-compatible and similar endpoints).
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewWebhookClient builds a resty-backed webhook client.
func NewWebhookClient(url string) *WebhookClient {
	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{httpClient: restyClient, url: url}
}

type webhookPayload struct {
	Text    string `json:"text"`
	Content string `json:"content"`
}

// apiError captures the error body most webhook endpoints return.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *WebhookClient) Send(ctx context.Context, text string) error {
	if c.url == "" {
		return errors.New("webhook url must not be empty")
	}

	apiErr := new(apiError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(webhookPayload{Text: text, Content: text}).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send webhook notification: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		if message == "" {
			message = resp.String()
		}
		return fmt.Errorf("webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}
	return nil
}
