// Package webhook posts campaign notifications to Discord webhooks.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

// Client defines the interface for webhook delivery
type Client interface {
	// Send posts a message to the webhook URL
	// Returns errors.InvalidArgument for malformed URLs
	// Returns errors.Unavailable when Discord cannot be reached
	// Returns errors.FailedPrecondition when Discord rejects the payload
	Send(ctx context.Context, webhookURL, content string) error

	// SendTest posts a canned test message so a game master can verify
	// their campaign's webhook configuration
	SendTest(ctx context.Context, webhookURL, campaignName string) error
}

// Config contains configuration options for the webhook client.
type Config struct {
	// HTTPTimeout for webhook requests (optional, defaults to 10 seconds)
	HTTPTimeout time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	return nil
}

type client struct {
	httpClient *http.Client
}

// New creates a new webhook client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &client{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}, nil
}

type discordMessage struct {
	Content string `json:"content"`
}

func (c *client) Send(ctx context.Context, webhookURL, content string) error {
	if err := validateURL(webhookURL); err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return errors.InvalidArgument("content cannot be empty")
	}

	body, err := json.Marshal(discordMessage{Content: content})
	if err != nil {
		return errors.Wrapf(err, "failed to marshal webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "failed to build webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Unavailablef("webhook delivery failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Discord returns a JSON error body worth surfacing
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.FailedPreconditionf("webhook rejected with status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	return nil
}

func (c *client) SendTest(ctx context.Context, webhookURL, campaignName string) error {
	content := "Webhook test from " + campaignName + ". You're all set."
	if strings.TrimSpace(campaignName) == "" {
		content = "Webhook test. You're all set."
	}
	return c.Send(ctx, webhookURL, content)
}

func validateURL(webhookURL string) error {
	if webhookURL == "" {
		return errors.InvalidArgument("webhook URL cannot be empty")
	}
	parsed, err := url.Parse(webhookURL)
	if err != nil || parsed.Host == "" {
		return errors.InvalidArgumentf("invalid webhook URL %q", webhookURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.InvalidArgumentf("webhook URL must use http or https, got %q", parsed.Scheme)
	}
	return nil
}
