package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Publisher is the live-update broadcast collaborator. Events are fire-and-forget
// from the caller's point of view; delivery failures are reported but never
// fail the request that triggered them.
type Publisher interface {
	Publish(ctx context.Context, event string, payload interface{}) error
}

// Event is the wire format posted to the publish endpoint.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Client posts events to an external publish endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(url string, logger *zap.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) Publish(ctx context.Context, event string, payload interface{}) error {
	body, err := json.Marshal(Event{Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create publish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to publish event", zap.String("event", event), zap.Error(err))
		return fmt.Errorf("failed to publish event %s: %w", event, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		c.logger.Error("Publish endpoint returned non-OK status",
			zap.String("event", event), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("publish endpoint returned status: %d", resp.StatusCode)
	}

	return nil
}

// Noop discards every event. Used when the publisher is disabled in config.
type Noop struct{}

func (Noop) Publish(ctx context.Context, event string, payload interface{}) error {
	return nil
}
