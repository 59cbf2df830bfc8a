// Package webhook delivers bracket notifications to an external HTTP endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/abrezinsky/derbybracket/internal/logger"
)

// Event is one engine notification as delivered to the endpoint
type Event struct {
	Type  string          `json:"type"`
	Round int             `json:"round"`
	Game  *int            `json:"game,omitempty"`
	Team  *int            `json:"team,omitempty"`
	Score *float64        `json:"score,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"` // generated round, if any
	At    time.Time       `json:"at"`
}

// Notification is the request body POSTed to the endpoint
type Notification struct {
	TournamentID string    `json:"tournament_id"`
	Events       []Event   `json:"events"`
	SentAt       time.Time `json:"sent_at"`
}

// Client defines the interface for webhook delivery
type Client interface {
	// Send posts a notification. It is a no-op when no URL is configured.
	Send(ctx context.Context, n Notification) error
	// URL returns the configured endpoint
	URL() string
	// SetURL updates the endpoint; an empty URL disables delivery
	SetURL(url string)
}

// HTTPClient is a real HTTP client for webhook delivery
type HTTPClient struct {
	mu         sync.RWMutex
	url        string
	httpClient *http.Client
	log        logger.Logger
}

// NewHTTPClient creates a new webhook client with the given request timeout
func NewHTTPClient(url string, timeout time.Duration, log logger.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// NewHTTPClientWithHTTPClient creates a new webhook client with a custom http.Client
func NewHTTPClientWithHTTPClient(url string, httpClient *http.Client, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		url:        url,
		httpClient: httpClient,
		log:        log,
	}
}

// URL returns the configured endpoint
func (c *HTTPClient) URL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.url
}

// SetURL updates the endpoint
func (c *HTTPClient) SetURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.url = url
}

// Send posts the notification as JSON and expects a 2xx response
func (c *HTTPClient) Send(ctx context.Context, n Notification) error {
	target := c.URL()
	if target == "" {
		return nil
	}
	if n.SentAt.IsZero() {
		n.SentAt = time.Now().UTC()
	}

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	c.log.Debug("Webhook request", "method", "POST", "url", target, "tournament_id", n.TournamentID, "events", len(n.Events))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "derbybracket-webhook")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug("Webhook response", "status", resp.StatusCode, "body", string(respBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

var _ Client = (*HTTPClient)(nil)
