package webhook

import (
	"context"
	"sync"
)

// MockClient is a mock webhook client for testing
type MockClient struct {
	mu      sync.Mutex
	url     string
	sendErr error
	sent    []Notification
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithSendError makes every Send fail with err
func WithSendError(err error) MockOption {
	return func(m *MockClient) {
		m.sendErr = err
	}
}

// WithURL sets the initial URL
func WithURL(url string) MockOption {
	return func(m *MockClient) {
		m.url = url
	}
}

// NewMockClient creates a mock client with a placeholder URL
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{url: "http://mock-webhook.local/hook"}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send records the notification
func (m *MockClient) Send(ctx context.Context, n Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	if m.url == "" {
		return nil
	}
	m.sent = append(m.sent, n)
	return nil
}

// URL returns the configured URL
func (m *MockClient) URL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.url
}

// SetURL updates the URL
func (m *MockClient) SetURL(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.url = url
}

// Sent returns a copy of the delivered notifications
func (m *MockClient) Sent() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.sent))
	copy(out, m.sent)
	return out
}

var _ Client = (*MockClient)(nil)
