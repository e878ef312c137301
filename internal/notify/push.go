// Package notify delivers push notifications to an external gateway.
// Dispatch is best-effort: failures are logged and swallowed, never
// propagated into a caller's transaction.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Pusher sends one push message to a device token.
type Pusher interface {
	Push(ctx context.Context, token, title, body string, data map[string]string) error
}

type pushPayload struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// GatewayClient POSTs to an HTTP push gateway (FCM-style).
type GatewayClient struct {
	url    string
	apiKey string
	client *http.Client
}

func NewGatewayClient(url, apiKey string, timeout time.Duration) *GatewayClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &GatewayClient{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

func (g *GatewayClient) Push(ctx context.Context, token, title, body string, data map[string]string) error {
	if g.url == "" {
		return nil
	}

	payload, err := json.Marshal(pushPayload{To: token, Title: title, Body: body, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway returned %d", resp.StatusCode)
	}
	return nil
}

// NopPusher drops everything. Used when no gateway is configured and in
// tests.
type NopPusher struct{}

func (NopPusher) Push(context.Context, string, string, string, map[string]string) error {
	return nil
}

// LogFailure records a failed delivery without surfacing it.
func LogFailure(err error, token string) {
	if err != nil {
		slog.Error("push delivery failed", "error", err, "token", token)
	}
}
