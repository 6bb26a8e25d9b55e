// Package notify wraps the notification gateway HTTP API used to reach
// customers about order state changes.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a thin wrapper over the gateway's JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// MessagePayload is the wire shape the gateway accepts.
type MessagePayload struct {
	Recipient string         `json:"recipient"`
	Template  string         `json:"template"`
	Reference string         `json:"reference"`
	Variables map[string]any `json:"variables,omitempty"`
}

// SendOption configures Send behavior.
type SendOption func(*sendOptions)

type sendOptions struct {
	idempotencyKey string
}

// WithIdempotencyKey sets the Idempotency-Key header for the request.
func WithIdempotencyKey(key string) SendOption {
	return func(opts *sendOptions) {
		opts.idempotencyKey = strings.TrimSpace(key)
	}
}

// NewClient instantiates the gateway client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("notification gateway base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}, nil
}

// Send posts the payload to the gateway.
func (c *Client) Send(ctx context.Context, payload MessagePayload, optFns ...SendOption) error {
	if c == nil || c.httpClient == nil {
		return errors.New("notification gateway client not configured")
	}
	if strings.TrimSpace(payload.Recipient) == "" {
		return errors.New("notification recipient is required")
	}
	if strings.TrimSpace(payload.Template) == "" {
		return errors.New("notification template is required")
	}
	var opts sendOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode notification payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/notifications", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if opts.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.idempotencyKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call notification gateway: %w", err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusAccepted:
		return nil
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("notification gateway error: %s", errorMessage(resp))
	default:
		return fmt.Errorf("notification gateway unexpected status: %s", resp.Status)
	}
}

type gatewayError struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func errorMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(raw) == 0 {
		return resp.Status
	}
	var body gatewayError
	if err := json.Unmarshal(raw, &body); err == nil {
		if msg := strings.TrimSpace(body.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(body.Status); msg != "" {
			return msg
		}
	}
	return resp.Status
}
