// Package notify delivers portal events to an external ops webhook.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lindqvistmarin/slipway/internal/config"
)

// Event is the JSON payload posted to the webhook.
type Event struct {
	Event     string    `json:"event"`
	BoatID    string    `json:"boat_id,omitempty"`
	Reference string    `json:"reference,omitempty"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

// Event names emitted by the portal.
const (
	EventNoteRecorded   = "note.recorded"
	EventInvoiceOverdue = "invoice.overdue"
)

// Client exposes the webhook operations used by the application.
type Client interface {
	Post(ctx context.Context, event Event) error
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client using the provided configuration values.
func NewClient(cfg config.NotifyConfig) *WebhookClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &WebhookClient{
		httpClient: restyClient,
		url:        cfg.WebhookURL,
	}
}

// apiError represents a structured error payload from the receiving end.
type apiError struct {
	Error string `json:"error"`
}

// Post delivers a single event to the configured webhook.
func (c *WebhookClient) Post(ctx context.Context, event Event) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(event).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post webhook event %s: %w", event.Event, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Error
		if message == "" {
			message = resp.Status()
		}
		return fmt.Errorf("webhook rejected event %s: %s", event.Event, message)
	}

	return nil
}
