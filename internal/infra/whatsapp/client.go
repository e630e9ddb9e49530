// Package whatsapp implements the WhatsApp Cloud API text message sender.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"fenix/config"
	"fenix/internal/domain/service"
	"fenix/internal/errors"
)

const defaultAPIBaseURL = "https://graph.facebook.com/v18.0"

// client talks to the WhatsApp Cloud API messages endpoint.
type client struct {
	httpClient       *http.Client
	baseURL          string
	phoneNumberID    string
	accessToken      string
	defaultRecipient string
	logger           *slog.Logger
}

// NewClient is the constructor for the WhatsApp Cloud API client.
func NewClient(cfg *config.Config, logger *slog.Logger) service.WhatsAppSender {
	baseURL := defaultAPIBaseURL
	if cfg.WhatsApp != nil && cfg.WhatsApp.APIBaseURL != "" {
		baseURL = cfg.WhatsApp.APIBaseURL
	}

	c := &client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		logger:     logger,
	}
	if cfg.WhatsApp != nil {
		c.phoneNumberID = cfg.WhatsApp.PhoneNumberID
		c.accessToken = cfg.WhatsApp.AccessToken
		c.defaultRecipient = cfg.WhatsApp.DefaultRecipient
	}

	return c
}

type textPayload struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textContent `json:"text"`
}

type textContent struct {
	Body string `json:"body"`
}

// SendText posts a plain text message. An empty recipient falls back to the
// platform's default recipient.
func (c *client) SendText(ctx context.Context, recipient, message string) error {
	if c.phoneNumberID == "" || c.accessToken == "" {
		return errors.New("whatsapp credentials are not configured")
	}

	if recipient == "" {
		recipient = c.defaultRecipient
	}
	if recipient == "" {
		return errors.New("no whatsapp recipient available")
	}

	payload := textPayload{
		MessagingProduct: "whatsapp",
		To:               recipient,
		Type:             "text",
		Text:             textContent{Body: message},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal whatsapp payload")
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build whatsapp request")
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "whatsapp request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return errors.Errorf("whatsapp API returned %d: %s", resp.StatusCode, string(respBody))
	}

	c.logger.DebugContext(ctx, "whatsapp message sent",
		slog.String("recipient", recipient),
	)

	return nil
}
