// Package mailrelay sends contact messages through an EmailJS-compatible
// HTTP relay.
package mailrelay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// maxBody caps how much of an error response is kept.
const maxBody = 4 << 10

type Request struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	// AccessToken is the optional private key for non-browser callers.
	AccessToken string
	Params      map[string]string
}

type payload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

type Client struct {
	Endpoint   string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewClient(endpoint string, logger *zap.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{Endpoint: endpoint, HTTPClient: http.DefaultClient, Logger: logger}
}

// Send delivers one message. There is no retry: the caller reports the
// outcome to the user as-is.
func (c *Client) Send(ctx context.Context, r Request) error {
	if r.ServiceID == "" || r.TemplateID == "" || r.PublicKey == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload{
		ServiceID:      r.ServiceID,
		TemplateID:     r.TemplateID,
		UserID:         r.PublicKey,
		AccessToken:    r.AccessToken,
		TemplateParams: r.Params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		c.log().Warn("mail relay request failed", zap.Error(err))
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log().Warn("mail relay rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)))
		return &SendError{Status: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}
	c.log().Info("mail relay accepted message", zap.String("service", r.ServiceID))
	return nil
}

func (c *Client) log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
