// Package mail implements the gateway.Mailbox contract against the
// external mail server's conversation API. All consumers treat this
// collaborator as best-effort; the client itself reports errors normally
// and leaves degradation to the caller.
package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"crm-relay.io/relay/internal/config"
	"crm-relay.io/relay/internal/domain"
	"crm-relay.io/relay/internal/gateway"
)

var _ gateway.Mailbox = (*Client)(nil)

// Client talks to the connected mail server.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a mail server client from configuration.
func New(cfg config.MailboxConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Messages returns the messages of a conversation.
func (c *Client) Messages(ctx context.Context, conversationID string) ([]domain.MailMessage, error) {
	path := fmt.Sprintf("%s/api/conversations/%s/messages", c.baseURL, url.PathEscape(conversationID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mail server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mail server: status %d", resp.StatusCode)
	}

	messages := []domain.MailMessage{}
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return nil, fmt.Errorf("decode conversation messages: %w", err)
	}
	return messages, nil
}

// Ping verifies mail server reachability.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail server: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mail server: status %d", resp.StatusCode)
	}
	return nil
}
