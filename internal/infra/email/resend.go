// Package email talks to the Resend API: transactional sends and
// audience contact management.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"portfolio-api/internal/common"
	"portfolio-api/internal/domain/mail"
	"portfolio-api/internal/domain/subscription"
)

var (
	_ mail.Sender           = (*ResendClient)(nil)
	_ subscription.Audience = (*ResendClient)(nil)
)

const defaultBaseURL = "https://api.resend.com"

// ResendClient sends emails and manages audience contacts via the
// Resend REST API.
type ResendClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewResendClient creates a new Resend API client.
func NewResendClient(apiKey string) *ResendClient {
	return &ResendClient{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers an email and returns the provider's message ID.
func (c *ResendClient) Send(ctx context.Context, msg *mail.Message) (string, error) {
	payload := map[string]any{
		"from":    msg.From,
		"to":      []string{msg.To},
		"subject": msg.Subject,
		"html":    msg.HTML,
	}

	// Optional fields are omitted rather than sent empty
	if msg.Text != "" {
		payload["text"] = msg.Text
	}
	if msg.ReplyTo != "" {
		payload["reply_to"] = msg.ReplyTo
	}
	if len(msg.Headers) > 0 {
		payload["headers"] = msg.Headers
	}

	respBody, err := c.do(ctx, http.MethodPost, "/emails", payload)
	if err != nil {
		return "", err
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("parsing resend response: %w", err)
	}
	return resp.ID, nil
}

// CreateContact adds a contact to the audience. When the contact exists
// the returned error carries the provider's conflict message.
func (c *ResendClient) CreateContact(ctx context.Context, audienceID, email string) error {
	path := fmt.Sprintf("/audiences/%s/contacts", url.PathEscape(audienceID))
	_, err := c.do(ctx, http.MethodPost, path, map[string]any{"email": email})
	return err
}

// GetContact fetches a contact by email address.
func (c *ResendClient) GetContact(ctx context.Context, audienceID, email string) (*subscription.Contact, error) {
	respBody, err := c.do(ctx, http.MethodGet, contactPath(audienceID, email), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Email        string `json:"email"`
		Unsubscribed bool   `json:"unsubscribed"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("parsing contact response: %w", err)
	}
	return &subscription.Contact{Email: resp.Email, Unsubscribed: resp.Unsubscribed}, nil
}

// UpdateContact sets the contact's unsubscribed flag.
func (c *ResendClient) UpdateContact(ctx context.Context, audienceID, email string, unsubscribed bool) error {
	_, err := c.do(ctx, http.MethodPatch, contactPath(audienceID, email), map[string]any{
		"unsubscribed": unsubscribed,
	})
	return err
}

// RemoveContact deletes the contact from the audience.
func (c *ResendClient) RemoveContact(ctx context.Context, audienceID, email string) error {
	_, err := c.do(ctx, http.MethodDelete, contactPath(audienceID, email), nil)
	return err
}

func contactPath(audienceID, email string) string {
	return fmt.Sprintf("/audiences/%s/contacts/%s", url.PathEscape(audienceID), url.PathEscape(email))
}

// do executes one API call and returns the response body. Error
// responses become ProviderErrors carrying the API's own message text,
// which the subscription service relies on for classification.
func (c *ResendClient) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request payload: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(respBody, &errResp)

		msg := errResp.Message
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return nil, common.NewProviderError("resend", msg)
	}

	return respBody, nil
}
