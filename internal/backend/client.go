package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// APIError is returned for any non-2xx backend response. The orchestrator
// treats every APIError uniformly as "operation failed"; the status code
// is kept for logging only.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Client talks to the email-assistant backend API. It is stateless; every
// method is a single request/response with the bearer credential attached
// by the underlying oauth2 transport.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client. A nil token source produces an
// unauthenticated client, which is only useful in tests.
func NewClient(baseURL string, tokenSource oauth2.TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if tokenSource != nil {
		httpClient = oauth2.NewClient(context.Background(), tokenSource)
		httpClient.Timeout = timeout
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SendChatMessage submits free-form user text for classification and
// returns the assistant's reply
func (c *Client) SendChatMessage(ctx context.Context, text string) (*ChatResponse, error) {
	var resp ChatResponse
	payload := map[string]string{"message": text}
	if err := c.do(ctx, http.MethodPost, "/api/chat/message", payload, &resp); err != nil {
		return nil, fmt.Errorf("chat message failed: %w", err)
	}
	return &resp, nil
}

// ListRecentEmails fetches the user's most recent emails, summarized,
// in backend order
func (c *Client) ListRecentEmails(ctx context.Context) ([]Email, error) {
	var emails []Email
	if err := c.do(ctx, http.MethodGet, "/api/emails/recent", nil, &emails); err != nil {
		return nil, fmt.Errorf("could not fetch recent emails: %w", err)
	}
	return emails, nil
}

// GenerateReply asks the backend to draft a reply for one email
func (c *Client) GenerateReply(ctx context.Context, emailID string) (*Reply, error) {
	if emailID == "" {
		return nil, fmt.Errorf("emailID cannot be empty")
	}
	var reply Reply
	payload := map[string]string{"email_id": emailID}
	if err := c.do(ctx, http.MethodPost, "/api/emails/generate-reply", payload, &reply); err != nil {
		return nil, fmt.Errorf("could not generate reply for %s: %w", emailID, err)
	}
	return &reply, nil
}

// SendReply sends a drafted reply through the backend
func (c *Client) SendReply(ctx context.Context, emailID, content string) error {
	if emailID == "" {
		return fmt.Errorf("emailID cannot be empty")
	}
	payload := map[string]string{"email_id": emailID, "reply_content": content}
	if err := c.do(ctx, http.MethodPost, "/api/emails/send-reply", payload, nil); err != nil {
		return fmt.Errorf("could not send reply for %s: %w", emailID, err)
	}
	return nil
}

// DeleteEmail deletes one email by ID
func (c *Client) DeleteEmail(ctx context.Context, emailID string) error {
	if emailID == "" {
		return fmt.Errorf("emailID cannot be empty")
	}
	path := "/api/emails/delete/" + url.PathEscape(emailID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("could not delete email %s: %w", emailID, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	return nil
}

// readDetail extracts FastAPI's {"detail": "..."} error body when present
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(data, &body) == nil && body.Detail != "" {
		return body.Detail
	}
	return strings.TrimSpace(string(data))
}
