// internal/email/resend.go
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"turbo-admin/pkg/models"
)

const (
	// DefaultBaseURL is the Resend API root.
	DefaultBaseURL = "https://api.resend.com"

	sendTimeout = 10 * time.Second
)

// Client is a thin wrapper over the Resend HTTP API. Every call is a single
// synchronous request; retry policy, if any, belongs to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: sendTimeout},
	}
}

// NewClientWithBaseURL points the client at a different API root. Used in tests.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

type sendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send performs one POST /emails call with the given configuration and
// classifies the outcome into an (ok, message) pair. Non-2xx responses carry
// the provider's message verbatim when the body is structured.
func (c *Client) Send(ctx context.Context, cfg *models.ResendConfiguration, to, subject, html string) (bool, string) {
	payload, err := json.Marshal(sendPayload{
		From:    cfg.Sender(),
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return false, fmt.Sprintf("Failed to send email: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Sprintf("Failed to send email: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			log.Printf("⚠️ [EMAIL] Send to %s timed out", to)
			return false, "Request timed out. Please try again."
		}
		log.Printf("❌ [EMAIL] Send to %s failed: %v", to, err)
		return false, fmt.Sprintf("Failed to send email: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		log.Printf("✅ [EMAIL] Sent to %s (Subject: %s)", to, subject)
		return true, "Email sent successfully."
	}

	body, _ := io.ReadAll(resp.Body)
	message := string(body)
	var errBody struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &errBody) == nil && errBody.Message != "" {
		message = errBody.Message
	}
	log.Printf("❌ [EMAIL] Resend API error (%d): %s", resp.StatusCode, message)
	return false, fmt.Sprintf("Failed to send email: %s", message)
}

// SendTest sends the fixed configuration test email. Missing credentials are
// reported without making an HTTP call.
func (c *Client) SendTest(ctx context.Context, cfg *models.ResendConfiguration, to string) (bool, string) {
	if cfg.APIKey == "" {
		return false, "API key is not configured."
	}
	if cfg.FromEmail == "" {
		return false, "From email is not configured."
	}

	html := `
        <h1>Test Email Successful!</h1>
        <p>Your Resend email configuration is working correctly.</p>
        <p>This email was sent from Turbo Admin settings.</p>
    `
	ok, msg := c.Send(ctx, cfg, to, "Test Email - Turbo Configuration", html)
	if ok {
		return true, fmt.Sprintf("Test email sent successfully to %s", to)
	}
	return false, msg
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded)
}
