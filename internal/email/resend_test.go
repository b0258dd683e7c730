// internal/email/resend_test.go
package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"turbo-admin/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeConfig() *models.ResendConfiguration {
	return &models.ResendConfiguration{
		IsActive:  true,
		APIKey:    "re_test_key",
		FromEmail: "no-reply@example.com",
		FromName:  "Turbo",
	}
}

func TestSendSuccess(t *testing.T) {
	var got struct {
		From    string   `json:"from"`
		To      []string `json:"to"`
		Subject string   `json:"subject"`
		HTML    string   `json:"html"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test_key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	ok, msg := client.Send(context.Background(), activeConfig(), "reader@example.com", "Hello", "<p>hi</p>")
	assert.True(t, ok)
	assert.Equal(t, "Email sent successfully.", msg)
	assert.Equal(t, "Turbo <no-reply@example.com>", got.From)
	assert.Equal(t, []string{"reader@example.com"}, got.To)
	assert.Equal(t, "Hello", got.Subject)
}

func TestSendProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"message":"Invalid from address"}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	ok, msg := client.Send(context.Background(), activeConfig(), "reader@example.com", "Hello", "<p>hi</p>")
	assert.False(t, ok)
	assert.Equal(t, "Failed to send email: Invalid from address", msg)
}

func TestSendUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClientWithBaseURL(srv.URL)
	ok, msg := client.Send(context.Background(), activeConfig(), "reader@example.com", "Hello", "<p>hi</p>")
	assert.False(t, ok)
	assert.Contains(t, msg, "Failed to send email")
}

func TestSendTestRequiresCredentials(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()
	client := NewClientWithBaseURL(srv.URL)

	ok, msg := client.SendTest(context.Background(), &models.ResendConfiguration{FromEmail: "a@b.c"}, "admin@example.com")
	assert.False(t, ok)
	assert.Equal(t, "API key is not configured.", msg)

	ok, msg = client.SendTest(context.Background(), &models.ResendConfiguration{APIKey: "re_x"}, "admin@example.com")
	assert.False(t, ok)
	assert.Equal(t, "From email is not configured.", msg)

	assert.Zero(t, hits, "missing credentials must be reported without an API call")
}

func TestSendTestSuccessMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"email_456"}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	ok, msg := client.SendTest(context.Background(), activeConfig(), "admin@example.com")
	assert.True(t, ok)
	assert.Equal(t, "Test email sent successfully to admin@example.com", msg)
}
