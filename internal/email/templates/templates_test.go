// internal/email/templates/templates_test.go
package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSubscriptionConfirmation(t *testing.T) {
	html, err := RenderSubscriptionConfirmation(ConfirmationData{
		Name:       "Reader",
		ConfirmURL: "https://blog.example.com/v1/newsletter/confirm?token=abc",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Hi Reader")
	assert.Contains(t, html, "https://blog.example.com/v1/newsletter/confirm?token=abc")

	// Blank names fall back to a generic greeting.
	html, err = RenderSubscriptionConfirmation(ConfirmationData{ConfirmURL: "https://x"})
	require.NoError(t, err)
	assert.Contains(t, html, "Hi there")
}

func TestRenderNewsletterKeepsBodyHTML(t *testing.T) {
	html, err := RenderNewsletter(NewsletterData{
		Subject:        "Weekly Digest",
		Content:        "<h2>Top stories</h2>",
		UnsubscribeURL: "https://blog.example.com/v1/newsletter/unsubscribe?email=a@b.c",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "<h2>Top stories</h2>", "editor-produced HTML must not be escaped")
	assert.Contains(t, html, "unsubscribe")
}
