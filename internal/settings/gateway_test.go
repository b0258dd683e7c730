// internal/settings/gateway_test.go
package settings

import (
	"context"
	"testing"

	"turbo-admin/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	return NewGateway(newTestDB(t), newSpyCache())
}

func TestResendConfigGating(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	// Lazily created default row: inactive, no key.
	cfg, err := g.ResendConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	// Active but missing its API key is still "not configured".
	require.NoError(t, g.Resend.Save(ctx, &models.ResendConfiguration{IsActive: true}))
	cfg, err = g.ResendConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	// Key present but toggled off.
	require.NoError(t, g.Resend.Save(ctx, &models.ResendConfiguration{APIKey: "re_123"}))
	cfg, err = g.ResendConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	require.NoError(t, g.Resend.Save(ctx, &models.ResendConfiguration{IsActive: true, APIKey: "re_123", FromEmail: "no-reply@example.com"}))
	cfg, err = g.ResendConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "re_123", cfg.APIKey)
}

func TestStripeConfigGating(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	cfg, err := g.StripeConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	require.NoError(t, g.Stripe.Save(ctx, &models.StripeConfiguration{IsActive: true, SecretKey: "sk_test_abc"}))
	cfg, err = g.StripeConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "sk_test_abc", cfg.SecretKey)
}

func TestEditorConfigGating(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	cfg, err := g.EditorConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	require.NoError(t, g.Editor.Save(ctx, &models.EditorConfiguration{IsActive: true, APIKey: "tiny-key"}))
	cfg, err = g.EditorConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Contains(t, cfg.ScriptURL(), "tiny-key")
}

func TestCloudinaryConfigRequiresAllCredentials(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	partials := []models.CloudinaryConfiguration{
		{IsActive: true, APIKey: "key", APISecret: "secret"},
		{IsActive: true, CloudName: "demo", APISecret: "secret"},
		{IsActive: true, CloudName: "demo", APIKey: "key"},
	}
	for _, p := range partials {
		p := p
		require.NoError(t, g.Cloudinary.Save(ctx, &p))
		cfg, err := g.CloudinaryConfig(ctx)
		require.NoError(t, err)
		assert.Nil(t, cfg, "any missing credential must gate the config off")
	}

	require.NoError(t, g.Cloudinary.Save(ctx, &models.CloudinaryConfiguration{
		IsActive: true, CloudName: "demo", APIKey: "key", APISecret: "secret",
	}))
	cfg, err := g.CloudinaryConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "demo", cfg.CloudName)
}

func TestConfigChangeVisibleImmediately(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	require.NoError(t, g.Resend.Save(ctx, &models.ResendConfiguration{IsActive: true, APIKey: "re_old"}))
	cfg, err := g.ResendConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "re_old", cfg.APIKey)

	require.NoError(t, g.Resend.Save(ctx, &models.ResendConfiguration{IsActive: true, APIKey: "re_new"}))
	cfg, err = g.ResendConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "re_new", cfg.APIKey, "gated read right after a save must see the new key")

	// Deactivation takes effect on the next read as well.
	require.NoError(t, g.Resend.Save(ctx, &models.ResendConfiguration{IsActive: false, APIKey: "re_new"}))
	cfg, err = g.ResendConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestRecordEmailTestResult(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	require.NoError(t, g.RecordEmailTestResult(ctx, true))
	cfg, err := g.Resend.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg.LastTestAt)
	assert.Equal(t, models.ResendTestSuccess, cfg.LastTestStatus)
	successAt := *cfg.LastTestAt

	// A later failure flips the status but keeps the last success timestamp.
	require.NoError(t, g.RecordEmailTestResult(ctx, false))
	cfg, err = g.Resend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ResendTestFailed, cfg.LastTestStatus)
	require.NotNil(t, cfg.LastTestAt)
	assert.Equal(t, successAt.UnixNano(), cfg.LastTestAt.UnixNano())
}
