// internal/settings/gateway.go
package settings

import (
	"context"
	"time"

	"turbo-admin/pkg/models"

	"gorm.io/gorm"
)

// Gateway hands out integration configurations. Each accessor returns
// (nil, nil) when the integration is inactive or missing its required fields;
// callers treat that as a normal "not configured" outcome, never a failure.
type Gateway struct {
	Stripe     *Store[models.StripeConfiguration, *models.StripeConfiguration]
	Resend     *Store[models.ResendConfiguration, *models.ResendConfiguration]
	Editor     *Store[models.EditorConfiguration, *models.EditorConfiguration]
	Cloudinary *Store[models.CloudinaryConfiguration, *models.CloudinaryConfiguration]
}

func NewGateway(db *gorm.DB, cache Cache) *Gateway {
	return &Gateway{
		Stripe:     NewStore[models.StripeConfiguration](db, cache),
		Resend:     NewStore[models.ResendConfiguration](db, cache),
		Editor:     NewStore[models.EditorConfiguration](db, cache),
		Cloudinary: NewStore[models.CloudinaryConfiguration](db, cache),
	}
}

// StripeConfig returns the Stripe settings when active and a secret key is set.
func (g *Gateway) StripeConfig(ctx context.Context) (*models.StripeConfiguration, error) {
	cfg, err := g.Stripe.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.IsActive || cfg.SecretKey == "" {
		return nil, nil
	}
	return cfg, nil
}

// ResendConfig returns the Resend settings when active and an API key is set.
func (g *Gateway) ResendConfig(ctx context.Context) (*models.ResendConfiguration, error) {
	cfg, err := g.Resend.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.IsActive || cfg.APIKey == "" {
		return nil, nil
	}
	return cfg, nil
}

// EditorConfig returns the editor settings when active and an API key is set.
func (g *Gateway) EditorConfig(ctx context.Context) (*models.EditorConfiguration, error) {
	cfg, err := g.Editor.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.IsActive || cfg.APIKey == "" {
		return nil, nil
	}
	return cfg, nil
}

// CloudinaryConfig returns the media host settings when active and the cloud
// name, API key and API secret are all set.
func (g *Gateway) CloudinaryConfig(ctx context.Context) (*models.CloudinaryConfiguration, error) {
	cfg, err := g.Cloudinary.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.IsActive || cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, nil
	}
	return cfg, nil
}

// RecordEmailTestResult stamps the outcome of a test email onto the stored
// Resend configuration. LastTestAt tracks the last successful test only.
func (g *Gateway) RecordEmailTestResult(ctx context.Context, ok bool) error {
	cfg, err := g.Resend.Load(ctx)
	if err != nil {
		return err
	}
	if ok {
		now := time.Now().UTC()
		cfg.LastTestAt = &now
		cfg.LastTestStatus = models.ResendTestSuccess
	} else {
		cfg.LastTestStatus = models.ResendTestFailed
	}
	return g.Resend.Save(ctx, cfg)
}
