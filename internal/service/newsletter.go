// internal/service/newsletter.go
package service

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"time"

	"turbo-admin/internal/email"
	"turbo-admin/internal/email/templates"
	"turbo-admin/internal/settings"
	"turbo-admin/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrEmailNotConfigured is returned when an operation exists only to send
	// email and no active Resend configuration is available.
	ErrEmailNotConfigured = errors.New("email service is not configured")

	// ErrAlreadySent is returned when a campaign has already gone out.
	ErrAlreadySent = errors.New("newsletter already sent")
)

// NewsletterService owns the subscription flow and campaign delivery.
type NewsletterService struct {
	db        *gorm.DB
	gateway   *settings.Gateway
	mailer    *email.Client
	publicURL string // base URL used in confirmation/unsubscribe links
}

func NewNewsletterService(db *gorm.DB, gateway *settings.Gateway, mailer *email.Client, publicURL string) *NewsletterService {
	return &NewsletterService{db: db, gateway: gateway, mailer: mailer, publicURL: publicURL}
}

// Subscribe registers (or revives) a subscriber as pending and sends the
// confirmation email when the email integration is configured. A missing
// email configuration degrades silently: the subscriber is still recorded.
func (s *NewsletterService) Subscribe(ctx context.Context, emailAddr, name string) (*models.NewsletterSubscriber, error) {
	token := uuid.NewString()

	var sub models.NewsletterSubscriber
	err := s.db.WithContext(ctx).Where("email = ?", emailAddr).First(&sub).Error
	switch {
	case err == nil:
		if sub.Status == models.SubscriberStatusActive {
			return &sub, nil
		}
		sub.Status = models.SubscriberStatusPending
		sub.ConfirmationToken = token
		sub.UnsubscribedAt = nil
		if name != "" {
			sub.Name = name
		}
		if err := s.db.WithContext(ctx).Save(&sub).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub = models.NewsletterSubscriber{
			Email:             emailAddr,
			Name:              name,
			Status:            models.SubscriberStatusPending,
			ConfirmationToken: token,
		}
		if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.sendConfirmation(ctx, &sub)
	return &sub, nil
}

func (s *NewsletterService) sendConfirmation(ctx context.Context, sub *models.NewsletterSubscriber) {
	cfg, err := s.gateway.ResendConfig(ctx)
	if err != nil {
		log.Printf("❌ [NEWSLETTER] Loading email config failed: %v", err)
		return
	}
	if cfg == nil {
		log.Printf("⚠️ [NEWSLETTER] Email not configured, skipping confirmation for %s", sub.Email)
		return
	}

	body, err := templates.RenderSubscriptionConfirmation(templates.ConfirmationData{
		Name:       sub.Name,
		ConfirmURL: fmt.Sprintf("%s/v1/newsletter/confirm?token=%s", s.publicURL, sub.ConfirmationToken),
	})
	if err != nil {
		log.Printf("❌ [NEWSLETTER] Rendering confirmation failed: %v", err)
		return
	}

	if ok, msg := s.mailer.Send(ctx, cfg, sub.Email, "Confirm your subscription", body); !ok {
		log.Printf("⚠️ [NEWSLETTER] Confirmation email to %s failed: %s", sub.Email, msg)
	}
}

// Confirm redeems a confirmation token, activating the subscriber.
func (s *NewsletterService) Confirm(ctx context.Context, token string) (*models.NewsletterSubscriber, error) {
	var sub models.NewsletterSubscriber
	err := s.db.WithContext(ctx).
		Where("confirmation_token = ? AND status = ?", token, models.SubscriberStatusPending).
		First(&sub).Error
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sub.Status = models.SubscriberStatusActive
	sub.ConfirmedAt = &now
	sub.ConfirmationToken = ""
	if err := s.db.WithContext(ctx).Save(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// Unsubscribe marks a subscriber as unsubscribed. Unknown addresses are a
// no-op so the endpoint does not leak membership.
func (s *NewsletterService) Unsubscribe(ctx context.Context, emailAddr string) error {
	now := time.Now().UTC()
	return s.db.WithContext(ctx).Model(&models.NewsletterSubscriber{}).
		Where("email = ?", emailAddr).
		Updates(map[string]any{
			"status":          models.SubscriberStatusUnsubscribed,
			"unsubscribed_at": now,
		}).Error
}

func (s *NewsletterService) ListSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	var out []models.NewsletterSubscriber
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

// --- Campaigns ---

func (s *NewsletterService) SaveNewsletter(ctx context.Context, n *models.Newsletter) error {
	return s.db.WithContext(ctx).Save(n).Error
}

func (s *NewsletterService) ListNewsletters(ctx context.Context) ([]models.Newsletter, error) {
	var out []models.Newsletter
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *NewsletterService) DeleteNewsletter(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Newsletter{}, "id = ?", id).Error
}

// SendNewsletter delivers a campaign to every active subscriber, one blocking
// send per recipient, then stamps the campaign as sent with the delivered
// count. Per-recipient failures are logged and skipped.
func (s *NewsletterService) SendNewsletter(ctx context.Context, id uuid.UUID) (int, error) {
	cfg, err := s.gateway.ResendConfig(ctx)
	if err != nil {
		return 0, err
	}
	if cfg == nil {
		return 0, ErrEmailNotConfigured
	}

	var campaign models.Newsletter
	if err := s.db.WithContext(ctx).First(&campaign, "id = ?", id).Error; err != nil {
		return 0, err
	}
	if campaign.Status == models.NewsletterStatusSent {
		return 0, ErrAlreadySent
	}

	var subscribers []models.NewsletterSubscriber
	if err := s.db.WithContext(ctx).
		Where("status = ?", models.SubscriberStatusActive).
		Find(&subscribers).Error; err != nil {
		return 0, err
	}

	delivered := 0
	for _, sub := range subscribers {
		body, err := templates.RenderNewsletter(templates.NewsletterData{
			Subject:        campaign.Subject,
			Content:        template.HTML(campaign.Content),
			UnsubscribeURL: fmt.Sprintf("%s/v1/newsletter/unsubscribe?email=%s", s.publicURL, sub.Email),
		})
		if err != nil {
			log.Printf("❌ [NEWSLETTER] Rendering campaign %s failed: %v", campaign.ID, err)
			break
		}
		if ok, msg := s.mailer.Send(ctx, cfg, sub.Email, campaign.Subject, body); ok {
			delivered++
		} else {
			log.Printf("⚠️ [NEWSLETTER] Delivery to %s failed: %s", sub.Email, msg)
		}
	}

	now := time.Now().UTC()
	campaign.Status = models.NewsletterStatusSent
	campaign.SentAt = &now
	campaign.RecipientsCount = uint(delivered)
	if err := s.db.WithContext(ctx).Save(&campaign).Error; err != nil {
		return delivered, err
	}

	log.Printf("✅ [NEWSLETTER] Campaign %q sent to %d/%d subscribers", campaign.Subject, delivered, len(subscribers))
	return delivered, nil
}

// SendTestEmail sends the fixed configuration test email using the stored
// Resend settings (gating does not apply: admins test inactive configs too)
// and records the outcome on the configuration.
func (s *NewsletterService) SendTestEmail(ctx context.Context, to string) (bool, string) {
	cfg, err := s.gateway.Resend.Load(ctx)
	if err != nil {
		return false, fmt.Sprintf("Failed to load email configuration: %v", err)
	}

	ok, msg := s.mailer.SendTest(ctx, cfg, to)
	if err := s.gateway.RecordEmailTestResult(ctx, ok); err != nil {
		log.Printf("⚠️ [NEWSLETTER] Recording test result failed: %v", err)
	}
	return ok, msg
}
