// pkg/models/newsletter.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriberStatus string

const (
	SubscriberStatusPending      SubscriberStatus = "pending"
	SubscriberStatusActive       SubscriberStatus = "active"
	SubscriberStatusUnsubscribed SubscriberStatus = "unsubscribed"
)

// NewsletterSubscriber is a single mailing-list member. New subscribers start
// pending and become active once the confirmation token is redeemed.
type NewsletterSubscriber struct {
	ID                uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	Email             string           `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name              string           `json:"name" gorm:"type:varchar(100)"`
	Status            SubscriberStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	ConfirmationToken string           `json:"-" gorm:"type:varchar(100);index"`
	ConfirmedAt       *time.Time       `json:"confirmed_at,omitempty"`
	UnsubscribedAt    *time.Time       `json:"unsubscribed_at,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

func (s *NewsletterSubscriber) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type NewsletterStatus string

const (
	NewsletterStatusDraft     NewsletterStatus = "draft"
	NewsletterStatusScheduled NewsletterStatus = "scheduled"
	NewsletterStatusSent      NewsletterStatus = "sent"
)

// Newsletter is a campaign sent to active subscribers.
type Newsletter struct {
	ID              uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	Subject         string           `json:"subject" gorm:"type:varchar(255);not null"`
	Content         string           `json:"content" gorm:"type:text"`
	Status          NewsletterStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	ScheduledAt     *time.Time       `json:"scheduled_at,omitempty"`
	SentAt          *time.Time       `json:"sent_at,omitempty"`
	RecipientsCount uint             `json:"recipients_count" gorm:"not null;default:0"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (n *Newsletter) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
