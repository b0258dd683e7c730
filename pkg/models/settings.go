// pkg/models/settings.go
package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// SingletonID is the fixed primary key every configuration row is written under,
// regardless of the identity supplied by the caller.
const SingletonID uint = 1

// Singleton is implemented by configuration records that are constrained to a
// single stored row. SingletonName is used to build the cache key;
// ForceSingletonKey pins the primary key to SingletonID before any write.
type Singleton interface {
	SingletonName() string
	ForceSingletonKey()
}

// StripeConfiguration stores Stripe API settings.
type StripeConfiguration struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	IsActive       bool      `json:"is_active" gorm:"not null;default:false"`
	PublishableKey string    `json:"publishable_key" gorm:"type:varchar(255)"` // pk_test_... or pk_live_...
	SecretKey      string    `json:"secret_key" gorm:"type:varchar(255)"`      // sk_test_... or sk_live_...
	WebhookSecret  string    `json:"webhook_secret" gorm:"type:varchar(255)"`  // whsec_...
	IsLiveMode     bool      `json:"is_live_mode" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (StripeConfiguration) SingletonName() string { return "StripeConfiguration" }

func (c *StripeConfiguration) ForceSingletonKey() { c.ID = SingletonID }

func (StripeConfiguration) TableName() string { return "stripe_configuration" }

// ResendTestStatus values for ResendConfiguration.LastTestStatus.
const (
	ResendTestNotTested = ""
	ResendTestSuccess   = "success"
	ResendTestFailed    = "failed"
)

// ResendConfiguration stores Resend email API settings.
type ResendConfiguration struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	IsActive       bool       `json:"is_active" gorm:"not null;default:false"`
	APIKey         string     `json:"api_key" gorm:"type:varchar(255)"` // re_...
	FromEmail      string     `json:"from_email" gorm:"type:varchar(255)"`
	FromName       string     `json:"from_name" gorm:"type:varchar(255)"`
	LastTestAt     *time.Time `json:"last_test_at,omitempty"`
	LastTestStatus string     `json:"last_test_status" gorm:"type:varchar(50);default:''"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (ResendConfiguration) SingletonName() string { return "ResendConfiguration" }

func (c *ResendConfiguration) ForceSingletonKey() { c.ID = SingletonID }

func (ResendConfiguration) TableName() string { return "resend_configuration" }

// Sender returns the From header value, "Name <email>" when a name is set.
func (c *ResendConfiguration) Sender() string {
	if c.FromName != "" {
		return fmt.Sprintf("%s <%s>", c.FromName, c.FromEmail)
	}
	return c.FromEmail
}

// EditorConfiguration stores TinyMCE rich text editor settings.
type EditorConfiguration struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	IsActive bool   `json:"is_active" gorm:"not null;default:false"`
	APIKey   string `json:"api_key" gorm:"type:varchar(255)"`
	Height   uint   `json:"height" gorm:"not null"`
	Menubar  string `json:"menubar" gorm:"type:varchar(255)"`
	Plugins  string `json:"plugins" gorm:"type:text"`
	Toolbar  string `json:"toolbar" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (EditorConfiguration) SingletonName() string { return "EditorConfiguration" }

func (c *EditorConfiguration) ForceSingletonKey() { c.ID = SingletonID }

func (EditorConfiguration) TableName() string { return "editor_configuration" }

const (
	DefaultEditorHeight  = 500
	DefaultEditorMenubar = "file edit view insert format tools table help"
	DefaultEditorPlugins = "advlist autolink lists link image charmap preview anchor searchreplace visualblocks code fullscreen insertdatetime media table help wordcount"
	DefaultEditorToolbar = "undo redo | blocks | bold italic forecolor | alignleft aligncenter alignright alignjustify | bullist numlist outdent indent | removeformat | image media link | code | help"
)

func (c *EditorConfiguration) BeforeCreate(tx *gorm.DB) error {
	if c.Height == 0 {
		c.Height = DefaultEditorHeight
	}
	if c.Menubar == "" {
		c.Menubar = DefaultEditorMenubar
	}
	if c.Plugins == "" {
		c.Plugins = DefaultEditorPlugins
	}
	if c.Toolbar == "" {
		c.Toolbar = DefaultEditorToolbar
	}
	return nil
}

// ConfigMap returns the editor init options handed to the admin frontend.
func (c *EditorConfiguration) ConfigMap() map[string]any {
	return map[string]any{
		"height":             c.Height,
		"menubar":            c.Menubar,
		"plugins":            strings.Fields(c.Plugins),
		"toolbar":            c.Toolbar,
		"content_css":        "default",
		"relative_urls":      false,
		"remove_script_host": false,
		"convert_urls":       true,
		"branding":           false,
		"promotion":          false,
		"referrer_policy":    "origin",
	}
}

// ScriptURL returns the editor CDN URL, empty when no API key is configured.
func (c *EditorConfiguration) ScriptURL() string {
	if c.APIKey == "" {
		return ""
	}
	return fmt.Sprintf("https://cdn.tiny.cloud/1/%s/tinymce/7/tinymce.min.js", c.APIKey)
}

// CloudinaryConfiguration stores Cloudinary media storage settings.
type CloudinaryConfiguration struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	IsActive      bool      `json:"is_active" gorm:"not null;default:false"`
	CloudName     string    `json:"cloud_name" gorm:"type:varchar(255)"`
	APIKey        string    `json:"api_key" gorm:"type:varchar(255)"`
	APISecret     string    `json:"api_secret" gorm:"type:varchar(255)"`
	DefaultFolder string    `json:"default_folder" gorm:"type:varchar(255)"`
	AutoOptimize  bool      `json:"auto_optimize" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (CloudinaryConfiguration) SingletonName() string { return "CloudinaryConfiguration" }

func (c *CloudinaryConfiguration) ForceSingletonKey() { c.ID = SingletonID }

func (CloudinaryConfiguration) TableName() string { return "cloudinary_configuration" }

// DefaultUploadFolder is used when no folder has been configured.
const DefaultUploadFolder = "uploads"

func (c *CloudinaryConfiguration) BeforeCreate(tx *gorm.DB) error {
	if c.CloudName == "" && c.APIKey == "" && c.APISecret == "" {
		// Lazily created default row: optimization is on until an admin turns it off.
		c.AutoOptimize = true
	}
	if c.DefaultFolder == "" {
		c.DefaultFolder = DefaultUploadFolder
	}
	return nil
}
