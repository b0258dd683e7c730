// pkg/models/blog.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// Category groups blog posts.
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Slug        string    `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Tag labels blog posts.
type Tag struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name string    `json:"name" gorm:"type:varchar(50);not null"`
	Slug string    `json:"slug" gorm:"type:varchar(50);uniqueIndex;not null"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Post is a blog post. FeaturedImage holds a staged local file reference until
// the media sync uploads it and rewrites FeaturedImageURL.
type Post struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title   string    `json:"title" gorm:"type:varchar(255);not null"`
	Slug    string    `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Excerpt string    `json:"excerpt" gorm:"type:text"`
	Content string    `json:"content" gorm:"type:text"`
	// Media
	FeaturedImage    string         `json:"featured_image,omitempty" gorm:"type:varchar(500)"`
	FeaturedImageURL string         `json:"featured_image_url,omitempty" gorm:"type:varchar(500)"`
	GalleryURLs      datatypes.JSON `json:"gallery_urls,omitempty" gorm:"type:jsonb"` // []string of remote URLs
	// Classification
	AuthorID   *uuid.UUID `json:"author_id,omitempty" gorm:"type:uuid;index"`
	CategoryID *uuid.UUID `json:"category_id,omitempty" gorm:"type:uuid;index"`
	Tags       []Tag      `json:"tags,omitempty" gorm:"many2many:post_tags"`
	// Publishing
	Status      PostStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	IsFeatured  bool       `json:"is_featured" gorm:"not null;default:false"`
	PublishedAt *time.Time `json:"published_at,omitempty" gorm:"index"`
	// SEO
	MetaTitle       string `json:"meta_title" gorm:"type:varchar(70)"`
	MetaDescription string `json:"meta_description" gorm:"type:varchar(160)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
