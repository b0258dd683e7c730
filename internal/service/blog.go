// internal/service/blog.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"turbo-admin/internal/media"
	"turbo-admin/pkg/models"
	"turbo-admin/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeaturedImageFolder is where post featured images live on the media host.
const FeaturedImageFolder = "blog/featured"

// GalleryFolder is where post gallery uploads live on the media host.
const GalleryFolder = "blog/gallery"

// BlogService owns posts, categories and tags. Post saves run the media sync
// so a staged featured image is shipped to the media host before the row is
// written.
type BlogService struct {
	db     *gorm.DB
	syncer *media.Syncer
}

func NewBlogService(db *gorm.DB, syncer *media.Syncer) *BlogService {
	return &BlogService{db: db, syncer: syncer}
}

// --- Categories ---

func (s *BlogService) SaveCategory(ctx context.Context, c *models.Category) error {
	if c.Slug == "" {
		c.Slug = utils.Slugify(c.Name)
	}
	return s.db.WithContext(ctx).Save(c).Error
}

func (s *BlogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := s.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (s *BlogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

// --- Tags ---

func (s *BlogService) SaveTag(ctx context.Context, t *models.Tag) error {
	if t.Slug == "" {
		t.Slug = utils.Slugify(t.Name)
	}
	return s.db.WithContext(ctx).Save(t).Error
}

func (s *BlogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	var out []models.Tag
	err := s.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (s *BlogService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Tag{}, "id = ?", id).Error
}

// --- Posts ---

// SavePost persists a post. Blank slugs are derived from the title, the first
// transition to published stamps PublishedAt, and a staged featured image is
// synced to the media host before the write.
func (s *BlogService) SavePost(ctx context.Context, post *models.Post) error {
	if post.Slug == "" {
		post.Slug = utils.Slugify(post.Title)
	}
	if post.Status == models.PostStatusPublished && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	previous := media.MediaState{}
	if post.ID != uuid.Nil {
		var stored models.Post
		err := s.db.WithContext(ctx).Select("featured_image", "featured_image_url").
			First(&stored, "id = ?", post.ID).Error
		switch err {
		case nil:
			previous = media.MediaState{FileRef: stored.FeaturedImage, RemoteURL: stored.FeaturedImageURL}
		case gorm.ErrRecordNotFound:
			// first save with a caller-supplied id
		default:
			return err
		}
	}

	state := s.syncer.Sync(ctx,
		media.MediaState{FileRef: post.FeaturedImage, RemoteURL: post.FeaturedImageURL},
		previous, FeaturedImageFolder)
	post.FeaturedImage = state.FileRef
	post.FeaturedImageURL = state.RemoteURL

	return s.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(post).Error
}

func (s *BlogService) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Preload("Tags").First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *BlogService) ListPosts(ctx context.Context) ([]models.Post, error) {
	var out []models.Post
	err := s.db.WithContext(ctx).Preload("Tags").
		Order("published_at DESC NULLS LAST, created_at DESC").
		Find(&out).Error
	return out, err
}

func (s *BlogService) DeletePost(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error
}

// PublishPost flips a post to published, stamping PublishedAt on the first
// transition only.
func (s *BlogService) PublishPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Status = models.PostStatusPublished
	if err := s.SavePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// AppendGalleryURL records another uploaded gallery asset on the post.
func (s *BlogService) AppendGalleryURL(ctx context.Context, id uuid.UUID, url string) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}

	var urls []string
	if len(post.GalleryURLs) > 0 {
		if err := json.Unmarshal(post.GalleryURLs, &urls); err != nil {
			return fmt.Errorf("decode gallery urls: %w", err)
		}
	}
	urls = append(urls, url)
	raw, err := json.Marshal(urls)
	if err != nil {
		return fmt.Errorf("encode gallery urls: %w", err)
	}

	return s.db.WithContext(ctx).Model(post).Update("gallery_urls", raw).Error
}
