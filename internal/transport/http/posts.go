// internal/transport/http/posts.go
package http

import (
	"errors"
	"log"

	"turbo-admin/internal/media"
	"turbo-admin/internal/service"
	"turbo-admin/pkg/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (h *Handler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.blog.ListPosts(c.Context())
	if err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

func (h *Handler) GetPost(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid post id")
	}
	post, err := h.blog.GetPost(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
		}
		return storageError(c, err)
	}
	return c.JSON(post)
}

func (h *Handler) CreatePost(c *fiber.Ctx) error {
	var post models.Post
	if err := c.BodyParser(&post); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if post.Title == "" {
		return badRequest(c, "title is required")
	}
	if err := h.blog.SavePost(c.Context(), &post); err != nil {
		return storageError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *Handler) UpdatePost(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid post id")
	}
	post, err := h.blog.GetPost(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
		}
		return storageError(c, err)
	}
	if err := c.BodyParser(post); err != nil {
		return badRequest(c, "invalid JSON")
	}
	post.ID = id
	if err := h.blog.SavePost(c.Context(), post); err != nil {
		return storageError(c, err)
	}
	return c.JSON(post)
}

func (h *Handler) DeletePost(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid post id")
	}
	if err := h.blog.DeletePost(c.Context(), id); err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

func (h *Handler) PublishPost(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid post id")
	}
	post, err := h.blog.PublishPost(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
		}
		return storageError(c, err)
	}
	return c.JSON(post)
}

// UploadFeaturedImage stages a multipart image against the post and re-saves
// it, which runs the media sync. When the media host is unreachable or not
// configured the save still succeeds and the staged reference is kept.
func (h *Handler) UploadFeaturedImage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid post id")
	}
	post, err := h.blog.GetPost(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
		}
		return storageError(c, err)
	}

	ref, ok := h.stageUpload(c, "image")
	if !ok {
		return badRequest(c, "multipart field 'image' is required")
	}

	post.FeaturedImage = ref
	if err := h.blog.SavePost(c.Context(), post); err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{
		"featured_image":     post.FeaturedImage,
		"featured_image_url": post.FeaturedImageURL,
	})
}

// UploadGalleryImage ships a gallery asset straight to the media host and
// appends the resulting URL to the post.
func (h *Handler) UploadGalleryImage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid post id")
	}

	ref, ok := h.stageUpload(c, "image")
	if !ok {
		return badRequest(c, "multipart field 'image' is required")
	}

	state := h.syncer.Sync(c.Context(), media.MediaState{FileRef: ref}, media.MediaState{}, service.GalleryFolder)
	if state.RemoteURL == "" {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "media host rejected the upload or is not configured",
		})
	}
	if err := h.blog.AppendGalleryURL(c.Context(), id, state.RemoteURL); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
		}
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"url": state.RemoteURL})
}

// stageUpload writes one multipart file into the staging dir and returns its
// file reference.
func (h *Handler) stageUpload(c *fiber.Ctx, field string) (string, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", false
	}
	f, err := fileHeader.Open()
	if err != nil {
		log.Printf("❌ [UPLOAD] Opening %q failed: %v", fileHeader.Filename, err)
		return "", false
	}
	defer f.Close()

	ref, err := h.staging.Save(fileHeader.Filename, f)
	if err != nil {
		log.Printf("❌ [UPLOAD] Staging %q failed: %v", fileHeader.Filename, err)
		return "", false
	}
	return ref, true
}
