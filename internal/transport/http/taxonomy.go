// internal/transport/http/taxonomy.go
package http

import (
	"turbo-admin/pkg/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.blog.ListCategories(c.Context())
	if err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func (h *Handler) SaveCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if category.Name == "" {
		return badRequest(c, "name is required")
	}
	if err := h.blog.SaveCategory(c.Context(), &category); err != nil {
		return storageError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *Handler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid category id")
	}
	if err := h.blog.DeleteCategory(c.Context(), id); err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

func (h *Handler) ListTags(c *fiber.Ctx) error {
	tags, err := h.blog.ListTags(c.Context())
	if err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}

func (h *Handler) SaveTag(c *fiber.Ctx) error {
	var tag models.Tag
	if err := c.BodyParser(&tag); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if tag.Name == "" {
		return badRequest(c, "name is required")
	}
	if err := h.blog.SaveTag(c.Context(), &tag); err != nil {
		return storageError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

func (h *Handler) DeleteTag(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid tag id")
	}
	if err := h.blog.DeleteTag(c.Context(), id); err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
