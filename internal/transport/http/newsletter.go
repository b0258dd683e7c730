// internal/transport/http/newsletter.go
package http

import (
	"errors"

	"turbo-admin/internal/service"
	"turbo-admin/pkg/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- Public subscription flow ---

func (h *Handler) Subscribe(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return badRequest(c, "email is required")
	}

	sub, err := h.newsletter.Subscribe(c.Context(), req.Email, req.Name)
	if err != nil {
		return storageError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": sub.Status,
	})
}

func (h *Handler) ConfirmSubscription(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return badRequest(c, "token is required")
	}
	sub, err := h.newsletter.Confirm(c.Context(), token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown or already used token"})
		}
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"status": sub.Status})
}

func (h *Handler) Unsubscribe(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.BodyParser(&req); err == nil {
			email = req.Email
		}
	}
	if email == "" {
		return badRequest(c, "email is required")
	}
	if err := h.newsletter.Unsubscribe(c.Context(), email); err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"status": "unsubscribed"})
}

// --- Admin: subscribers & campaigns ---

func (h *Handler) ListSubscribers(c *fiber.Ctx) error {
	subs, err := h.newsletter.ListSubscribers(c.Context())
	if err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"subscribers": subs})
}

func (h *Handler) ListNewsletters(c *fiber.Ctx) error {
	campaigns, err := h.newsletter.ListNewsletters(c.Context())
	if err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"newsletters": campaigns})
}

func (h *Handler) SaveNewsletter(c *fiber.Ctx) error {
	var campaign models.Newsletter
	if err := c.BodyParser(&campaign); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if campaign.Subject == "" {
		return badRequest(c, "subject is required")
	}
	if err := h.newsletter.SaveNewsletter(c.Context(), &campaign); err != nil {
		return storageError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(campaign)
}

func (h *Handler) DeleteNewsletter(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid newsletter id")
	}
	if err := h.newsletter.DeleteNewsletter(c.Context(), id); err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

func (h *Handler) SendNewsletter(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid newsletter id")
	}

	delivered, err := h.newsletter.SendNewsletter(c.Context(), id)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"status": "sent", "delivered": delivered})
	case errors.Is(err, service.ErrEmailNotConfigured):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadySent):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "newsletter not found"})
	default:
		return storageError(c, err)
	}
}
