// internal/transport/http/settings.go
package http

import (
	"log"
	"strings"

	"turbo-admin/pkg/models"

	"github.com/gofiber/fiber/v2"
)

// GetSettings returns the stored configuration for one integration kind
// (payments, email, editor, media), creating the default row on first read.
func (h *Handler) GetSettings(c *fiber.Ctx) error {
	ctx := c.Context()
	switch kind := strings.ToLower(c.Params("kind")); kind {
	case "stripe", "payments":
		cfg, err := h.gateway.Stripe.Load(ctx)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(cfg)
	case "resend", "email":
		cfg, err := h.gateway.Resend.Load(ctx)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(cfg)
	case "tinymce", "editor":
		cfg, err := h.gateway.Editor.Load(ctx)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(cfg)
	case "cloudinary", "media":
		cfg, err := h.gateway.Cloudinary.Load(ctx)
		if err != nil {
			return storageError(c, err)
		}
		return c.JSON(cfg)
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown configuration kind: " + kind})
	}
}

// UpdateSettings overwrites the configuration for one integration kind. The
// row is always written under the fixed singleton key no matter what id the
// payload carries.
func (h *Handler) UpdateSettings(c *fiber.Ctx) error {
	ctx := c.Context()
	switch kind := strings.ToLower(c.Params("kind")); kind {
	case "stripe", "payments":
		var cfg models.StripeConfiguration
		if err := c.BodyParser(&cfg); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := h.gateway.Stripe.Save(ctx, &cfg); err != nil {
			return storageError(c, err)
		}
		return c.JSON(cfg)
	case "resend", "email":
		var cfg models.ResendConfiguration
		if err := c.BodyParser(&cfg); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := h.gateway.Resend.Save(ctx, &cfg); err != nil {
			return storageError(c, err)
		}
		return c.JSON(cfg)
	case "tinymce", "editor":
		var cfg models.EditorConfiguration
		if err := c.BodyParser(&cfg); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := h.gateway.Editor.Save(ctx, &cfg); err != nil {
			return storageError(c, err)
		}
		return c.JSON(cfg)
	case "cloudinary", "media":
		var cfg models.CloudinaryConfiguration
		if err := c.BodyParser(&cfg); err != nil {
			return badRequest(c, "invalid JSON")
		}
		if err := h.gateway.Cloudinary.Save(ctx, &cfg); err != nil {
			return storageError(c, err)
		}
		return c.JSON(cfg)
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown configuration kind: " + kind})
	}
}

// GetEditorInit returns the editor bootstrap payload for the admin frontend,
// or 204 when the editor integration is not configured.
func (h *Handler) GetEditorInit(c *fiber.Ctx) error {
	cfg, err := h.gateway.EditorConfig(c.Context())
	if err != nil {
		return storageError(c, err)
	}
	if cfg == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(fiber.Map{
		"script_url": cfg.ScriptURL(),
		"config":     cfg.ConfigMap(),
	})
}

// SendTestEmail fires the configuration test email and reports the outcome.
func (h *Handler) SendTestEmail(c *fiber.Ctx) error {
	var req struct {
		To string `json:"to"`
	}
	if err := c.BodyParser(&req); err != nil || req.To == "" {
		return badRequest(c, "recipient 'to' is required")
	}

	ok, msg := h.newsletter.SendTestEmail(c.Context(), req.To)
	status := fiber.StatusOK
	if !ok {
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(fiber.Map{"success": ok, "message": msg})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func storageError(c *fiber.Ctx, err error) error {
	log.Printf("❌ [HTTP] Storage error on %s: %v", c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage unavailable"})
}
