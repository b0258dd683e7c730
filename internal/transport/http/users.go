// internal/transport/http/users.go
package http

import (
	"errors"

	"turbo-admin/pkg/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := h.accounts.ListUsers(c.Context())
	if err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

func (h *Handler) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}
	user, err := h.accounts.GetUser(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return storageError(c, err)
	}
	return c.JSON(user)
}

func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if user.Username == "" || user.Email == "" {
		return badRequest(c, "username and email are required")
	}
	if err := h.accounts.SaveUser(c.Context(), &user); err != nil {
		return storageError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}
	user, err := h.accounts.GetUser(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return storageError(c, err)
	}
	if err := c.BodyParser(user); err != nil {
		return badRequest(c, "invalid JSON")
	}
	user.ID = id
	if err := h.accounts.SaveUser(c.Context(), user); err != nil {
		return storageError(c, err)
	}
	return c.JSON(user)
}

func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}
	if err := h.accounts.DeleteUser(c.Context(), id); err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// UploadProfilePicture stages a multipart avatar against the user and
// re-saves the account, which runs the media sync.
func (h *Handler) UploadProfilePicture(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}
	user, err := h.accounts.GetUser(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return storageError(c, err)
	}

	ref, ok := h.stageUpload(c, "image")
	if !ok {
		return badRequest(c, "multipart field 'image' is required")
	}

	user.ProfilePicture = ref
	if err := h.accounts.SaveUser(c.Context(), user); err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{
		"profile_picture":     user.ProfilePicture,
		"profile_picture_url": user.ProfilePictureURL,
	})
}
