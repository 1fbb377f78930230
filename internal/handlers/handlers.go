package handlers

import (
	"errors"

	"boutique/internal/repositories"
	"boutique/internal/services"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps service and repository errors onto HTTP statuses.
// Anything unrecognized is a storage-level failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repositories.ErrVersionConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the standard error envelope. The error text is returned to
// the caller unredacted.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}
