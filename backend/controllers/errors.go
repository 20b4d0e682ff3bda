package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"dsatracker/backend/services"
	"dsatracker/backend/utils"
)

// respondError maps service sentinels to HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return utils.Error(c, fiber.StatusBadRequest, err)
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, services.ErrInconsistentState):
		return utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrStoreUnavailable):
		return utils.ServiceUnavailable(c, "Store unavailable, try again")
	default:
		return utils.InternalServerError(c, "Internal error")
	}
}
