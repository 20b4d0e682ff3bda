package controllers

import (
	"github.com/gofiber/fiber/v2"

	"dsatracker/backend/config"
	"dsatracker/backend/middleware"
	"dsatracker/backend/utils"
)

// currentUserID prefers the id AuthMiddleware already verified and parses the token
// only when the handler is mounted without it.
func currentUserID(c *fiber.Ctx, cfg *config.Config) (uint, error) {
	if userID, ok := c.Locals(middleware.UserIDKey).(uint); ok && userID != 0 {
		return userID, nil
	}
	return utils.ExtractUserIDFromToken(c, cfg)
}
