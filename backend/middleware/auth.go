package middleware

import (
	"github.com/gofiber/fiber/v2"

	"dsatracker/backend/config"
	"dsatracker/backend/utils"
)

// UserIDKey is the fiber.Ctx local holding the authenticated user id.
const UserIDKey = "user_id"

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}
