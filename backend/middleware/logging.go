package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"dsatracker/backend/utils"
)

func LoggingMiddleware(logger *utils.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		fields := []interface{}{
			"ip", c.IP(),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
		}
		if userID, ok := c.Locals(UserIDKey).(uint); ok {
			fields = append(fields, "user_id", userID)
		}
		if err != nil {
			fields = append(fields, "error", err)
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("Request failed", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("Request rejected", fields...)
		default:
			logger.Info("Request handled", fields...)
		}
		return err
	}
}
