package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	"dsatracker/backend/config"
	"dsatracker/backend/middleware"
	"dsatracker/backend/services"
	"dsatracker/backend/utils"
)

// NewApp builds the fiber app with the shared middleware and all routes.
func NewApp(svc *services.TrackerService, cfg *config.Config, logger *utils.Logger, gatherer prometheus.Gatherer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "dsa-tracker",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: cfg.CORSOrigins != "*",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	SetupRoutes(app, svc, cfg, gatherer)
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return utils.Error(c, code, err)
}
