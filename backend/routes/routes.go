package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dsatracker/backend/config"
	"dsatracker/backend/controllers"
	"dsatracker/backend/middleware"
	"dsatracker/backend/services"
)

func SetupRoutes(app *fiber.App, svc *services.TrackerService, cfg *config.Config, gatherer prometheus.Gatherer) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Auth routes
	authController := controllers.NewAuthController(svc, cfg)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/logout", authController.Logout)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(svc, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Progress routes
	progressController := controllers.NewProgressController(svc, cfg)
	app.Put("/api/topics/:name", authMiddleware, progressController.UpdateTopic)
	app.Get("/api/progress/heatmap", authMiddleware, progressController.GetHeatmap)

	// Leaderboard routes
	leaderboardController := controllers.NewLeaderboardController(svc, cfg)
	app.Get("/api/leaderboard", authMiddleware, leaderboardController.GetLeaderboard)
}
