package controllers

import (
	"github.com/gofiber/fiber/v2"

	"dsatracker/backend/config"
	"dsatracker/backend/services"
	"dsatracker/backend/utils"
)

type LeaderboardController struct {
	Svc *services.TrackerService
	Cfg *config.Config
}

func NewLeaderboardController(svc *services.TrackerService, cfg *config.Config) *LeaderboardController {
	return &LeaderboardController{Svc: svc, Cfg: cfg}
}

// GetLeaderboard godoc
// @Summary Get leaderboard
// @Description Ranks all users by overall progress, ties broken by name. The caller's own entry is always current
// @Tags leaderboard
// @Produce json
// @Success 200 {array} models.LeaderboardEntry
// @Failure 401 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /leaderboard [get]
func (lc *LeaderboardController) GetLeaderboard(c *fiber.Ctx) error {
	userID, err := currentUserID(c, lc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	entries, err := lc.Svc.GetLeaderboard(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, entries)
}
