package controllers

import (
	"github.com/gofiber/fiber/v2"

	"dsatracker/backend/config"
	"dsatracker/backend/models"
	"dsatracker/backend/services"
	"dsatracker/backend/utils"
)

type UserController struct {
	Svc *services.TrackerService
	Cfg *config.Config
}

func NewUserController(svc *services.TrackerService, cfg *config.Config) *UserController {
	return &UserController{Svc: svc, Cfg: cfg}
}

type UpdateProfileRequest struct {
	GithubURL   *string `json:"githubUrl" example:"https://github.com/sumit"`
	LeetcodeURL *string `json:"leetcodeUrl" example:"https://leetcode.com/u/sumit"`
	LinkedinURL *string `json:"linkedinUrl" example:"https://www.linkedin.com/in/sumit"`
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the user with topics, badges, streak, points and overall progress
// @Tags users
// @Produce json
// @Success 200 {object} models.UserSnapshot
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	snapshot, err := uc.Svc.GetUserSnapshot(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, snapshot)
}

// UpdateProfile godoc
// @Summary Update profile links
// @Description Sets GitHub, LeetCode and LinkedIn links. Omitted fields are left alone, empty strings clear them
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile links"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	user, err := uc.Svc.UpdateProfileLinks(c.UserContext(), userID, models.ProfileLinks{
		GithubURL:   req.GithubURL,
		LeetcodeURL: req.LeetcodeURL,
		LinkedinURL: req.LinkedinURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user)
}
