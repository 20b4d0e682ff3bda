package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"dsatracker/backend/config"
	"dsatracker/backend/services"
	"dsatracker/backend/utils"
)

type AuthController struct {
	Svc *services.TrackerService
	Cfg *config.Config
}

func NewAuthController(svc *services.TrackerService, cfg *config.Config) *AuthController {
	return &AuthController{Svc: svc, Cfg: cfg}
}

type LoginRequest struct {
	Username string `json:"username" example:"sumit"`
	Password string `json:"password" example:"secret"`
}

// [+] Login godoc
// @Summary User login
// @Description Authenticates a roster member, returns a JWT and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		return utils.BadRequest(c, "Username and password are required")
	}

	user, err := ac.Svc.Authenticate(c.UserContext(), input.Username, input.Password)
	if err != nil {
		return respondError(c, err)
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Username, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}
	utils.SetSessionCookie(c, token, ac.Cfg)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// Logout godoc
// @Summary User logout
// @Description Clears the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	utils.ClearSessionCookie(c, ac.Cfg)
	return utils.Success(c, fiber.StatusOK, fiber.Map{"logged_out": true})
}
