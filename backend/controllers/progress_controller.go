package controllers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"dsatracker/backend/config"
	"dsatracker/backend/engine"
	"dsatracker/backend/services"
	"dsatracker/backend/utils"
)

type ProgressController struct {
	Svc *services.TrackerService
	Cfg *config.Config
	Now func() time.Time
}

func NewProgressController(svc *services.TrackerService, cfg *config.Config) *ProgressController {
	return &ProgressController{Svc: svc, Cfg: cfg, Now: time.Now}
}

type UpdateTopicRequest struct {
	Field string `json:"field" example:"leetcodeEasy" enums:"learning,leetcodeEasy,leetcodeMedium,leetcodeHard"`
	Value *int   `json:"value" example:"7"`
}

// UpdateTopic godoc
// @Summary Update a topic metric
// @Description Sets one metric of a topic, recomputes progress and updates activity, streak, points and badges
// @Tags progress
// @Accept json
// @Produce json
// @Param name path string true "Topic name"
// @Param request body UpdateTopicRequest true "Field and value"
// @Success 200 {object} models.Topic
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /topics/{name} [put]
func (pc *ProgressController) UpdateTopic(c *fiber.Ctx) error {
	userID, err := currentUserID(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	name, err := decodeParam(c, "name")
	if err != nil || name == "" {
		return utils.BadRequest(c, "Invalid topic name")
	}

	var req UpdateTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if req.Field == "" || req.Value == nil {
		return utils.BadRequest(c, "field and value are required")
	}

	topic, err := pc.Svc.UpdateTopicField(c.UserContext(), userID, name, engine.TopicField(req.Field), *req.Value, pc.Now())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, topic)
}

// GetHeatmap godoc
// @Summary Get activity heatmap
// @Description Returns per-day update counts, oldest first. Defaults to the last year
// @Tags progress
// @Produce json
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {array} models.DayCount
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/heatmap [get]
func (pc *ProgressController) GetHeatmap(c *fiber.Ctx) error {
	userID, err := currentUserID(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	from := c.Query("from")
	to := c.Query("to")
	days, err := pc.Svc.GetActivityHistory(c.UserContext(), userID, from, to, pc.Now())
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, days, fiber.Map{
		"from": from,
		"to":   to,
		"days": len(days),
	})
}

// decodeParam returns a path parameter with percent-encoding removed; topic names contain spaces and "&".
func decodeParam(c *fiber.Ctx, key string) (string, error) {
	return url.PathUnescape(c.Params(key))
}
