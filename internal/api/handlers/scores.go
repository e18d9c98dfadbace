package handlers

import (
	"errors"
	"strconv"

	"puzzleboard/internal/game"
	"puzzleboard/internal/models"
	"puzzleboard/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ScoreHandler handles HTTP requests for score submissions and leaderboards
type ScoreHandler struct {
	service   *service.ScoreService
	validator *validator.Validate
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(service *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		service:   service,
		validator: validator.New(),
	}
}

// guildID parses the :guild_id path parameter.
func guildID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("guild_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("guild_id must be a positive integer")
	}
	return id, nil
}

// boolQuery parses a boolean query parameter with a default.
func boolQuery(c *fiber.Ctx, name string, def bool) bool {
	v, err := strconv.ParseBool(c.Query(name, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return v
}

// SubmitScore handles POST /api/v1/guilds/:guild_id/submissions
// @Summary Submit a candidate score
// @Description Runs a raw message through score detection and records it if it parses
// @Accept json
// @Produce json
// @Param guild_id path int true "Guild ID"
// @Param request body models.SubmissionRequest true "Score submission"
// @Success 200 {object} models.SubmissionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/guilds/{guild_id}/submissions [post]
func (h *ScoreHandler) SubmitScore(c *fiber.Ctx) error {
	guild, err := guildID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Invalid guild ID",
			Message: err.Error(),
		})
	}

	var req models.SubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
	}

	if err := h.validator.Struct(&req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Validation failed",
			Message: validationErrors.Error(),
		})
	}

	resp, err := h.service.Submit(c.Context(), guild, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Failed to process submission",
			Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetDailyLeaderboard handles GET /api/v1/guilds/:guild_id/leaderboard/:game/daily
// @Summary Get today's leaderboard
// @Description Retrieves the ranked on-time scores for the current board
// @Accept json
// @Produce json
// @Param guild_id path int true "Guild ID"
// @Param game path string true "Game identifier" Enums(flagle, geogrid, foodguessr)
// @Success 200 {object} models.LeaderboardView
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/guilds/{guild_id}/leaderboard/{game}/daily [get]
func (h *ScoreHandler) GetDailyLeaderboard(c *fiber.Ctx) error {
	guild, err := guildID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Invalid guild ID",
			Message: err.Error(),
		})
	}

	kind, ok := game.KindFromString(c.Params("game"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Unknown game",
			Message: "game must be one of: flagle, geogrid, foodguessr",
		})
	}

	view, err := h.service.DailyLeaderboard(c.Context(), guild, kind)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Failed to retrieve leaderboard",
			Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

// GetAllTimeLeaderboard handles GET /api/v1/guilds/:guild_id/leaderboard/:game/all-time
// @Summary Get the all-time leaderboard
// @Description Retrieves the cumulative table; include_today and include_late are independent flags
// @Accept json
// @Produce json
// @Param guild_id path int true "Guild ID"
// @Param game path string true "Game identifier" Enums(flagle, geogrid, foodguessr)
// @Param include_today query bool false "Count the current board" default(true)
// @Param include_late query bool false "Count scores submitted after their board's day" default(false)
// @Success 200 {object} models.LeaderboardView
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/guilds/{guild_id}/leaderboard/{game}/all-time [get]
func (h *ScoreHandler) GetAllTimeLeaderboard(c *fiber.Ctx) error {
	guild, err := guildID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Invalid guild ID",
			Message: err.Error(),
		})
	}

	kind, ok := game.KindFromString(c.Params("game"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Unknown game",
			Message: "game must be one of: flagle, geogrid, foodguessr",
		})
	}

	includeToday := boolQuery(c, "include_today", true)
	includeLate := boolQuery(c, "include_late", false)

	view, err := h.service.AllTimeLeaderboard(c.Context(), guild, kind, includeToday, includeLate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Failed to retrieve leaderboard",
			Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

// GetVersion handles GET /api/v1/version
// @Summary Get the leaderboard version counter
// @Description Returns the global counter that increments on every accepted score
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/version [get]
func (h *ScoreHandler) GetVersion(c *fiber.Ctx) error {
	version, err := h.service.Version(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Failed to read version",
			Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"version": version})
}

// HealthCheck handles GET /api/v1/health
// @Summary Health check
// @Description Checks the health of the service and its dependencies
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} models.ErrorResponse
// @Router /api/v1/health [get]
func (h *ScoreHandler) HealthCheck(c *fiber.Ctx) error {
	if err := h.service.HealthCheck(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
			Error:   "Health check failed",
			Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "healthy",
		"message": "All systems operational",
	})
}
