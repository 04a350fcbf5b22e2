package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/service"
	"github.com/placement-cell/placetrack-api/internal/utils"
)

// AdvisorHandler exposes the AI placement advisor.
type AdvisorHandler struct {
	service service.AdvisorService
	logger  zerolog.Logger
}

// NewAdvisorHandler constructs the handler.
func NewAdvisorHandler(service service.AdvisorService, logger zerolog.Logger) *AdvisorHandler {
	return &AdvisorHandler{
		service: service,
		logger:  logger.With().Str("component", "advisor_handler").Logger(),
	}
}

// Register wires the advisor routes.
func (h *AdvisorHandler) Register(router fiber.Router) {
	router.Post("/chat", h.chat)
	router.Get("/insights", h.insights)
}

func (h *AdvisorHandler) chat(c *fiber.Ctx) error {
	var payload dto.ChatRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Chat(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAdvisorUnavailable):
			return utils.SendError(c, fiber.StatusServiceUnavailable, "ai advisor is not configured")
		case errors.Is(err, service.ErrProfileNotFound):
			return utils.SendError(c, fiber.StatusPreconditionFailed, "complete your profile to use the advisor")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("advisor chat failed")
		return utils.SendError(c, fiber.StatusBadGateway, "advisor request failed")
	}

	return utils.SendSuccess(c, "advisor replied", response)
}

func (h *AdvisorHandler) insights(c *fiber.Ctx) error {
	response, err := h.service.Insights(c.Context(), userIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdvisorUnavailable):
			return utils.SendError(c, fiber.StatusServiceUnavailable, "ai advisor is not configured")
		case errors.Is(err, service.ErrProfileNotFound):
			return utils.SendError(c, fiber.StatusPreconditionFailed, "complete your profile to use the advisor")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("advisor insights failed")
		return utils.SendError(c, fiber.StatusBadGateway, "advisor request failed")
	}

	return utils.SendSuccess(c, "insights generated", response)
}
