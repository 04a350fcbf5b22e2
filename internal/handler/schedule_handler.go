package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/placement-cell/placetrack-api/internal/models"
	"github.com/placement-cell/placetrack-api/internal/service"
	"github.com/placement-cell/placetrack-api/internal/utils"
)

// ScheduleHandler serves the merged upcoming timeline.
type ScheduleHandler struct {
	service service.ScheduleService
	logger  zerolog.Logger
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(service service.ScheduleService, logger zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		logger:  logger.With().Str("component", "schedule_handler").Logger(),
	}
}

// Register wires the schedule route.
func (h *ScheduleHandler) Register(router fiber.Router) {
	router.Get("", h.upcoming)
}

func (h *ScheduleHandler) upcoming(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if userRoleFromContext(c) == string(models.RoleAdmin) {
		studentID = 0
	}

	items, err := h.service.Upcoming(c.Context(), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build schedule")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build schedule")
	}

	return utils.SendSuccess(c, "schedule retrieved", items)
}
