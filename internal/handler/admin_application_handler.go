package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/service"
	"github.com/placement-cell/placetrack-api/internal/utils"
)

// AdminApplicationHandler serves the admin side of the application pipeline.
type AdminApplicationHandler struct {
	service service.ApplicationService
	logger  zerolog.Logger
}

// NewAdminApplicationHandler constructs the handler.
func NewAdminApplicationHandler(service service.ApplicationService, logger zerolog.Logger) *AdminApplicationHandler {
	return &AdminApplicationHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_application_handler").Logger(),
	}
}

// Register attaches the admin application routes.
func (h *AdminApplicationHandler) Register(router fiber.Router) {
	router.Patch("/:id/status", h.updateStatus)
	router.Post("/shortlist", h.shortlist)
	router.Get("/board/:driveId", h.board)
}

func (h *AdminApplicationHandler) updateStatus(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid application id")
	}

	var payload dto.StatusUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	application, err := h.service.UpdateStatus(c.Context(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrApplicationNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "application not found")
		case errors.Is(err, service.ErrInvalidTransition):
			return utils.SendError(c, fiber.StatusConflict, "invalid status transition")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("status update failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "status update failed")
	}

	return utils.SendSuccess(c, "application status updated", application)
}

func (h *AdminApplicationHandler) shortlist(c *fiber.Ctx) error {
	var payload dto.ShortlistRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	moved, err := h.service.Shortlist(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDriveNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "drive not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("shortlist failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "shortlist failed")
	}

	return utils.SendSuccess(c, "shortlist applied", fiber.Map{"moved": moved})
}

func (h *AdminApplicationHandler) board(c *fiber.Ctx) error {
	driveID, err := parseParamID(c, "driveId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid drive id")
	}

	board, err := h.service.Board(c.Context(), driveID)
	if err != nil {
		if errors.Is(err, service.ErrDriveNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "drive not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load applicant board")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load applicant board")
	}

	return utils.SendSuccess(c, "applicant board retrieved", board)
}
