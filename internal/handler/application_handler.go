package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/service"
	"github.com/placement-cell/placetrack-api/internal/utils"
)

// ApplicationHandler serves the student side of the application lifecycle.
type ApplicationHandler struct {
	service service.ApplicationService
	logger  zerolog.Logger
}

// NewApplicationHandler constructs the handler.
func NewApplicationHandler(service service.ApplicationService, logger zerolog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service: service,
		logger:  logger.With().Str("component", "application_handler").Logger(),
	}
}

// Register wires the student application routes.
func (h *ApplicationHandler) Register(router fiber.Router) {
	router.Get("", h.listMine)
	router.Post("", h.apply)
	router.Get("/stats", h.stats)
	router.Get("/status-catalog", h.statusCatalog)
	router.Post("/:id/respond", h.respond)
	router.Delete("/:id", h.withdraw)
}

func (h *ApplicationHandler) apply(c *fiber.Ctx) error {
	var payload dto.ApplyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	application, err := h.service.Apply(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDriveNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "drive not found")
		case errors.Is(err, service.ErrProfileNotFound):
			return utils.SendError(c, fiber.StatusPreconditionFailed, "complete your profile before applying")
		case errors.Is(err, service.ErrRegistrationClosed):
			return utils.SendError(c, fiber.StatusConflict, "registration deadline has passed")
		case errors.Is(err, service.ErrNotEligible):
			return utils.SendError(c, fiber.StatusForbidden, "you do not meet the eligibility criteria")
		case errors.Is(err, service.ErrAlreadyApplied):
			return utils.SendError(c, fiber.StatusConflict, "you have already applied to this drive")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("application failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "application failed")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "application submitted", application)
}

func (h *ApplicationHandler) listMine(c *fiber.Ctx) error {
	applications, err := h.service.ListMine(c.Context(), userIDFromContext(c), c.Query("tab"))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list applications")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list applications")
	}

	return utils.SendSuccess(c, "applications retrieved", applications)
}

func (h *ApplicationHandler) stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute application stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute application stats")
	}

	return utils.SendSuccess(c, "application stats computed", stats)
}

func (h *ApplicationHandler) statusCatalog(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "status catalog retrieved", h.service.StatusCatalog())
}

func (h *ApplicationHandler) respond(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid application id")
	}

	var payload dto.OfferResponseRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	application, err := h.service.RespondToOffer(c.Context(), userIDFromContext(c), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrApplicationNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "application not found")
		case errors.Is(err, service.ErrApplicationForbidden):
			return utils.SendError(c, fiber.StatusForbidden, "application belongs to another student")
		case errors.Is(err, service.ErrOfferNotPending), errors.Is(err, service.ErrInvalidTransition):
			return utils.SendError(c, fiber.StatusConflict, "no pending offer on this application")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("offer response failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "offer response failed")
	}

	return utils.SendSuccess(c, "offer decision recorded", application)
}

func (h *ApplicationHandler) withdraw(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid application id")
	}

	if err := h.service.Withdraw(c.Context(), userIDFromContext(c), id); err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "application not found")
		case errors.Is(err, service.ErrApplicationForbidden):
			return utils.SendError(c, fiber.StatusForbidden, "application belongs to another student")
		case errors.Is(err, service.ErrWithdrawNotAllowed):
			return utils.SendError(c, fiber.StatusConflict, "application can no longer be withdrawn")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("withdrawal failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "withdrawal failed")
	}

	return utils.SendSuccess(c, "application withdrawn", nil)
}
