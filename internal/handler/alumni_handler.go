package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/repository"
	"github.com/placement-cell/placetrack-api/internal/service"
	"github.com/placement-cell/placetrack-api/internal/utils"
)

// AlumniHandler serves the alumni directory. Listing is open to everyone
// signed in; mutation is wired under the admin group.
type AlumniHandler struct {
	service service.AlumniService
	logger  zerolog.Logger
}

// NewAlumniHandler constructs the handler.
func NewAlumniHandler(service service.AlumniService, logger zerolog.Logger) *AlumniHandler {
	return &AlumniHandler{
		service: service,
		logger:  logger.With().Str("component", "alumni_handler").Logger(),
	}
}

// Register wires the read-only directory route.
func (h *AlumniHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

// RegisterAdmin wires the directory management routes.
func (h *AlumniHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.create)
	router.Delete("/:id", h.remove)
}

func (h *AlumniHandler) list(c *fiber.Ctx) error {
	filter := repository.AlumniFilter{
		Search:     c.Query("search"),
		Company:    c.Query("company"),
		Batch:      c.Query("batch"),
		Department: c.Query("department"),
	}

	entries, err := h.service.List(c.Context(), filter)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list alumni")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list alumni")
	}

	return utils.SendSuccess(c, "alumni retrieved", entries)
}

func (h *AlumniHandler) create(c *fiber.Ctx) error {
	var payload dto.AlumniSaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := h.service.Create(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create alumni entry")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create alumni entry")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "alumni entry created", entry)
}

func (h *AlumniHandler) remove(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid alumni id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrAlumniNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "alumni entry not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete alumni entry")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete alumni entry")
	}

	return utils.SendSuccess(c, "alumni entry deleted", nil)
}
