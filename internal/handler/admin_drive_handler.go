package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/service"
	"github.com/placement-cell/placetrack-api/internal/utils"
)

// AdminDriveHandler manages the admin drive CRUD surface.
type AdminDriveHandler struct {
	service service.DriveService
	logger  zerolog.Logger
}

// NewAdminDriveHandler constructs the handler.
func NewAdminDriveHandler(service service.DriveService, logger zerolog.Logger) *AdminDriveHandler {
	return &AdminDriveHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_drive_handler").Logger(),
	}
}

// Register attaches the admin drive routes.
func (h *AdminDriveHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *AdminDriveHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid drive id")
	}

	drive, err := h.service.Get(c.Context(), id, 0)
	if err != nil {
		if errors.Is(err, service.ErrDriveNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "drive not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load drive")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load drive")
	}

	return utils.SendSuccess(c, "drive retrieved", drive)
}

func (h *AdminDriveHandler) list(c *fiber.Ctx) error {
	drives, err := h.service.ListAll(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list drives")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list drives")
	}

	return utils.SendSuccess(c, "drives retrieved", drives)
}

func (h *AdminDriveHandler) create(c *fiber.Ctx) error {
	var payload dto.DriveSaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	drive, err := h.service.Create(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create drive")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create drive")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "drive created", drive)
}

func (h *AdminDriveHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid drive id")
	}

	var payload dto.DriveSaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	drive, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDriveNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "drive not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update drive")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update drive")
	}

	return utils.SendSuccess(c, "drive updated", drive)
}

func (h *AdminDriveHandler) remove(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid drive id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrDriveNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "drive not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete drive")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete drive")
	}

	return utils.SendSuccess(c, "drive deleted", nil)
}
