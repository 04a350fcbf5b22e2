package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/placement-cell/placetrack-api/internal/service"
	"github.com/placement-cell/placetrack-api/internal/utils"
)

// DriveHandler serves the student-facing drive views.
type DriveHandler struct {
	service service.DriveService
	logger  zerolog.Logger
}

// NewDriveHandler constructs the handler.
func NewDriveHandler(service service.DriveService, logger zerolog.Logger) *DriveHandler {
	return &DriveHandler{
		service: service,
		logger:  logger.With().Str("component", "drive_handler").Logger(),
	}
}

// Register wires the student drive routes.
func (h *DriveHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func (h *DriveHandler) list(c *fiber.Ctx) error {
	drives, err := h.service.ListForStudent(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list drives")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list drives")
	}

	if c.QueryBool("eligible") {
		eligible := drives[:0:0]
		for _, drive := range drives {
			if drive.IsEligible != nil && *drive.IsEligible {
				eligible = append(eligible, drive)
			}
		}
		drives = eligible
	}

	return utils.SendSuccess(c, "drives retrieved", drives)
}

func (h *DriveHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid drive id")
	}

	drive, err := h.service.Get(c.Context(), id, userIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrDriveNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "drive not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load drive")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load drive")
	}

	return utils.SendSuccess(c, "drive retrieved", drive)
}
