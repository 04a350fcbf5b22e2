package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/service"
	"github.com/placement-cell/placetrack-api/internal/utils"
)

// PrepHandler serves the preparation hub: shared resources and private notes.
type PrepHandler struct {
	service service.PrepService
	logger  zerolog.Logger
}

// NewPrepHandler constructs the handler.
func NewPrepHandler(service service.PrepService, logger zerolog.Logger) *PrepHandler {
	return &PrepHandler{
		service: service,
		logger:  logger.With().Str("component", "prep_handler").Logger(),
	}
}

// Register wires the student prep hub routes.
func (h *PrepHandler) Register(router fiber.Router) {
	router.Get("/resources", h.listResources)
	router.Get("/notes", h.listNotes)
	router.Post("/notes", h.createNote)
	router.Put("/notes/:id", h.updateNote)
	router.Delete("/notes/:id", h.deleteNote)
}

func (h *PrepHandler) listResources(c *fiber.Ctx) error {
	resources, err := h.service.ListResources(c.Context(), c.Query("category"))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list resources")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list resources")
	}

	return utils.SendSuccess(c, "resources retrieved", resources)
}

func (h *PrepHandler) listNotes(c *fiber.Ctx) error {
	notes, err := h.service.ListNotes(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list notes")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list notes")
	}

	return utils.SendSuccess(c, "notes retrieved", notes)
}

func (h *PrepHandler) createNote(c *fiber.Ctx) error {
	var payload dto.NoteSaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	note, err := h.service.CreateNote(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create note")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create note")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "note created", note)
}

func (h *PrepHandler) updateNote(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid note id")
	}

	var payload dto.NoteSaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	note, err := h.service.UpdateNote(c.Context(), userIDFromContext(c), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNoteNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "note not found")
		case errors.Is(err, service.ErrNoteForbidden):
			return utils.SendError(c, fiber.StatusForbidden, "note belongs to another student")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update note")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update note")
	}

	return utils.SendSuccess(c, "note updated", note)
}

func (h *PrepHandler) deleteNote(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid note id")
	}

	if err := h.service.DeleteNote(c.Context(), userIDFromContext(c), id); err != nil {
		switch {
		case errors.Is(err, service.ErrNoteNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "note not found")
		case errors.Is(err, service.ErrNoteForbidden):
			return utils.SendError(c, fiber.StatusForbidden, "note belongs to another student")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete note")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete note")
	}

	return utils.SendSuccess(c, "note deleted", nil)
}
