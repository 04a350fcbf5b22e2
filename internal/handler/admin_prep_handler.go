package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/service"
	"github.com/placement-cell/placetrack-api/internal/utils"
)

// AdminPrepHandler manages curated prep resources.
type AdminPrepHandler struct {
	service service.PrepService
	logger  zerolog.Logger
}

// NewAdminPrepHandler constructs the handler.
func NewAdminPrepHandler(service service.PrepService, logger zerolog.Logger) *AdminPrepHandler {
	return &AdminPrepHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_prep_handler").Logger(),
	}
}

// Register attaches the admin resource routes.
func (h *AdminPrepHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *AdminPrepHandler) create(c *fiber.Ctx) error {
	var payload dto.ResourceSaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	resource, err := h.service.CreateResource(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create resource")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create resource")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "resource created", resource)
}

func (h *AdminPrepHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid resource id")
	}

	var payload dto.ResourceSaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	resource, err := h.service.UpdateResource(c.Context(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrResourceNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "resource not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update resource")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update resource")
	}

	return utils.SendSuccess(c, "resource updated", resource)
}

func (h *AdminPrepHandler) remove(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid resource id")
	}

	if err := h.service.DeleteResource(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "resource not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete resource")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete resource")
	}

	return utils.SendSuccess(c, "resource deleted", nil)
}
