package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/service"
	"github.com/placement-cell/placetrack-api/internal/utils"
)

// TickerHandler serves the scrolling headline feed, including the websocket
// live stream.
type TickerHandler struct {
	service service.TickerService
	logger  zerolog.Logger
}

// NewTickerHandler constructs the handler.
func NewTickerHandler(service service.TickerService, logger zerolog.Logger) *TickerHandler {
	return &TickerHandler{
		service: service,
		logger:  logger.With().Str("component", "ticker_handler").Logger(),
	}
}

// Register wires the read routes and the websocket upgrade.
func (h *TickerHandler) Register(router fiber.Router) {
	router.Get("", h.list)

	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(h.handleConnection))
}

// RegisterAdmin wires the headline management routes.
func (h *TickerHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.publish)
	router.Delete("/:id", h.remove)
}

func (h *TickerHandler) list(c *fiber.Ctx) error {
	entries, err := h.service.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list ticker entries")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list ticker entries")
	}

	return utils.SendSuccess(c, "ticker retrieved", entries)
}

func (h *TickerHandler) publish(c *fiber.Ctx) error {
	var payload dto.TickerCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := h.service.Publish(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to publish ticker entry")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to publish ticker entry")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "ticker entry published", entry)
}

func (h *TickerHandler) remove(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid ticker entry id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrTickerEntryNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "ticker entry not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete ticker entry")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete ticker entry")
	}

	return utils.SendSuccess(c, "ticker entry deleted", nil)
}

func (h *TickerHandler) handleConnection(conn *websocket.Conn) {
	h.logger.Debug().Msg("ticker websocket connected")
	h.service.ServeConnection(conn)
	h.logger.Debug().Msg("ticker websocket disconnected")
}
