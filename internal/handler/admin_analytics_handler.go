package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/placement-cell/placetrack-api/internal/repository"
	"github.com/placement-cell/placetrack-api/internal/service"
	"github.com/placement-cell/placetrack-api/internal/utils"
)

// AdminAnalyticsHandler serves the dashboard aggregates, the student roster
// and spreadsheet exports.
type AdminAnalyticsHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminAnalyticsHandler constructs the handler.
func NewAdminAnalyticsHandler(service service.AdminService, logger zerolog.Logger) *AdminAnalyticsHandler {
	return &AdminAnalyticsHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_analytics_handler").Logger(),
	}
}

// Register attaches the admin analytics routes.
func (h *AdminAnalyticsHandler) Register(router fiber.Router) {
	router.Get("/stats", h.stats)
	router.Get("/students", h.students)
	router.Get("/companies", h.companies)
	router.Get("/students/export", h.exportStudents)
	router.Get("/export/:type", h.export)
}

func (h *AdminAnalyticsHandler) stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute placement stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute placement stats")
	}

	return utils.SendSuccess(c, "placement stats computed", stats)
}

func (h *AdminAnalyticsHandler) students(c *fiber.Ctx) error {
	filter, err := rosterFilterFromQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.Students(c.Context(), filter)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list students")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list students")
	}

	return utils.SendSuccess(c, "students retrieved", result)
}

func (h *AdminAnalyticsHandler) companies(c *fiber.Ctx) error {
	companies, err := h.service.Companies(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list companies")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list companies")
	}

	return utils.SendSuccess(c, "companies retrieved", companies)
}

func (h *AdminAnalyticsHandler) exportStudents(c *fiber.Ctx) error {
	filter, err := rosterFilterFromQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	payload, filename, err := h.service.ExportStudents(c.Context(), filter)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("roster export failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "roster export failed")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(payload)
}

func (h *AdminAnalyticsHandler) export(c *fiber.Ctx) error {
	filter, err := rosterFilterFromQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	payload, filename, err := h.service.Export(c.Context(), c.Params("type"), filter)
	if err != nil {
		if errors.Is(err, service.ErrUnknownExportType) {
			return utils.SendError(c, fiber.StatusNotFound, "unknown export type")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("export failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "export failed")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(payload)
}

func rosterFilterFromQuery(c *fiber.Ctx) (repository.AdminStudentFilter, error) {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return repository.AdminStudentFilter{}, fiber.NewError(fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return repository.AdminStudentFilter{}, fiber.NewError(fiber.StatusBadRequest, "invalid page size")
	}

	filter := repository.AdminStudentFilter{
		Search:     c.Query("search"),
		Department: c.Query("department"),
		Batch:      c.Query("batch"),
		Page:       page,
		PageSize:   pageSize,
	}

	switch strings.ToLower(strings.TrimSpace(c.Query("placed"))) {
	case "true":
		placed := true
		filter.Placed = &placed
	case "false":
		placed := false
		filter.Placed = &placed
	}

	return filter, nil
}
