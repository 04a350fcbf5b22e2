package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/service"
	"github.com/placement-cell/placetrack-api/internal/utils"
)

// StudentHandler exposes the profile, eligibility and resume endpoints.
type StudentHandler struct {
	students service.StudentService
	resumes  service.ResumeService
	logger   zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(students service.StudentService, resumes service.ResumeService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		students: students,
		resumes:  resumes,
		logger:   logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register wires the student self-service routes.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("/profile", h.profile)
	router.Put("/profile", h.saveProfile)
	router.Get("/eligibility", h.eligibility)
	router.Post("/resume", h.uploadResume)
}

func (h *StudentHandler) profile(c *fiber.Ctx) error {
	profile, err := h.students.Profile(c.Context(), userIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "profile not created yet")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load profile")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *StudentHandler) saveProfile(c *fiber.Ctx) error {
	var payload dto.ProfileSaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	profile, err := h.students.SaveProfile(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to save profile")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to save profile")
	}

	return utils.SendSuccess(c, "profile saved", profile)
}

func (h *StudentHandler) eligibility(c *fiber.Ctx) error {
	entries, err := h.students.Eligibility(c.Context(), userIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "profile not created yet")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to evaluate eligibility")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to evaluate eligibility")
	}

	return utils.SendSuccess(c, "eligibility evaluated", entries)
}

func (h *StudentHandler) uploadResume(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "resume file is required")
	}

	result, err := h.resumes.Upload(c.Context(), userIDFromContext(c), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResumeTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "resume exceeds the size limit")
		case errors.Is(err, service.ErrResumeTypeNotAllowed):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "resume must be a PDF document")
		case errors.Is(err, service.ErrProfileNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "profile not created yet")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("resume upload failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "resume upload failed")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "resume uploaded", result)
}
