package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/models"
	"github.com/placement-cell/placetrack-api/internal/repository"
)

// ErrAlumniNotFound indicates the directory entry does not exist.
var ErrAlumniNotFound = errors.New("alumni entry not found")

// AlumniService exposes the read-mostly alumni directory.
type AlumniService interface {
	List(ctx context.Context, filter repository.AlumniFilter) ([]dto.AlumniResponse, error)
	Create(ctx context.Context, req dto.AlumniSaveRequest) (dto.AlumniResponse, error)
	Delete(ctx context.Context, id uint) error
}

type alumniService struct {
	repo      repository.AlumniRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAlumniService constructs the alumni directory service.
func NewAlumniService(repo repository.AlumniRepository, validate *validator.Validate, logger zerolog.Logger) AlumniService {
	return &alumniService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "alumni_service").Logger(),
	}
}

func (s *alumniService) List(ctx context.Context, filter repository.AlumniFilter) ([]dto.AlumniResponse, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewAlumniResponseSlice(entries), nil
}

func (s *alumniService) Create(ctx context.Context, req dto.AlumniSaveRequest) (dto.AlumniResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AlumniResponse{}, err
	}

	entry := models.Alumni{
		Name:        req.Name,
		Company:     req.Company,
		Role:        req.Role,
		Batch:       req.Batch,
		Department:  req.Department,
		LinkedInURL: req.LinkedInURL,
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		return dto.AlumniResponse{}, err
	}

	s.logger.Info().Uint("alumni_id", entry.ID).Str("company", entry.Company).Msg("alumni entry added")

	return dto.NewAlumniResponse(entry), nil
}

func (s *alumniService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAlumniNotFound
		}
		return err
	}
	return nil
}
