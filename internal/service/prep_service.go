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

var (
	// ErrResourceNotFound indicates the prep resource does not exist.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrNoteNotFound indicates the note does not exist.
	ErrNoteNotFound = errors.New("note not found")
	// ErrNoteForbidden indicates the note belongs to another student.
	ErrNoteForbidden = errors.New("note belongs to another student")
)

// PrepService exposes the preparation hub: curated resources plus private notes.
type PrepService interface {
	ListResources(ctx context.Context, category string) ([]dto.ResourceResponse, error)
	CreateResource(ctx context.Context, adminID uint, req dto.ResourceSaveRequest) (dto.ResourceResponse, error)
	UpdateResource(ctx context.Context, id uint, req dto.ResourceSaveRequest) (dto.ResourceResponse, error)
	DeleteResource(ctx context.Context, id uint) error

	ListNotes(ctx context.Context, ownerID uint) ([]dto.NoteResponse, error)
	CreateNote(ctx context.Context, ownerID uint, req dto.NoteSaveRequest) (dto.NoteResponse, error)
	UpdateNote(ctx context.Context, ownerID, id uint, req dto.NoteSaveRequest) (dto.NoteResponse, error)
	DeleteNote(ctx context.Context, ownerID, id uint) error
}

type prepService struct {
	resources repository.ResourceRepository
	notes     repository.NoteRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewPrepService constructs the prep hub service.
func NewPrepService(resources repository.ResourceRepository, notes repository.NoteRepository, validate *validator.Validate, logger zerolog.Logger) PrepService {
	return &prepService{
		resources: resources,
		notes:     notes,
		validator: validate,
		logger:    logger.With().Str("component", "prep_service").Logger(),
	}
}

func (s *prepService) ListResources(ctx context.Context, category string) ([]dto.ResourceResponse, error) {
	resources, err := s.resources.List(ctx, category)
	if err != nil {
		return nil, err
	}
	return dto.NewResourceResponseSlice(resources), nil
}

func (s *prepService) CreateResource(ctx context.Context, adminID uint, req dto.ResourceSaveRequest) (dto.ResourceResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ResourceResponse{}, err
	}

	resource := models.Resource{
		Title:    req.Title,
		Category: req.Category,
		Type:     req.Type,
		Link:     req.Link,
		Tags:     req.Tags,
		AddedBy:  adminID,
	}
	if err := s.resources.Create(ctx, &resource); err != nil {
		return dto.ResourceResponse{}, err
	}

	s.logger.Info().Uint("resource_id", resource.ID).Msg("prep resource added")

	return dto.NewResourceResponse(resource), nil
}

func (s *prepService) UpdateResource(ctx context.Context, id uint, req dto.ResourceSaveRequest) (dto.ResourceResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ResourceResponse{}, err
	}

	resource, err := s.resources.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResourceResponse{}, ErrResourceNotFound
		}
		return dto.ResourceResponse{}, err
	}

	resource.Title = req.Title
	resource.Category = req.Category
	resource.Type = req.Type
	resource.Link = req.Link
	resource.Tags = req.Tags

	if err := s.resources.Update(ctx, &resource); err != nil {
		return dto.ResourceResponse{}, err
	}

	return dto.NewResourceResponse(resource), nil
}

func (s *prepService) DeleteResource(ctx context.Context, id uint) error {
	if err := s.resources.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return err
	}
	return nil
}

func (s *prepService) ListNotes(ctx context.Context, ownerID uint) ([]dto.NoteResponse, error) {
	notes, err := s.notes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return dto.NewNoteResponseSlice(notes), nil
}

func (s *prepService) CreateNote(ctx context.Context, ownerID uint, req dto.NoteSaveRequest) (dto.NoteResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.NoteResponse{}, err
	}

	note := models.Note{
		OwnerID: ownerID,
		Title:   req.Title,
		Body:    req.Body,
	}
	if err := s.notes.Create(ctx, &note); err != nil {
		return dto.NoteResponse{}, err
	}

	return dto.NewNoteResponse(note), nil
}

func (s *prepService) UpdateNote(ctx context.Context, ownerID, id uint, req dto.NoteSaveRequest) (dto.NoteResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.NoteResponse{}, err
	}

	note, err := s.ownedNote(ctx, ownerID, id)
	if err != nil {
		return dto.NoteResponse{}, err
	}

	note.Title = req.Title
	note.Body = req.Body

	if err := s.notes.Update(ctx, &note); err != nil {
		return dto.NoteResponse{}, err
	}

	return dto.NewNoteResponse(note), nil
}

func (s *prepService) DeleteNote(ctx context.Context, ownerID, id uint) error {
	if _, err := s.ownedNote(ctx, ownerID, id); err != nil {
		return err
	}
	return s.notes.Delete(ctx, id)
}

func (s *prepService) ownedNote(ctx context.Context, ownerID, id uint) (models.Note, error) {
	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}
	if note.OwnerID != ownerID {
		return models.Note{}, ErrNoteForbidden
	}
	return note, nil
}
