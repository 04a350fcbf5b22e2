package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/models"
	"github.com/placement-cell/placetrack-api/internal/repository"
)

// ErrDriveNotFound indicates the requested drive does not exist.
var ErrDriveNotFound = errors.New("drive not found")

const driveCacheKey = "drives:upcoming:v1"

// DriveService exposes drive management and the annotated student view.
type DriveService interface {
	Create(ctx context.Context, adminID uint, req dto.DriveSaveRequest) (dto.DriveResponse, error)
	Update(ctx context.Context, id uint, req dto.DriveSaveRequest) (dto.DriveResponse, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint, studentID uint) (dto.DriveResponse, error)
	ListAll(ctx context.Context) ([]dto.DriveResponse, error)
	ListForStudent(ctx context.Context, studentID uint) ([]dto.DriveResponse, error)
}

type driveService struct {
	drives    repository.DriveRepository
	students  repository.StudentRepository
	apps      repository.ApplicationRepository
	cache     *redis.Client
	ttl       time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewDriveService constructs the drive service.
func NewDriveService(drives repository.DriveRepository, students repository.StudentRepository, apps repository.ApplicationRepository, cache *redis.Client, ttl time.Duration, validate *validator.Validate, logger zerolog.Logger) DriveService {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &driveService{
		drives:    drives,
		students:  students,
		apps:      apps,
		cache:     cache,
		ttl:       ttl,
		validator: validate,
		logger:    logger.With().Str("component", "drive_service").Logger(),
	}
}

func (s *driveService) Create(ctx context.Context, adminID uint, req dto.DriveSaveRequest) (dto.DriveResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.DriveResponse{}, err
	}

	drive := driveFromRequest(req)
	drive.CreatedBy = adminID

	if err := s.drives.Create(ctx, &drive); err != nil {
		return dto.DriveResponse{}, err
	}

	s.invalidateCache(ctx)
	s.logger.Info().Uint("drive_id", drive.ID).Str("company", drive.CompanyName).Msg("drive created")

	return dto.NewDriveResponse(drive), nil
}

func (s *driveService) Update(ctx context.Context, id uint, req dto.DriveSaveRequest) (dto.DriveResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.DriveResponse{}, err
	}

	existing, err := s.drives.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DriveResponse{}, ErrDriveNotFound
		}
		return dto.DriveResponse{}, err
	}

	updated := driveFromRequest(req)
	updated.ID = existing.ID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt

	if err := s.drives.Update(ctx, &updated); err != nil {
		return dto.DriveResponse{}, err
	}

	s.invalidateCache(ctx)

	return dto.NewDriveResponse(updated), nil
}

func (s *driveService) Delete(ctx context.Context, id uint) error {
	if err := s.drives.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDriveNotFound
		}
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// Get returns a single drive. When studentID is non-zero the response carries
// the per-student eligibility and application flags.
func (s *driveService) Get(ctx context.Context, id uint, studentID uint) (dto.DriveResponse, error) {
	drive, err := s.drives.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DriveResponse{}, ErrDriveNotFound
		}
		return dto.DriveResponse{}, err
	}

	response := dto.NewDriveResponse(drive)
	if studentID == 0 {
		return response, nil
	}

	annotated, err := s.annotate(ctx, studentID, []models.Drive{drive})
	if err != nil {
		return dto.DriveResponse{}, err
	}
	return annotated[0], nil
}

func (s *driveService) ListAll(ctx context.Context) ([]dto.DriveResponse, error) {
	drives, err := s.drives.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewDriveResponseSlice(drives), nil
}

// ListForStudent returns open drives annotated with the student's eligibility
// and applied flags. The raw drive list is shared across students and cached;
// annotation is always computed fresh.
func (s *driveService) ListForStudent(ctx context.Context, studentID uint) ([]dto.DriveResponse, error) {
	drives, err := s.loadUpcoming(ctx)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, studentID, drives)
}

func (s *driveService) loadUpcoming(ctx context.Context) ([]models.Drive, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, driveCacheKey).Result(); err == nil && cached != "" {
			var drives []models.Drive
			if err := json.Unmarshal([]byte(cached), &drives); err == nil {
				return drives, nil
			}
		}
	}

	drives, err := s.drives.ListUpcoming(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(drives); err == nil {
			if err := s.cache.Set(ctx, driveCacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache drive list")
			}
		}
	}

	return drives, nil
}

func (s *driveService) annotate(ctx context.Context, studentID uint, drives []models.Drive) ([]dto.DriveResponse, error) {
	var profile models.StudentProfile
	hasProfile := true
	profile, err := s.students.FindByUserID(ctx, studentID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		hasProfile = false
	}

	applied := make(map[uint]bool)
	apps, err := s.apps.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for _, app := range apps {
		applied[app.DriveID] = true
	}

	out := make([]dto.DriveResponse, 0, len(drives))
	for _, drive := range drives {
		eligible := hasProfile && drive.AcceptsStudent(profile)
		out = append(out, dto.NewDriveResponse(drive).Annotate(eligible, applied[drive.ID]))
	}
	return out, nil
}

func (s *driveService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, driveCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate drive cache")
	}
}

func driveFromRequest(req dto.DriveSaveRequest) models.Drive {
	return models.Drive{
		CompanyName:          req.CompanyName,
		JobProfile:           req.JobProfile,
		JobType:              req.JobType,
		Description:          req.Description,
		DriveDate:            req.DriveDate,
		RegistrationDeadline: req.RegistrationDeadline,
		CTCLakhs:             req.CTCLakhs,
		CTCDetails:           req.CTCDetails,
		MinCGPA:              req.MinCGPA,
		AllowedDepartments:   req.AllowedDepartments,
		MaxBacklogs:          req.MaxBacklogs,
		SelectionRounds:      req.SelectionRounds,
		WorkLocation:         req.WorkLocation,
		TotalPositions:       req.TotalPositions,
	}
}
