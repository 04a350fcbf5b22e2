package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/models"
	"github.com/placement-cell/placetrack-api/internal/repository"
)

// ErrProfileNotFound indicates the student has not saved a profile yet.
var ErrProfileNotFound = errors.New("student profile not found")

// StudentService exposes the student profile and eligibility surface.
type StudentService interface {
	Profile(ctx context.Context, userID uint) (dto.ProfileResponse, error)
	SaveProfile(ctx context.Context, userID uint, req dto.ProfileSaveRequest) (dto.ProfileResponse, error)
	Eligibility(ctx context.Context, userID uint) ([]dto.EligibilityEntry, error)
}

type studentService struct {
	students  repository.StudentRepository
	drives    repository.DriveRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentService constructs the student profile service.
func NewStudentService(students repository.StudentRepository, drives repository.DriveRepository, validate *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		students:  students,
		drives:    drives,
		validator: validate,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) Profile(ctx context.Context, userID uint) (dto.ProfileResponse, error) {
	profile, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrProfileNotFound
		}
		return dto.ProfileResponse{}, err
	}
	return dto.NewProfileResponse(profile), nil
}

// SaveProfile replaces the profile wholesale. The resume URL is managed by the
// upload flow and deliberately not writable here.
func (s *studentService) SaveProfile(ctx context.Context, userID uint, req dto.ProfileSaveRequest) (dto.ProfileResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ProfileResponse{}, err
	}

	profile := models.StudentProfile{
		UserID:         userID,
		Name:           req.Name,
		RollNumber:     req.RollNumber,
		Department:     req.Department,
		CGPA:           req.CGPA,
		Batch:          req.Batch,
		Backlogs:       req.Backlogs,
		Skills:         req.Skills,
		Certifications: req.Certifications,
		Achievements:   req.Achievements,
		Internships:    req.Internships,
		Projects:       req.Projects,
		LinkedInURL:    req.LinkedInURL,
		GitHubURL:      req.GitHubURL,
	}

	if err := s.students.Save(ctx, &profile); err != nil {
		return dto.ProfileResponse{}, err
	}

	saved, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	s.logger.Info().Uint("user_id", userID).Msg("student profile saved")

	return dto.NewProfileResponse(saved), nil
}

// Eligibility evaluates every open drive against the profile and reports the
// verdict with human-readable reasons for each miss.
func (s *studentService) Eligibility(ctx context.Context, userID uint) ([]dto.EligibilityEntry, error) {
	profile, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	drives, err := s.drives.ListUpcoming(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	entries := make([]dto.EligibilityEntry, 0, len(drives))
	for _, drive := range drives {
		entry := dto.EligibilityEntry{
			DriveID:     drive.ID,
			CompanyName: drive.CompanyName,
			Eligible:    drive.AcceptsStudent(profile),
		}
		if !entry.Eligible {
			entry.Reasons = eligibilityReasons(drive, profile)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func eligibilityReasons(drive models.Drive, profile models.StudentProfile) []string {
	var reasons []string
	if profile.CGPA < drive.MinCGPA {
		reasons = append(reasons, fmt.Sprintf("CGPA %.2f below required %.2f", profile.CGPA, drive.MinCGPA))
	}
	if profile.Backlogs > drive.MaxBacklogs {
		reasons = append(reasons, fmt.Sprintf("%d backlogs exceed allowed %d", profile.Backlogs, drive.MaxBacklogs))
	}
	if !drive.AllowsDepartment(profile.Department) {
		reasons = append(reasons, fmt.Sprintf("department %s not in the allowed list", profile.Department))
	}
	return reasons
}
