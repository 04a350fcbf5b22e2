package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/repository"
	"github.com/placement-cell/placetrack-api/pkg/ai"
)

// ErrAdvisorUnavailable indicates no AI backend is configured.
var ErrAdvisorUnavailable = errors.New("ai advisor is not configured")

// AdvisorService fronts the AI placement advisor with the student's own data.
type AdvisorService interface {
	Chat(ctx context.Context, userID uint, req dto.ChatRequest) (dto.ChatResponse, error)
	Insights(ctx context.Context, userID uint) (dto.InsightsResponse, error)
}

type advisorService struct {
	advisor   ai.Advisor
	students  repository.StudentRepository
	drives    repository.DriveRepository
	model     string
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAdvisorService constructs the advisor service. A nil advisor is allowed;
// calls then fail with ErrAdvisorUnavailable.
func NewAdvisorService(advisor ai.Advisor, students repository.StudentRepository, drives repository.DriveRepository, model string, validate *validator.Validate, logger zerolog.Logger) AdvisorService {
	return &advisorService{
		advisor:   advisor,
		students:  students,
		drives:    drives,
		model:     model,
		validator: validate,
		logger:    logger.With().Str("component", "advisor_service").Logger(),
	}
}

func (s *advisorService) Chat(ctx context.Context, userID uint, req dto.ChatRequest) (dto.ChatResponse, error) {
	if s.advisor == nil {
		return dto.ChatResponse{}, ErrAdvisorUnavailable
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.ChatResponse{}, err
	}

	profile, err := s.profileContext(ctx, userID)
	if err != nil {
		return dto.ChatResponse{}, err
	}

	messages := make([]ai.Message, 0, len(req.Messages))
	for _, message := range req.Messages {
		messages = append(messages, ai.Message{Role: message.Role, Content: message.Content})
	}

	reply, err := s.advisor.Chat(ctx, profile, messages)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", userID).Msg("advisor chat failed")
		return dto.ChatResponse{}, err
	}

	return dto.ChatResponse{Reply: reply, Model: s.model}, nil
}

func (s *advisorService) Insights(ctx context.Context, userID uint) (dto.InsightsResponse, error) {
	if s.advisor == nil {
		return dto.InsightsResponse{}, ErrAdvisorUnavailable
	}

	profile, err := s.profileContext(ctx, userID)
	if err != nil {
		return dto.InsightsResponse{}, err
	}

	drives, err := s.drives.ListUpcoming(ctx, time.Now())
	if err != nil {
		return dto.InsightsResponse{}, err
	}

	contexts := make([]ai.DriveContext, 0, len(drives))
	for _, drive := range drives {
		contexts = append(contexts, ai.DriveContext{
			Company:    drive.CompanyName,
			JobProfile: drive.JobProfile,
			MinCGPA:    drive.MinCGPA,
			Deadline:   drive.RegistrationDeadline.Format(time.RFC3339),
		})
	}

	insights, err := s.advisor.Insights(ctx, profile, contexts)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", userID).Msg("advisor insights failed")
		return dto.InsightsResponse{}, err
	}

	return dto.InsightsResponse{
		ReadinessScore: insights.ReadinessScore,
		Strengths:      insights.Strengths,
		Gaps:           insights.Gaps,
		Suggestions:    insights.Suggestions,
	}, nil
}

func (s *advisorService) profileContext(ctx context.Context, userID uint) (ai.ProfileContext, error) {
	profile, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ai.ProfileContext{}, ErrProfileNotFound
		}
		return ai.ProfileContext{}, err
	}

	return ai.ProfileContext{
		Name:       profile.Name,
		Department: profile.Department,
		Batch:      profile.Batch,
		CGPA:       profile.CGPA,
		Backlogs:   profile.Backlogs,
		Skills:     profile.Skills,
	}, nil
}
