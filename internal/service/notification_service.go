package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/models"
	"github.com/placement-cell/placetrack-api/internal/observability"
	"github.com/placement-cell/placetrack-api/internal/repository"
)

// ErrNotificationNotFound indicates the notification does not exist or belongs to someone else.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService manages per-user notifications. Creation happens only as
// a side effect of other services through Notify.
type NotificationService interface {
	List(ctx context.Context, userID uint, limit, offset int) (dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, userID, id uint) (dto.NotificationResponse, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	Notify(ctx context.Context, userIDs []uint, notificationType, message, link string) error
}

type notificationService struct {
	repo   repository.NotificationRepository
	logger zerolog.Logger
}

// NewNotificationService constructs the notification service.
func NewNotificationService(repo repository.NotificationRepository, logger zerolog.Logger) NotificationService {
	return &notificationService{
		repo:   repo,
		logger: logger.With().Str("component", "notification_service").Logger(),
	}
}

func (s *notificationService) List(ctx context.Context, userID uint, limit, offset int) (dto.NotificationListResponse, error) {
	items, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return dto.NotificationListResponse{}, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return dto.NotificationListResponse{}, err
	}

	return dto.NotificationListResponse{
		Items:       dto.NewNotificationResponseSlice(items),
		UnreadCount: unread,
	}, nil
}

// MarkRead is idempotent; marking an already-read notification succeeds.
func (s *notificationService) MarkRead(ctx context.Context, userID, id uint) (dto.NotificationResponse, error) {
	notification, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NotificationResponse{}, ErrNotificationNotFound
		}
		return dto.NotificationResponse{}, err
	}
	return dto.NewNotificationResponse(notification), nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *notificationService) Notify(ctx context.Context, userIDs []uint, notificationType, message, link string) error {
	if len(userIDs) == 0 {
		return nil
	}

	notifications := make([]models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		notifications = append(notifications, models.Notification{
			UserID:  id,
			Type:    notificationType,
			Message: message,
			Link:    link,
		})
	}

	if err := s.repo.CreateBatch(ctx, notifications); err != nil {
		s.logger.Error().Err(err).Str("type", notificationType).Int("count", len(userIDs)).Msg("notification fan-out failed")
		return err
	}

	observability.NotificationsSent().WithLabelValues(notificationType).Add(float64(len(userIDs)))

	return nil
}
