package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/models"
	"github.com/placement-cell/placetrack-api/internal/repository"
)

// ErrAnnouncementNotFound indicates the announcement does not exist.
var ErrAnnouncementNotFound = errors.New("announcement not found")

const announcementVersionKey = "announcements:ver"

// AnnouncementService exposes the broadcast surface for both roles.
type AnnouncementService interface {
	ListActive(ctx context.Context, audience string, page, pageSize int) (dto.AnnouncementListResponse, error)
	ListAll(ctx context.Context) ([]dto.AnnouncementResponse, error)
	Create(ctx context.Context, adminID uint, req dto.AnnouncementSaveRequest) (dto.AnnouncementResponse, error)
	Update(ctx context.Context, id uint, req dto.AnnouncementSaveRequest) (dto.AnnouncementResponse, error)
	Delete(ctx context.Context, id uint) error
}

type announcementService struct {
	repo      repository.AnnouncementRepository
	users     repository.UserRepository
	notifier  NotificationService
	cache     *redis.Client
	ttl       time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
	policy    *bluemonday.Policy
}

// NewAnnouncementService constructs the announcement service.
func NewAnnouncementService(repo repository.AnnouncementRepository, users repository.UserRepository, notifier NotificationService, cache *redis.Client, ttl time.Duration, validate *validator.Validate, logger zerolog.Logger) AnnouncementService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("p", "strong", "em", "a", "ul", "ol", "li", "br")
	policy.AllowAttrs("href", "title", "target").OnElements("a")
	return &announcementService{
		repo:      repo,
		users:     users,
		notifier:  notifier,
		cache:     cache,
		ttl:       ttl,
		validator: validate,
		logger:    logger.With().Str("component", "announcement_service").Logger(),
		policy:    policy,
	}
}

func (s *announcementService) ListActive(ctx context.Context, audience string, page, pageSize int) (dto.AnnouncementListResponse, error) {
	page = maxInt(page, 1)
	pageSize = clampPageSize(pageSize)
	audience = normalizeAudience(audience)

	cacheKey := ""
	if s.cache != nil {
		cacheKey = fmt.Sprintf("announcements:active:%d:%s:%d:%d", s.cacheVersion(ctx), audience, page, pageSize)
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.AnnouncementListResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				return response, nil
			}
		}
	}

	items, total, err := s.repo.ListActive(ctx, repository.AnnouncementFilter{
		Audience: audience,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return dto.AnnouncementListResponse{}, err
	}

	responses := make([]dto.AnnouncementResponse, 0, len(items))
	for _, item := range items {
		response := dto.NewAnnouncementResponse(item)
		response.Title = strings.TrimSpace(response.Title)
		response.Body = s.policy.Sanitize(response.Body)
		responses = append(responses, response)
	}

	pagination := dto.PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}

	response := dto.AnnouncementListResponse{Items: responses, Pagination: pagination}

	if cacheKey != "" {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache announcements")
			}
		}
	}

	return response, nil
}

func (s *announcementService) ListAll(ctx context.Context) ([]dto.AnnouncementResponse, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AnnouncementResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewAnnouncementResponse(item))
	}
	return out, nil
}

func (s *announcementService) Create(ctx context.Context, adminID uint, req dto.AnnouncementSaveRequest) (dto.AnnouncementResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	announcement := announcementFromRequest(req)
	announcement.CreatedBy = adminID

	if err := s.repo.Create(ctx, &announcement); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	s.bumpCacheVersion(ctx)
	s.logger.Info().Uint("announcement_id", announcement.ID).Str("audience", announcement.Audience).Msg("announcement created")

	s.fanOut(ctx, announcement)

	return dto.NewAnnouncementResponse(announcement), nil
}

func (s *announcementService) Update(ctx context.Context, id uint, req dto.AnnouncementSaveRequest) (dto.AnnouncementResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AnnouncementResponse{}, ErrAnnouncementNotFound
		}
		return dto.AnnouncementResponse{}, err
	}

	updated := announcementFromRequest(req)
	updated.ID = existing.ID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, &updated); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	s.bumpCacheVersion(ctx)

	return dto.NewAnnouncementResponse(updated), nil
}

func (s *announcementService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}
	s.bumpCacheVersion(ctx)
	return nil
}

// fanOut creates one notification per targeted user. High and urgent
// announcements always notify; lower priorities stay passive.
func (s *announcementService) fanOut(ctx context.Context, announcement models.Announcement) {
	if s.notifier == nil || s.users == nil {
		return
	}
	if announcement.Priority != models.PriorityHigh && announcement.Priority != models.PriorityUrgent {
		return
	}

	var targets []uint
	if announcement.Audience == models.AudienceAll || announcement.Audience == models.AudienceStudents {
		ids, err := s.users.ListIDsByRole(ctx, models.RoleStudent)
		if err != nil {
			s.logger.Warn().Err(err).Msg("announcement fan-out target lookup failed")
			return
		}
		targets = append(targets, ids...)
	}
	if announcement.Audience == models.AudienceAll || announcement.Audience == models.AudienceAdmins {
		ids, err := s.users.ListIDsByRole(ctx, models.RoleAdmin)
		if err != nil {
			s.logger.Warn().Err(err).Msg("announcement fan-out target lookup failed")
			return
		}
		targets = append(targets, ids...)
	}

	if err := s.notifier.Notify(ctx, targets, models.NotificationTypeAnnouncement, announcement.Title, ""); err != nil {
		s.logger.Warn().Err(err).Msg("announcement fan-out failed")
	}
}

func (s *announcementService) cacheVersion(ctx context.Context) int64 {
	if s.cache == nil {
		return 0
	}
	version, err := s.cache.Get(ctx, announcementVersionKey).Int64()
	if err != nil {
		return 0
	}
	return version
}

func (s *announcementService) bumpCacheVersion(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, announcementVersionKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to bump announcement cache version")
	}
}

func announcementFromRequest(req dto.AnnouncementSaveRequest) models.Announcement {
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	audience := normalizeAudience(req.Audience)

	startsAt := time.Now()
	if req.StartsAt != nil {
		startsAt = *req.StartsAt
	}

	return models.Announcement{
		Title:    strings.TrimSpace(req.Title),
		Body:     req.Body,
		Category: req.Category,
		Priority: priority,
		Audience: audience,
		StartsAt: startsAt,
		EndsAt:   req.EndsAt,
		IsPinned: req.IsPinned,
		Links:    req.Links,
	}
}

func normalizeAudience(audience string) string {
	switch strings.ToLower(strings.TrimSpace(audience)) {
	case models.AudienceStudents:
		return models.AudienceStudents
	case models.AudienceAdmins:
		return models.AudienceAdmins
	default:
		return models.AudienceAll
	}
}
