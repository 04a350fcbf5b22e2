package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/models"
	"github.com/placement-cell/placetrack-api/internal/repository"
)

type announcementRepoStub struct {
	items  []models.Announcement
	nextID uint
}

func (a *announcementRepoStub) Create(_ context.Context, announcement *models.Announcement) error {
	a.nextID++
	announcement.ID = a.nextID
	a.items = append(a.items, *announcement)
	return nil
}

func (a *announcementRepoStub) Update(_ context.Context, announcement *models.Announcement) error {
	for i := range a.items {
		if a.items[i].ID == announcement.ID {
			a.items[i] = *announcement
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (a *announcementRepoStub) Delete(_ context.Context, id uint) error {
	for i := range a.items {
		if a.items[i].ID == id {
			a.items = append(a.items[:i], a.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (a *announcementRepoStub) FindByID(_ context.Context, id uint) (models.Announcement, error) {
	for _, item := range a.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Announcement{}, gorm.ErrRecordNotFound
}

func (a *announcementRepoStub) ListAll(_ context.Context) ([]models.Announcement, error) {
	return append([]models.Announcement(nil), a.items...), nil
}

func (a *announcementRepoStub) ListActive(_ context.Context, filter repository.AnnouncementFilter) ([]models.Announcement, int64, error) {
	now := time.Now()
	var out []models.Announcement
	for _, item := range a.items {
		if !item.ActiveAt(now) {
			continue
		}
		if filter.Audience != models.AudienceAll && item.Audience != models.AudienceAll && item.Audience != filter.Audience {
			continue
		}
		out = append(out, item)
	}
	return out, int64(len(out)), nil
}

type userRepoStub struct {
	students []uint
	admins   []uint
}

func (u *userRepoStub) Create(_ context.Context, user *models.User) error {
	return nil
}

func (u *userRepoStub) FindByEmail(context.Context, string) (models.User, error) {
	return models.User{}, gorm.ErrRecordNotFound
}

func (u *userRepoStub) FindByID(context.Context, uint) (models.User, error) {
	return models.User{}, gorm.ErrRecordNotFound
}

func (u *userRepoStub) ListIDsByRole(_ context.Context, role models.Role) ([]uint, error) {
	if role == models.RoleAdmin {
		return u.admins, nil
	}
	return u.students, nil
}

func TestAnnouncementServiceCachingAndSanitize(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	repo := &announcementRepoStub{items: []models.Announcement{{
		ID:       1,
		Title:    "  Placement talk  ",
		Body:     "<script>alert('x')</script><p>Safe</p>",
		Audience: models.AudienceAll,
		StartsAt: time.Now().Add(-time.Hour),
	}}, nextID: 1}

	svc := NewAnnouncementService(repo, nil, nil, redisClient, time.Minute, testValidator(), testLogger())

	resp, err := svc.ListActive(context.Background(), models.AudienceStudents, 1, 10)
	require.NoError(t, err)
	require.False(t, resp.CacheHit)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "Placement talk", resp.Items[0].Title)
	require.Equal(t, "<p>Safe</p>", resp.Items[0].Body)

	repo.items = nil
	cached, err := svc.ListActive(context.Background(), models.AudienceStudents, 1, 10)
	require.NoError(t, err)
	require.True(t, cached.CacheHit)
	require.Len(t, cached.Items, 1)
}

func TestAnnouncementServiceCreateInvalidatesCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	repo := &announcementRepoStub{}
	svc := NewAnnouncementService(repo, nil, nil, redisClient, time.Minute, testValidator(), testLogger())

	first, err := svc.ListActive(context.Background(), models.AudienceStudents, 1, 10)
	require.NoError(t, err)
	require.Empty(t, first.Items)

	_, err = svc.Create(context.Background(), 1, dto.AnnouncementSaveRequest{
		Title: "Results out",
		Body:  "<p>Check the portal</p>",
	})
	require.NoError(t, err)

	fresh, err := svc.ListActive(context.Background(), models.AudienceStudents, 1, 10)
	require.NoError(t, err)
	require.False(t, fresh.CacheHit, "version bump must bypass the stale page")
	require.Len(t, fresh.Items, 1)
}

func TestAnnouncementServiceFanOutByPriority(t *testing.T) {
	repo := &announcementRepoStub{}
	users := &userRepoStub{students: []uint{1, 2, 3}, admins: []uint{7}}
	notifier := &notifierStub{}

	svc := NewAnnouncementService(repo, users, notifier, nil, time.Minute, testValidator(), testLogger())

	_, err := svc.Create(context.Background(), 1, dto.AnnouncementSaveRequest{
		Title:    "Routine update",
		Body:     "nothing pressing",
		Priority: models.PriorityNormal,
		Audience: models.AudienceStudents,
	})
	require.NoError(t, err)
	require.Empty(t, notifier.sent, "normal priority stays passive")

	_, err = svc.Create(context.Background(), 1, dto.AnnouncementSaveRequest{
		Title:    "Campus closed tomorrow",
		Body:     "urgent notice",
		Priority: models.PriorityUrgent,
		Audience: models.AudienceStudents,
	})
	require.NoError(t, err)
	require.Len(t, notifier.sent, 1)
	require.Equal(t, []uint{1, 2, 3}, notifier.sent[0].userIDs)
	require.Equal(t, models.NotificationTypeAnnouncement, notifier.sent[0].kind)
}

func TestAnnouncementServiceUpdateAndDelete(t *testing.T) {
	repo := &announcementRepoStub{}
	svc := NewAnnouncementService(repo, nil, nil, nil, time.Minute, testValidator(), testLogger())

	created, err := svc.Create(context.Background(), 5, dto.AnnouncementSaveRequest{
		Title: "Initial",
		Body:  "body",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, dto.AnnouncementSaveRequest{
		Title: "Amended",
		Body:  "body",
	})
	require.NoError(t, err)
	require.Equal(t, "Amended", updated.Title)

	_, err = svc.Update(context.Background(), 404, dto.AnnouncementSaveRequest{Title: "Nope", Body: "x"})
	require.ErrorIs(t, err, ErrAnnouncementNotFound)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrAnnouncementNotFound)
}

func TestAnnouncementServicePinnedAlwaysActive(t *testing.T) {
	repo := &announcementRepoStub{items: []models.Announcement{
		{ID: 1, Title: "Expired", Body: "ok", Audience: models.AudienceAll, StartsAt: time.Now().Add(-48 * time.Hour), EndsAt: timePtr(time.Now().Add(-24 * time.Hour))},
		{ID: 2, Title: "Pinned", Body: "ok", Audience: models.AudienceAll, StartsAt: time.Now().Add(-48 * time.Hour), EndsAt: timePtr(time.Now().Add(-24 * time.Hour)), IsPinned: true},
	}, nextID: 2}

	svc := NewAnnouncementService(repo, nil, nil, nil, time.Minute, testValidator(), testLogger())

	resp, err := svc.ListActive(context.Background(), models.AudienceStudents, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "Pinned", resp.Items[0].Title)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
