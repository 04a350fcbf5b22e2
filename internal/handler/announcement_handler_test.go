package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/handler"
)

type mockAnnouncementService struct {
	lastAudience string
	lastPage     int
	lastPageSize int
	result       dto.AnnouncementListResponse
	listErr      error
}

func (m *mockAnnouncementService) ListActive(_ context.Context, audience string, page, pageSize int) (dto.AnnouncementListResponse, error) {
	m.lastAudience = audience
	m.lastPage = page
	m.lastPageSize = pageSize
	if m.listErr != nil {
		return dto.AnnouncementListResponse{}, m.listErr
	}
	return m.result, nil
}

func (m *mockAnnouncementService) ListAll(_ context.Context) ([]dto.AnnouncementResponse, error) {
	return nil, nil
}

func (m *mockAnnouncementService) Create(_ context.Context, adminID uint, req dto.AnnouncementSaveRequest) (dto.AnnouncementResponse, error) {
	return dto.AnnouncementResponse{}, nil
}

func (m *mockAnnouncementService) Update(_ context.Context, id uint, req dto.AnnouncementSaveRequest) (dto.AnnouncementResponse, error) {
	return dto.AnnouncementResponse{}, nil
}

func (m *mockAnnouncementService) Delete(_ context.Context, id uint) error {
	return nil
}

func announcementApp(svc *mockAnnouncementService, role string) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/announcements", withIdentity(5, role))
	handler.NewAnnouncementHandler(svc, testLogger()).Register(group)
	return app
}

func TestAnnouncementHandlerListSetsCacheHeader(t *testing.T) {
	svc := &mockAnnouncementService{result: dto.AnnouncementListResponse{
		Items:      []dto.AnnouncementResponse{{ID: 1, Title: "Campus drive next week"}},
		Pagination: dto.PaginationMeta{Page: 2, PageSize: 5, TotalItems: 1, TotalPages: 1},
		CacheHit:   true,
	}}
	app := announcementApp(svc, "student")

	req := httptest.NewRequest(http.MethodGet, "/api/announcements?page=2&pageSize=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "true", resp.Header.Get("X-Cache-Hit"))
	require.Equal(t, 2, svc.lastPage)
	require.Equal(t, 5, svc.lastPageSize)
	require.Equal(t, "students", svc.lastAudience)
}

func TestAnnouncementHandlerListCacheMiss(t *testing.T) {
	svc := &mockAnnouncementService{result: dto.AnnouncementListResponse{CacheHit: false}}
	app := announcementApp(svc, "student")

	req := httptest.NewRequest(http.MethodGet, "/api/announcements", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "false", resp.Header.Get("X-Cache-Hit"))
}

func TestAnnouncementHandlerAdminSeesAdminAudience(t *testing.T) {
	svc := &mockAnnouncementService{}
	app := announcementApp(svc, "admin")

	req := httptest.NewRequest(http.MethodGet, "/api/announcements", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "admins", svc.lastAudience)
}

func TestAnnouncementHandlerRejectsBadPage(t *testing.T) {
	app := announcementApp(&mockAnnouncementService{}, "student")

	req := httptest.NewRequest(http.MethodGet, "/api/announcements?page=NaN", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
