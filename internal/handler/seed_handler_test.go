package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/placement-cell/placetrack-api/internal/handler"
	"github.com/placement-cell/placetrack-api/internal/service"
)

type mockSeedService struct {
	runs   int
	runErr error
}

func (m *mockSeedService) Run(context.Context) error {
	m.runs++
	return m.runErr
}

func seedApp(svc *mockSeedService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/admin/seed", withIdentity(1, "admin"))
	handler.NewSeedHandler(svc, testLogger()).Register(group)
	return app
}

func TestSeedHandlerRuns(t *testing.T) {
	svc := &mockSeedService{}
	app := seedApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/seed", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 1, svc.runs)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "demo data seeded", body.Message)
}

func TestSeedHandlerDisabled(t *testing.T) {
	svc := &mockSeedService{runErr: service.ErrSeedDisabled}
	app := seedApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/seed", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
