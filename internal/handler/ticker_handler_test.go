package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/stretchr/testify/require"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/handler"
	"github.com/placement-cell/placetrack-api/internal/service"
)

type mockTickerService struct {
	entries    []dto.TickerEntry
	published  dto.TickerEntry
	publishErr error
	deleteErr  error
	lastID     string
}

func (m *mockTickerService) List(_ context.Context) ([]dto.TickerEntry, error) {
	return m.entries, nil
}

func (m *mockTickerService) Publish(_ context.Context, req dto.TickerCreateRequest) (dto.TickerEntry, error) {
	if m.publishErr != nil {
		return dto.TickerEntry{}, m.publishErr
	}
	return m.published, nil
}

func (m *mockTickerService) Delete(_ context.Context, id string) error {
	m.lastID = id
	return m.deleteErr
}

func (m *mockTickerService) ServeConnection(conn *websocket.Conn) {}

func (m *mockTickerService) Start(ctx context.Context) {}

func tickerApp(svc *mockTickerService) *fiber.App {
	app := fiber.New()
	h := handler.NewTickerHandler(svc, testLogger())
	h.Register(app.Group("/api/ticker"))
	h.RegisterAdmin(app.Group("/api/admin/ticker", withIdentity(1, "admin")))
	return app
}

func TestTickerHandlerList(t *testing.T) {
	svc := &mockTickerService{entries: []dto.TickerEntry{
		{ID: "abc", Text: "Acme results are out", Priority: "high"},
	}}
	app := tickerApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/ticker", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []dto.TickerEntry `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Len(t, body.Data, 1)
	require.Equal(t, "Acme results are out", body.Data[0].Text)
}

func TestTickerHandlerWSRequiresUpgrade(t *testing.T) {
	app := tickerApp(&mockTickerService{})

	req := httptest.NewRequest(http.MethodGet, "/api/ticker/ws", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestTickerHandlerPublish(t *testing.T) {
	svc := &mockTickerService{published: dto.TickerEntry{ID: "abc", Text: "New drive posted", Priority: "normal"}}
	app := tickerApp(svc)

	payload, _ := json.Marshal(dto.TickerCreateRequest{Text: "New drive posted"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/ticker", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Message string          `json:"message"`
		Data    dto.TickerEntry `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, "ticker entry published", body.Message)
	require.Equal(t, "abc", body.Data.ID)
}

func TestTickerHandlerDeleteNotFound(t *testing.T) {
	svc := &mockTickerService{deleteErr: service.ErrTickerEntryNotFound}
	app := tickerApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/ticker/ghost", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.Equal(t, "ghost", svc.lastID)
}
