package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/handler"
	"github.com/placement-cell/placetrack-api/internal/service"
)

type mockAuthService struct {
	registerErr error
	loginErr    error
	refreshErr  error
	meErr       error
	session     dto.AuthResponse
	user        dto.UserResponse
	lastRefresh string
	lastUserID  uint
}

func (m *mockAuthService) Register(_ context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	if m.registerErr != nil {
		return dto.AuthResponse{}, m.registerErr
	}
	return m.session, nil
}

func (m *mockAuthService) Login(_ context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	if m.loginErr != nil {
		return dto.AuthResponse{}, m.loginErr
	}
	return m.session, nil
}

func (m *mockAuthService) Refresh(_ context.Context, refreshToken string) (dto.AuthResponse, error) {
	m.lastRefresh = refreshToken
	if m.refreshErr != nil {
		return dto.AuthResponse{}, m.refreshErr
	}
	return m.session, nil
}

func (m *mockAuthService) Me(_ context.Context, userID uint) (dto.UserResponse, error) {
	m.lastUserID = userID
	if m.meErr != nil {
		return dto.UserResponse{}, m.meErr
	}
	return m.user, nil
}

func authApp(svc service.AuthService) *fiber.App {
	app := fiber.New()
	h := handler.NewAuthHandler(svc, testLogger())
	h.Register(app.Group("/api/auth"))
	h.RegisterProtected(app.Group("/api/auth", withIdentity(42, "student")))
	return app
}

func TestAuthHandlerRegister(t *testing.T) {
	svc := &mockAuthService{session: dto.AuthResponse{
		User:        dto.UserResponse{ID: 1, Email: "asha@campus.edu", Role: "student"},
		AccessToken: "access",
		ExpiresIn:   900,
	}}
	app := authApp(svc)

	payload, _ := json.Marshal(dto.RegisterRequest{
		Email:    "asha@campus.edu",
		Password: "s3cret-pass",
		Role:     "student",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool             `json:"success"`
		Data    dto.AuthResponse `json:"data"`
		Message string           `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "account created", body.Message)
	require.Equal(t, "access", body.Data.AccessToken)
}

func TestAuthHandlerRegisterDuplicateEmail(t *testing.T) {
	app := authApp(&mockAuthService{registerErr: service.ErrEmailTaken})

	payload, _ := json.Marshal(dto.RegisterRequest{
		Email:    "asha@campus.edu",
		Password: "s3cret-pass",
		Role:     "student",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.False(t, body.Success)
	require.Equal(t, "email already registered", body.Message)
}

func TestAuthHandlerLoginRejected(t *testing.T) {
	app := authApp(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	payload, _ := json.Marshal(dto.LoginRequest{Email: "asha@campus.edu", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandlerRefresh(t *testing.T) {
	svc := &mockAuthService{session: dto.AuthResponse{AccessToken: "rotated"}}
	app := authApp(svc)

	payload, _ := json.Marshal(fiber.Map{"refresh_token": "refresh-token"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "refresh-token", svc.lastRefresh)
}

func TestAuthHandlerRefreshInvalidToken(t *testing.T) {
	app := authApp(&mockAuthService{refreshErr: service.ErrInvalidRefreshToken})

	payload, _ := json.Marshal(fiber.Map{"refresh_token": "stale"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandlerMe(t *testing.T) {
	svc := &mockAuthService{user: dto.UserResponse{ID: 42, Email: "asha@campus.edu", Role: "student"}}
	app := authApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(42), svc.lastUserID, "identity must come from the session locals")
}
