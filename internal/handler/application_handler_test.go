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

type mockApplicationService struct {
	lastStudentID uint
	lastTab       string
	applyErr      error
	respondErr    error
	withdrawErr   error
	listResponse  []dto.ApplicationResponse
	application   dto.ApplicationResponse
	stats         dto.ApplicationStats
	catalog       []dto.StatusBadge
	moved         int
	board         dto.ApplicantBoard
	updateErr     error
	shortlistErr  error
}

func (m *mockApplicationService) Apply(_ context.Context, studentID uint, req dto.ApplyRequest) (dto.ApplicationResponse, error) {
	m.lastStudentID = studentID
	if m.applyErr != nil {
		return dto.ApplicationResponse{}, m.applyErr
	}
	return m.application, nil
}

func (m *mockApplicationService) ListMine(_ context.Context, studentID uint, tab string) ([]dto.ApplicationResponse, error) {
	m.lastStudentID = studentID
	m.lastTab = tab
	return m.listResponse, nil
}

func (m *mockApplicationService) Stats(_ context.Context, studentID uint) (dto.ApplicationStats, error) {
	m.lastStudentID = studentID
	return m.stats, nil
}

func (m *mockApplicationService) RespondToOffer(_ context.Context, studentID, applicationID uint, req dto.OfferResponseRequest) (dto.ApplicationResponse, error) {
	m.lastStudentID = studentID
	if m.respondErr != nil {
		return dto.ApplicationResponse{}, m.respondErr
	}
	return m.application, nil
}

func (m *mockApplicationService) Withdraw(_ context.Context, studentID, applicationID uint) error {
	m.lastStudentID = studentID
	return m.withdrawErr
}

func (m *mockApplicationService) StatusCatalog() []dto.StatusBadge {
	return m.catalog
}

func (m *mockApplicationService) UpdateStatus(_ context.Context, applicationID uint, req dto.StatusUpdateRequest) (dto.ApplicationResponse, error) {
	if m.updateErr != nil {
		return dto.ApplicationResponse{}, m.updateErr
	}
	return m.application, nil
}

func (m *mockApplicationService) Shortlist(_ context.Context, req dto.ShortlistRequest) (int, error) {
	if m.shortlistErr != nil {
		return 0, m.shortlistErr
	}
	return m.moved, nil
}

func (m *mockApplicationService) Board(_ context.Context, driveID uint) (dto.ApplicantBoard, error) {
	return m.board, nil
}

func applicationApp(svc service.ApplicationService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/applications", withIdentity(10, "student"))
	handler.NewApplicationHandler(svc, testLogger()).Register(group)
	return app
}

func TestApplicationHandlerApply(t *testing.T) {
	svc := &mockApplicationService{application: dto.ApplicationResponse{ID: 1, DriveID: 3, Status: "applied"}}
	app := applicationApp(svc)

	payload, _ := json.Marshal(dto.ApplyRequest{DriveID: 3})
	req := httptest.NewRequest(http.MethodPost, "/api/applications", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, uint(10), svc.lastStudentID, "identity comes from the session, not the payload")

	var body struct {
		Success bool                    `json:"success"`
		Data    dto.ApplicationResponse `json:"data"`
		Message string                  `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "application submitted", body.Message)
	require.Equal(t, "applied", body.Data.Status)
}

func TestApplicationHandlerApplyErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"drive missing", service.ErrDriveNotFound, fiber.StatusNotFound},
		{"no profile", service.ErrProfileNotFound, fiber.StatusPreconditionFailed},
		{"closed", service.ErrRegistrationClosed, fiber.StatusConflict},
		{"ineligible", service.ErrNotEligible, fiber.StatusForbidden},
		{"duplicate", service.ErrAlreadyApplied, fiber.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := applicationApp(&mockApplicationService{applyErr: tc.err})

			payload, _ := json.Marshal(dto.ApplyRequest{DriveID: 3})
			req := httptest.NewRequest(http.MethodPost, "/api/applications", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestApplicationHandlerListPassesTab(t *testing.T) {
	svc := &mockApplicationService{listResponse: []dto.ApplicationResponse{{ID: 1, Status: "offered"}}}
	app := applicationApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/applications?tab=offers", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "offers", svc.lastTab)
	require.Equal(t, uint(10), svc.lastStudentID)
}

func TestApplicationHandlerStatusCatalog(t *testing.T) {
	svc := &mockApplicationService{catalog: []dto.StatusBadge{
		{Status: "applied", Color: "blue", Icon: "paper-plane", Label: "Applied"},
	}}
	app := applicationApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/applications/status-catalog", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []dto.StatusBadge `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Len(t, body.Data, 1)
	require.Equal(t, "blue", body.Data[0].Color)
}

func TestApplicationHandlerRespond(t *testing.T) {
	svc := &mockApplicationService{application: dto.ApplicationResponse{ID: 4, Status: "accepted"}}
	app := applicationApp(svc)

	payload, _ := json.Marshal(dto.OfferResponseRequest{Decision: "accepted"})
	req := httptest.NewRequest(http.MethodPost, "/api/applications/4/respond", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestApplicationHandlerRespondConflict(t *testing.T) {
	svc := &mockApplicationService{respondErr: service.ErrOfferNotPending}
	app := applicationApp(svc)

	payload, _ := json.Marshal(dto.OfferResponseRequest{Decision: "accepted"})
	req := httptest.NewRequest(http.MethodPost, "/api/applications/4/respond", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestApplicationHandlerWithdraw(t *testing.T) {
	svc := &mockApplicationService{}
	app := applicationApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/applications/4", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(10), svc.lastStudentID)
}

func TestApplicationHandlerWithdrawTooLate(t *testing.T) {
	app := applicationApp(&mockApplicationService{withdrawErr: service.ErrWithdrawNotAllowed})

	req := httptest.NewRequest(http.MethodDelete, "/api/applications/4", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestApplicationHandlerRespondBadID(t *testing.T) {
	app := applicationApp(&mockApplicationService{})

	payload, _ := json.Marshal(dto.OfferResponseRequest{Decision: "accepted"})
	req := httptest.NewRequest(http.MethodPost, "/api/applications/zero/respond", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
