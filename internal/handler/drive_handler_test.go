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
	"github.com/placement-cell/placetrack-api/internal/service"
)

type mockDriveService struct {
	lastStudentID uint
	lastDriveID   uint
	drives        []dto.DriveResponse
	drive         dto.DriveResponse
	getErr        error
}

func (m *mockDriveService) Create(_ context.Context, adminID uint, req dto.DriveSaveRequest) (dto.DriveResponse, error) {
	return dto.DriveResponse{}, nil
}

func (m *mockDriveService) Update(_ context.Context, id uint, req dto.DriveSaveRequest) (dto.DriveResponse, error) {
	return dto.DriveResponse{}, nil
}

func (m *mockDriveService) Delete(_ context.Context, id uint) error {
	return nil
}

func (m *mockDriveService) Get(_ context.Context, id uint, studentID uint) (dto.DriveResponse, error) {
	m.lastDriveID = id
	m.lastStudentID = studentID
	if m.getErr != nil {
		return dto.DriveResponse{}, m.getErr
	}
	return m.drive, nil
}

func (m *mockDriveService) ListAll(_ context.Context) ([]dto.DriveResponse, error) {
	return m.drives, nil
}

func (m *mockDriveService) ListForStudent(_ context.Context, studentID uint) ([]dto.DriveResponse, error) {
	m.lastStudentID = studentID
	return m.drives, nil
}

func driveApp(svc *mockDriveService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/drives", withIdentity(10, "student"))
	handler.NewDriveHandler(svc, testLogger()).Register(group)
	return app
}

func TestDriveHandlerList(t *testing.T) {
	eligible := true
	applied := false
	svc := &mockDriveService{drives: []dto.DriveResponse{
		{ID: 1, CompanyName: "Acme", IsEligible: &eligible, HasApplied: &applied},
	}}
	app := driveApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/drives", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(10), svc.lastStudentID)

	var body struct {
		Data []dto.DriveResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Len(t, body.Data, 1)
	require.NotNil(t, body.Data[0].IsEligible)
	require.True(t, *body.Data[0].IsEligible)
}

func TestDriveHandlerListEligibleOnly(t *testing.T) {
	yes, no := true, false
	svc := &mockDriveService{drives: []dto.DriveResponse{
		{ID: 1, CompanyName: "Acme", IsEligible: &yes, HasApplied: &no},
		{ID: 2, CompanyName: "Initech", IsEligible: &no, HasApplied: &no},
	}}
	app := driveApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/drives?eligible=true", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []dto.DriveResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Len(t, body.Data, 1)
	require.Equal(t, uint(1), body.Data[0].ID)
}

func TestDriveHandlerGet(t *testing.T) {
	svc := &mockDriveService{drive: dto.DriveResponse{ID: 3, CompanyName: "Acme"}}
	app := driveApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/drives/3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(3), svc.lastDriveID)
	require.Equal(t, uint(10), svc.lastStudentID)
}

func adminDriveApp(svc *mockDriveService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/admin/drives", withIdentity(1, "admin"))
	handler.NewAdminDriveHandler(svc, testLogger()).Register(group)
	return app
}

func TestAdminDriveHandlerGet(t *testing.T) {
	svc := &mockDriveService{drive: dto.DriveResponse{ID: 7, CompanyName: "Acme"}, lastStudentID: 99}
	app := adminDriveApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/drives/7", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(7), svc.lastDriveID)
	require.Zero(t, svc.lastStudentID, "admin view carries no student annotation")

	var body struct {
		Data dto.DriveResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, "Acme", body.Data.CompanyName)
	require.Nil(t, body.Data.IsEligible)
}

func TestAdminDriveHandlerGetNotFound(t *testing.T) {
	app := adminDriveApp(&mockDriveService{getErr: service.ErrDriveNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/drives/99", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDriveHandlerGetNotFound(t *testing.T) {
	app := driveApp(&mockDriveService{getErr: service.ErrDriveNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/drives/99", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDriveHandlerGetBadID(t *testing.T) {
	app := driveApp(&mockDriveService{})

	req := httptest.NewRequest(http.MethodGet, "/api/drives/not-a-number", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
