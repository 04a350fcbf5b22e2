package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/models"
)

// seedRoster loads four students across two departments. Asha (CSE) holds an
// accepted offer, Dev (CSE) was rejected, Meera (ECE) is mid-pipeline and
// Ravi (ECE) never applied.
func seedRoster(t *testing.T, db *gorm.DB) models.Drive {
	t.Helper()

	drive := seedDrive(t, db, "Acme")

	profiles := []models.StudentProfile{
		{UserID: 10, Name: "Asha", RollNumber: "CSE-001", Department: "CSE", Batch: "2026", CGPA: 8.5},
		{UserID: 11, Name: "Dev", RollNumber: "CSE-002", Department: "CSE", Batch: "2026", CGPA: 7.1},
		{UserID: 12, Name: "Meera", RollNumber: "ECE-001", Department: "ECE", Batch: "2027", CGPA: 9.0},
		{UserID: 13, Name: "Ravi", RollNumber: "ECE-002", Department: "ECE", Batch: "2027", CGPA: 6.4},
	}
	for i := range profiles {
		require.NoError(t, db.Create(&profiles[i]).Error)
	}

	apps := []models.Application{
		{DriveID: drive.ID, StudentID: 10, Status: models.StatusAccepted},
		{DriveID: drive.ID, StudentID: 11, Status: models.StatusRejected},
		{DriveID: drive.ID, StudentID: 12, Status: models.StatusRound2},
	}
	for i := range apps {
		require.NoError(t, db.Create(&apps[i]).Error)
	}

	return drive
}

func TestAdminStatsRepositoryCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminStatsRepository(db)
	ctx := context.Background()

	seedRoster(t, db)

	students, err := repo.CountStudents(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(4), students)

	drives, err := repo.CountDrives(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), drives)

	placed, err := repo.CountPlacedStudents(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), placed, "only accepted offers count as placed")
}

func TestAdminStatsRepositoryDepartmentBreakdown(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminStatsRepository(db)
	ctx := context.Background()

	seedRoster(t, db)

	rows, err := repo.DepartmentBreakdown(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "CSE", rows[0].Department)
	require.Equal(t, int64(2), rows[0].Students)
	require.Equal(t, int64(1), rows[0].Placed)

	require.Equal(t, "ECE", rows[1].Department)
	require.Equal(t, int64(2), rows[1].Students)
	require.Zero(t, rows[1].Placed)
}

func TestAdminStatsRepositoryListStudentsFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminStatsRepository(db)
	ctx := context.Background()

	seedRoster(t, db)

	rows, total, err := repo.ListStudents(ctx, AdminStudentFilter{Department: "CSE"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	require.Equal(t, "Asha", rows[0].Name, "roster sorts by name")
	require.True(t, rows[0].Placed)
	require.False(t, rows[1].Placed)

	placed := true
	rows, total, err = repo.ListStudents(ctx, AdminStudentFilter{Placed: &placed})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	require.Equal(t, "Asha", rows[0].Name)

	unplaced := false
	_, total, err = repo.ListStudents(ctx, AdminStudentFilter{Placed: &unplaced})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)

	rows, total, err = repo.ListStudents(ctx, AdminStudentFilter{Search: "ece-0"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, rows, 2)

	rows, total, err = repo.ListStudents(ctx, AdminStudentFilter{Page: 2, PageSize: 3})
	require.NoError(t, err)
	require.Equal(t, int64(4), total)
	require.Len(t, rows, 1, "second page holds the remainder")
}

func TestAdminStatsRepositoryListCompanies(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminStatsRepository(db)
	ctx := context.Background()

	seedRoster(t, db)

	second := seedDrive(t, db, "Initech")
	require.NoError(t, db.Create(&models.Application{
		DriveID: second.ID, StudentID: 12, Status: models.StatusOffered,
	}).Error)

	rows, err := repo.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "Acme", rows[0].Company)
	require.Equal(t, int64(1), rows[0].Drives)
	require.Equal(t, int64(3), rows[0].Applications)
	require.Equal(t, int64(1), rows[0].Offers, "accepted still counts as an offer made")

	require.Equal(t, "Initech", rows[1].Company)
	require.Equal(t, int64(1), rows[1].Offers)
}
