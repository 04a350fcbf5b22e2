package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/models"
)

func TestStudentServiceProfileRoundTrip(t *testing.T) {
	students := &studentRepoStub{profiles: map[uint]models.StudentProfile{}}
	svc := NewStudentService(students, &driveRepoStub{drives: map[uint]models.Drive{}}, testValidator(), testLogger())
	ctx := context.Background()

	_, err := svc.Profile(ctx, 10)
	require.ErrorIs(t, err, ErrProfileNotFound)

	saved, err := svc.SaveProfile(ctx, 10, dto.ProfileSaveRequest{
		Name:       "Asha Nair",
		RollNumber: "21CS042",
		Department: "CSE",
		CGPA:       8.4,
		Batch:      "2026",
		Skills:     []string{"Go", "SQL"},
	})
	require.NoError(t, err)
	require.Equal(t, "Asha Nair", saved.Name)
	require.Equal(t, []string{"Go", "SQL"}, saved.Skills)

	fetched, err := svc.Profile(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, "21CS042", fetched.RollNumber)
}

func TestStudentServiceSaveProfileValidation(t *testing.T) {
	students := &studentRepoStub{profiles: map[uint]models.StudentProfile{}}
	svc := NewStudentService(students, &driveRepoStub{drives: map[uint]models.Drive{}}, testValidator(), testLogger())

	_, err := svc.SaveProfile(context.Background(), 10, dto.ProfileSaveRequest{
		Name: "A",
		CGPA: 11,
	})
	require.Error(t, err)
}

func TestStudentServiceEligibilityReasons(t *testing.T) {
	now := time.Now()
	students := &studentRepoStub{profiles: map[uint]models.StudentProfile{
		10: {ID: 1, UserID: 10, Name: "Ravi", Department: "MECH", CGPA: 6.5, Backlogs: 2},
	}}
	drives := &driveRepoStub{drives: map[uint]models.Drive{
		1: {
			ID:                   1,
			CompanyName:          "Acme Corp",
			DriveDate:            now.Add(48 * time.Hour),
			RegistrationDeadline: now.Add(24 * time.Hour),
			MinCGPA:              7.5,
			MaxBacklogs:          0,
			AllowedDepartments:   datatypes.NewJSONSlice([]string{"CSE"}),
		},
		2: {
			ID:                   2,
			CompanyName:          "Globex",
			DriveDate:            now.Add(72 * time.Hour),
			RegistrationDeadline: now.Add(48 * time.Hour),
			MinCGPA:              6.0,
			MaxBacklogs:          3,
		},
	}}

	svc := NewStudentService(students, drives, testValidator(), testLogger())

	entries, err := svc.Eligibility(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byDrive := make(map[uint]dto.EligibilityEntry)
	for _, entry := range entries {
		byDrive[entry.DriveID] = entry
	}

	require.False(t, byDrive[1].Eligible)
	require.Len(t, byDrive[1].Reasons, 3, "cgpa, backlogs and department all reported")

	require.True(t, byDrive[2].Eligible)
	require.Empty(t, byDrive[2].Reasons)
}

func TestStudentServiceEligibilityDepartmentCaseInsensitive(t *testing.T) {
	now := time.Now()
	students := &studentRepoStub{profiles: map[uint]models.StudentProfile{
		10: {ID: 1, UserID: 10, Name: "Asha", Department: "cse ", CGPA: 8.0},
	}}
	drives := &driveRepoStub{drives: map[uint]models.Drive{
		1: {
			ID:                   1,
			CompanyName:          "Acme Corp",
			DriveDate:            now.Add(48 * time.Hour),
			RegistrationDeadline: now.Add(24 * time.Hour),
			MinCGPA:              9.5,
			AllowedDepartments:   datatypes.NewJSONSlice([]string{"CSE"}),
		},
	}}

	svc := NewStudentService(students, drives, testValidator(), testLogger())

	entries, err := svc.Eligibility(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.False(t, entries[0].Eligible)
	require.Len(t, entries[0].Reasons, 1, "only the cgpa miss is reported")
	require.Contains(t, entries[0].Reasons[0], "CGPA")
}

func TestStudentServiceEligibilityWithoutProfile(t *testing.T) {
	svc := NewStudentService(&studentRepoStub{profiles: map[uint]models.StudentProfile{}}, &driveRepoStub{drives: map[uint]models.Drive{}}, testValidator(), testLogger())

	_, err := svc.Eligibility(context.Background(), 99)
	require.ErrorIs(t, err, ErrProfileNotFound)
}
