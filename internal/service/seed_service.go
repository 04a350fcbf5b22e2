package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/models"
	"github.com/placement-cell/placetrack-api/internal/repository"
)

// ErrSeedDisabled indicates demo seeding is switched off by configuration.
var ErrSeedDisabled = errors.New("demo seeding is disabled")

// SeedService loads a small demo dataset so a fresh install has something to
// show. Only runs when demo mode is enabled and the user table is empty.
type SeedService interface {
	Run(ctx context.Context) error
}

type seedService struct {
	users         repository.UserRepository
	students      repository.StudentRepository
	drives        repository.DriveRepository
	announcements repository.AnnouncementRepository
	resources     repository.ResourceRepository
	alumni        repository.AlumniRepository
	enabled       bool
	logger        zerolog.Logger
}

// NewSeedService constructs the demo seeding service.
func NewSeedService(users repository.UserRepository, students repository.StudentRepository, drives repository.DriveRepository, announcements repository.AnnouncementRepository, resources repository.ResourceRepository, alumni repository.AlumniRepository, enabled bool, logger zerolog.Logger) SeedService {
	return &seedService{
		users:         users,
		students:      students,
		drives:        drives,
		announcements: announcements,
		resources:     resources,
		alumni:        alumni,
		enabled:       enabled,
		logger:        logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) Run(ctx context.Context) error {
	if !s.enabled {
		return ErrSeedDisabled
	}

	if _, err := s.users.FindByEmail(ctx, "admin@placetrack.demo"); err == nil {
		s.logger.Debug().Msg("demo data already present, skipping seed")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("placetrack-demo"), bcrypt.MinCost)
	if err != nil {
		return err
	}

	admin := models.User{Email: "admin@placetrack.demo", PasswordHash: string(hash), Role: models.RoleAdmin}
	if err := s.users.Create(ctx, &admin); err != nil {
		return err
	}

	studentSeeds := []struct {
		email      string
		name       string
		roll       string
		department string
		cgpa       float64
		backlogs   int
		skills     []string
	}{
		{"asha@placetrack.demo", "Asha Verma", "CS2201", "Computer Science", 8.7, 0, []string{"Go", "PostgreSQL", "Docker"}},
		{"rohan@placetrack.demo", "Rohan Iyer", "EC2214", "Electronics", 7.4, 1, []string{"Embedded C", "VHDL"}},
		{"meera@placetrack.demo", "Meera Joshi", "ME2208", "Mechanical", 6.9, 2, []string{"SolidWorks", "MATLAB"}},
	}

	for _, seed := range studentSeeds {
		user := models.User{Email: seed.email, PasswordHash: string(hash), Role: models.RoleStudent}
		if err := s.users.Create(ctx, &user); err != nil {
			return err
		}
		profile := models.StudentProfile{
			UserID:     user.ID,
			Name:       seed.name,
			RollNumber: seed.roll,
			Department: seed.department,
			CGPA:       seed.cgpa,
			Batch:      "2026",
			Backlogs:   seed.backlogs,
			Skills:     seed.skills,
		}
		if err := s.students.Save(ctx, &profile); err != nil {
			return err
		}
	}

	now := time.Now()
	drives := []models.Drive{
		{
			CompanyName:          "Nimbus Systems",
			JobProfile:           "Software Engineer",
			JobType:              "full_time",
			DriveDate:            now.AddDate(0, 0, 21),
			RegistrationDeadline: now.AddDate(0, 0, 14),
			CTCLakhs:             12.5,
			MinCGPA:              7.0,
			MaxBacklogs:          0,
			AllowedDepartments:   []string{"Computer Science", "Electronics"},
			SelectionRounds:      []string{"Online Test", "Technical Interview", "HR Interview"},
			WorkLocation:         "Bengaluru",
			TotalPositions:       8,
			CreatedBy:            admin.ID,
		},
		{
			CompanyName:          "Forge Industrial",
			JobProfile:           "Graduate Trainee",
			JobType:              "full_time",
			DriveDate:            now.AddDate(0, 1, 5),
			RegistrationDeadline: now.AddDate(0, 0, 25),
			CTCLakhs:             6.0,
			MinCGPA:              6.0,
			MaxBacklogs:          2,
			SelectionRounds:      []string{"Aptitude Test", "Interview"},
			WorkLocation:         "Pune",
			TotalPositions:       15,
			CreatedBy:            admin.ID,
		},
	}
	for i := range drives {
		if err := s.drives.Create(ctx, &drives[i]); err != nil {
			return err
		}
	}

	announcement := models.Announcement{
		Title:     "Placement season kickoff",
		Body:      "<p>Registrations for the first batch of drives are now open. Complete your profile before applying.</p>",
		Priority:  models.PriorityHigh,
		Audience:  models.AudienceStudents,
		StartsAt:  now,
		IsPinned:  true,
		CreatedBy: admin.ID,
	}
	if err := s.announcements.Create(ctx, &announcement); err != nil {
		return err
	}

	resource := models.Resource{
		Title:    "System design primer",
		Category: "interview",
		Type:     "link",
		Link:     "https://github.com/donnemartin/system-design-primer",
		Tags:     []string{"system-design", "interviews"},
		AddedBy:  admin.ID,
	}
	if err := s.resources.Create(ctx, &resource); err != nil {
		return err
	}

	alum := models.Alumni{
		Name:       "Kiran Rao",
		Company:    "Nimbus Systems",
		Role:       "Senior Engineer",
		Batch:      "2021",
		Department: "Computer Science",
	}
	if err := s.alumni.Create(ctx, &alum); err != nil {
		return err
	}

	s.logger.Info().Msg("demo dataset seeded")

	return nil
}
