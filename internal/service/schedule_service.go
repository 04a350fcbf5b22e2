package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/models"
	"github.com/placement-cell/placetrack-api/internal/repository"
)

// ScheduleService merges drive dates, registration deadlines and the caller's
// scheduled interview rounds into one upcoming timeline.
type ScheduleService interface {
	Upcoming(ctx context.Context, studentID uint) ([]dto.ScheduleItem, error)
}

type scheduleService struct {
	drives repository.DriveRepository
	apps   repository.ApplicationRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewScheduleService constructs the schedule service.
func NewScheduleService(drives repository.DriveRepository, apps repository.ApplicationRepository, logger zerolog.Logger) ScheduleService {
	return &scheduleService{
		drives: drives,
		apps:   apps,
		logger: logger.With().Str("component", "schedule_service").Logger(),
		now:    time.Now,
	}
}

// Upcoming returns the future timeline sorted ascending. When studentID is
// zero only the shared drive events are included.
func (s *scheduleService) Upcoming(ctx context.Context, studentID uint) ([]dto.ScheduleItem, error) {
	now := s.now()

	drives, err := s.drives.ListUpcoming(ctx, now)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ScheduleItem, 0, len(drives)*2)
	for _, drive := range drives {
		items = append(items, dto.ScheduleItem{
			Kind:     "drive",
			Title:    drive.CompanyName + " drive",
			DriveID:  drive.ID,
			Company:  drive.CompanyName,
			StartsAt: drive.DriveDate,
		})
		if drive.RegistrationDeadline.After(now) {
			items = append(items, dto.ScheduleItem{
				Kind:     "deadline",
				Title:    drive.CompanyName + " registration closes",
				DriveID:  drive.ID,
				Company:  drive.CompanyName,
				StartsAt: drive.RegistrationDeadline,
			})
		}
	}

	if studentID != 0 {
		apps, err := s.apps.ListByStudent(ctx, studentID)
		if err != nil {
			return nil, err
		}
		for _, app := range apps {
			if app.Status.Terminal() {
				continue
			}
			for _, round := range app.Rounds {
				if round.Status != models.RoundScheduled || round.ScheduledAt == nil || round.ScheduledAt.Before(now) {
					continue
				}
				items = append(items, dto.ScheduleItem{
					Kind:      "round",
					Title:     app.Drive.CompanyName + ": " + round.RoundName,
					DriveID:   app.DriveID,
					Company:   app.Drive.CompanyName,
					StartsAt:  *round.ScheduledAt,
					RoundName: round.RoundName,
				})
			}
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartsAt.Before(items[j].StartsAt)
	})

	return items, nil
}
