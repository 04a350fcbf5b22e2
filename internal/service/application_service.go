package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/models"
	"github.com/placement-cell/placetrack-api/internal/repository"
)

var (
	// ErrApplicationNotFound indicates the application does not exist.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrApplicationForbidden indicates the application belongs to another student.
	ErrApplicationForbidden = errors.New("application belongs to another student")
	// ErrAlreadyApplied indicates a duplicate application for the same drive.
	ErrAlreadyApplied = errors.New("already applied to this drive")
	// ErrNotEligible indicates the student fails the drive's eligibility rules.
	ErrNotEligible = errors.New("student not eligible for this drive")
	// ErrRegistrationClosed indicates the drive's deadline has passed.
	ErrRegistrationClosed = errors.New("registration deadline has passed")
	// ErrInvalidTransition indicates the requested status move breaks the pipeline order.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrOfferNotPending indicates an offer response without an offered application.
	ErrOfferNotPending = errors.New("no pending offer on this application")
	// ErrWithdrawNotAllowed indicates a withdrawal after the pipeline started.
	ErrWithdrawNotAllowed = errors.New("application can only be withdrawn while applied")
)

// Application list tabs. An unrecognised tab falls back to TabAll so the
// filter is total over arbitrary input.
const (
	TabAll      = "all"
	TabActive   = "active"
	TabOffers   = "offers"
	TabRejected = "rejected"
)

// ApplicationService drives the application lifecycle for both roles.
type ApplicationService interface {
	Apply(ctx context.Context, studentID uint, req dto.ApplyRequest) (dto.ApplicationResponse, error)
	ListMine(ctx context.Context, studentID uint, tab string) ([]dto.ApplicationResponse, error)
	Stats(ctx context.Context, studentID uint) (dto.ApplicationStats, error)
	RespondToOffer(ctx context.Context, studentID, applicationID uint, req dto.OfferResponseRequest) (dto.ApplicationResponse, error)
	Withdraw(ctx context.Context, studentID, applicationID uint) error
	StatusCatalog() []dto.StatusBadge
	UpdateStatus(ctx context.Context, applicationID uint, req dto.StatusUpdateRequest) (dto.ApplicationResponse, error)
	Shortlist(ctx context.Context, req dto.ShortlistRequest) (int, error)
	Board(ctx context.Context, driveID uint) (dto.ApplicantBoard, error)
}

type applicationService struct {
	apps      repository.ApplicationRepository
	drives    repository.DriveRepository
	students  repository.StudentRepository
	notifier  NotificationService
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewApplicationService constructs the application lifecycle service.
func NewApplicationService(apps repository.ApplicationRepository, drives repository.DriveRepository, students repository.StudentRepository, notifier NotificationService, validate *validator.Validate, logger zerolog.Logger) ApplicationService {
	return &applicationService{
		apps:      apps,
		drives:    drives,
		students:  students,
		notifier:  notifier,
		validator: validate,
		logger:    logger.With().Str("component", "application_service").Logger(),
		now:       time.Now,
	}
}

func (s *applicationService) Apply(ctx context.Context, studentID uint, req dto.ApplyRequest) (dto.ApplicationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ApplicationResponse{}, err
	}

	drive, err := s.drives.FindByID(ctx, req.DriveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrDriveNotFound
		}
		return dto.ApplicationResponse{}, err
	}

	if !drive.RegistrationOpen(s.now()) {
		return dto.ApplicationResponse{}, ErrRegistrationClosed
	}

	profile, err := s.students.FindByUserID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrProfileNotFound
		}
		return dto.ApplicationResponse{}, err
	}

	if !drive.AcceptsStudent(profile) {
		return dto.ApplicationResponse{}, ErrNotEligible
	}

	if _, err := s.apps.FindByDriveAndStudent(ctx, drive.ID, studentID); err == nil {
		return dto.ApplicationResponse{}, ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ApplicationResponse{}, err
	}

	rounds := make([]models.ApplicationRound, 0, len(drive.SelectionRounds))
	for _, name := range drive.SelectionRounds {
		rounds = append(rounds, models.ApplicationRound{RoundName: name, Status: models.RoundPending})
	}

	app := models.Application{
		DriveID:   drive.ID,
		StudentID: studentID,
		Status:    models.StatusApplied,
		Rounds:    rounds,
	}

	if err := s.apps.Create(ctx, &app); err != nil {
		return dto.ApplicationResponse{}, err
	}
	app.Drive = drive

	s.logger.Info().Uint("application_id", app.ID).Uint("drive_id", drive.ID).Uint("student_id", studentID).Msg("application created")

	s.notifyStudent(ctx, studentID, models.NotificationTypeApplication,
		fmt.Sprintf("Application submitted for %s (%s)", drive.CompanyName, drive.JobProfile))

	return dto.NewApplicationResponse(app), nil
}

// ListMine returns the student's applications filtered by tab. The filter is
// total: any unknown tab value behaves like "all".
func (s *applicationService) ListMine(ctx context.Context, studentID uint, tab string) ([]dto.ApplicationResponse, error) {
	apps, err := s.apps.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		if matchesTab(app.Status, tab) {
			filtered = append(filtered, app)
		}
	}

	return dto.NewApplicationResponseSlice(filtered), nil
}

func matchesTab(status models.ApplicationStatus, tab string) bool {
	normalized := strings.ToLower(strings.TrimSpace(tab))
	switch normalized {
	case TabActive:
		return !status.Terminal()
	case TabOffers:
		return status == models.StatusOffered || status == models.StatusAccepted || status == models.StatusDeclined
	case TabRejected:
		return status == models.StatusRejected
	}

	// A concrete status name selects exactly that status, so "offered" is the
	// pending offers only while "offers" includes responded ones.
	if _, known := statusBadges[models.ApplicationStatus(normalized)]; known {
		return status == models.ApplicationStatus(normalized)
	}

	return true
}

func (s *applicationService) Stats(ctx context.Context, studentID uint) (dto.ApplicationStats, error) {
	apps, err := s.apps.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.ApplicationStats{}, err
	}

	stats := dto.ApplicationStats{
		ByStatus: make(map[string]int64),
	}
	for _, app := range apps {
		stats.Total++
		stats.ByStatus[string(app.Status)]++
		if !app.Status.Terminal() {
			stats.Active++
		}
		switch app.Status {
		case models.StatusOffered, models.StatusAccepted, models.StatusDeclined:
			stats.Offers++
		}
	}

	return stats, nil
}

func (s *applicationService) RespondToOffer(ctx context.Context, studentID, applicationID uint, req dto.OfferResponseRequest) (dto.ApplicationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ApplicationResponse{}, err
	}

	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrApplicationNotFound
		}
		return dto.ApplicationResponse{}, err
	}

	if app.StudentID != studentID {
		return dto.ApplicationResponse{}, ErrApplicationForbidden
	}

	if app.Status != models.StatusOffered {
		return dto.ApplicationResponse{}, ErrOfferNotPending
	}

	next := models.ApplicationStatus(req.Decision)
	if !app.Status.CanTransitionTo(next) {
		return dto.ApplicationResponse{}, ErrInvalidTransition
	}

	app.Status = next
	if err := s.apps.Save(ctx, &app); err != nil {
		return dto.ApplicationResponse{}, err
	}

	s.logger.Info().Uint("application_id", app.ID).Str("decision", req.Decision).Msg("offer decision recorded")

	return dto.NewApplicationResponse(app), nil
}

// Withdraw deletes the student's own application, permitted only before the
// pipeline starts moving.
func (s *applicationService) Withdraw(ctx context.Context, studentID, applicationID uint) error {
	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return err
	}

	if app.StudentID != studentID {
		return ErrApplicationForbidden
	}

	if app.Status != models.StatusApplied {
		return ErrWithdrawNotAllowed
	}

	if err := s.apps.Delete(ctx, app.ID); err != nil {
		return err
	}

	s.logger.Info().Uint("application_id", app.ID).Uint("student_id", studentID).Msg("application withdrawn")

	return nil
}

// UpdateStatus advances an application through the pipeline on behalf of an
// admin. Rejection carries optional feedback; round metadata is recorded on
// the matching round entry.
func (s *applicationService) UpdateStatus(ctx context.Context, applicationID uint, req dto.StatusUpdateRequest) (dto.ApplicationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ApplicationResponse{}, err
	}

	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrApplicationNotFound
		}
		return dto.ApplicationResponse{}, err
	}

	next := models.ApplicationStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	// Offer decisions belong to the student via the respond endpoint.
	if next == models.StatusAccepted || next == models.StatusDeclined {
		return dto.ApplicationResponse{}, ErrInvalidTransition
	}
	if !app.Status.CanTransitionTo(next) {
		return dto.ApplicationResponse{}, ErrInvalidTransition
	}

	app.Status = next
	if req.Feedback != "" {
		app.Feedback = req.Feedback
	}
	if req.RoundName != "" {
		applyRoundUpdate(&app, req)
	}

	if err := s.apps.Save(ctx, &app); err != nil {
		return dto.ApplicationResponse{}, err
	}

	s.logger.Info().Uint("application_id", app.ID).Str("status", string(next)).Msg("application status updated")

	message := fmt.Sprintf("Your application for %s moved to %s", app.Drive.CompanyName, statusLabel(next))
	s.notifyStudent(ctx, app.StudentID, models.NotificationTypeStatusChange, message)

	return dto.NewApplicationResponse(app), nil
}

func applyRoundUpdate(app *models.Application, req dto.StatusUpdateRequest) {
	outcome := models.RoundStatus(req.RoundOutcome)
	if outcome == "" {
		outcome = models.RoundScheduled
	}

	for i := range app.Rounds {
		if strings.EqualFold(app.Rounds[i].RoundName, req.RoundName) {
			app.Rounds[i].Status = outcome
			if req.ScheduledAt != nil {
				app.Rounds[i].ScheduledAt = req.ScheduledAt
			}
			return
		}
	}

	app.Rounds = append(app.Rounds, models.ApplicationRound{
		RoundName:   req.RoundName,
		Status:      outcome,
		ScheduledAt: req.ScheduledAt,
	})
}

// Shortlist moves the named applied-state applications of one drive to
// shortlisted. Applications in any other state are skipped, not failed.
func (s *applicationService) Shortlist(ctx context.Context, req dto.ShortlistRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, err
	}

	drive, err := s.drives.FindByID(ctx, req.DriveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrDriveNotFound
		}
		return 0, err
	}

	moved := 0
	var notified []uint
	for _, studentID := range req.StudentIDs {
		app, err := s.apps.FindByDriveAndStudent(ctx, req.DriveID, studentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return moved, err
		}
		if app.Status != models.StatusApplied {
			continue
		}

		app.Status = models.StatusShortlisted
		if err := s.apps.Save(ctx, &app); err != nil {
			return moved, err
		}
		moved++
		notified = append(notified, studentID)
	}

	if len(notified) > 0 {
		message := fmt.Sprintf("You have been shortlisted for %s (%s)", drive.CompanyName, drive.JobProfile)
		if err := s.notifier.Notify(ctx, notified, models.NotificationTypeShortlist, message, ""); err != nil {
			s.logger.Warn().Err(err).Msg("shortlist notification failed")
		}
	}

	s.logger.Info().Uint("drive_id", req.DriveID).Int("moved", moved).Msg("shortlist applied")

	return moved, nil
}

func (s *applicationService) Board(ctx context.Context, driveID uint) (dto.ApplicantBoard, error) {
	if _, err := s.drives.FindByID(ctx, driveID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicantBoard{}, ErrDriveNotFound
		}
		return dto.ApplicantBoard{}, err
	}

	apps, err := s.apps.ListByDrive(ctx, driveID)
	if err != nil {
		return dto.ApplicantBoard{}, err
	}

	board := dto.ApplicantBoard{
		DriveID: driveID,
		Columns: make(map[string][]dto.ApplicationResponse),
		Total:   len(apps),
	}
	for _, app := range apps {
		key := string(app.Status)
		board.Columns[key] = append(board.Columns[key], dto.NewApplicationResponse(app))
	}

	return board, nil
}

func (s *applicationService) notifyStudent(ctx context.Context, studentID uint, notificationType, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, []uint{studentID}, notificationType, message, ""); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("notification failed")
	}
}

var statusBadges = map[models.ApplicationStatus]dto.StatusBadge{
	models.StatusApplied:     {Status: "applied", Color: "blue", Icon: "paper-plane", Label: "Applied"},
	models.StatusShortlisted: {Status: "shortlisted", Color: "cyan", Icon: "list-check", Label: "Shortlisted"},
	models.StatusRound1:      {Status: "round1", Color: "indigo", Icon: "layers", Label: "Round 1"},
	models.StatusRound2:      {Status: "round2", Color: "indigo", Icon: "layers", Label: "Round 2"},
	models.StatusRound3:      {Status: "round3", Color: "indigo", Icon: "layers", Label: "Round 3"},
	models.StatusRound4:      {Status: "round4", Color: "indigo", Icon: "layers", Label: "Round 4"},
	models.StatusRound5:      {Status: "round5", Color: "indigo", Icon: "layers", Label: "Round 5"},
	models.StatusRound6:      {Status: "round6", Color: "indigo", Icon: "layers", Label: "Round 6"},
	models.StatusHRRound:     {Status: "hr_round", Color: "purple", Icon: "users", Label: "HR Round"},
	models.StatusOffered:     {Status: "offered", Color: "amber", Icon: "award", Label: "Offer Received"},
	models.StatusRejected:    {Status: "rejected", Color: "red", Icon: "x-circle", Label: "Not Selected"},
	models.StatusAccepted:    {Status: "accepted", Color: "green", Icon: "check-circle", Label: "Offer Accepted"},
	models.StatusDeclined:    {Status: "declined", Color: "gray", Icon: "minus-circle", Label: "Offer Declined"},
}

// StatusCatalog lists the badge treatment for every pipeline status, in
// pipeline order followed by the terminal states.
func (s *applicationService) StatusCatalog() []dto.StatusBadge {
	order := []models.ApplicationStatus{
		models.StatusApplied, models.StatusShortlisted,
		models.StatusRound1, models.StatusRound2, models.StatusRound3,
		models.StatusRound4, models.StatusRound5, models.StatusRound6,
		models.StatusHRRound, models.StatusOffered,
		models.StatusRejected, models.StatusAccepted, models.StatusDeclined,
	}
	out := make([]dto.StatusBadge, 0, len(order))
	for _, status := range order {
		out = append(out, BadgeFor(status))
	}
	return out
}

// BadgeFor returns the badge for a status. Unknown statuses get the applied
// treatment so callers never render a hole.
func BadgeFor(status models.ApplicationStatus) dto.StatusBadge {
	if badge, ok := statusBadges[status]; ok {
		return badge
	}
	fallback := statusBadges[models.StatusApplied]
	fallback.Status = string(status)
	return fallback
}

func statusLabel(status models.ApplicationStatus) string {
	return BadgeFor(status).Label
}
