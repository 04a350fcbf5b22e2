package dto

import (
	"time"

	"github.com/placement-cell/placetrack-api/internal/models"
)

// ApplyRequest creates an application for the authenticated student.
type ApplyRequest struct {
	DriveID uint `json:"drive_id" validate:"required"`
}

// OfferResponseRequest records the student's decision on an offer.
type OfferResponseRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accepted declined"`
}

// StatusUpdateRequest is the admin-side advancement of an application.
type StatusUpdateRequest struct {
	Status       string     `json:"status" validate:"required,max=32"`
	RoundName    string     `json:"round_name" validate:"omitempty,max=128"`
	RoundOutcome string     `json:"round_outcome" validate:"omitempty,oneof=pending scheduled passed failed"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	Feedback     string     `json:"feedback" validate:"max=2000"`
}

// ShortlistRequest batch-moves applied applications for one drive.
type ShortlistRequest struct {
	DriveID    uint   `json:"drive_id" validate:"required"`
	StudentIDs []uint `json:"student_ids" validate:"required,min=1,dive,required"`
}

// ApplicationResponse is the serialized application with its drive summary.
type ApplicationResponse struct {
	ID        uint                      `json:"id"`
	DriveID   uint                      `json:"drive_id"`
	StudentID uint                      `json:"student_id"`
	Status    string                    `json:"status"`
	Rounds    []models.ApplicationRound `json:"rounds"`
	Feedback  string                    `json:"feedback,omitempty"`
	Drive     *DriveResponse            `json:"drive,omitempty"`
	AppliedAt time.Time                 `json:"applied_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

// NewApplicationResponse converts an application model into a DTO. The drive
// summary is included when preloaded.
func NewApplicationResponse(app models.Application) ApplicationResponse {
	response := ApplicationResponse{
		ID:        app.ID,
		DriveID:   app.DriveID,
		StudentID: app.StudentID,
		Status:    string(app.Status),
		Rounds:    app.Rounds,
		Feedback:  app.Feedback,
		AppliedAt: app.CreatedAt,
		UpdatedAt: app.UpdatedAt,
	}
	if app.Drive.ID != 0 {
		drive := NewDriveResponse(app.Drive)
		response.Drive = &drive
	}
	return response
}

// NewApplicationResponseSlice converts applications to DTOs preserving order.
func NewApplicationResponseSlice(apps []models.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, NewApplicationResponse(app))
	}
	return out
}

// ApplicationStats aggregates one student's applications per status bucket.
type ApplicationStats struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	Offers   int64            `json:"offers"`
	ByStatus map[string]int64 `json:"by_status"`
}

// StatusBadge is the visual treatment for one application status.
type StatusBadge struct {
	Status string `json:"status"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
	Label  string `json:"label"`
}

// ApplicantBoard groups one drive's applications by status for the admin view.
type ApplicantBoard struct {
	DriveID uint                             `json:"drive_id"`
	Columns map[string][]ApplicationResponse `json:"columns"`
	Total   int                              `json:"total"`
}
