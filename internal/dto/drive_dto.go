package dto

import (
	"time"

	"github.com/placement-cell/placetrack-api/internal/models"
)

// DriveSaveRequest creates or replaces a drive.
type DriveSaveRequest struct {
	CompanyName          string    `json:"company_name" validate:"required,min=2,max=255"`
	JobProfile           string    `json:"job_profile" validate:"required,max=255"`
	JobType              string    `json:"job_type" validate:"omitempty,oneof=full_time internship internship_ppo"`
	Description          string    `json:"description" validate:"max=10000"`
	DriveDate            time.Time `json:"drive_date" validate:"required"`
	RegistrationDeadline time.Time `json:"registration_deadline" validate:"required"`
	CTCLakhs             float64   `json:"ctc_lakhs" validate:"gte=0"`
	CTCDetails           string    `json:"ctc_details" validate:"max=512"`
	MinCGPA              float64   `json:"min_cgpa" validate:"gte=0,lte=10"`
	AllowedDepartments   []string  `json:"allowed_departments" validate:"dive,max=128"`
	MaxBacklogs          int       `json:"max_backlogs" validate:"gte=0"`
	SelectionRounds      []string  `json:"selection_rounds" validate:"dive,max=128"`
	WorkLocation         string    `json:"work_location" validate:"max=255"`
	TotalPositions       int       `json:"total_positions" validate:"gte=0"`
}

// DriveResponse is the serialized drive, annotated per-student when listed
// through the student surface.
type DriveResponse struct {
	ID                   uint      `json:"id"`
	CompanyName          string    `json:"company_name"`
	JobProfile           string    `json:"job_profile"`
	JobType              string    `json:"job_type,omitempty"`
	Description          string    `json:"description,omitempty"`
	DriveDate            time.Time `json:"drive_date"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	CTCLakhs             float64   `json:"ctc_lakhs"`
	CTCDetails           string    `json:"ctc_details,omitempty"`
	MinCGPA              float64   `json:"min_cgpa"`
	AllowedDepartments   []string  `json:"allowed_departments"`
	MaxBacklogs          int       `json:"max_backlogs"`
	SelectionRounds      []string  `json:"selection_rounds"`
	WorkLocation         string    `json:"work_location,omitempty"`
	TotalPositions       int       `json:"total_positions"`
	IsEligible           *bool     `json:"is_eligible,omitempty"`
	HasApplied           *bool     `json:"has_applied,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// NewDriveResponse converts a drive model into a DTO without annotations.
func NewDriveResponse(drive models.Drive) DriveResponse {
	return DriveResponse{
		ID:                   drive.ID,
		CompanyName:          drive.CompanyName,
		JobProfile:           drive.JobProfile,
		JobType:              drive.JobType,
		Description:          drive.Description,
		DriveDate:            drive.DriveDate,
		RegistrationDeadline: drive.RegistrationDeadline,
		CTCLakhs:             drive.CTCLakhs,
		CTCDetails:           drive.CTCDetails,
		MinCGPA:              drive.MinCGPA,
		AllowedDepartments:   drive.AllowedDepartments,
		MaxBacklogs:          drive.MaxBacklogs,
		SelectionRounds:      drive.SelectionRounds,
		WorkLocation:         drive.WorkLocation,
		TotalPositions:       drive.TotalPositions,
		CreatedAt:            drive.CreatedAt,
	}
}

// Annotate attaches the per-student flags to the drive view.
func (d DriveResponse) Annotate(eligible, applied bool) DriveResponse {
	d.IsEligible = &eligible
	d.HasApplied = &applied
	return d
}

// NewDriveResponseSlice converts drives to DTOs preserving order.
func NewDriveResponseSlice(drives []models.Drive) []DriveResponse {
	out := make([]DriveResponse, 0, len(drives))
	for _, drive := range drives {
		out = append(out, NewDriveResponse(drive))
	}
	return out
}
