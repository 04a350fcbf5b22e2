package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Drive is a recruitment event published by the placement cell. Admin-owned;
// students see a read-only view annotated with eligibility flags.
type Drive struct {
	ID                   uint                        `gorm:"primaryKey" json:"id"`
	CompanyName          string                      `gorm:"size:255;not null;index" json:"company_name"`
	JobProfile           string                      `gorm:"size:255;not null" json:"job_profile"`
	JobType              string                      `gorm:"size:64" json:"job_type"`
	Description          string                      `gorm:"type:text" json:"description"`
	DriveDate            time.Time                   `json:"drive_date"`
	RegistrationDeadline time.Time                   `json:"registration_deadline"`
	CTCLakhs             float64                     `json:"ctc_lakhs"`
	CTCDetails           string                      `gorm:"size:512" json:"ctc_details"`
	MinCGPA              float64                     `json:"min_cgpa"`
	AllowedDepartments   datatypes.JSONSlice[string] `json:"allowed_departments"`
	MaxBacklogs          int                         `gorm:"not null;default:0" json:"max_backlogs"`
	SelectionRounds      datatypes.JSONSlice[string] `json:"selection_rounds"`
	WorkLocation         string                      `gorm:"size:255" json:"work_location"`
	TotalPositions       int                         `json:"total_positions"`
	CreatedBy            uint                        `gorm:"index" json:"created_by"`
	CreatedAt            time.Time                   `json:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

// RegistrationOpen reports whether students may still apply at the given instant.
func (d Drive) RegistrationOpen(now time.Time) bool {
	return now.Before(d.RegistrationDeadline)
}

// AcceptsStudent evaluates the drive's eligibility rules against a profile.
// An empty department list means every department is allowed.
func (d Drive) AcceptsStudent(profile StudentProfile) bool {
	if profile.CGPA < d.MinCGPA {
		return false
	}
	if profile.Backlogs > d.MaxBacklogs {
		return false
	}
	return d.AllowsDepartment(profile.Department)
}

// AllowsDepartment reports whether the department passes the drive's allow
// list. Comparison ignores case and surrounding whitespace.
func (d Drive) AllowsDepartment(department string) bool {
	if len(d.AllowedDepartments) == 0 {
		return true
	}
	for _, dept := range d.AllowedDepartments {
		if strings.EqualFold(strings.TrimSpace(dept), strings.TrimSpace(department)) {
			return true
		}
	}
	return false
}
