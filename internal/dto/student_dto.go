package dto

import (
	"time"

	"github.com/placement-cell/placetrack-api/internal/models"
)

// ProfileSaveRequest replaces a student profile wholesale.
type ProfileSaveRequest struct {
	Name           string              `json:"name" validate:"required,min=2,max=255"`
	RollNumber     string              `json:"roll_number" validate:"required,max=64"`
	Department     string              `json:"department" validate:"required,max=128"`
	CGPA           float64             `json:"cgpa" validate:"gte=0,lte=10"`
	Batch          string              `json:"batch" validate:"required,max=16"`
	Backlogs       int                 `json:"backlogs" validate:"gte=0"`
	Skills         []string            `json:"skills" validate:"dive,max=64"`
	Certifications []string            `json:"certifications" validate:"dive,max=255"`
	Achievements   []string            `json:"achievements" validate:"dive,max=512"`
	Internships    []models.Internship `json:"internships"`
	Projects       []models.Project    `json:"projects"`
	LinkedInURL    string              `json:"linkedin_url" validate:"omitempty,url,max=512"`
	GitHubURL      string              `json:"github_url" validate:"omitempty,url,max=512"`
}

// ProfileResponse is the serialized student profile.
type ProfileResponse struct {
	ID             uint                `json:"id"`
	UserID         uint                `json:"user_id"`
	Name           string              `json:"name"`
	RollNumber     string              `json:"roll_number"`
	Department     string              `json:"department"`
	CGPA           float64             `json:"cgpa"`
	Batch          string              `json:"batch"`
	Backlogs       int                 `json:"backlogs"`
	Skills         []string            `json:"skills"`
	Certifications []string            `json:"certifications"`
	Achievements   []string            `json:"achievements"`
	Internships    []models.Internship `json:"internships"`
	Projects       []models.Project    `json:"projects"`
	LinkedInURL    string              `json:"linkedin_url,omitempty"`
	GitHubURL      string              `json:"github_url,omitempty"`
	ResumeURL      string              `json:"resume_url,omitempty"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// NewProfileResponse converts a profile model into a DTO.
func NewProfileResponse(profile models.StudentProfile) ProfileResponse {
	return ProfileResponse{
		ID:             profile.ID,
		UserID:         profile.UserID,
		Name:           profile.Name,
		RollNumber:     profile.RollNumber,
		Department:     profile.Department,
		CGPA:           profile.CGPA,
		Batch:          profile.Batch,
		Backlogs:       profile.Backlogs,
		Skills:         profile.Skills,
		Certifications: profile.Certifications,
		Achievements:   profile.Achievements,
		Internships:    profile.Internships,
		Projects:       profile.Projects,
		LinkedInURL:    profile.LinkedInURL,
		GitHubURL:      profile.GitHubURL,
		ResumeURL:      profile.ResumeURL,
		UpdatedAt:      profile.UpdatedAt,
	}
}

// EligibilityEntry is one drive's verdict in the eligibility summary.
type EligibilityEntry struct {
	DriveID     uint     `json:"drive_id"`
	CompanyName string   `json:"company_name"`
	Eligible    bool     `json:"eligible"`
	Reasons     []string `json:"reasons,omitempty"`
}

// ResumeUploadResponse reports where the uploaded resume was stored.
type ResumeUploadResponse struct {
	URL       string `json:"url"`
	FileName  string `json:"file_name"`
	SizeBytes int64  `json:"size_bytes"`
	Checksum  string `json:"checksum"`
}
