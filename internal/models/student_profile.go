package models

import (
	"time"

	"gorm.io/datatypes"
)

// Internship is one internship entry on a student profile.
type Internship struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	DurationMon int    `json:"duration_months"`
	Description string `json:"description,omitempty"`
}

// Project is one project entry on a student profile.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// StudentProfile carries the academic and personal record used for resume
// rendering and drive eligibility. Saved wholesale via a single update.
type StudentProfile struct {
	ID             uint                              `gorm:"primaryKey" json:"id"`
	UserID         uint                              `gorm:"uniqueIndex;not null" json:"user_id"`
	Name           string                            `gorm:"size:255;not null" json:"name"`
	RollNumber     string                            `gorm:"size:64;uniqueIndex" json:"roll_number"`
	Department     string                            `gorm:"size:128;index" json:"department"`
	CGPA           float64                           `json:"cgpa"`
	Batch          string                            `gorm:"size:16;index" json:"batch"`
	Backlogs       int                               `gorm:"not null;default:0" json:"backlogs"`
	Skills         datatypes.JSONSlice[string]       `json:"skills"`
	Certifications datatypes.JSONSlice[string]       `json:"certifications"`
	Achievements   datatypes.JSONSlice[string]       `json:"achievements"`
	Internships    datatypes.JSONSlice[Internship]   `json:"internships"`
	Projects       datatypes.JSONSlice[Project]      `json:"projects"`
	LinkedInURL    string                            `gorm:"size:512" json:"linkedin_url"`
	GitHubURL      string                            `gorm:"size:512" json:"github_url"`
	ResumeURL      string                            `gorm:"size:512" json:"resume_url"`
	CreatedAt      time.Time                         `json:"created_at"`
	UpdatedAt      time.Time                         `json:"updated_at"`
}
