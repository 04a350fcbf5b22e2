package models

import "time"

// Alumni is a directory entry managed by admins; read-only to students.
type Alumni struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Company     string    `gorm:"size:255;index" json:"company"`
	Role        string    `gorm:"size:255" json:"role"`
	Batch       string    `gorm:"size:16;index" json:"batch"`
	Department  string    `gorm:"size:128;index" json:"department"`
	LinkedInURL string    `gorm:"size:512" json:"linkedin_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
