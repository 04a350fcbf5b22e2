package models

import (
	"time"

	"gorm.io/datatypes"
)

// Resource is admin-curated learning material shown in the prep hub.
type Resource struct {
	ID        uint                        `gorm:"primaryKey" json:"id"`
	Title     string                      `gorm:"size:255;not null" json:"title"`
	Category  string                      `gorm:"size:64;index" json:"category"`
	Type      string                      `gorm:"size:64" json:"type"`
	Link      string                      `gorm:"size:512" json:"link"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
	AddedBy   uint                        `gorm:"index" json:"added_by"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// Note is a private freeform entry owned by a single student.
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
