package models

import (
	"time"

	"gorm.io/datatypes"
)

// Announcement priorities.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Announcement audiences.
const (
	AudienceAll      = "all"
	AudienceStudents = "students"
	AudienceAdmins   = "admins"
)

// Announcement is broadcast content authored by admins. Students only ever
// see the active window (pinned entries are always active).
type Announcement struct {
	ID        uint                        `gorm:"primaryKey" json:"id"`
	Title     string                      `gorm:"size:255;not null" json:"title"`
	Body      string                      `gorm:"type:text" json:"body"`
	Category  string                      `gorm:"size:64;index" json:"category"`
	Priority  string                      `gorm:"size:16;default:normal" json:"priority"`
	Audience  string                      `gorm:"size:16;default:all" json:"audience"`
	StartsAt  time.Time                   `json:"starts_at"`
	EndsAt    *time.Time                  `json:"ends_at,omitempty"`
	IsPinned  bool                        `gorm:"not null;default:false" json:"is_pinned"`
	Links     datatypes.JSONSlice[string] `json:"links"`
	CreatedBy uint                        `gorm:"index" json:"created_by"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// ActiveAt reports whether the announcement should be visible at the given
// instant. Pinned announcements never expire.
func (a Announcement) ActiveAt(now time.Time) bool {
	if a.IsPinned {
		return true
	}
	if now.Before(a.StartsAt) {
		return false
	}
	return a.EndsAt == nil || !now.After(*a.EndsAt)
}
