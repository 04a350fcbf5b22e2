package models

import "time"

// Notification types produced as side effects of placement activity.
const (
	NotificationTypeApplication  = "application"
	NotificationTypeStatusChange = "status_change"
	NotificationTypeShortlist    = "shortlist"
	NotificationTypeAnnouncement = "announcement"
)

// Notification is a per-user message. It is only ever created server-side as
// a side effect of another action; clients may only mark it read.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"size:64" json:"type"`
	Message   string    `gorm:"type:text" json:"message"`
	Link      string    `gorm:"size:512" json:"link,omitempty"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
