package dto

import (
	"time"

	"github.com/placement-cell/placetrack-api/internal/models"
)

// AnnouncementSaveRequest creates or replaces an announcement.
type AnnouncementSaveRequest struct {
	Title    string     `json:"title" validate:"required,min=3,max=255"`
	Body     string     `json:"body" validate:"required,min=1,max=20000"`
	Category string     `json:"category" validate:"omitempty,max=64"`
	Priority string     `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	Audience string     `json:"audience" validate:"omitempty,oneof=all students admins"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	IsPinned bool       `json:"is_pinned"`
	Links    []string   `json:"links" validate:"dive,url,max=512"`
}

// AnnouncementResponse is the serialized announcement.
type AnnouncementResponse struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Category  string     `json:"category,omitempty"`
	Priority  string     `json:"priority"`
	Audience  string     `json:"audience"`
	StartsAt  time.Time  `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	IsPinned  bool       `json:"is_pinned"`
	Links     []string   `json:"links,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// AnnouncementListResponse wraps a page of announcements.
type AnnouncementListResponse struct {
	Items      []AnnouncementResponse `json:"items"`
	Pagination PaginationMeta         `json:"pagination"`
	CacheHit   bool                   `json:"cache_hit,omitempty"`
}

// NewAnnouncementResponse converts an announcement model into a DTO.
func NewAnnouncementResponse(model models.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        model.ID,
		Title:     model.Title,
		Body:      model.Body,
		Category:  model.Category,
		Priority:  model.Priority,
		Audience:  model.Audience,
		StartsAt:  model.StartsAt,
		EndsAt:    model.EndsAt,
		IsPinned:  model.IsPinned,
		Links:     model.Links,
		CreatedAt: model.CreatedAt,
	}
}
