package dto

import (
	"time"

	"github.com/placement-cell/placetrack-api/internal/models"
)

// ResourceSaveRequest creates or replaces a prep hub resource.
type ResourceSaveRequest struct {
	Title    string   `json:"title" validate:"required,min=3,max=255"`
	Category string   `json:"category" validate:"omitempty,max=64"`
	Type     string   `json:"type" validate:"omitempty,max=64"`
	Link     string   `json:"link" validate:"required,url,max=512"`
	Tags     []string `json:"tags" validate:"dive,max=64"`
}

// ResourceResponse is the serialized prep hub resource.
type ResourceResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category,omitempty"`
	Type      string    `json:"type,omitempty"`
	Link      string    `json:"link"`
	Tags      []string  `json:"tags,omitempty"`
	AddedBy   uint      `json:"added_by"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteSaveRequest creates or replaces a private note.
type NoteSaveRequest struct {
	Title string `json:"title" validate:"max=255"`
	Body  string `json:"body" validate:"required,min=1,max=50000"`
}

// NoteResponse is the serialized private note.
type NoteResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewResourceResponse converts a resource model to a DTO.
func NewResourceResponse(model models.Resource) ResourceResponse {
	return ResourceResponse{
		ID:        model.ID,
		Title:     model.Title,
		Category:  model.Category,
		Type:      model.Type,
		Link:      model.Link,
		Tags:      model.Tags,
		AddedBy:   model.AddedBy,
		CreatedAt: model.CreatedAt,
	}
}

// NewResourceResponseSlice converts resources to DTOs.
func NewResourceResponseSlice(items []models.Resource) []ResourceResponse {
	out := make([]ResourceResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewResourceResponse(item))
	}
	return out
}

// NewNoteResponse converts a note model to a DTO.
func NewNoteResponse(model models.Note) NoteResponse {
	return NoteResponse{
		ID:        model.ID,
		Title:     model.Title,
		Body:      model.Body,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// NewNoteResponseSlice converts notes to DTOs.
func NewNoteResponseSlice(items []models.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewNoteResponse(item))
	}
	return out
}
