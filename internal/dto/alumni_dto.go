package dto

import (
	"time"

	"github.com/placement-cell/placetrack-api/internal/models"
)

// AlumniSaveRequest creates a directory entry.
type AlumniSaveRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Company     string `json:"company" validate:"required,max=255"`
	Role        string `json:"role" validate:"omitempty,max=255"`
	Batch       string `json:"batch" validate:"omitempty,max=16"`
	Department  string `json:"department" validate:"omitempty,max=128"`
	LinkedInURL string `json:"linkedin_url" validate:"omitempty,url,max=512"`
}

// AlumniResponse is the serialized directory entry.
type AlumniResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Company     string    `json:"company"`
	Role        string    `json:"role,omitempty"`
	Batch       string    `json:"batch,omitempty"`
	Department  string    `json:"department,omitempty"`
	LinkedInURL string    `json:"linkedin_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAlumniResponse converts an alumni model to a DTO.
func NewAlumniResponse(model models.Alumni) AlumniResponse {
	return AlumniResponse{
		ID:          model.ID,
		Name:        model.Name,
		Company:     model.Company,
		Role:        model.Role,
		Batch:       model.Batch,
		Department:  model.Department,
		LinkedInURL: model.LinkedInURL,
		CreatedAt:   model.CreatedAt,
	}
}

// NewAlumniResponseSlice converts alumni entries to DTOs.
func NewAlumniResponseSlice(items []models.Alumni) []AlumniResponse {
	out := make([]AlumniResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewAlumniResponse(item))
	}
	return out
}
