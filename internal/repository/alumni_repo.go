package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/models"
)

// AlumniFilter narrows directory queries.
type AlumniFilter struct {
	Search     string
	Company    string
	Batch      string
	Department string
}

// AlumniRepository handles persistence for the alumni directory.
type AlumniRepository interface {
	Create(ctx context.Context, alumni *models.Alumni) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter AlumniFilter) ([]models.Alumni, error)
}

type alumniRepository struct {
	db *gorm.DB
}

// NewAlumniRepository constructs a repository backed by GORM.
func NewAlumniRepository(db *gorm.DB) AlumniRepository {
	return &alumniRepository{db: db}
}

func (r *alumniRepository) Create(ctx context.Context, alumni *models.Alumni) error {
	return r.db.WithContext(ctx).Create(alumni).Error
}

func (r *alumniRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Alumni{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *alumniRepository) List(ctx context.Context, filter AlumniFilter) ([]models.Alumni, error) {
	query := r.db.WithContext(ctx).Order("batch DESC, name ASC")
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(company) LIKE ?", pattern, pattern)
	}
	if filter.Company != "" {
		query = query.Where("company = ?", filter.Company)
	}
	if filter.Batch != "" {
		query = query.Where("batch = ?", filter.Batch)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}

	var entries []models.Alumni
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
