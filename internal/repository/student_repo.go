package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/placement-cell/placetrack-api/internal/models"
)

// StudentRepository handles persistence for student profiles.
type StudentRepository interface {
	FindByUserID(ctx context.Context, userID uint) (models.StudentProfile, error)
	Save(ctx context.Context, profile *models.StudentProfile) error
	UpdateResumeURL(ctx context.Context, userID uint, url string) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a repository backed by GORM.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) FindByUserID(ctx context.Context, userID uint) (models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return models.StudentProfile{}, err
	}
	return profile, nil
}

// Save upserts the profile keyed on user_id so a wholesale save works for
// both first-time and returning students.
func (r *studentRepository) Save(ctx context.Context, profile *models.StudentProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "roll_number", "department", "cgpa", "batch", "backlogs",
			"skills", "certifications", "achievements", "internships", "projects",
			"linked_in_url", "git_hub_url", "updated_at",
		}),
	}).Create(profile).Error
}

func (r *studentRepository) UpdateResumeURL(ctx context.Context, userID uint, url string) error {
	return r.db.WithContext(ctx).
		Model(&models.StudentProfile{}).
		Where("user_id = ?", userID).
		Update("resume_url", url).Error
}
