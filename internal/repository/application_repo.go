package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/models"
)

// ApplicationRepository handles persistence for drive applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	Save(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (models.Application, error)
	ListAll(ctx context.Context) ([]models.Application, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Application, error)
	ListByDrive(ctx context.Context, driveID uint) ([]models.Application, error)
	FindByDriveAndStudent(ctx context.Context, driveID, studentID uint) (models.Application, error)
	CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository constructs a repository backed by GORM.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepository) Save(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *applicationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Application{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *applicationRepository) FindByID(ctx context.Context, id uint) (models.Application, error) {
	var app models.Application
	if err := r.db.WithContext(ctx).Preload("Drive").First(&app, id).Error; err != nil {
		return models.Application{}, err
	}
	return app, nil
}

func (r *applicationRepository) ListAll(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.WithContext(ctx).
		Preload("Drive").
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.WithContext(ctx).
		Preload("Drive").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) ListByDrive(ctx context.Context, driveID uint) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.WithContext(ctx).
		Where("drive_id = ?", driveID).
		Order("created_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) FindByDriveAndStudent(ctx context.Context, driveID, studentID uint) (models.Application, error) {
	var app models.Application
	if err := r.db.WithContext(ctx).
		Where("drive_id = ? AND student_id = ?", driveID, studentID).
		First(&app).Error; err != nil {
		return models.Application{}, err
	}
	return app, nil
}

func (r *applicationRepository) CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
	type row struct {
		Status models.ApplicationStatus
		Total  int64
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.ApplicationStatus]int64, len(rows))
	for _, entry := range rows {
		counts[entry.Status] = entry.Total
	}
	return counts, nil
}
