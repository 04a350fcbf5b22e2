package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/models"
)

// DriveRepository handles persistence for recruitment drives.
type DriveRepository interface {
	Create(ctx context.Context, drive *models.Drive) error
	Update(ctx context.Context, drive *models.Drive) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (models.Drive, error)
	ListAll(ctx context.Context) ([]models.Drive, error)
	ListUpcoming(ctx context.Context, after time.Time) ([]models.Drive, error)
}

type driveRepository struct {
	db *gorm.DB
}

// NewDriveRepository constructs a repository backed by GORM.
func NewDriveRepository(db *gorm.DB) DriveRepository {
	return &driveRepository{db: db}
}

func (r *driveRepository) Create(ctx context.Context, drive *models.Drive) error {
	return r.db.WithContext(ctx).Create(drive).Error
}

func (r *driveRepository) Update(ctx context.Context, drive *models.Drive) error {
	return r.db.WithContext(ctx).Save(drive).Error
}

func (r *driveRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Drive{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *driveRepository) FindByID(ctx context.Context, id uint) (models.Drive, error) {
	var drive models.Drive
	if err := r.db.WithContext(ctx).First(&drive, id).Error; err != nil {
		return models.Drive{}, err
	}
	return drive, nil
}

func (r *driveRepository) ListAll(ctx context.Context) ([]models.Drive, error) {
	var drives []models.Drive
	if err := r.db.WithContext(ctx).Order("drive_date ASC").Find(&drives).Error; err != nil {
		return nil, err
	}
	return drives, nil
}

func (r *driveRepository) ListUpcoming(ctx context.Context, after time.Time) ([]models.Drive, error) {
	var drives []models.Drive
	if err := r.db.WithContext(ctx).
		Where("drive_date >= ?", after).
		Order("drive_date ASC").
		Find(&drives).Error; err != nil {
		return nil, err
	}
	return drives, nil
}
