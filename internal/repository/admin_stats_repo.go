package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/models"
)

// AdminStudentFilter filters the admin roster query.
type AdminStudentFilter struct {
	Search     string
	Department string
	Batch      string
	Placed     *bool
	Page       int
	PageSize   int
}

// StudentRosterRow is a roster row with the derived placement flag.
type StudentRosterRow struct {
	models.StudentProfile
	Placed bool
}

// DepartmentCount is one department's totals.
type DepartmentCount struct {
	Department string
	Students   int64
	Placed     int64
}

// CompanyCount aggregates drives and application outcomes per company.
type CompanyCount struct {
	Company      string
	Drives       int64
	Applications int64
	Offers       int64
}

// AdminStatsRepository serves aggregate queries for the admin dashboard.
type AdminStatsRepository interface {
	CountStudents(ctx context.Context) (int64, error)
	CountDrives(ctx context.Context) (int64, error)
	CountPlacedStudents(ctx context.Context) (int64, error)
	DepartmentBreakdown(ctx context.Context) ([]DepartmentCount, error)
	ListStudents(ctx context.Context, filter AdminStudentFilter) ([]StudentRosterRow, int64, error)
	ListCompanies(ctx context.Context) ([]CompanyCount, error)
}

type adminStatsRepository struct {
	db *gorm.DB
}

// NewAdminStatsRepository constructs the repository implementation.
func NewAdminStatsRepository(db *gorm.DB) AdminStatsRepository {
	return &adminStatsRepository{db: db}
}

const placedSubquery = "EXISTS (SELECT 1 FROM applications a WHERE a.student_id = student_profiles.user_id AND a.status = ?)"

func (r *adminStatsRepository) CountStudents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StudentProfile{}).Count(&count).Error
	return count, err
}

func (r *adminStatsRepository) CountDrives(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Drive{}).Count(&count).Error
	return count, err
}

func (r *adminStatsRepository) CountPlacedStudents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("status = ?", models.StatusAccepted).
		Distinct("student_id").
		Count(&count).Error
	return count, err
}

func (r *adminStatsRepository) DepartmentBreakdown(ctx context.Context) ([]DepartmentCount, error) {
	var rows []DepartmentCount
	err := r.db.WithContext(ctx).
		Model(&models.StudentProfile{}).
		Select("department, COUNT(*) AS students, SUM(CASE WHEN "+placedSubquery+" THEN 1 ELSE 0 END) AS placed", models.StatusAccepted).
		Group("department").
		Order("department ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *adminStatsRepository) ListStudents(ctx context.Context, filter AdminStudentFilter) ([]StudentRosterRow, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StudentProfile{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(roll_number) LIKE ?", pattern, pattern)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Batch != "" {
		query = query.Where("batch = ?", filter.Batch)
	}
	if filter.Placed != nil {
		if *filter.Placed {
			query = query.Where(placedSubquery, models.StatusAccepted)
		} else {
			query = query.Where("NOT "+placedSubquery, models.StatusAccepted)
		}
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var rows []StudentRosterRow
	err := query.
		Select("student_profiles.*, "+placedSubquery+" AS placed", models.StatusAccepted).
		Order("name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *adminStatsRepository) ListCompanies(ctx context.Context) ([]CompanyCount, error) {
	var rows []CompanyCount
	err := r.db.WithContext(ctx).
		Model(&models.Drive{}).
		Select(`drives.company_name AS company,
			COUNT(DISTINCT drives.id) AS drives,
			COUNT(applications.id) AS applications,
			SUM(CASE WHEN applications.status IN ? THEN 1 ELSE 0 END) AS offers`,
			[]models.ApplicationStatus{models.StatusOffered, models.StatusAccepted, models.StatusDeclined}).
		Joins("LEFT JOIN applications ON applications.drive_id = drives.id").
		Group("drives.company_name").
		Order("drives.company_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
