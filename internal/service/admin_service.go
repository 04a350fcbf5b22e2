package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/models"
	"github.com/placement-cell/placetrack-api/internal/observability"
	"github.com/placement-cell/placetrack-api/internal/repository"
)

// ErrUnknownExportType indicates an export request for an unsupported dataset.
var ErrUnknownExportType = errors.New("unknown export type")

// AdminService serves the placement cell dashboard: aggregates, the student
// roster, company summaries and spreadsheet exports.
type AdminService interface {
	Stats(ctx context.Context) (dto.PlacementStats, error)
	Students(ctx context.Context, filter repository.AdminStudentFilter) (dto.AdminStudentListResponse, error)
	Companies(ctx context.Context) ([]dto.CompanySummary, error)
	ExportStudents(ctx context.Context, filter repository.AdminStudentFilter) ([]byte, string, error)
	Export(ctx context.Context, exportType string, filter repository.AdminStudentFilter) ([]byte, string, error)
}

type adminService struct {
	stats  repository.AdminStatsRepository
	apps   repository.ApplicationRepository
	drives repository.DriveRepository
	logger zerolog.Logger
}

// NewAdminService constructs the admin analytics service.
func NewAdminService(stats repository.AdminStatsRepository, apps repository.ApplicationRepository, drives repository.DriveRepository, logger zerolog.Logger) AdminService {
	return &adminService{
		stats:  stats,
		apps:   apps,
		drives: drives,
		logger: logger.With().Str("component", "admin_service").Logger(),
	}
}

func (s *adminService) Stats(ctx context.Context) (dto.PlacementStats, error) {
	totalStudents, err := s.stats.CountStudents(ctx)
	if err != nil {
		return dto.PlacementStats{}, err
	}

	totalDrives, err := s.stats.CountDrives(ctx)
	if err != nil {
		return dto.PlacementStats{}, err
	}

	placed, err := s.stats.CountPlacedStudents(ctx)
	if err != nil {
		return dto.PlacementStats{}, err
	}

	byStatus, err := s.apps.CountByStatus(ctx)
	if err != nil {
		return dto.PlacementStats{}, err
	}

	breakdown, err := s.stats.DepartmentBreakdown(ctx)
	if err != nil {
		return dto.PlacementStats{}, err
	}

	stats := dto.PlacementStats{
		TotalStudents:  totalStudents,
		TotalDrives:    totalDrives,
		PlacedStudents: placed,
		ByStatus:       make(map[string]int64, len(byStatus)),
	}
	for status, count := range byStatus {
		stats.TotalApplications += count
		stats.ByStatus[string(status)] = count
		switch status {
		case models.StatusOffered, models.StatusAccepted, models.StatusDeclined:
			stats.TotalOffers += count
		}
	}
	if totalStudents > 0 {
		stats.PlacementRate = float64(placed) / float64(totalStudents)
	}

	for _, row := range breakdown {
		stats.ByDepartment = append(stats.ByDepartment, dto.DepartmentBreakdown{
			Department: row.Department,
			Students:   row.Students,
			Placed:     row.Placed,
		})
	}

	return stats, nil
}

func (s *adminService) Students(ctx context.Context, filter repository.AdminStudentFilter) (dto.AdminStudentListResponse, error) {
	filter.Page = maxInt(filter.Page, 1)
	filter.PageSize = clampPageSize(filter.PageSize)

	rows, total, err := s.stats.ListStudents(ctx, filter)
	if err != nil {
		return dto.AdminStudentListResponse{}, err
	}

	items := make([]dto.AdminStudentRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.AdminStudentRow{
			UserID:     row.UserID,
			Name:       row.Name,
			RollNumber: row.RollNumber,
			Department: row.Department,
			Batch:      row.Batch,
			CGPA:       row.CGPA,
			Backlogs:   row.Backlogs,
			Placed:     row.Placed,
		})
	}

	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))

	return dto.AdminStudentListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *adminService) Companies(ctx context.Context) ([]dto.CompanySummary, error) {
	rows, err := s.stats.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CompanySummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.CompanySummary{
			Company:      row.Company,
			Drives:       row.Drives,
			Applications: row.Applications,
			Offers:       row.Offers,
		})
	}
	return out, nil
}

// Export dispatches a spreadsheet export by dataset name. The student filter
// only applies to the students dataset.
func (s *adminService) Export(ctx context.Context, exportType string, filter repository.AdminStudentFilter) ([]byte, string, error) {
	switch exportType {
	case "students":
		return s.ExportStudents(ctx, filter)
	case "applications":
		return s.exportApplications(ctx)
	case "drives":
		return s.exportDrives(ctx)
	default:
		return nil, "", ErrUnknownExportType
	}
}

// ExportStudents renders the filtered roster as an XLSX workbook and returns
// the bytes with a suggested filename.
func (s *adminService) ExportStudents(ctx context.Context, filter repository.AdminStudentFilter) ([]byte, string, error) {
	filter.Page = 0
	filter.PageSize = 0

	rows, _, err := s.stats.ListStudents(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	records := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		records = append(records, []interface{}{row.UserID, row.Name, row.RollNumber, row.Department, row.Batch, row.CGPA, row.Backlogs, row.Placed})
	}

	headers := []string{"User ID", "Name", "Roll Number", "Department", "Batch", "CGPA", "Backlogs", "Placed"}
	return s.renderWorkbook("students", "Students", headers, records)
}

func (s *adminService) exportApplications(ctx context.Context) ([]byte, string, error) {
	apps, err := s.apps.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	records := make([][]interface{}, 0, len(apps))
	for _, app := range apps {
		records = append(records, []interface{}{app.ID, app.Drive.CompanyName, app.Drive.JobProfile, app.StudentID, string(app.Status), app.CreatedAt.Format(time.RFC3339)})
	}

	headers := []string{"ID", "Company", "Job Profile", "Student ID", "Status", "Applied At"}
	return s.renderWorkbook("applications", "Applications", headers, records)
}

func (s *adminService) exportDrives(ctx context.Context) ([]byte, string, error) {
	drives, err := s.drives.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	records := make([][]interface{}, 0, len(drives))
	for _, drive := range drives {
		records = append(records, []interface{}{drive.ID, drive.CompanyName, drive.JobProfile, drive.DriveDate.Format("2006-01-02"), drive.RegistrationDeadline.Format(time.RFC3339), drive.CTCLakhs, drive.MinCGPA, drive.MaxBacklogs, drive.TotalPositions})
	}

	headers := []string{"ID", "Company", "Job Profile", "Drive Date", "Registration Deadline", "CTC (LPA)", "Min CGPA", "Max Backlogs", "Positions"}
	return s.renderWorkbook("drives", "Drives", headers, records)
}

func (s *adminService) renderWorkbook(dataset, sheet string, headers []string, records [][]interface{}) ([]byte, string, error) {
	workbook := excelize.NewFile()
	defer func() {
		_ = workbook.Close()
	}()

	index, err := workbook.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	workbook.SetActiveSheet(index)
	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		s.logger.Debug().Err(err).Msg("default sheet removal skipped")
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := workbook.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", err
		}
	}

	for i, record := range records {
		for col, value := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, "", err
			}
			if err := workbook.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	buffer, err := workbook.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	observability.ExportRequests().WithLabelValues(dataset).Inc()
	s.logger.Info().Str("dataset", dataset).Int("rows", len(records)).Msg("spreadsheet exported")

	filename := fmt.Sprintf("%s-%s.xlsx", dataset, time.Now().Format("2006-01-02"))
	return buffer.Bytes(), filename, nil
}
