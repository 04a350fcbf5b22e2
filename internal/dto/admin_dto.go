package dto

import "time"

// PlacementStats is the admin dashboard aggregate.
type PlacementStats struct {
	TotalStudents     int64                 `json:"total_students"`
	TotalDrives       int64                 `json:"total_drives"`
	TotalApplications int64                 `json:"total_applications"`
	TotalOffers       int64                 `json:"total_offers"`
	PlacedStudents    int64                 `json:"placed_students"`
	PlacementRate     float64               `json:"placement_rate"`
	ByStatus          map[string]int64      `json:"by_status"`
	ByDepartment      []DepartmentBreakdown `json:"by_department"`
}

// DepartmentBreakdown is per-department placement progress.
type DepartmentBreakdown struct {
	Department string `json:"department"`
	Students   int64  `json:"students"`
	Placed     int64  `json:"placed"`
}

// AdminStudentRow is one row of the admin student roster.
type AdminStudentRow struct {
	UserID     uint    `json:"user_id"`
	Name       string  `json:"name"`
	RollNumber string  `json:"roll_number"`
	Department string  `json:"department"`
	Batch      string  `json:"batch"`
	CGPA       float64 `json:"cgpa"`
	Backlogs   int     `json:"backlogs"`
	Placed     bool    `json:"placed"`
}

// AdminStudentListResponse wraps a roster page.
type AdminStudentListResponse struct {
	Items      []AdminStudentRow `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// CompanySummary aggregates drives and applications for one company.
type CompanySummary struct {
	Company      string `json:"company"`
	Drives       int64  `json:"drives"`
	Applications int64  `json:"applications"`
	Offers       int64  `json:"offers"`
}

// ScheduleItem is one entry of the merged upcoming timeline.
type ScheduleItem struct {
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	DriveID   uint      `json:"drive_id,omitempty"`
	Company   string    `json:"company,omitempty"`
	StartsAt  time.Time `json:"starts_at"`
	RoundName string    `json:"round_name,omitempty"`
}
