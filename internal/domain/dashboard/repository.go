package dashboard

import (
	"context"
)

// AttendanceStats combines one day's attendance counts with the active office count
type AttendanceStats struct {
	Present       int64
	InOffice      int64 // is_within_office_radius = true
	Remote        int64 // is_within_office_radius = false
	CheckedOut    int64
	ActiveOffices int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// SummaryByDate returns attendance counts for a YYYY-MM-DD date and the active office count in single query
	SummaryByDate(ctx context.Context, organizationID string, date string) (*AttendanceStats, error)

	// CountEmployees returns the organization's headcount
	CountEmployees(ctx context.Context, organizationID string) (int64, error)
}
