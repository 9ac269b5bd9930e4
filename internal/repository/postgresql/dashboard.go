package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/geoattendance/internal/domain/dashboard"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// SummaryByDate returns present/in-office/remote/checked-out for a day plus active offices
func (r *dashboardRepositoryImpl) SummaryByDate(ctx context.Context, organizationID string, date string) (*dashboard.AttendanceStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS present,
			COUNT(*) FILTER (WHERE is_within_office_radius) AS in_office,
			COUNT(*) FILTER (WHERE NOT is_within_office_radius) AS remote,
			COUNT(*) FILTER (WHERE check_out_time IS NOT NULL) AS checked_out,
			(
				SELECT COUNT(*) FROM office_locations
				WHERE organization_id = $1 AND is_active = TRUE
			) AS active_offices
		FROM attendance_records
		WHERE organization_id = $1
		AND attendance_date = $2::date
		AND check_in_time IS NOT NULL
	`

	var stats dashboard.AttendanceStats
	err := q.QueryRow(ctx, query, organizationID, date).Scan(
		&stats.Present, &stats.InOffice, &stats.Remote, &stats.CheckedOut, &stats.ActiveOffices,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance summary by date: %w", err)
	}
	return &stats, nil
}

// CountEmployees returns the organization's headcount
func (r *dashboardRepositoryImpl) CountEmployees(ctx context.Context, organizationID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE organization_id = $1`, organizationID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return total, nil
}
