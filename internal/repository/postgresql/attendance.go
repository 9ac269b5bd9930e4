package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/geoattendance/internal/domain/attendance"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `
	a.id, a.organization_id, a.employee_id, a.attendance_date,
	a.check_in_time, a.check_in_latitude, a.check_in_longitude, a.check_in_accuracy, a.check_in_address,
	a.check_out_time, a.check_out_latitude, a.check_out_longitude, a.check_out_accuracy, a.check_out_address,
	a.is_within_office_radius, a.matched_office_id, a.device_info, a.check_out_device_info,
	a.status, a.is_manual_entry, a.created_at, a.updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func attendanceScanTargets(att *attendance.Attendance) []any {
	return []any{
		&att.ID, &att.OrganizationID, &att.EmployeeID, &att.Date,
		&att.CheckInTime, &att.CheckInLatitude, &att.CheckInLongitude, &att.CheckInAccuracy, &att.CheckInAddress,
		&att.CheckOutTime, &att.CheckOutLatitude, &att.CheckOutLongitude, &att.CheckOutAccuracy, &att.CheckOutAddress,
		&att.IsWithinOfficeRadius, &att.MatchedOfficeID, &att.DeviceInfo, &att.CheckOutDeviceInfo,
		&att.Status, &att.IsManualEntry, &att.CreatedAt, &att.UpdatedAt,
	}
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string, organizationID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1
		  AND a.attendance_date = $2
		  AND a.organization_id = $3
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date, organizationID).Scan(attendanceScanTargets(&att)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No attendance for that day
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// CreateIfAbsent implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateIfAbsent(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, organization_id, employee_id, attendance_date,
			check_in_time, check_in_latitude, check_in_longitude, check_in_accuracy, check_in_address,
			is_within_office_radius, matched_office_id, device_info, status, is_manual_entry
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		ON CONFLICT (employee_id, attendance_date) DO NOTHING
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.OrganizationID,
		newAttendance.EmployeeID,
		newAttendance.Date.Format(time.DateOnly),
		newAttendance.CheckInTime,
		newAttendance.CheckInLatitude,
		newAttendance.CheckInLongitude,
		newAttendance.CheckInAccuracy,
		newAttendance.CheckInAddress,
		newAttendance.IsWithinOfficeRadius,
		newAttendance.MatchedOfficeID,
		newAttendance.DeviceInfo,
		newAttendance.Status,
		newAttendance.IsManualEntry,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict: a record for this employee and date already exists.
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, true, nil
}

// UpdateCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateCheckOut(ctx context.Context, checkOut attendance.CheckOut) (attendance.Attendance, error) {
	var updated attendance.Attendance

	err := WithTransaction(ctx, a.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, a.db)

		var closedAt *time.Time
		err := q.QueryRow(ctx, `
			SELECT check_out_time FROM attendance_records
			WHERE id = $1 AND organization_id = $2
			FOR UPDATE
		`, checkOut.ID, checkOut.OrganizationID).Scan(&closedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrAttendanceNotFound
			}
			return fmt.Errorf("failed to lock attendance: %w", err)
		}
		if closedAt != nil {
			return attendance.ErrAlreadyCheckedOut
		}

		query := `
			UPDATE attendance_records a SET
				check_out_time = $1,
				check_out_latitude = $2,
				check_out_longitude = $3,
				check_out_accuracy = $4,
				check_out_address = $5,
				check_out_device_info = $6,
				updated_at = $1
			WHERE a.id = $7 AND a.organization_id = $8 AND a.check_out_time IS NULL
			RETURNING ` + attendanceColumns

		err = q.QueryRow(ctx, query,
			checkOut.Time,
			checkOut.Latitude,
			checkOut.Longitude,
			checkOut.Accuracy,
			checkOut.Address,
			checkOut.DeviceInfo,
			checkOut.ID,
			checkOut.OrganizationID,
		).Scan(attendanceScanTargets(&updated)...)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrAlreadyCheckedOut
			}
			return fmt.Errorf("failed to update attendance check-out: %w", err)
		}

		return nil
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	return updated, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "a.organization_id = $1 AND a.attendance_date = $2"
	args := []interface{}{filter.OrganizationID, *filter.Date}
	argIdx := 3

	if filter.IsWithinOfficeRadius != nil {
		baseWhere += fmt.Sprintf(" AND a.is_within_office_radius = $%d", argIdx)
		args = append(args, *filter.IsWithinOfficeRadius)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_records a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s,
			e.employee_code, e.full_name, e.email
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.check_in_time DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, argIdx, argIdx+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		targets := append(attendanceScanTargets(&att), &att.EmployeeCode, &att.EmployeeName, &att.EmployeeEmail)
		if err := rows.Scan(targets...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, total, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.employee_id = $1 AND a.organization_id = $2"
	args := []interface{}{filter.EmployeeID, filter.OrganizationID}
	argIdx := 3

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.attendance_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.attendance_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_records a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records a
		WHERE %s
		ORDER BY a.attendance_date DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, argIdx, argIdx+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(attendanceScanTargets(&att)...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, total, nil
}
