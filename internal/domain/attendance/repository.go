package attendance

import (
	"context"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods take the organization ID so records never leak across tenants.
type AttendanceRepository interface {
	// GetByEmployeeAndDate returns the employee's record for a YYYY-MM-DD date, or nil.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date string, organizationID string) (*Attendance, error)

	// CreateIfAbsent inserts the record unless one already exists for the same
	// employee and date. The bool is false when the insert was skipped.
	CreateIfAbsent(ctx context.Context, attendance Attendance) (Attendance, bool, error)

	// UpdateCheckOut writes the check-out fields of an open record.
	// Returns ErrAlreadyCheckedOut if the record is already closed and
	// ErrAttendanceNotFound if it does not exist.
	UpdateCheckOut(ctx context.Context, checkOut CheckOut) (Attendance, error)

	// ListByDate lists an organization's records for one date, newest check-in first.
	ListByDate(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListByEmployee lists one employee's records, newest date first.
	ListByEmployee(ctx context.Context, filter MyAttendanceFilter) ([]Attendance, int64, error)
}
