package attendance

import (
	"context"
)

// AttendanceService defines business logic for geofenced attendance.
type AttendanceService interface {
	// CheckIn acquires a position, matches it against active offices and opens today's record.
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)

	// CheckOut acquires a fresh position and closes today's record.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// GetDailyRecord returns the employee's record for a date (today when empty), or nil.
	GetDailyRecord(ctx context.Context, req DailyRecordRequest) (*AttendanceResponse, error)

	// GetTodayStatus reports today's state and which action the client may offer.
	GetTodayStatus(ctx context.Context, req TodayStatusRequest) (DailyStatusResponse, error)

	// ListByDate lists all records of the organization for a date (admin view).
	ListByDate(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetMyHistory lists the authenticated employee's own records.
	GetMyHistory(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)
}
