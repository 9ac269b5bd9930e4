package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn = errors.New("you have already checked in today")

	// Check-out errors
	ErrNotCheckedIn          = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut     = errors.New("you have already checked out")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time cannot be earlier than check-in time")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
