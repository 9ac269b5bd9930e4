package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/geoattendance/internal/domain/attendance"
	"github.com/cmlabs-hris/geoattendance/internal/domain/user"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/geolocation"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/validator"
)

// StatusClientClosedRequest is written when the client cancelled the request.
const StatusClientClosedRequest = 499

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrEmployeeRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Geolocation errors; the specific kinds wrap ErrLocationDenied so they go first.
	case errors.Is(err, geolocation.ErrLocationUnavailable):
		Error(w, http.StatusUnprocessableEntity, "LOCATION_UNAVAILABLE", "Your location could not be determined")
	case errors.Is(err, geolocation.ErrLocationTimeout):
		Error(w, http.StatusRequestTimeout, "LOCATION_TIMEOUT", "Timed out waiting for your location")
	case errors.Is(err, geolocation.ErrLocationDenied):
		Error(w, http.StatusForbidden, "LOCATION_DENIED", "Location access is required for attendance")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "ALREADY_CHECKED_IN", "You have already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "ALREADY_CHECKED_OUT", "You have already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "NOT_CHECKED_IN", "You have not checked in today")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		Conflict(w, "CHECK_OUT_BEFORE_CHECK_IN", "Check-out time cannot be before check-in time")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	case errors.Is(err, context.Canceled):
		slog.Debug("Request cancelled by client", "error", err)
		Error(w, StatusClientClosedRequest, "REQUEST_CANCELLED", "The request was cancelled")

	// Default
	default:
		slog.Error("Unhandled request error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
