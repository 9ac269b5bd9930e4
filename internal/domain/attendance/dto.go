package attendance

import (
	"github.com/cmlabs-hris/geoattendance/internal/pkg/geolocation"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID     string              `json:"-"`
	OrganizationID string              `json:"-"`
	Location       *geolocation.Report `json:"location"`
	Device         DeviceInfo          `json:"device"`
}

func (r *CheckInRequest) Validate() error {
	return validateIdentity(r.EmployeeID, r.OrganizationID)
}

type CheckOutRequest struct {
	EmployeeID     string              `json:"-"`
	OrganizationID string              `json:"-"`
	Location       *geolocation.Report `json:"location"`
	Device         DeviceInfo          `json:"device"`
}

func (r *CheckOutRequest) Validate() error {
	return validateIdentity(r.EmployeeID, r.OrganizationID)
}

func validateIdentity(employeeID, organizationID string) error {
	if errs := identityErrors(employeeID, organizationID); len(errs) > 0 {
		return errs
	}
	return nil
}

func identityErrors(employeeID, organizationID string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(organizationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "organization_id",
			Message: "organization_id is required",
		})
	}

	return errs
}

type AttendanceResponse struct {
	ID                   string      `json:"id"`
	EmployeeID           string      `json:"employee_id"`
	EmployeeCode         *string     `json:"employee_code,omitempty"`
	EmployeeName         *string     `json:"employee_name,omitempty"`
	EmployeeEmail        *string     `json:"employee_email,omitempty"`
	Date                 string      `json:"attendance_date"`
	CheckInTime          *string     `json:"check_in_time,omitempty"`
	CheckInLatitude      *float64    `json:"check_in_latitude,omitempty"`
	CheckInLongitude     *float64    `json:"check_in_longitude,omitempty"`
	CheckInAccuracy      *float64    `json:"check_in_accuracy,omitempty"`
	CheckInAddress       *string     `json:"check_in_address,omitempty"`
	CheckOutTime         *string     `json:"check_out_time,omitempty"`
	CheckOutLatitude     *float64    `json:"check_out_latitude,omitempty"`
	CheckOutLongitude    *float64    `json:"check_out_longitude,omitempty"`
	CheckOutAccuracy     *float64    `json:"check_out_accuracy,omitempty"`
	CheckOutAddress      *string     `json:"check_out_address,omitempty"`
	IsWithinOfficeRadius bool        `json:"is_within_office_radius"`
	MatchedOfficeID      *string     `json:"matched_office_id,omitempty"`
	WorkingHours         *float64    `json:"working_hours,omitempty"`
	DeviceInfo           *DeviceInfo `json:"device_info,omitempty"`
	Status               string      `json:"status"`
	IsManualEntry        bool        `json:"is_manual_entry"`
	CreatedAt            string      `json:"created_at"`
	UpdatedAt            string      `json:"updated_at"`
}

// GeofenceResult is the office match summary returned with a check-in.
type GeofenceResult struct {
	IsWithinRadius        bool     `json:"is_within_radius"`
	MatchedOfficeID       *string  `json:"matched_office_id,omitempty"`
	MatchedOfficeName     *string  `json:"matched_office_name,omitempty"`
	NearestOfficeID       *string  `json:"nearest_office_id,omitempty"`
	NearestOfficeName     *string  `json:"nearest_office_name,omitempty"`
	NearestDistanceMeters *float64 `json:"nearest_distance_meters,omitempty"`
}

type CheckInResponse struct {
	Attendance AttendanceResponse `json:"attendance"`
	Geofence   GeofenceResult     `json:"geofence"`
	Message    string             `json:"message"`
}

type DailyRecordRequest struct {
	EmployeeID     string
	OrganizationID string
	Date           string // YYYY-MM-DD, today when empty
}

func (r *DailyRecordRequest) Validate() error {
	if err := validateIdentity(r.EmployeeID, r.OrganizationID); err != nil {
		return err
	}

	if r.Date != "" {
		if _, valid := validator.IsValidDate(r.Date); !valid {
			return validator.ValidationErrors{{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			}}
		}
	}

	return nil
}

// ========================================
// ATTENDANCE STATUS DTOs
// ========================================

type TodayStatusRequest struct {
	EmployeeID     string
	OrganizationID string
	LocationStatus geolocation.Status
}

type DailyStatusResponse struct {
	Date           string              `json:"date"`
	State          State               `json:"state"`
	LocationStatus geolocation.Status  `json:"location_status,omitempty"`
	HasCheckedIn   bool                `json:"has_checked_in"`
	HasCheckedOut  bool                `json:"has_checked_out"`
	Attendance     *AttendanceResponse `json:"today_attendance,omitempty"`
	CanCheckIn     bool                `json:"can_check_in"`
	CanCheckOut    bool                `json:"can_check_out"`
	Message        string              `json:"message"`
}

// ========================================
// LIST DTOs
// ========================================

type AttendanceFilter struct {
	OrganizationID       string  `json:"-"`
	Date                 *string `json:"date,omitempty"` // YYYY-MM-DD
	IsWithinOfficeRadius *bool   `json:"in_office,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.OrganizationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "organization_id",
			Message: "organization_id is required",
		})
	}

	errs = append(errs, validatePagination(&f.Page, &f.Limit)...)

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MyAttendanceFilter struct {
	EmployeeID     string  `json:"-"`
	OrganizationID string  `json:"-"`
	StartDate      *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate        *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, identityErrors(f.EmployeeID, f.OrganizationID)...)

	errs = append(errs, validatePagination(&f.Page, &f.Limit)...)

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.StartDate != nil && f.EndDate != nil && *f.StartDate != "" && *f.EndDate != "" {
		start, errStart := validator.ParseDate(*f.StartDate)
		end, errEnd := validator.ParseDate(*f.EndDate)
		if errStart == nil && errEnd == nil && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// validatePagination applies the default page and limit and reports bad values.
func validatePagination(page, limit *int) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if *page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if *page == 0 {
		*page = 1 // Default page
	}

	if *limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if *limit == 0 {
		*limit = 20 // Default limit
	}
	if *limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	return errs
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}
