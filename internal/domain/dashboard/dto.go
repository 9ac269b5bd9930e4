package dashboard

import "github.com/cmlabs-hris/geoattendance/internal/pkg/validator"

type DailySummaryRequest struct {
	OrganizationID string
	Date           string // YYYY-MM-DD, today when empty
}

func (r *DailySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OrganizationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "organization_id",
			Message: "organization_id is required",
		})
	}

	if r.Date != "" {
		if _, valid := validator.IsValidDate(r.Date); !valid {
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

// DailySummaryResponse is the admin overview of one day's attendance
type DailySummaryResponse struct {
	Date                  string  `json:"date"` // Format: "YYYY-MM-DD"
	TotalEmployees        int64   `json:"total_employees"`
	Present               int64   `json:"present"`
	NotCheckedIn          int64   `json:"not_checked_in"`
	InOffice              int64   `json:"in_office"`
	Remote                int64   `json:"remote"`
	CheckedOut            int64   `json:"checked_out"`
	InOfficePercent       float64 `json:"in_office_percent"`
	RemotePercent         float64 `json:"remote_percent"`
	ActiveOfficeLocations int64   `json:"active_office_locations"`
}
