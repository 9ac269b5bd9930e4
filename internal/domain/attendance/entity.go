package attendance

import (
	"time"
)

const (
	StatusPresent = "present"
)

// State is the position of an employee's day in the check-in/check-out lifecycle.
type State string

const (
	StateNone      State = "none"
	StateCheckedIn State = "checked_in"
	StateCompleted State = "completed"
)

// DeviceInfo is an opaque audit snapshot of the client that performed an action.
type DeviceInfo struct {
	Platform  string    `json:"platform,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	Language  string    `json:"language,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Attendance struct {
	ID                   string
	OrganizationID       string
	EmployeeID           string
	Date                 time.Time
	CheckInTime          *time.Time
	CheckInLatitude      *float64
	CheckInLongitude     *float64
	CheckInAccuracy      *float64
	CheckInAddress       *string
	CheckOutTime         *time.Time
	CheckOutLatitude     *float64
	CheckOutLongitude    *float64
	CheckOutAccuracy     *float64
	CheckOutAddress      *string
	IsWithinOfficeRadius bool
	MatchedOfficeID      *string
	DeviceInfo           DeviceInfo
	CheckOutDeviceInfo   *DeviceInfo
	Status               string
	IsManualEntry        bool
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// DTO
	EmployeeCode  *string
	EmployeeName  *string
	EmployeeEmail *string
}

// StateOf derives the lifecycle state from today's record (nil means none).
func StateOf(a *Attendance) State {
	switch {
	case a == nil:
		return StateNone
	case a.CheckOutTime != nil:
		return StateCompleted
	default:
		return StateCheckedIn
	}
}

// CheckOut carries the fields written by a check-out. Nothing else changes.
type CheckOut struct {
	ID             string
	OrganizationID string
	Time           time.Time
	Latitude       float64
	Longitude      float64
	Accuracy       float64
	Address        string
	DeviceInfo     DeviceInfo
}
