package office

import "time"

// OfficeLocation is a registered office perimeter. It is maintained by the
// admin master-data module and only read here.
type OfficeLocation struct {
	ID             string
	OrganizationID string
	Name           string
	Address        *string
	Latitude       float64
	Longitude      float64
	RadiusMeters   float64
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
