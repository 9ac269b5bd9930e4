package office

import "context"

// OfficeLocationRepository is the read-only office registry.
type OfficeLocationRepository interface {
	// ListActive returns the active offices of an organization.
	ListActive(ctx context.Context, organizationID string) ([]OfficeLocation, error)
}
