package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/geoattendance/internal/domain/office"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/database"
)

type officeLocationRepository struct {
	db *database.DB
}

func NewOfficeLocationRepository(db *database.DB) office.OfficeLocationRepository {
	return &officeLocationRepository{db: db}
}

// ListActive implements office.OfficeLocationRepository.
func (o *officeLocationRepository) ListActive(ctx context.Context, organizationID string) ([]office.OfficeLocation, error) {
	q := GetQuerier(ctx, o.db)

	// Stable order keeps first-within-radius attribution deterministic.
	query := `
		SELECT id, organization_id, name, address, latitude, longitude, radius_meters,
			   is_active, created_at, updated_at
		FROM office_locations
		WHERE organization_id = $1 AND is_active = TRUE
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query office locations: %w", err)
	}
	defer rows.Close()

	var offices []office.OfficeLocation
	for rows.Next() {
		var loc office.OfficeLocation
		if err := rows.Scan(
			&loc.ID, &loc.OrganizationID, &loc.Name, &loc.Address, &loc.Latitude, &loc.Longitude,
			&loc.RadiusMeters, &loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan office location: %w", err)
		}
		offices = append(offices, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate office locations: %w", err)
	}

	return offices, nil
}
