package office

import (
	"github.com/cmlabs-hris/geoattendance/internal/pkg/validator"
)

// OfficeFile is the YAML document accepted by `attendctl geofence check --offices`.
type OfficeFile struct {
	Offices []OfficeSpec `yaml:"offices"`
}

type OfficeSpec struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Address      string  `yaml:"address,omitempty"`
	Latitude     float64 `yaml:"latitude"`
	Longitude    float64 `yaml:"longitude"`
	RadiusMeters float64 `yaml:"radius_meters"`
	Inactive     bool    `yaml:"inactive,omitempty"`
}

func (s *OfficeSpec) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(s.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidLatitude(s.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(s.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if s.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be greater than 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToOfficeLocation converts a file entry into a registry row.
func (s OfficeSpec) ToOfficeLocation() OfficeLocation {
	loc := OfficeLocation{
		ID:           s.ID,
		Name:         s.Name,
		Latitude:     s.Latitude,
		Longitude:    s.Longitude,
		RadiusMeters: s.RadiusMeters,
		IsActive:     !s.Inactive,
	}
	if s.ID == "" {
		loc.ID = s.Name
	}
	if s.Address != "" {
		address := s.Address
		loc.Address = &address
	}
	return loc
}
