package attendance

import (
	"github.com/cmlabs-hris/geoattendance/internal/domain/office"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/geo"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/geolocation"
)

// OfficeMatch is the result of matching a position against office perimeters.
type OfficeMatch struct {
	IsWithinRadius  bool
	MatchedOffice   *office.OfficeLocation
	NearestOffice   *office.OfficeLocation
	NearestDistance float64
}

// MatchOffice scans offices in order and stops at the first one whose radius
// contains pos. That office is attributed even when a later, overlapping
// office is closer. NearestOffice tracks the closest office seen so far.
func MatchOffice(pos geolocation.Position, offices []office.OfficeLocation) OfficeMatch {
	var match OfficeMatch

	for i := range offices {
		o := &offices[i]
		if !o.IsActive {
			continue
		}

		distance := geo.Distance(pos.Latitude, pos.Longitude, o.Latitude, o.Longitude)

		if match.NearestOffice == nil || distance < match.NearestDistance {
			match.NearestOffice = o
			match.NearestDistance = distance
		}

		if distance <= o.RadiusMeters {
			match.IsWithinRadius = true
			match.MatchedOffice = o
			break
		}
	}

	return match
}
