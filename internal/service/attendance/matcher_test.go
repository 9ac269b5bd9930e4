package attendance

import (
	"testing"

	"github.com/cmlabs-hris/geoattendance/internal/domain/office"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/geo"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/geolocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOffice(id string, lat, lon, radius float64) office.OfficeLocation {
	return office.OfficeLocation{
		ID:             id,
		OrganizationID: "org-1",
		Name:           "Office " + id,
		Latitude:       lat,
		Longitude:      lon,
		RadiusMeters:   radius,
		IsActive:       true,
	}
}

func TestMatchOffice_WithinRadius(t *testing.T) {
	offices := []office.OfficeLocation{newOffice("doha", 25.2854, 51.5310, 200)}

	// 0.00045 degrees of latitude is about 50 m.
	pos := geolocation.Position{Latitude: 25.28585, Longitude: 51.5310}
	require.InDelta(t, 50, geo.Distance(pos.Latitude, pos.Longitude, 25.2854, 51.5310), 1)

	match := MatchOffice(pos, offices)

	assert.True(t, match.IsWithinRadius)
	require.NotNil(t, match.MatchedOffice)
	assert.Equal(t, "doha", match.MatchedOffice.ID)
	assert.Equal(t, "doha", match.NearestOffice.ID)
}

func TestMatchOffice_OutsideRadiusReportsNearest(t *testing.T) {
	offices := []office.OfficeLocation{newOffice("doha", 25.2854, 51.5310, 200)}

	// 0.044966 degrees of latitude is about 5,000 m.
	pos := geolocation.Position{Latitude: 25.2854 + 0.044966, Longitude: 51.5310}

	match := MatchOffice(pos, offices)

	assert.False(t, match.IsWithinRadius)
	assert.Nil(t, match.MatchedOffice)
	require.NotNil(t, match.NearestOffice)
	assert.Equal(t, "doha", match.NearestOffice.ID)
	assert.InDelta(t, 5000, match.NearestDistance, 5)
}

func TestMatchOffice_EmptyOffices(t *testing.T) {
	match := MatchOffice(geolocation.Position{Latitude: 1, Longitude: 1}, nil)

	assert.False(t, match.IsWithinRadius)
	assert.Nil(t, match.MatchedOffice)
	assert.Nil(t, match.NearestOffice)
}

func TestMatchOffice_FirstWithinRadiusWins(t *testing.T) {
	// Both perimeters contain the position; the second office is closer.
	pos := geolocation.Position{Latitude: 1.0, Longitude: 1.0}
	offices := []office.OfficeLocation{
		newOffice("far", 1.0018, 1.0, 500),  // ~200 m away
		newOffice("near", 1.0001, 1.0, 500), // ~11 m away
	}

	match := MatchOffice(pos, offices)

	assert.True(t, match.IsWithinRadius)
	require.NotNil(t, match.MatchedOffice)
	assert.Equal(t, "far", match.MatchedOffice.ID)
	// The scan stopped before reaching the closer office.
	assert.Equal(t, "far", match.NearestOffice.ID)
}

func TestMatchOffice_NearestTrackedAcrossMisses(t *testing.T) {
	pos := geolocation.Position{Latitude: 1.0, Longitude: 1.0}
	offices := []office.OfficeLocation{
		newOffice("a", 1.0200, 1.0, 100), // ~2.2 km
		newOffice("b", 1.0050, 1.0, 100), // ~556 m
		newOffice("c", 1.0100, 1.0, 100), // ~1.1 km
	}

	match := MatchOffice(pos, offices)

	assert.False(t, match.IsWithinRadius)
	require.NotNil(t, match.NearestOffice)
	assert.Equal(t, "b", match.NearestOffice.ID)
	assert.InDelta(t, 556, match.NearestDistance, 1)
}

func TestMatchOffice_BoundaryIsInclusive(t *testing.T) {
	pos := geolocation.Position{Latitude: 1.0009, Longitude: 1.0}
	d := geo.Distance(1.0009, 1.0, 1.0, 1.0)

	match := MatchOffice(pos, []office.OfficeLocation{newOffice("edge", 1.0, 1.0, d)})

	assert.True(t, match.IsWithinRadius)
}

func TestMatchOffice_SkipsInactive(t *testing.T) {
	inactive := newOffice("closed", 1.0, 1.0, 500)
	inactive.IsActive = false

	match := MatchOffice(geolocation.Position{Latitude: 1.0, Longitude: 1.0}, []office.OfficeLocation{inactive})

	assert.False(t, match.IsWithinRadius)
	assert.Nil(t, match.NearestOffice)
}
