package geocoder

import (
	"context"
	"fmt"
)

// ReverseGeocoder turns coordinates into a display address. Implementations
// never fail: on any problem they return Fallback(lat, lon).
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64) string
}

// Fallback is the address used when no lookup result is available.
func Fallback(lat, lon float64) string {
	return fmt.Sprintf("%.6f, %.6f", lat, lon)
}

// Coordinates is a ReverseGeocoder that performs no lookup.
type Coordinates struct{}

func (Coordinates) Reverse(_ context.Context, lat, lon float64) string {
	return Fallback(lat, lon)
}
