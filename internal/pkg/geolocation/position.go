package geolocation

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrLocationDenied is returned when no position can be used for an
	// attendance action. ErrLocationUnavailable and ErrLocationTimeout wrap it.
	ErrLocationDenied      = errors.New("location access denied")
	ErrLocationUnavailable = fmt.Errorf("%w: geolocation is not available on this device", ErrLocationDenied)
	ErrLocationTimeout     = fmt.Errorf("%w: timed out waiting for a position fix", ErrLocationDenied)
)

// Position is a single device fix. It is never persisted on its own.
type Position struct {
	Latitude       float64
	Longitude      float64
	AccuracyMeters float64
	CapturedAt     time.Time
}

// PositionOptions mirrors the parameters of a device "get current position" call.
type PositionOptions struct {
	EnableHighAccuracy bool
	Timeout            time.Duration
	// MaximumAge is how old a cached fix may be. Zero means a fresh fix is required.
	MaximumAge time.Duration
}

// DefaultOptions requests one fresh high-accuracy fix within 10 seconds.
var DefaultOptions = PositionOptions{
	EnableHighAccuracy: true,
	Timeout:            10 * time.Second,
	MaximumAge:         0,
}

// Status is the outcome of the advisory location probe a client performs
// when the attendance view loads.
type Status string

const (
	StatusUnknown     Status = ""
	StatusAllowed     Status = "allowed"
	StatusDenied      Status = "denied"
	StatusUnavailable Status = "unavailable"
)

// ParseStatus maps a probe result string to a Status. Unrecognised values are unknown.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusAllowed, StatusDenied, StatusUnavailable:
		return Status(s)
	default:
		return StatusUnknown
	}
}

// AllowsActions reports whether check-in/out controls may be enabled.
// Only a successful probe enables them.
func (s Status) AllowsActions() bool {
	return s == StatusAllowed
}

// StatusFromError classifies an acquisition error the way the probe reports it.
func StatusFromError(err error) Status {
	switch {
	case err == nil:
		return StatusAllowed
	case errors.Is(err, ErrLocationUnavailable):
		return StatusUnavailable
	default:
		return StatusDenied
	}
}
