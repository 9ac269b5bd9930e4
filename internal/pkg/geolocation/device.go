package geolocation

import (
	"context"
	"time"

	"github.com/cmlabs-hris/geoattendance/internal/pkg/clock"
)

// Error codes a client reports when its platform geolocation call fails.
const (
	ReportErrPermissionDenied    = "permission_denied"
	ReportErrPositionUnavailable = "position_unavailable"
	ReportErrTimeout             = "timeout"
)

// Report is the outcome of the device's own geolocation call, as sent by the client.
type Report struct {
	Latitude   *float64   `json:"latitude,omitempty"`
	Longitude  *float64   `json:"longitude,omitempty"`
	Accuracy   *float64   `json:"accuracy,omitempty"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// maxClockSkew is how far ahead of the server clock a device timestamp may be.
const maxClockSkew = 30 * time.Second

type reportKey struct{}

// WithReport attaches the device report for the current request.
func WithReport(ctx context.Context, r *Report) context.Context {
	return context.WithValue(ctx, reportKey{}, r)
}

// ReportFromContext returns the device report attached by WithReport, if any.
func ReportFromContext(ctx context.Context) *Report {
	r, _ := ctx.Value(reportKey{}).(*Report)
	return r
}

// DeviceProvider adapts the client device's geolocation result to PositionProvider.
type DeviceProvider struct {
	clock clock.Clock
}

func NewDeviceProvider(c clock.Clock) *DeviceProvider {
	return &DeviceProvider{clock: c}
}

// CurrentPosition implements PositionProvider.
func (d *DeviceProvider) CurrentPosition(ctx context.Context, opts PositionOptions) (Position, error) {
	r := ReportFromContext(ctx)
	if r == nil {
		return Position{}, ErrLocationUnavailable
	}

	switch r.Error {
	case "":
	case ReportErrPermissionDenied:
		return Position{}, ErrLocationDenied
	case ReportErrTimeout:
		return Position{}, ErrLocationTimeout
	default:
		return Position{}, ErrLocationUnavailable
	}

	if r.Latitude == nil || r.Longitude == nil {
		return Position{}, ErrLocationUnavailable
	}
	if *r.Latitude < -90 || *r.Latitude > 90 || *r.Longitude < -180 || *r.Longitude > 180 {
		return Position{}, ErrLocationUnavailable
	}

	now := d.clock.Now()
	capturedAt := now
	if r.CapturedAt != nil {
		capturedAt = *r.CapturedAt
	}
	if capturedAt.After(now.Add(maxClockSkew)) {
		return Position{}, ErrLocationUnavailable
	}
	// A fix older than the allowed cache age plus the acquisition window is a cached one.
	if now.Sub(capturedAt) > opts.MaximumAge+opts.Timeout {
		return Position{}, ErrLocationTimeout
	}

	var accuracy float64
	if r.Accuracy != nil {
		accuracy = *r.Accuracy
	}

	return Position{
		Latitude:       *r.Latitude,
		Longitude:      *r.Longitude,
		AccuracyMeters: accuracy,
		CapturedAt:     capturedAt,
	}, nil
}

// ProbeStatus classifies a probe report without consuming it.
func ProbeStatus(ctx context.Context, d *DeviceProvider) Status {
	_, err := d.CurrentPosition(ctx, DefaultOptions)
	return StatusFromError(err)
}
