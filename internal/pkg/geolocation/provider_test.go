package geolocation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/geoattendance/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestErrorTaxonomy(t *testing.T) {
	assert.True(t, errors.Is(ErrLocationTimeout, ErrLocationDenied))
	assert.True(t, errors.Is(ErrLocationUnavailable, ErrLocationDenied))
	assert.False(t, errors.Is(ErrLocationDenied, ErrLocationTimeout))
	assert.False(t, errors.Is(ErrLocationTimeout, ErrLocationUnavailable))
}

func TestAcquire_Success(t *testing.T) {
	want := Position{Latitude: 25.2854, Longitude: 51.5310, AccuracyMeters: 12}
	fake := NewFake(want)

	got, err := Acquire(context.Background(), fake, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, fake.Calls())
}

func TestAcquire_TimesOut(t *testing.T) {
	fake := NewFake(Position{Latitude: 1, Longitude: 1})
	fake.SetDelay(time.Second)

	opts := DefaultOptions
	opts.Timeout = 20 * time.Millisecond

	start := time.Now()
	_, err := Acquire(context.Background(), fake, opts)
	assert.ErrorIs(t, err, ErrLocationTimeout)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestAcquire_PassesThroughDenial(t *testing.T) {
	_, err := Acquire(context.Background(), NewFailingFake(ErrLocationDenied), DefaultOptions)
	assert.ErrorIs(t, err, ErrLocationDenied)
	assert.NotErrorIs(t, err, ErrLocationTimeout)
}

func TestAcquire_WrapsUnknownErrorsAsUnavailable(t *testing.T) {
	_, err := Acquire(context.Background(), NewFailingFake(errors.New("gps chip on fire")), DefaultOptions)
	assert.ErrorIs(t, err, ErrLocationUnavailable)
	assert.ErrorIs(t, err, ErrLocationDenied)
}

func TestAcquire_CallerCancellationIsNotALocationFailure(t *testing.T) {
	fake := NewFake(Position{Latitude: 1, Longitude: 1})
	fake.SetDelay(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := Acquire(ctx, fake, DefaultOptions)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrLocationDenied)
}

func TestAcquire_ProviderReportsCancellation(t *testing.T) {
	_, err := Acquire(context.Background(), NewFailingFake(context.Canceled), DefaultOptions)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrLocationDenied)
}

func TestAcquire_NilProvider(t *testing.T) {
	_, err := Acquire(context.Background(), nil, DefaultOptions)
	assert.ErrorIs(t, err, ErrLocationUnavailable)
}

func TestDeviceProvider(t *testing.T) {
	now := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	d := NewDeviceProvider(clock.Fixed(now, time.UTC))

	cases := []struct {
		name    string
		report  *Report
		wantErr error
	}{
		{name: "no report", report: nil, wantErr: ErrLocationUnavailable},
		{name: "permission denied", report: &Report{Error: ReportErrPermissionDenied}, wantErr: ErrLocationDenied},
		{name: "device timeout", report: &Report{Error: ReportErrTimeout}, wantErr: ErrLocationTimeout},
		{name: "position unavailable", report: &Report{Error: ReportErrPositionUnavailable}, wantErr: ErrLocationUnavailable},
		{name: "missing coordinates", report: &Report{Latitude: ptr(1.0)}, wantErr: ErrLocationUnavailable},
		{name: "out of range", report: &Report{Latitude: ptr(91.0), Longitude: ptr(0.0)}, wantErr: ErrLocationUnavailable},
		{
			name: "cached fix",
			report: &Report{
				Latitude: ptr(1.0), Longitude: ptr(1.0),
				CapturedAt: ptr(now.Add(-time.Minute)),
			},
			wantErr: ErrLocationTimeout,
		},
		{
			name: "fix from the future",
			report: &Report{
				Latitude: ptr(1.0), Longitude: ptr(1.0),
				CapturedAt: ptr(now.Add(time.Hour)),
			},
			wantErr: ErrLocationUnavailable,
		},
		{
			name: "fresh fix",
			report: &Report{
				Latitude: ptr(1.0009), Longitude: ptr(1.0), Accuracy: ptr(8.5),
				CapturedAt: ptr(now.Add(-2 * time.Second)),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			if tc.report != nil {
				ctx = WithReport(ctx, tc.report)
			}
			pos, err := d.CurrentPosition(ctx, DefaultOptions)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1.0009, pos.Latitude)
			assert.Equal(t, 8.5, pos.AccuracyMeters)
			assert.Equal(t, now.Add(-2*time.Second), pos.CapturedAt)
		})
	}
}

func TestProbeStatus(t *testing.T) {
	now := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	d := NewDeviceProvider(clock.Fixed(now, time.UTC))

	ctx := WithReport(context.Background(), &Report{Error: ReportErrPermissionDenied})
	assert.Equal(t, StatusDenied, ProbeStatus(ctx, d))
	assert.False(t, ProbeStatus(ctx, d).AllowsActions())

	ctx = WithReport(context.Background(), &Report{Latitude: ptr(1.0), Longitude: ptr(1.0)})
	assert.Equal(t, StatusAllowed, ProbeStatus(ctx, d))

	assert.Equal(t, StatusUnavailable, ProbeStatus(context.Background(), d))
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusDenied, ParseStatus("denied"))
	assert.Equal(t, StatusUnknown, ParseStatus("checking"))
	assert.True(t, StatusAllowed.AllowsActions())
	assert.False(t, StatusUnknown.AllowsActions())
	assert.False(t, StatusUnavailable.AllowsActions())
	assert.False(t, StatusDenied.AllowsActions())
}
