package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToday_UsesClockTimezone(t *testing.T) {
	doha := time.FixedZone("AST", 3*60*60)

	// 22:30 UTC on Oct 17 is already Oct 18 in Doha (UTC+3).
	c := Fixed(time.Date(2026, 10, 17, 22, 30, 0, 0, time.UTC), doha)
	assert.Equal(t, "2026-10-18", Today(c))

	utc := Fixed(time.Date(2026, 10, 17, 22, 30, 0, 0, time.UTC), nil)
	assert.Equal(t, "2026-10-17", Today(utc))
}

func TestFixedClock_Advance(t *testing.T) {
	start := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	c := Fixed(start, time.UTC)
	c.Advance(9 * time.Hour)
	assert.Equal(t, start.Add(9*time.Hour), c.Now())
}

func TestNew_InvalidTimezone(t *testing.T) {
	_, err := New("Mars/Olympus_Mons")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	c := Fixed(time.Now(), time.UTC)
	d, err := ParseDate(c, "2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, 18, d.Day())

	_, err = ParseDate(c, "18/10/2026")
	assert.Error(t, err)
}
