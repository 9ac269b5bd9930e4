package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_ZeroAtIdentity(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{25.2854, 51.5310},
		{-33.8688, 151.2093},
		{89.9, -179.9},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p[0], p[1], p[0], p[1]), "distance(%v, %v)", p, p)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	cases := []struct {
		lat1, lon1, lat2, lon2 float64
	}{
		{25.2854, 51.5310, 25.3000, 51.5000},
		{1.0, 1.0, 1.0050, 1.0},
		{-6.2088, 106.8456, 51.5074, -0.1278},
	}
	for _, c := range cases {
		ab := Distance(c.lat1, c.lon1, c.lat2, c.lon2)
		ba := Distance(c.lat2, c.lon2, c.lat1, c.lon1)
		assert.InDelta(t, ab, ba, 1e-6)
	}
}

func TestDistance_OneDegreeOfLatitude(t *testing.T) {
	d := Distance(10, 20, 11, 20)
	assert.InDelta(t, 111195, d, 1)
}

func TestDistance_SmallOffsets(t *testing.T) {
	// 0.0009 degrees of latitude is roughly 100 m.
	assert.InDelta(t, 100, Distance(1.0, 1.0, 1.0009, 1.0), 1)
	// 0.0050 degrees of latitude is roughly 556 m.
	assert.InDelta(t, 556, Distance(1.0, 1.0, 1.0050, 1.0), 1)
}
