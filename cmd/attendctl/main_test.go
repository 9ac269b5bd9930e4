package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cmlabs-hris/geoattendance/internal/domain/office"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const officesYAML = `
offices:
  - id: hq
    name: HQ
    latitude: 1.0
    longitude: 1.0
    radius_meters: 150
  - id: old
    name: Old Branch
    latitude: 1.0009
    longitude: 1.0
    radius_meters: 500
    inactive: true
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		checkOrg, checkOffices = "", ""
		checkLat, checkLon = 0, 0
		distanceFrom, distanceTo = "", ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeOffices(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "offices.yaml")
	require.NoError(t, os.WriteFile(path, []byte(officesYAML), 0o600))
	return path
}

func TestDistanceCommand(t *testing.T) {
	out, err := execute(t, "distance", "--from", "1.0,1.0", "--to", "1.005,1.0")
	require.NoError(t, err)
	assert.Equal(t, "555.97\n", out)
}

func TestDistanceCommand_BadInput(t *testing.T) {
	_, err := execute(t, "distance", "--from", "1.0;1.0", "--to", "1.005,1.0")
	assert.ErrorContains(t, err, "--from")

	_, err = execute(t, "distance", "--from", "91,0", "--to", "0,0")
	assert.ErrorContains(t, err, "out of range")
}

func TestGeofenceCheck_Within(t *testing.T) {
	out, err := execute(t, "geofence", "check", "--lat", "1.0009", "--lon", "1.0", "--offices", writeOffices(t))
	require.NoError(t, err)
	assert.Equal(t, "WITHIN  HQ (radius 150m)\n", out)
}

func TestGeofenceCheck_Outside(t *testing.T) {
	out, err := execute(t, "geofence", "check", "--lat", "1.005", "--lon", "1.0", "--offices", writeOffices(t))
	require.NoError(t, err)
	// The inactive branch would contain the point but is ignored.
	assert.Equal(t, "OUTSIDE nearest HQ at 556m (radius 150m)\n", out)
}

func TestGeofenceCheck_RequiresSource(t *testing.T) {
	_, err := execute(t, "geofence", "check", "--lat", "1.0", "--lon", "1.0")
	assert.Error(t, err)
}

func TestDecodeOffices(t *testing.T) {
	offices, err := decodeOffices(strings.NewReader(officesYAML))
	require.NoError(t, err)
	require.Len(t, offices, 2)
	assert.Equal(t, "hq", offices[0].ID)
	assert.True(t, offices[0].IsActive)
	assert.False(t, offices[1].IsActive)

	empty, err := decodeOffices(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDecodeOffices_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown key":     "offices:\n  - name: HQ\n    latitude: 1\n    longitude: 1\n    radius: 150\n",
		"zero radius":     "offices:\n  - name: HQ\n    latitude: 1\n    longitude: 1\n    radius_meters: 0\n",
		"bad latitude":    "offices:\n  - name: HQ\n    latitude: 120\n    longitude: 1\n    radius_meters: 10\n",
		"missing name":    "offices:\n  - latitude: 1\n    longitude: 1\n    radius_meters: 10\n",
		"not a yaml list": "offices: hq\n",
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := decodeOffices(strings.NewReader(doc))
			assert.ErrorIs(t, err, office.ErrInvalidOfficeFile)
		})
	}
}

func TestGeofenceCheck_RejectsMalformedOrg(t *testing.T) {
	_, err := execute(t, "geofence", "check", "--lat", "1.0", "--lon", "1.0", "--org", "acme")
	assert.ErrorContains(t, err, "UUID")
}
