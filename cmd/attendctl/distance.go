package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/geoattendance/internal/pkg/geo"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/validator"
	"github.com/spf13/cobra"
)

var (
	distanceFrom string
	distanceTo   string
)

var distanceCmd = &cobra.Command{
	Use:     "distance",
	Short:   "Great-circle distance in meters between two coordinates",
	Example: "  attendctl distance --from 1.0,1.0 --to 1.005,1.0",
	Args:    cobra.NoArgs,
	RunE:    runDistance,
}

func init() {
	distanceCmd.Flags().StringVar(&distanceFrom, "from", "", "Origin as lat,lon")
	distanceCmd.Flags().StringVar(&distanceTo, "to", "", "Destination as lat,lon")
	_ = distanceCmd.MarkFlagRequired("from")
	_ = distanceCmd.MarkFlagRequired("to")
}

func runDistance(cmd *cobra.Command, args []string) error {
	lat1, lon1, err := parseCoordinate(distanceFrom)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	lat2, lon2, err := parseCoordinate(distanceTo)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", geo.Distance(lat1, lon1, lat2, lon2))
	return nil
}

func parseCoordinate(s string) (lat, lon float64, err error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("expected lat,lon but got %q", s)
	}
	if lat, err = strconv.ParseFloat(strings.TrimSpace(latStr), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q", latStr)
	}
	if lon, err = strconv.ParseFloat(strings.TrimSpace(lonStr), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q", lonStr)
	}
	if !validator.IsValidLatitude(lat) || !validator.IsValidLongitude(lon) {
		return 0, 0, fmt.Errorf("coordinate %s is out of range", s)
	}
	return lat, lon, nil
}
