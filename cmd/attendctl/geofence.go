package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cmlabs-hris/geoattendance/internal/config"
	"github.com/cmlabs-hris/geoattendance/internal/domain/office"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/database"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/geolocation"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/validator"
	"github.com/cmlabs-hris/geoattendance/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/geoattendance/internal/service/attendance"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	checkLat     float64
	checkLon     float64
	checkOrg     string
	checkOffices string
)

var geofenceCmd = &cobra.Command{
	Use:   "geofence",
	Short: "Inspect office perimeters",
}

var geofenceCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report which office, if any, a coordinate falls within",
	Example: `  attendctl geofence check --lat 25.2854 --lon 51.5310 --offices offices.yaml
  attendctl geofence check --lat 25.2854 --lon 51.5310 --org 0192...`,
	Args: cobra.NoArgs,
	RunE: runGeofenceCheck,
}

func init() {
	geofenceCheckCmd.Flags().Float64Var(&checkLat, "lat", 0, "Latitude in decimal degrees")
	geofenceCheckCmd.Flags().Float64Var(&checkLon, "lon", 0, "Longitude in decimal degrees")
	geofenceCheckCmd.Flags().StringVar(&checkOrg, "org", "", "Organization ID whose active offices are loaded from the database")
	geofenceCheckCmd.Flags().StringVar(&checkOffices, "offices", "", "YAML file of office perimeters")
	_ = geofenceCheckCmd.MarkFlagRequired("lat")
	_ = geofenceCheckCmd.MarkFlagRequired("lon")
	geofenceCheckCmd.MarkFlagsOneRequired("org", "offices")
	geofenceCheckCmd.MarkFlagsMutuallyExclusive("org", "offices")

	geofenceCmd.AddCommand(geofenceCheckCmd)
}

func runGeofenceCheck(cmd *cobra.Command, args []string) error {
	if !validator.IsValidLatitude(checkLat) || !validator.IsValidLongitude(checkLon) {
		return fmt.Errorf("coordinate %f, %f is out of range", checkLat, checkLon)
	}

	var (
		offices []office.OfficeLocation
		err     error
	)
	if checkOffices != "" {
		offices, err = loadOfficeFile(checkOffices)
	} else {
		if !validator.IsValidUUID(checkOrg) {
			return fmt.Errorf("--org must be a UUID, got %q", checkOrg)
		}
		offices, err = loadOrganizationOffices(cmd, checkOrg)
	}
	if err != nil {
		return err
	}

	match := attendanceService.MatchOffice(geolocation.Position{Latitude: checkLat, Longitude: checkLon}, offices)
	printMatch(cmd.OutOrStdout(), match)
	return nil
}

func loadOrganizationOffices(cmd *cobra.Command, organizationID string) ([]office.OfficeLocation, error) {
	cfg, err := config.LoadFile(envFile)
	if err != nil {
		return nil, err
	}

	db, err := database.NewPostgreSQLDB(cmd.Context(), cfg.DatabaseURL(), database.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	offices, err := postgresql.NewOfficeLocationRepository(db).ListActive(cmd.Context(), organizationID)
	if err != nil {
		return nil, err
	}
	if len(offices) == 0 {
		return nil, fmt.Errorf("%w: %s", office.ErrNoActiveOffices, organizationID)
	}
	return offices, nil
}

func loadOfficeFile(path string) ([]office.OfficeLocation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeOffices(f)
}

// decodeOffices parses a perimeter file. Unknown keys are rejected so typos in
// radius_meters do not silently become zero.
func decodeOffices(r io.Reader) ([]office.OfficeLocation, error) {
	var file office.OfficeFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", office.ErrInvalidOfficeFile, err)
	}

	offices := make([]office.OfficeLocation, 0, len(file.Offices))
	for i, spec := range file.Offices {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("%w: offices[%d]: %v", office.ErrInvalidOfficeFile, i, err)
		}
		offices = append(offices, spec.ToOfficeLocation())
	}
	return offices, nil
}

func printMatch(w io.Writer, match attendanceService.OfficeMatch) {
	switch {
	case match.IsWithinRadius:
		fmt.Fprintf(w, "WITHIN  %s (radius %.0fm)\n", match.MatchedOffice.Name, match.MatchedOffice.RadiusMeters)
	case match.NearestOffice != nil:
		fmt.Fprintf(w, "OUTSIDE nearest %s at %.0fm (radius %.0fm)\n",
			match.NearestOffice.Name, match.NearestDistance, match.NearestOffice.RadiusMeters)
	default:
		fmt.Fprintln(w, "OUTSIDE no active offices")
	}
}
