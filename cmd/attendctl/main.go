// Command attendctl is the operator CLI for the attendance service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "attendctl",
	Short: "Operator tools for the geofenced attendance service",
	Long: `attendctl applies database migrations and dry-runs the office
geofence against a coordinate, using either the database registry or a
YAML perimeter file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to the .env file")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(geofenceCmd)
	rootCmd.AddCommand(distanceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
