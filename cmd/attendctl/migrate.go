package main

import (
	"fmt"

	"github.com/cmlabs-hris/geoattendance/internal/config"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/database"
	"github.com/cmlabs-hris/geoattendance/migrations"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFile(envFile)
	if err != nil {
		return err
	}

	db, err := database.NewPostgreSQLDB(cmd.Context(), cfg.DatabaseURL(), database.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	applied, err := database.Migrate(cmd.Context(), db, migrations.FS)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(applied) == 0 {
		fmt.Fprintln(out, "Database is up to date")
		return nil
	}
	for _, version := range applied {
		fmt.Fprintf(out, "Applied %s\n", version)
	}
	return nil
}
