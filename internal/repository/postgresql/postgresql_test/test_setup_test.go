package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/geoattendance/internal/pkg/database"
	"github.com/cmlabs-hris/geoattendance/migrations"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup wraps a migrated test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// The test is skipped when the variable is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL integration test")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 10, MinConns: 1})
	require.NoError(t, err, "failed to connect to test database")

	_, err = database.Migrate(ctx, db, migrations.FS)
	require.NoError(t, err, "failed to migrate test database")

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)

	return setup
}

// TruncateAllTables removes all rows from the attendance tables.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"attendance_records",
		"office_locations",
		"employees",
	}

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}

func (s *TestDatabaseSetup) createEmployee(t *testing.T, organizationID, code, name string) string {
	t.Helper()
	var id string
	err := s.DB.QueryRow(context.Background(), `
		INSERT INTO employees (organization_id, employee_code, full_name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, organizationID, code, name, code+"@example.com").Scan(&id)
	require.NoError(t, err)
	return id
}

func (s *TestDatabaseSetup) createOffice(t *testing.T, organizationID, name string, lat, lon, radius float64, active bool) string {
	t.Helper()
	var id string
	err := s.DB.QueryRow(context.Background(), `
		INSERT INTO office_locations (organization_id, name, latitude, longitude, radius_meters, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, organizationID, name, lat, lon, radius, active).Scan(&id)
	require.NoError(t, err)
	return id
}
