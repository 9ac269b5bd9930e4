package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/geoattendance/internal/domain/attendance"
	"github.com/cmlabs-hris/geoattendance/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRepository_SummaryByDate(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	attendanceRepo := postgresql.NewAttendanceRepository(setup.DB)
	repo := postgresql.NewDashboardRepository(setup.DB)

	orgID := uuid.NewString()
	otherOrgID := uuid.NewString()
	date := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	checkIn := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

	setup.createOffice(t, orgID, "HQ", 1.0, 1.0, 150, true)
	setup.createOffice(t, orgID, "Branch", 2.0, 2.0, 150, true)
	setup.createOffice(t, orgID, "Closed", 3.0, 3.0, 150, false)
	setup.createOffice(t, otherOrgID, "Other HQ", 1.0, 1.0, 150, true)

	inOffice := setup.createEmployee(t, orgID, "EMP101", "Dewi")
	remote := setup.createEmployee(t, orgID, "EMP102", "Eko")
	setup.createEmployee(t, orgID, "EMP103", "Fitri")
	yesterdayOnly := setup.createEmployee(t, orgID, "EMP104", "Gilang")
	otherOrg := setup.createEmployee(t, otherOrgID, "EMP201", "Hana")

	created, ok, err := attendanceRepo.CreateIfAbsent(ctx, newRecord(orgID, inOffice, date, checkIn, true))
	require.NoError(t, err)
	require.True(t, ok)
	_, err = attendanceRepo.UpdateCheckOut(ctx, attendance.CheckOut{
		ID:             created.ID,
		OrganizationID: orgID,
		Time:           checkIn.Add(8 * time.Hour),
		Latitude:       1.0,
		Longitude:      1.0,
		Address:        "1 Office Road",
	})
	require.NoError(t, err)

	_, _, err = attendanceRepo.CreateIfAbsent(ctx, newRecord(orgID, remote, date, checkIn, false))
	require.NoError(t, err)
	_, _, err = attendanceRepo.CreateIfAbsent(ctx, newRecord(orgID, yesterdayOnly, date.AddDate(0, 0, -1), checkIn.AddDate(0, 0, -1), true))
	require.NoError(t, err)
	_, _, err = attendanceRepo.CreateIfAbsent(ctx, newRecord(otherOrgID, otherOrg, date, checkIn, true))
	require.NoError(t, err)

	stats, err := repo.SummaryByDate(ctx, orgID, "2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Present)
	assert.Equal(t, int64(1), stats.InOffice)
	assert.Equal(t, int64(1), stats.Remote)
	assert.Equal(t, int64(1), stats.CheckedOut)
	assert.Equal(t, int64(2), stats.ActiveOffices)

	empty, err := repo.SummaryByDate(ctx, orgID, "2026-10-01")
	require.NoError(t, err)
	assert.Zero(t, empty.Present)
	assert.Equal(t, int64(2), empty.ActiveOffices)

	headcount, err := repo.CountEmployees(ctx, orgID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), headcount)
}
