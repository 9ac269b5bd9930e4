package dashboard

import (
	"context"

	"github.com/cmlabs-hris/geoattendance/internal/domain/dashboard"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/clock"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	clock clock.Clock
}

func NewDashboardService(repo dashboard.DashboardRepository, clk clock.Clock) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		clock:               clk,
	}
}

// GetDailySummary runs the attendance and headcount queries in parallel
func (s *DashboardServiceImpl) GetDailySummary(ctx context.Context, req dashboard.DailySummaryRequest) (*dashboard.DailySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	date := req.Date
	if date == "" {
		date = clock.Today(s.clock)
	}

	var (
		stats     *dashboard.AttendanceStats
		headcount int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stats, err = s.SummaryByDate(gCtx, req.OrganizationID, date)
		return err
	})

	g.Go(func() error {
		var err error
		headcount, err = s.CountEmployees(gCtx, req.OrganizationID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var inOfficePercent, remotePercent float64
	if stats.Present > 0 {
		inOfficePercent = float64(stats.InOffice) / float64(stats.Present) * 100
		remotePercent = float64(stats.Remote) / float64(stats.Present) * 100
	}

	return &dashboard.DailySummaryResponse{
		Date:                  date,
		TotalEmployees:        headcount,
		Present:               stats.Present,
		NotCheckedIn:          max(headcount-stats.Present, 0),
		InOffice:              stats.InOffice,
		Remote:                stats.Remote,
		CheckedOut:            stats.CheckedOut,
		InOfficePercent:       inOfficePercent,
		RemotePercent:         remotePercent,
		ActiveOfficeLocations: stats.ActiveOffices,
	}, nil
}
