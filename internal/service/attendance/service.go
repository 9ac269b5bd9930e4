package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/geoattendance/internal/domain/attendance"
	"github.com/cmlabs-hris/geoattendance/internal/domain/office"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/clock"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/geocoder"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/geolocation"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	office.OfficeLocationRepository
	positionProvider geolocation.PositionProvider
	positionOptions  geolocation.PositionOptions
	geocoder         geocoder.ReverseGeocoder
	clock            clock.Clock

	// inflight collapses duplicate submissions of the same action by the same
	// employee on the same day into a single chain.
	inflight singleflight.Group
}

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	officeRepo office.OfficeLocationRepository,
	positionProvider geolocation.PositionProvider,
	positionOptions geolocation.PositionOptions,
	reverseGeocoder geocoder.ReverseGeocoder,
	clk clock.Clock,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		AttendanceRepository:     attendanceRepo,
		OfficeLocationRepository: officeRepo,
		positionProvider:         positionProvider,
		positionOptions:          positionOptions,
		geocoder:                 reverseGeocoder,
		clock:                    clk,
	}
}

// timePtrToString formats a *time.Time as RFC 3339 in loc.
func timePtrToString(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	format := t.In(loc).Format(time.RFC3339)
	return &format
}

// withLocation attaches the client's location report unless one is already bound.
func withLocation(ctx context.Context, report *geolocation.Report) context.Context {
	if report == nil || geolocation.ReportFromContext(ctx) != nil {
		return ctx
	}
	return geolocation.WithReport(ctx, report)
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	ctx = withLocation(ctx, req.Location)

	today := clock.Today(a.clock)
	key := "check-in|" + req.OrganizationID + "|" + req.EmployeeID + "|" + today

	// The shared chain ignores caller cancellation; each caller waits on its own ctx.
	chainCtx := context.WithoutCancel(ctx)
	ch := a.inflight.DoChan(key, func() (interface{}, error) {
		return a.checkIn(chainCtx, req, today)
	})

	select {
	case <-ctx.Done():
		return attendance.CheckInResponse{}, ctx.Err()
	case res := <-ch:
		if res.Shared {
			slog.Debug("Duplicate check-in submission collapsed", "employee_id", req.EmployeeID, "date", today)
		}
		if res.Err != nil {
			return attendance.CheckInResponse{}, res.Err
		}
		return res.Val.(attendance.CheckInResponse), nil
	}
}

func (a *AttendanceServiceImpl) checkIn(ctx context.Context, req attendance.CheckInRequest, today string) (attendance.CheckInResponse, error) {
	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, today, req.OrganizationID)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
	}

	pos, err := geolocation.Acquire(ctx, a.positionProvider, a.positionOptions)
	if err != nil {
		slog.Warn("Check-in aborted: no position fix", "employee_id", req.EmployeeID, "error", err)
		return attendance.CheckInResponse{}, err
	}

	// Office lookup and reverse geocoding are independent; the geocoder never fails.
	var (
		offices []office.OfficeLocation
		address string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		offices, err = a.OfficeLocationRepository.ListActive(gctx, req.OrganizationID)
		if err != nil {
			return fmt.Errorf("failed to list active office locations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		address = a.geocoder.Reverse(gctx, pos.Latitude, pos.Longitude)
		return nil
	})
	if err := g.Wait(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	match := MatchOffice(pos, offices)

	now := a.clock.Now()
	date, err := clock.ParseDate(a.clock, today)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to parse attendance date: %w", err)
	}

	device := req.Device
	if device.Timestamp.IsZero() {
		device.Timestamp = now
	}

	var matchedOfficeID *string
	if match.MatchedOffice != nil {
		matchedOfficeID = &match.MatchedOffice.ID
	}

	data := attendance.Attendance{
		ID:             uuid.Must(uuid.NewV7()).String(),
		OrganizationID: req.OrganizationID,
		EmployeeID:     req.EmployeeID,
		Date:           date,

		CheckInTime:      &now,
		CheckInLatitude:  &pos.Latitude,
		CheckInLongitude: &pos.Longitude,
		CheckInAccuracy:  &pos.AccuracyMeters,
		CheckInAddress:   &address,

		// Fixed at check-in, never recomputed
		IsWithinOfficeRadius: match.IsWithinRadius,
		MatchedOfficeID:      matchedOfficeID,

		DeviceInfo:    device,
		Status:        attendance.StatusPresent,
		IsManualEntry: false,
	}

	created, ok, err := a.AttendanceRepository.CreateIfAbsent(ctx, data)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	if !ok {
		return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
	}

	slog.Info("Employee checked in",
		"employee_id", req.EmployeeID,
		"attendance_id", created.ID,
		"within_office_radius", match.IsWithinRadius,
	)

	return attendance.CheckInResponse{
		Attendance: mapAttendanceToResponse(created, a.clock.Location()),
		Geofence:   mapMatchToGeofence(match),
		Message:    checkInMessage(match),
	}, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	ctx = withLocation(ctx, req.Location)

	today := clock.Today(a.clock)
	key := "check-out|" + req.OrganizationID + "|" + req.EmployeeID + "|" + today

	chainCtx := context.WithoutCancel(ctx)
	ch := a.inflight.DoChan(key, func() (interface{}, error) {
		return a.checkOut(chainCtx, req, today)
	})

	select {
	case <-ctx.Done():
		return attendance.AttendanceResponse{}, ctx.Err()
	case res := <-ch:
		if res.Shared {
			slog.Debug("Duplicate check-out submission collapsed", "employee_id", req.EmployeeID, "date", today)
		}
		if res.Err != nil {
			return attendance.AttendanceResponse{}, res.Err
		}
		return res.Val.(attendance.AttendanceResponse), nil
	}
}

func (a *AttendanceServiceImpl) checkOut(ctx context.Context, req attendance.CheckOutRequest, today string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, today, req.OrganizationID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	switch attendance.StateOf(record) {
	case attendance.StateNone:
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	case attendance.StateCompleted:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	// The departure location is captured independently of the check-in fix.
	pos, err := geolocation.Acquire(ctx, a.positionProvider, a.positionOptions)
	if err != nil {
		slog.Warn("Check-out aborted: no position fix", "employee_id", req.EmployeeID, "error", err)
		return attendance.AttendanceResponse{}, err
	}

	address := a.geocoder.Reverse(ctx, pos.Latitude, pos.Longitude)

	now := a.clock.Now()
	if record.CheckInTime != nil && now.Before(*record.CheckInTime) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	device := req.Device
	if device.Timestamp.IsZero() {
		device.Timestamp = now
	}

	updated, err := a.AttendanceRepository.UpdateCheckOut(ctx, attendance.CheckOut{
		ID:             record.ID,
		OrganizationID: req.OrganizationID,
		Time:           now,
		Latitude:       pos.Latitude,
		Longitude:      pos.Longitude,
		Accuracy:       pos.AccuracyMeters,
		Address:        address,
		DeviceInfo:     device,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) || errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	slog.Info("Employee checked out", "employee_id", req.EmployeeID, "attendance_id", updated.ID)

	return mapAttendanceToResponse(updated, a.clock.Location()), nil
}

// GetDailyRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDailyRecord(ctx context.Context, req attendance.DailyRecordRequest) (*attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	date := req.Date
	if date == "" {
		date = clock.Today(a.clock)
	}

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date, req.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance for %s: %w", date, err)
	}
	if record == nil {
		return nil, nil
	}

	resp := mapAttendanceToResponse(*record, a.clock.Location())
	return &resp, nil
}

// GetTodayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodayStatus(ctx context.Context, req attendance.TodayStatusRequest) (attendance.DailyStatusResponse, error) {
	today := clock.Today(a.clock)

	record, err := a.GetDailyRecord(ctx, attendance.DailyRecordRequest{
		EmployeeID:     req.EmployeeID,
		OrganizationID: req.OrganizationID,
		Date:           today,
	})
	if err != nil {
		return attendance.DailyStatusResponse{}, err
	}

	state := attendance.StateNone
	if record != nil {
		state = attendance.StateCheckedIn
		if record.CheckOutTime != nil {
			state = attendance.StateCompleted
		}
	}

	allowed := req.LocationStatus.AllowsActions()

	resp := attendance.DailyStatusResponse{
		Date:           today,
		State:          state,
		LocationStatus: req.LocationStatus,
		HasCheckedIn:   state != attendance.StateNone,
		HasCheckedOut:  state == attendance.StateCompleted,
		Attendance:     record,
		CanCheckIn:     state == attendance.StateNone && allowed,
		CanCheckOut:    state == attendance.StateCheckedIn && allowed,
	}

	switch {
	case state == attendance.StateCompleted:
		resp.Message = "Attendance for today is complete"
	case !allowed:
		resp.Message = "Location access is required to check in or out"
	case state == attendance.StateCheckedIn:
		resp.Message = "You can check out"
	default:
		resp.Message = "You can check in"
	}

	return resp, nil
}

// ListByDate implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListByDate(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if filter.Date == nil || *filter.Date == "" {
		today := clock.Today(a.clock)
		filter.Date = &today
	}

	attendances, total, err := a.AttendanceRepository.ListByDate(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	return a.buildListResponse(attendances, total, filter.Page, filter.Limit), nil
}

// GetMyHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyHistory(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := a.AttendanceRepository.ListByEmployee(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get my attendance: %w", err)
	}

	return a.buildListResponse(attendances, total, filter.Page, filter.Limit), nil
}

func (a *AttendanceServiceImpl) buildListResponse(attendances []attendance.Attendance, total int64, page, limit int) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, mapAttendanceToResponse(att, a.clock.Location()))
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	offset := (page - 1) * limit
	showing := fmt.Sprintf("0 of %d", total)
	if int64(offset) < total {
		showing = fmt.Sprintf("%d-%d of %d", offset+1, min(int64(offset+limit), total), total)
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(att attendance.Attendance, loc *time.Location) attendance.AttendanceResponse {
	var workingHours *float64
	if att.CheckInTime != nil && att.CheckOutTime != nil {
		hours := att.CheckOutTime.Sub(*att.CheckInTime).Hours()
		workingHours = &hours
	}

	device := att.DeviceInfo

	return attendance.AttendanceResponse{
		ID:                   att.ID,
		EmployeeID:           att.EmployeeID,
		EmployeeCode:         att.EmployeeCode,
		EmployeeName:         att.EmployeeName,
		EmployeeEmail:        att.EmployeeEmail,
		Date:                 att.Date.Format(clock.DateLayout),
		CheckInTime:          timePtrToString(att.CheckInTime, loc),
		CheckInLatitude:      att.CheckInLatitude,
		CheckInLongitude:     att.CheckInLongitude,
		CheckInAccuracy:      att.CheckInAccuracy,
		CheckInAddress:       att.CheckInAddress,
		CheckOutTime:         timePtrToString(att.CheckOutTime, loc),
		CheckOutLatitude:     att.CheckOutLatitude,
		CheckOutLongitude:    att.CheckOutLongitude,
		CheckOutAccuracy:     att.CheckOutAccuracy,
		CheckOutAddress:      att.CheckOutAddress,
		IsWithinOfficeRadius: att.IsWithinOfficeRadius,
		MatchedOfficeID:      att.MatchedOfficeID,
		WorkingHours:         workingHours,
		DeviceInfo:           &device,
		Status:               att.Status,
		IsManualEntry:        att.IsManualEntry,
		CreatedAt:            att.CreatedAt.In(loc).Format(time.RFC3339),
		UpdatedAt:            att.UpdatedAt.In(loc).Format(time.RFC3339),
	}
}

func mapMatchToGeofence(match OfficeMatch) attendance.GeofenceResult {
	result := attendance.GeofenceResult{IsWithinRadius: match.IsWithinRadius}

	if match.MatchedOffice != nil {
		result.MatchedOfficeID = &match.MatchedOffice.ID
		result.MatchedOfficeName = &match.MatchedOffice.Name
	}
	if match.NearestOffice != nil {
		distance := match.NearestDistance
		result.NearestOfficeID = &match.NearestOffice.ID
		result.NearestOfficeName = &match.NearestOffice.Name
		result.NearestDistanceMeters = &distance
	}

	return result
}

func checkInMessage(match OfficeMatch) string {
	switch {
	case match.IsWithinRadius:
		return "You are within office premises"
	case match.NearestOffice != nil:
		return fmt.Sprintf("You are outside office location (%dm away from %s)",
			int(math.Round(match.NearestDistance)), match.NearestOffice.Name)
	default:
		return "You are outside office location (no active office locations registered)"
	}
}
