package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/geoattendance/internal/domain/attendance"
	"github.com/cmlabs-hris/geoattendance/internal/domain/user"
	"github.com/cmlabs-hris/geoattendance/internal/handler/http/middleware"
	"github.com/cmlabs-hris/geoattendance/internal/handler/http/response"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/geolocation"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	probe             *geolocation.DeviceProvider
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, probe *geolocation.DeviceProvider) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		probe:             probe,
	}
}

// actionBody is the JSON body of check-in and check-out.
type actionBody struct {
	Location *geolocation.Report `json:"location"`
	Device   struct {
		Platform string `json:"platform"`
		Language string `json:"language"`
	} `json:"device"`
}

// decodeActionBody reads the body and fills in device details from headers.
// An empty body is accepted; the missing location is reported by the service.
func decodeActionBody(r *http.Request) (*geolocation.Report, attendance.DeviceInfo, error) {
	var body actionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, attendance.DeviceInfo{}, err
	}

	device := attendance.DeviceInfo{
		Platform:  body.Device.Platform,
		UserAgent: r.UserAgent(),
		Language:  body.Device.Language,
	}
	if device.Language == "" {
		device.Language = primaryLanguage(r.Header.Get("Accept-Language"))
	}

	return body.Location, device, nil
}

func primaryLanguage(acceptLanguage string) string {
	lang, _, _ := strings.Cut(acceptLanguage, ",")
	lang, _, _ = strings.Cut(lang, ";")
	return strings.TrimSpace(lang)
}

func requireIdentity(w http.ResponseWriter, r *http.Request) (user.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, user.ErrEmployeeRequired)
		return user.Identity{}, false
	}
	return identity, true
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	location, device, err := decodeActionBody(r)
	if err != nil {
		slog.Warn("Failed to decode check-in body", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req := attendance.CheckInRequest{
		EmployeeID:     identity.EmployeeID,
		OrganizationID: identity.OrganizationID,
		Location:       location,
		Device:         device,
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, result.Message, result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	location, device, err := decodeActionBody(r)
	if err != nil {
		slog.Warn("Failed to decode check-out body", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req := attendance.CheckOutRequest{
		EmployeeID:     identity.EmployeeID,
		OrganizationID: identity.OrganizationID,
		Location:       location,
		Device:         device,
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// Today implements AttendanceHandler. The client passes the result of its
// location probe either as location_status or as raw latitude/longitude/
// location_error query parameters. Without either, location is unavailable.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	status := geolocation.ParseStatus(query.Get("location_status"))
	if status == geolocation.StatusUnknown && h.probe != nil {
		if report, present := reportFromQuery(query.Get("latitude"), query.Get("longitude"), query.Get("accuracy"), query.Get("location_error")); present {
			status = geolocation.ProbeStatus(geolocation.WithReport(r.Context(), report), h.probe)
		}
	}
	if status == geolocation.StatusUnknown {
		status = geolocation.StatusUnavailable
	}

	result, err := h.attendanceService.GetTodayStatus(r.Context(), attendance.TodayStatusRequest{
		EmployeeID:     identity.EmployeeID,
		OrganizationID: identity.OrganizationID,
		LocationStatus: status,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func reportFromQuery(lat, lon, accuracy, locationError string) (*geolocation.Report, bool) {
	if lat == "" && lon == "" && locationError == "" {
		return nil, false
	}

	report := &geolocation.Report{Error: locationError}
	if v, err := strconv.ParseFloat(lat, 64); err == nil {
		report.Latitude = &v
	}
	if v, err := strconv.ParseFloat(lon, 64); err == nil {
		report.Longitude = &v
	}
	if v, err := strconv.ParseFloat(accuracy, 64); err == nil {
		report.Accuracy = &v
	}
	return report, true
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	filter := attendance.MyAttendanceFilter{
		EmployeeID:     identity.EmployeeID,
		OrganizationID: identity.OrganizationID,
	}

	// Date range filters
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}

	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	filter.Page, filter.Limit = parsePagination(r)

	results, err := h.attendanceService.GetMyHistory(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	filter := attendance.AttendanceFilter{OrganizationID: identity.OrganizationID}

	// Date filter
	if date := r.URL.Query().Get("date"); date != "" {
		filter.Date = &date
	}

	// In-office filter
	if inOffice := r.URL.Query().Get("in_office"); inOffice != "" {
		value, err := strconv.ParseBool(inOffice)
		if err != nil {
			response.BadRequest(w, "in_office must be true or false", nil)
			return
		}
		filter.IsWithinOfficeRadius = &value
	}

	filter.Page, filter.Limit = parsePagination(r)

	results, err := h.attendanceService.ListByDate(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// parsePagination reads page and limit; unparsable values fall back to the
// service defaults, out-of-range values are rejected by validation.
func parsePagination(r *http.Request) (page, limit int) {
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil {
			page = pageNum
		}
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil {
			limit = limitNum
		}
	}

	return page, limit
}
