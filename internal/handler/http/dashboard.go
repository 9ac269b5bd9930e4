package http

import (
	"net/http"

	"github.com/cmlabs-hris/geoattendance/internal/domain/dashboard"
	"github.com/cmlabs-hris/geoattendance/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDailySummary returns present/in-office/remote counts for a day
	GetDailySummary(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDailySummary handles GET /attendance/summary
func (h *dashboardHandlerImpl) GetDailySummary(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.GetDailySummary(r.Context(), dashboard.DailySummaryRequest{
		OrganizationID: identity.OrganizationID,
		Date:           r.URL.Query().Get("date"), // format: YYYY-MM-DD, default: today
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
