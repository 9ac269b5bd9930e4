package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDailySummary returns present/in-office/remote counts for a day (today when empty)
	GetDailySummary(ctx context.Context, req DailySummaryRequest) (*DailySummaryResponse, error)
}
