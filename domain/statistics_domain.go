package domain

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PeriodDay   = "day"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

var (
	MessageSuccessGetRevenue   = "revenue statistics retrieved successfully"
	MessageSuccessGetItemStats = "menu item statistics retrieved successfully"
	MessageSuccessGetDashboard = "dashboard retrieved successfully"

	MessageFailedGetRevenue   = "failed to retrieve revenue statistics"
	MessageFailedGetItemStats = "failed to retrieve menu item statistics"
	MessageFailedGetDashboard = "failed to retrieve dashboard"

	ErrInvalidPeriod = NewServiceError("INVALID_PERIOD", "period must be day, month or year", http.StatusBadRequest)
	ErrInvalidDate   = NewServiceError("INVALID_DATE", "date must be formatted as YYYY-MM-DD", http.StatusBadRequest)
)

type (
	RevenueRequest struct {
		Period string `query:"period" validate:"omitempty,oneof=day month year"`
		Date   string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	}

	PackageRevenue struct {
		MealPackageID string          `json:"meal_package_id"`
		Name          string          `json:"name"`
		Count         int             `json:"count"`
		Revenue       decimal.Decimal `json:"revenue"`
	}

	RevenueResponse struct {
		Period            string            `json:"period"`
		StartDate         time.Time         `json:"start_date"`
		EndDate           time.Time         `json:"end_date"`
		TotalRevenue      decimal.Decimal   `json:"total_revenue"`
		TotalPackagesSold int               `json:"total_packages_sold"`
		TotalOrders       int64             `json:"total_orders"`
		Breakdown         []*PackageRevenue `json:"breakdown"`
	}

	MenuItemStatsRequest struct {
		StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
		EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	}

	MenuItemStatsResponse struct {
		StartDate   time.Time    `json:"start_date"`
		EndDate     time.Time    `json:"end_date"`
		TotalOrders int64        `json:"total_orders"`
		Items       []*ItemCount `json:"items"`
	}

	DashboardResponse struct {
		TotalUsers              int64           `json:"total_users"`
		ActivePackages          int64           `json:"active_packages"`
		TodayMenus              int64           `json:"today_menus"`
		TodayOrders             int64           `json:"today_orders"`
		PendingPurchaseRequests int64           `json:"pending_purchase_requests"`
		MonthlyRevenue          decimal.Decimal `json:"monthly_revenue"`
		TopItems                []*ItemCount    `json:"top_items"`
	}
)
