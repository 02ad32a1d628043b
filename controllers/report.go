// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"venuepos-backend/config"
	"venuepos-backend/models"
	"venuepos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue  decimal.Decimal  `json:"currentMonthRevenue"`
	PreviousMonthRevenue decimal.Decimal  `json:"previousMonthRevenue"`
	CurrentYearRevenue   decimal.Decimal  `json:"currentYearRevenue"`
	TopProducts          []ProductSummary `json:"topProducts"`
	TopClients           []ClientSummary  `json:"topClients"`
	TopStaff             []StaffSummary   `json:"topStaff"`
	QuickStats           QuickStatistics  `json:"quickStats"`
}

type ProductSummary struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type ClientSummary struct {
	Name  string          `json:"name"`
	Spent decimal.Decimal `json:"spent"`
}

type StaffSummary struct {
	Name       string          `json:"name"`
	Orders     int64           `json:"orders"`
	Commission decimal.Decimal `json:"commission"`
}

type QuickStatistics struct {
	TotalClients  int64           `json:"totalClients"`
	TotalSales    int64           `json:"totalSales"`
	TotalOrders   int64           `json:"totalOrders"`
	AvgOrderValue decimal.Decimal `json:"avgOrderValue"`
}

// GetReportAnalytics returns the complete analytics summary
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	now := time.Now()
	startOfMonth := utils.BeginningOfMonth(now)
	startOfPrevMonth := utils.BeginningOfMonth(startOfMonth.AddDate(0, 0, -1))
	startOfYear := utils.BeginningOfYear(now)

	var summary AnalyticsSummary

	config.DB.Model(&models.Sale{}).
		Where("created_at >= ?", startOfMonth).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&summary.CurrentMonthRevenue)

	config.DB.Model(&models.Sale{}).
		Where("created_at >= ? AND created_at < ?", startOfPrevMonth, startOfMonth).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&summary.PreviousMonthRevenue)

	config.DB.Model(&models.Sale{}).
		Where("created_at >= ?", startOfYear).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&summary.CurrentYearRevenue)

	config.DB.Raw(`
		SELECT p.name, SUM(s.quantity) AS quantity, SUM(s.total_amount) AS revenue
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE s.deleted_at IS NULL
		GROUP BY p.name
		ORDER BY revenue DESC
		LIMIT 5
	`).Scan(&summary.TopProducts)

	config.DB.Raw(`
		SELECT COALESCE(c.name, 'Walk-in') AS name, c.lifetime_spend AS spent
		FROM clients c
		WHERE c.deleted_at IS NULL
		ORDER BY c.lifetime_spend DESC
		LIMIT 5
	`).Scan(&summary.TopClients)

	config.DB.Raw(`
		SELECT st.name, COUNT(sc.id) AS orders, COALESCE(SUM(sc.amount_earned), 0) AS commission
		FROM staff_commissions sc
		JOIN staffs st ON st.id = sc.staff_id
		WHERE sc.deleted_at IS NULL
		GROUP BY st.name
		ORDER BY commission DESC
		LIMIT 5
	`).Scan(&summary.TopStaff)

	config.DB.Model(&models.Client{}).Count(&summary.QuickStats.TotalClients)
	config.DB.Model(&models.Sale{}).Count(&summary.QuickStats.TotalSales)
	config.DB.Model(&models.Sale{}).Distinct("order_ref").Count(&summary.QuickStats.TotalOrders)

	if summary.QuickStats.TotalOrders > 0 {
		var totalRevenue decimal.Decimal
		config.DB.Model(&models.Sale{}).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&totalRevenue)
		summary.QuickStats.AvgOrderValue = totalRevenue.
			Div(decimal.NewFromInt(summary.QuickStats.TotalOrders)).
			Round(2)
	}

	utils.RespondWithData(c, http.StatusOK, summary)
}
