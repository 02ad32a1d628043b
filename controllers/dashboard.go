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

type DashboardOverview struct {
	OpenVisits        int64           `json:"openVisits"`
	OccupiedAreas     int64           `json:"occupiedAreas"`
	TotalSeatingAreas int64           `json:"totalSeatingAreas"`
	TodayRevenue      decimal.Decimal `json:"todayRevenue"`
	TodayOrders       int64           `json:"todayOrders"`
	MonthRevenue      decimal.Decimal `json:"monthRevenue"`
	TotalClients      int64           `json:"totalClients"`
	UnpaidCommissions decimal.Decimal `json:"unpaidCommissions"`
	LowStockItems     []LowStockItem  `json:"lowStockItems"`
}

type LowStockItem struct {
	InventoryItemID uint   `json:"inventoryItemId"`
	Name            string `json:"name"`
	Unit            string `json:"unit"`
	StockLevel      int64  `json:"stockLevel"`
}

func GetDashboardOverview(c *gin.Context) {
	now := time.Now()
	startOfDay := utils.BeginningOfDay(now)
	startOfMonth := utils.BeginningOfMonth(now)

	var overview DashboardOverview

	config.DB.Model(&models.Visit{}).
		Where("status = ?", models.VisitStatusOpen).
		Count(&overview.OpenVisits)

	config.DB.Model(&models.Visit{}).
		Where("status = ?", models.VisitStatusOpen).
		Distinct("seating_area_id").
		Count(&overview.OccupiedAreas)

	config.DB.Model(&models.SeatingArea{}).
		Where("is_active = ?", true).
		Count(&overview.TotalSeatingAreas)

	config.DB.Model(&models.Sale{}).
		Where("created_at >= ?", startOfDay).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&overview.TodayRevenue)

	config.DB.Model(&models.Sale{}).
		Where("created_at >= ?", startOfDay).
		Distinct("order_ref").
		Count(&overview.TodayOrders)

	config.DB.Model(&models.Sale{}).
		Where("created_at >= ?", startOfMonth).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&overview.MonthRevenue)

	config.DB.Model(&models.Client{}).Count(&overview.TotalClients)

	config.DB.Model(&models.StaffCommission{}).
		Where("is_paid_out = ?", false).
		Select("COALESCE(SUM(amount_earned), 0)").
		Scan(&overview.UnpaidCommissions)

	// Items whose ledger sum dropped below one container
	rows, err := config.DB.Raw(`
		SELECT i.id, i.name, i.unit, COALESCE(SUM(l.quantity_change), 0) AS stock_level
		FROM inventory_items i
		LEFT JOIN stock_ledgers l ON l.inventory_item_id = i.id AND l.deleted_at IS NULL
		WHERE i.deleted_at IS NULL
		GROUP BY i.id, i.name, i.unit, i.container_size
		HAVING COALESCE(SUM(l.quantity_change), 0) < i.container_size
		ORDER BY stock_level ASC
		LIMIT 10
	`).Rows()
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var item LowStockItem
			if err := rows.Scan(&item.InventoryItemID, &item.Name, &item.Unit, &item.StockLevel); err == nil {
				overview.LowStockItems = append(overview.LowStockItems, item)
			}
		}
	}

	utils.RespondWithData(c, http.StatusOK, overview)
}
