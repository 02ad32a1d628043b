// controllers/order.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"venuepos-backend/config"
	"venuepos-backend/models"
	"venuepos-backend/services"
	"venuepos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateOrderInput defines the expected JSON structure for placing an order
type CreateOrderInput struct {
	SeatingAreaID uint                `json:"seatingAreaId" binding:"required"`
	Cart          []services.CartItem `json:"cart" binding:"required,min=1,dive"`
}

// CreateOrder places one order against a seating area: resolves the open
// visit (creating a walk-in client when the area is empty), snapshots
// prices, and commits sales, client stats, commission and stock ledger
// entries atomically.
func CreateOrder(c *gin.Context) {
	staffID, ok := utils.StaffIDFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Staff ID not found in context")
		return
	}

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := services.NewOrderService(config.DB)
	result, err := svc.CreateOrder(staffID, input.SeatingAreaID, input.Cart)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			utils.RespondWithError(c, http.StatusBadRequest, "Cart must contain at least one item")
		case errors.Is(err, services.ErrSeatingAreaNotFound):
			utils.RespondWithError(c, http.StatusBadRequest, "Seating area not found")
		case errors.Is(err, services.ErrProductNotFound):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrVisitConflict):
			utils.RespondWithError(c, http.StatusConflict, "Another check-in is already open for this seating area")
		default:
			log.Printf("order creation failed: %v", err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		}
		return
	}

	config.CountOrderCreated()

	utils.RespondWithData(c, http.StatusCreated, result)
}

// OrderSummary groups the sale rows sharing one order reference
type OrderSummary struct {
	OrderRef string          `json:"orderRef"`
	VisitID  uint            `json:"visitId"`
	StaffID  uint            `json:"staffId"`
	Total    decimal.Decimal `json:"total"`
	Sales    []models.Sale   `json:"sales"`
}

// GetOrders lists recent sales grouped per order, newest first
func GetOrders(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	var sales []models.Sale
	if err := config.DB.Preload("Product").
		Order("id DESC").
		Limit(limit).
		Find(&sales).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	byRef := make(map[string]*OrderSummary)
	order := make([]string, 0)
	for _, sale := range sales {
		summary, ok := byRef[sale.OrderRef]
		if !ok {
			summary = &OrderSummary{
				OrderRef: sale.OrderRef,
				VisitID:  sale.VisitID,
				StaffID:  sale.StaffID,
				Total:    decimal.Zero,
			}
			byRef[sale.OrderRef] = summary
			order = append(order, sale.OrderRef)
		}
		summary.Total = summary.Total.Add(sale.TotalAmount)
		summary.Sales = append(summary.Sales, sale)
	}

	summaries := make([]*OrderSummary, 0, len(order))
	for _, ref := range order {
		summaries = append(summaries, byRef[ref])
	}

	utils.RespondWithData(c, http.StatusOK, summaries)
}
