// controllers/commission.go
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
)

// PayoutInput defines the expected JSON structure for settling commissions
type PayoutInput struct {
	StaffID uint `json:"staffId" binding:"required"`
}

// GetCommissions lists commission records, filterable by staff and payout state
func GetCommissions(c *gin.Context) {
	query := config.DB.Order("id DESC").Limit(200)

	if raw := c.Query("staffId"); raw != "" {
		staffID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid staffId filter")
			return
		}
		query = query.Where("staff_id = ?", staffID)
	}
	if raw := c.Query("paid"); raw != "" {
		query = query.Where("is_paid_out = ?", raw == "true")
	}

	var commissions []models.StaffCommission
	if err := query.Find(&commissions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve commissions")
		return
	}

	utils.RespondWithData(c, http.StatusOK, commissions)
}

// PayoutCommissions settles every unpaid commission of one staff member
func PayoutCommissions(c *gin.Context) {
	var input PayoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := services.NewPayoutService(config.DB)
	total, count, err := svc.PayoutStaff(input.StaffID)
	if err != nil {
		if errors.Is(err, services.ErrNothingToPayOut) {
			utils.RespondWithError(c, http.StatusBadRequest, "No unpaid commissions for this staff member")
			return
		}
		log.Printf("payout failed for staff %d: %v", input.StaffID, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to process payout")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"staffId":       input.StaffID,
		"totalPaidOut":  total,
		"ordersSettled": count,
	})
}
