// controllers/visit.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"venuepos-backend/config"
	"venuepos-backend/models"
	"venuepos-backend/services"
	"venuepos-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetActiveVisits lists every open visit with client and seating area attached
func GetActiveVisits(c *gin.Context) {
	var visits []models.Visit
	if err := config.DB.Preload("Client").Preload("SeatingArea").
		Where("status = ?", models.VisitStatusOpen).
		Order("entry_time").
		Find(&visits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve visits")
		return
	}

	utils.RespondWithData(c, http.StatusOK, visits)
}

// GetVisit retrieves one visit with its sales
func GetVisit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid visit ID format")
		return
	}

	var visit models.Visit
	if err := config.DB.Preload("Client").Preload("SeatingArea").Preload("Sales").
		First(&visit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, visit)
}

// CloseVisit ends a stay: sets status closed and stamps the exit time.
// Closing an already closed visit is a no-op.
func CloseVisit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid visit ID format")
		return
	}

	svc := services.NewOrderService(config.DB)
	visit, err := svc.CloseVisit(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to close visit")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, visit)
}
