// controllers/seating_area.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"venuepos-backend/config"
	"venuepos-backend/models"
	"venuepos-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateSeatingAreaInput defines the expected JSON structure for creating a seating area
type CreateSeatingAreaInput struct {
	Name     string `json:"name" binding:"required"`
	QRToken  string `json:"qrToken"`
	Capacity int    `json:"capacity" binding:"min=0"`
}

// UpdateSeatingAreaInput defines the expected JSON structure for updating a seating area
type UpdateSeatingAreaInput struct {
	Name     *string `json:"name"`
	Capacity *int    `json:"capacity"`
	IsActive *bool   `json:"isActive"`
}

// CreateSeatingArea adds a table/section; the QR token is generated
// when not supplied
func CreateSeatingArea(c *gin.Context) {
	var input CreateSeatingAreaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.QRToken != "" {
		var existing models.SeatingArea
		if err := config.DB.Where("qr_token = ?", input.QRToken).First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "QR token already assigned to another seating area")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	capacity := input.Capacity
	if capacity == 0 {
		capacity = 4
	}

	area := models.SeatingArea{
		Name:     input.Name,
		QRToken:  input.QRToken, // generated in BeforeCreate when empty
		Capacity: capacity,
		IsActive: true,
	}

	if err := config.DB.Create(&area).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create seating area")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, area)
}

// GetSeatingAreas retrieves all seating areas
func GetSeatingAreas(c *gin.Context) {
	var areas []models.SeatingArea
	if err := config.DB.Order("name").Find(&areas).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve seating areas")
		return
	}

	utils.RespondWithData(c, http.StatusOK, areas)
}

// GetSeatingArea retrieves a specific seating area
func GetSeatingArea(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid seating area ID format")
		return
	}

	var area models.SeatingArea
	if err := config.DB.First(&area, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Seating area not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, area)
}

// UpdateSeatingArea updates a seating area
func UpdateSeatingArea(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid seating area ID format")
		return
	}

	var input UpdateSeatingAreaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var area models.SeatingArea
	if err := config.DB.First(&area, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Seating area not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		area.Name = *input.Name
	}
	if input.Capacity != nil {
		area.Capacity = *input.Capacity
	}
	if input.IsActive != nil {
		area.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&area).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update seating area")
		return
	}

	utils.RespondWithData(c, http.StatusOK, area)
}

// DeleteSeatingArea soft deletes a seating area with no open visit
func DeleteSeatingArea(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid seating area ID format")
		return
	}

	var openVisits int64
	config.DB.Model(&models.Visit{}).
		Where("seating_area_id = ? AND status = ?", id, models.VisitStatusOpen).
		Count(&openVisits)
	if openVisits > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Seating area has an open visit")
		return
	}

	result := config.DB.Delete(&models.SeatingArea{}, id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete seating area")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Seating area not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{"message": "Seating area deleted successfully"})
}
