// controllers/staff.go
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

// AddStaffInput defines the expected JSON structure for adding a staff member
type AddStaffInput struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// UpdateStaffInput defines the expected JSON structure for updating a staff member
type UpdateStaffInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// GetStaff lists all staff members
func GetStaff(c *gin.Context) {
	var staff []models.Staff
	if err := config.DB.Order("name").Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}

	utils.RespondWithData(c, http.StatusOK, staff)
}

// AddStaff creates a staff account (admin only)
func AddStaff(c *gin.Context) {
	var input AddStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !models.ValidRole(input.Role) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid role: "+input.Role)
		return
	}

	var existing models.Staff
	result := config.DB.Where("email = ?", input.Email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	staff := models.Staff{
		Email:    input.Email,
		Phone:    input.Phone,
		Name:     input.Name,
		Password: input.Password, // hashed in BeforeCreate hook
		Role:     input.Role,
		IsActive: true,
	}

	if err := config.DB.Create(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create staff member")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, staff)
}

// UpdateStaff updates a staff member
func UpdateStaff(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var staff models.Staff
	if err := config.DB.First(&staff, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		staff.Name = *input.Name
	}
	if input.Phone != nil {
		staff.Phone = *input.Phone
	}
	if input.Role != nil {
		if !models.ValidRole(*input.Role) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid role: "+*input.Role)
			return
		}
		staff.Role = *input.Role
	}
	if input.IsActive != nil {
		staff.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update staff member")
		return
	}

	utils.RespondWithData(c, http.StatusOK, staff)
}

// DeleteStaff soft deletes a staff account; commission history stays
func DeleteStaff(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	result := config.DB.Delete(&models.Staff{}, id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete staff member")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{"message": "Staff member deleted successfully"})
}
