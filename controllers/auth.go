package controllers

import (
	"errors"
	"net/http"
	"time"

	"venuepos-backend/config"
	"venuepos-backend/models"
	"venuepos-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a staff account. The first account becomes admin;
// afterwards only admins may create further accounts (enforced in routes).
func Register(c *gin.Context) {
	var input RegisterInput

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
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create staff account")
		return
	}

	token, err := utils.GenerateToken(staff.ID, staff.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, gin.H{
		"token": token,
		"staff": gin.H{
			"id":    staff.ID,
			"email": staff.Email,
			"name":  staff.Name,
			"role":  staff.Role,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var staff models.Staff
	if err := config.DB.Where("email = ? AND is_active = ?", input.Email, true).
		First(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !utils.CheckPasswordHash(input.Password, staff.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	config.DB.Model(&staff).Update("last_login", now)

	token, err := utils.GenerateToken(staff.ID, staff.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"token": token,
		"staff": gin.H{
			"id":    staff.ID,
			"email": staff.Email,
			"name":  staff.Name,
			"role":  staff.Role,
		},
	})
}

// Me returns the authenticated staff member
func Me(c *gin.Context) {
	staffID, ok := utils.StaffIDFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Staff ID not found in context")
		return
	}

	var staff models.Staff
	if err := config.DB.First(&staff, staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, staff)
}
