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

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name        string  `json:"name" binding:"required"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       string  `json:"email"`
	Notes       string  `json:"notes"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email"`
	Notes       *string `json:"notes"`
	Status      *string `json:"status"`
}

// CreateClient registers a named client (walk-ins are created by the
// order flow instead)
func CreateClient(c *gin.Context) {
	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.PhoneNumber != nil {
		if !utils.ValidatePhone(*input.PhoneNumber) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		var existing models.Client
		if err := config.DB.Where("phone_number = ?", *input.PhoneNumber).First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Phone number already registered to another client")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	client := models.Client{
		Name:        &input.Name,
		PhoneNumber: input.PhoneNumber,
		Email:       input.Email,
		Notes:       input.Notes,
		Status:      models.ClientStatusNew,
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, client)
}

// GetClients retrieves all clients
func GetClients(c *gin.Context) {
	var clients []models.Client
	query := config.DB.Order("id DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	utils.RespondWithData(c, http.StatusOK, clients)
}

// GetClient retrieves a specific client with visit history
func GetClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.Client
	if err := config.DB.Preload("Visits").First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, client)
}

// UpdateClient updates an existing client
func UpdateClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		client.Name = input.Name
	}
	if input.PhoneNumber != nil {
		if !utils.ValidatePhone(*input.PhoneNumber) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		var existing models.Client
		if err := config.DB.Where("phone_number = ? AND id <> ?", *input.PhoneNumber, client.ID).
			First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Phone number already registered to another client")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		client.PhoneNumber = input.PhoneNumber
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}
	if input.Status != nil {
		client.Status = *input.Status
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	utils.RespondWithData(c, http.StatusOK, client)
}

// DeactivateClient marks a client inactive; client rows are never deleted
// because sales history hangs off them
func DeactivateClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	result := config.DB.Model(&models.Client{}).Where("id = ?", id).
		Update("status", models.ClientStatusInactive)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate client")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{"message": "Client deactivated"})
}
