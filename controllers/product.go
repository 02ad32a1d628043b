// controllers/product.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"venuepos-backend/config"
	"venuepos-backend/models"
	"venuepos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateProductInput defines the expected JSON structure for creating a product
type CreateProductInput struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	SalePrice       decimal.Decimal `json:"salePrice" binding:"required"`
	CostPrice       decimal.Decimal `json:"costPrice"`
	InventoryItemID *uint           `json:"inventoryItemId"`
	DeductionAmount int64           `json:"deductionAmount" binding:"min=0"`
}

// UpdateProductInput defines the expected JSON structure for updating a product
type UpdateProductInput struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Category        *string          `json:"category"`
	SalePrice       *decimal.Decimal `json:"salePrice"`
	CostPrice       *decimal.Decimal `json:"costPrice"`
	InventoryItemID *uint            `json:"inventoryItemId"`
	DeductionAmount *int64           `json:"deductionAmount"`
	IsActive        *bool            `json:"isActive"`
}

// CreateProduct adds a catalog entry
func CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.SalePrice.IsNegative() || input.CostPrice.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Prices must not be negative")
		return
	}

	if input.InventoryItemID != nil {
		var item models.InventoryItem
		if err := config.DB.First(&item, *input.InventoryItemID).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Linked inventory item not found")
			return
		}
	}

	category := input.Category
	if category == "" {
		category = "General"
	}

	product := models.Product{
		Name:            input.Name,
		Description:     input.Description,
		Category:        category,
		SalePrice:       input.SalePrice,
		CostPrice:       input.CostPrice,
		InventoryItemID: input.InventoryItemID,
		DeductionAmount: input.DeductionAmount,
		IsActive:        true,
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, product)
}

// GetProducts retrieves the catalog
func GetProducts(c *gin.Context) {
	var products []models.Product
	query := config.DB.Order("category, name")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	utils.RespondWithData(c, http.StatusOK, products)
}

// GetProduct retrieves a specific product
func GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var product models.Product
	if err := config.DB.Preload("InventoryItem").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, product)
}

// UpdateProduct updates a catalog entry. Existing sales keep their
// snapshotted price_at_sale regardless.
func UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.SalePrice != nil {
		if input.SalePrice.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Prices must not be negative")
			return
		}
		product.SalePrice = *input.SalePrice
	}
	if input.CostPrice != nil {
		if input.CostPrice.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Prices must not be negative")
			return
		}
		product.CostPrice = *input.CostPrice
	}
	if input.InventoryItemID != nil {
		var item models.InventoryItem
		if err := config.DB.First(&item, *input.InventoryItemID).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Linked inventory item not found")
			return
		}
		product.InventoryItemID = input.InventoryItemID
	}
	if input.DeductionAmount != nil {
		product.DeductionAmount = *input.DeductionAmount
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	utils.RespondWithData(c, http.StatusOK, product)
}

// DeleteProduct soft deletes a product
func DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	result := config.DB.Delete(&models.Product{}, id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
