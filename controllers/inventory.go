// controllers/inventory.go
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

// CreateInventoryItemInput defines the expected JSON structure for creating an inventory item
type CreateInventoryItemInput struct {
	Name          string `json:"name" binding:"required"`
	Unit          string `json:"unit"`
	ContainerSize int64  `json:"containerSize" binding:"min=0"`
}

// AdjustStockInput defines the expected JSON structure for a manual stock movement
type AdjustStockInput struct {
	QuantityChange int64  `json:"quantityChange" binding:"required"`
	Reason         string `json:"reason"`
}

// CreateInventoryItem adds a tracked inventory item
func CreateInventoryItem(c *gin.Context) {
	var input CreateInventoryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	unit := input.Unit
	if unit == "" {
		unit = "piece"
	}
	containerSize := input.ContainerSize
	if containerSize == 0 {
		containerSize = 1
	}

	item := models.InventoryItem{
		Name:          input.Name,
		Unit:          unit,
		ContainerSize: containerSize,
	}

	if err := config.DB.Create(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create inventory item")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, item)
}

// GetInventoryItems lists all inventory items
func GetInventoryItems(c *gin.Context) {
	var items []models.InventoryItem
	if err := config.DB.Order("name").Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve inventory items")
		return
	}

	utils.RespondWithData(c, http.StatusOK, items)
}

// GetStockLevel returns the derived stock level of one item: the running
// sum of its ledger, never a stored figure
func GetStockLevel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid inventory item ID format")
		return
	}

	var item models.InventoryItem
	if err := config.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var level int64
	if err := config.DB.Model(&models.StockLedger{}).
		Where("inventory_item_id = ?", id).
		Select("COALESCE(SUM(quantity_change), 0)").
		Scan(&level).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute stock level")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"inventoryItemId": item.ID,
		"name":            item.Name,
		"unit":            item.Unit,
		"stockLevel":      level,
	})
}

// GetStockLedger lists the movements of one item, newest first
func GetStockLedger(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid inventory item ID format")
		return
	}

	var entries []models.StockLedger
	if err := config.DB.Where("inventory_item_id = ?", id).
		Order("id DESC").
		Limit(200).
		Find(&entries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stock ledger")
		return
	}

	utils.RespondWithData(c, http.StatusOK, entries)
}

// AdjustStock appends a manual signed movement (restock or correction).
// Ledger rows are never updated or deleted.
func AdjustStock(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid inventory item ID format")
		return
	}

	var input AdjustStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var item models.InventoryItem
	if err := config.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	reason := input.Reason
	if reason == "" {
		if input.QuantityChange > 0 {
			reason = models.LedgerReasonRestock
		} else {
			reason = models.LedgerReasonAdjustment
		}
	}

	entry := models.StockLedger{
		InventoryItemID: item.ID,
		QuantityChange:  input.QuantityChange,
		Reason:          reason,
	}

	if err := config.DB.Create(&entry).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record stock movement")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, entry)
}
