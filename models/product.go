package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Category    string `gorm:"default:'General'" json:"category"`

	SalePrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"salePrice"`
	CostPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"costPrice"`

	// Inventory linkage; products without a link never produce ledger entries.
	InventoryItemID *uint `gorm:"index" json:"inventoryItemId"`
	// Smallest-unit depletion per unit sold (e.g. 40 ml per pour).
	DeductionAmount int64 `gorm:"default:0" json:"deductionAmount"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventoryItem,omitempty"`
	Sales         []Sale         `gorm:"foreignKey:ProductID" json:"-"`
}
