package models

import (
	"gorm.io/gorm"
)

type InventoryItem struct {
	gorm.Model
	Name string `gorm:"not null" json:"name"`
	// Unit of the smallest tracked quantity (ml, g, piece).
	Unit string `gorm:"type:varchar(20);not null;default:'piece'" json:"unit"`
	// Size of one purchasable container in smallest units (e.g. 700 ml bottle).
	ContainerSize int64 `gorm:"default:1" json:"containerSize"`

	Products []Product     `gorm:"foreignKey:InventoryItemID" json:"-"`
	Ledger   []StockLedger `gorm:"foreignKey:InventoryItemID" json:"-"`
}

// StockLedger rows are append-only signed movements; the current stock
// level is the running sum, never stored. Sale-driven deductions are
// negative, restocks and corrections positive or negative.
type StockLedger struct {
	gorm.Model
	InventoryItemID uint   `gorm:"index;not null" json:"inventoryItemId"`
	QuantityChange  int64  `gorm:"not null" json:"quantityChange"`
	Reason          string `gorm:"type:varchar(50);not null" json:"reason"`
	OrderRef        string `gorm:"index" json:"orderRef"` // set for sale-driven entries

	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID" json:"-"`
}

// Ledger reasons
const (
	LedgerReasonSale       = "sale"
	LedgerReasonRestock    = "restock"
	LedgerReasonAdjustment = "adjustment"
)
