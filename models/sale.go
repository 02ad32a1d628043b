package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is one immutable line item of an order. PriceAtSale is a snapshot
// taken at order time and is decoupled from later product price changes.
// All rows of one order share an OrderRef.
type Sale struct {
	gorm.Model
	VisitID   uint `gorm:"index;not null" json:"visitId"`
	ProductID uint `gorm:"index;not null" json:"productId"`
	StaffID   uint `gorm:"index;not null" json:"staffId"`

	Quantity    int             `gorm:"not null" json:"quantity"`
	PriceAtSale decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"priceAtSale"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`

	OrderRef string `gorm:"index;not null" json:"orderRef"`

	Visit   *Visit   `gorm:"foreignKey:VisitID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Staff   *Staff   `gorm:"foreignKey:StaffID" json:"-"`
}
