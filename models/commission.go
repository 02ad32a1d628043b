package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CommissionRate is the flat share of each order total owed to the
// staff member who processed it.
var CommissionRate = decimal.NewFromFloat(0.02)

// StaffCommission is one record per completed order. IsPaidOut is
// toggled by the payout workflow, never by the order flow.
type StaffCommission struct {
	gorm.Model
	StaffID  uint   `gorm:"index;not null" json:"staffId"`
	OrderRef string `gorm:"index;not null" json:"orderRef"`

	AmountEarned decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amountEarned"`
	Note         string          `json:"note"`

	IsPaidOut bool       `gorm:"default:false;index" json:"isPaidOut"`
	PaidOutAt *time.Time `json:"paidOutAt"`

	Staff *Staff `gorm:"foreignKey:StaffID" json:"-"`
}
