package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Client lifecycle statuses
const (
	ClientStatusNew       = "new"
	ClientStatusReturning = "returning"
	ClientStatusVIP       = "vip"
	ClientStatusInactive  = "inactive"
)

type Client struct {
	gorm.Model
	Name        *string `json:"name"` // auto-generated for anonymous walk-ins
	PhoneNumber *string `gorm:"uniqueIndex" json:"phoneNumber"`
	Email       string  `json:"email"`
	Notes       string  `json:"notes"`

	LifetimeSpend  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"lifetimeSpend"`
	LastVisitSpend decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"lastVisitSpend"`
	LastVisitDate  *time.Time      `json:"lastVisitDate"`

	Status string `gorm:"type:varchar(20);not null;default:'new'" json:"status"`

	Visits []Visit `gorm:"foreignKey:ClientID" json:"-"`
}
