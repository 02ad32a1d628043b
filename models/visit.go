package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Visit statuses. Status is the authoritative "is active" signal;
// ExitTime is data, queries must not branch on its nullness.
const (
	VisitStatusOpen   = "open"
	VisitStatusClosed = "closed"
)

// Visit is one continuous stay of a client at a seating area.
// At most one open visit may exist per seating area; enforced by a
// partial unique index created in config.Migrate.
type Visit struct {
	gorm.Model
	ClientID      *uint `gorm:"index" json:"clientId"` // backfilled for walk-ins resolved late
	SeatingAreaID uint  `gorm:"index;not null" json:"seatingAreaId"`

	EntryTime time.Time  `gorm:"not null" json:"entryTime"`
	ExitTime  *time.Time `json:"exitTime"`
	Status    string     `gorm:"type:varchar(10);not null;default:'open'" json:"status"`

	CreditLimit decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"creditLimit"`
	CreditUsed  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"creditUsed"`

	Client      *Client      `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	SeatingArea *SeatingArea `gorm:"foreignKey:SeatingAreaID" json:"seatingArea,omitempty"`
	Sales       []Sale       `gorm:"foreignKey:VisitID" json:"-"`
}
