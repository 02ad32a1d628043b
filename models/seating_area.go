package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeatingArea is a physical table or section, addressed by its QR token.
type SeatingArea struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	QRToken  string `gorm:"uniqueIndex;not null" json:"qrToken"`
	Capacity int    `gorm:"default:4" json:"capacity"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	Visits []Visit `gorm:"foreignKey:SeatingAreaID" json:"-"`
}

// Assign a QR token before creating if none was supplied
func (a *SeatingArea) BeforeCreate(tx *gorm.DB) (err error) {
	if a.QRToken == "" {
		a.QRToken = uuid.NewString()
	}
	return
}
