package models

import (
	"time"

	"venuepos-backend/utils"

	"gorm.io/gorm"
)

// Staff roles
const (
	RoleServer    = "server"
	RoleBartender = "bartender"
	RoleManager   = "manager"
	RoleAdmin     = "admin"
)

type Staff struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `gorm:"not null" json:"name"`
	Phone    string `json:"phone"`

	Role string `gorm:"type:varchar(20);not null;default:'server'" json:"role"`

	LastLogin *time.Time `json:"lastLogin"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`

	Commissions []StaffCommission `gorm:"foreignKey:StaffID" json:"-"`
}

// Hash password before creating
func (s *Staff) BeforeCreate(tx *gorm.DB) (err error) {
	hashed, err := utils.HashPassword(s.Password)
	if err != nil {
		return err
	}
	s.Password = hashed
	return
}

func ValidRole(role string) bool {
	switch role {
	case RoleServer, RoleBartender, RoleManager, RoleAdmin:
		return true
	}
	return false
}
