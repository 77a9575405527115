package models

import (
	"time"

	"opsdesk-backend/utils"

	"gorm.io/gorm"
)

type User struct {
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null" json:"-"`
	Name     string `gorm:"not null"`
	Phone    string

	Role string `gorm:"type:varchar(20);not null"` // 'admin', 'finance' or 'viewer'

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

// Hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
