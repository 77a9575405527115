package models

import (
	"gorm.io/gorm"
)

type Client struct {
	Name         string `gorm:"not null"`
	Slug         string `gorm:"uniqueIndex;not null"`
	CNPJ         string
	Area         string
	OfficeID     *uint `gorm:"index"`
	Location     string
	ContactEmail string
	Phone        string
	XMLEmail     string
	Description  string
	Avatar       string

	Branches  []Branch   `gorm:"foreignKey:ClientID"`
	Documents []Document `gorm:"foreignKey:ClientID"`
	Bills     []Bill     `gorm:"foreignKey:ClientID"`
	Projects  []Project  `gorm:"foreignKey:ClientID"`

	gorm.Model
}

// Branch is a client subsidiary. A branch can be the payer of a bill.
type Branch struct {
	ClientID uint `gorm:"index;not null"`

	Name     string `gorm:"not null"`
	CNPJ     string
	Location string

	gorm.Model
}
