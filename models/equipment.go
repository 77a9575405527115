package models

import (
	"gorm.io/gorm"
)

// Equipment is an inventory asset assigned to an office.
type Equipment struct {
	OfficeID *uint `gorm:"index"`

	Name     string `gorm:"not null"`
	Category string `gorm:"default:'General'"`
	Serial   string
	Notes    string

	gorm.Model
}
