package models

import (
	"gorm.io/gorm"
)

type Office struct {
	Name        string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Location    string
	Description string

	BankAccounts []BankAccount `gorm:"foreignKey:OfficeID"`
	Clients      []Client      `gorm:"foreignKey:OfficeID"`
	Documents    []Document    `gorm:"foreignKey:OfficeID"`

	gorm.Model
}

// BankAccount belongs to an office or a collaborator, never both.
type BankAccount struct {
	OfficeID       *uint `gorm:"index"`
	CollaboratorID *uint `gorm:"index"`

	Bank   string `gorm:"not null"`
	Agency string
	Number string
	PixKey string

	gorm.Model
}
