package models

import (
	"gorm.io/gorm"
)

type Collaborator struct {
	Name     string `gorm:"not null"`
	Slug     string `gorm:"uniqueIndex;not null"`
	Email    string
	Position string
	IsActive bool `gorm:"default:true"`

	Documents    []Document    `gorm:"foreignKey:CollaboratorID"`
	BankAccounts []BankAccount `gorm:"foreignKey:CollaboratorID"`

	gorm.Model
}
