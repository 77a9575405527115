package models

import (
	"gorm.io/gorm"
)

// Project situations
const (
	ProjectWorking  = "working"
	ProjectArchived = "archived"
)

type Project struct {
	ClientID uint `gorm:"index;not null"`

	Name        string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Situation   string `gorm:"type:varchar(20);default:'working'"`
	Status      string
	Description string

	gorm.Model
}
