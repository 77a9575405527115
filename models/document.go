package models

import (
	"time"

	"gorm.io/gorm"
)

// Document belongs to exactly one owner: a client, an office or a
// collaborator. Expired is derived from Expiration and kept current by the
// sweeper service.
type Document struct {
	ClientID       *uint `gorm:"index"`
	OfficeID       *uint `gorm:"index"`
	CollaboratorID *uint `gorm:"index"`

	UploadedByUserID uint `gorm:"index;not null"`

	Name        string `gorm:"not null"`
	Category    string
	Description string
	Expiration  *time.Time
	Expired     bool   `gorm:"default:false"`
	File        string `gorm:"not null"`

	gorm.Model
}
