package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Manifest status constants
const (
	ManifestStatusOpen     = "open"
	ManifestStatusClosed   = "closed"
	ManifestStatusDeparted = "departed"
)

// Manifest groups packages leaving a branch on one carrier run.
type Manifest struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ManifestNumber string    `gorm:"type:text;unique;not null" json:"manifest_number"`
	Branch         string    `gorm:"type:text;not null" json:"branch"`
	Carrier        string    `gorm:"type:text" json:"carrier"`
	Status         string    `gorm:"type:text;not null;default:'open'" json:"status"`
	Notes          string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Manifest) TableName() string {
	return "manifests"
}

// BeforeCreate sets UUID before creating
func (m *Manifest) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
