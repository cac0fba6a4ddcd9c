package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Package status constants
const (
	PackageStatusReceived       = "received"
	PackageStatusInProcessing   = "in_processing"
	PackageStatusReadyToShip    = "ready_to_ship"
	PackageStatusShipped        = "shipped"
	PackageStatusInTransit      = "in_transit"
	PackageStatusDelivered      = "delivered"
	PackageStatusAtCustoms      = "at_customs"
	PackageStatusFailedDelivery = "failed_delivery"
	PackageStatusReturned       = "returned"
)

// Package represents a shipment moving through the forwarding pipeline.
type Package struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TrackingNumber string    `gorm:"type:text;unique;not null" json:"tracking_number"`
	CustomerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_packages_customer" json:"customer_id"`

	Status string `gorm:"type:text;not null;default:'received';index:idx_packages_status" json:"status"`
	Branch string `gorm:"type:text" json:"branch"`

	Description   string         `gorm:"type:text" json:"description"`
	Contents      pq.StringArray `gorm:"type:text[]" json:"contents,omitempty"`
	WeightKg      float64        `gorm:"type:decimal(10,3);default:0" json:"weight_kg"`
	DeclaredValue float64        `gorm:"type:decimal(12,2);default:0" json:"declared_value"`

	// Free-form customs declaration (HS codes, origin country, duty notes)
	CustomsData datatypes.JSON `gorm:"type:jsonb" json:"customs_data,omitempty"`

	ManifestID  *uuid.UUID `gorm:"type:uuid;index:idx_packages_manifest" json:"manifest_id,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_packages_created" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationship
	Customer Customer `gorm:"foreignKey:CustomerID;references:ID" json:"-"`
}

// TableName specifies the table name
func (Package) TableName() string {
	return "packages"
}

// BeforeCreate sets UUID before creating
func (p *Package) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ValidPackageStatus reports whether raw is a known package status.
func ValidPackageStatus(raw string) bool {
	switch raw {
	case PackageStatusReceived, PackageStatusInProcessing, PackageStatusReadyToShip,
		PackageStatusShipped, PackageStatusInTransit, PackageStatusDelivered,
		PackageStatusAtCustoms, PackageStatusFailedDelivery, PackageStatusReturned:
		return true
	}
	return false
}
