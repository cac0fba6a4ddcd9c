package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment status constants
const (
	PaymentStatusCreated    = "created"
	PaymentStatusInitiated  = "initiated"
	PaymentStatusPending    = "pending"
	PaymentStatusAuthorized = "authorized"
	PaymentStatusCaptured   = "captured"
	PaymentStatusCompleted  = "completed"
	PaymentStatusCancelled  = "cancelled"
)

// Payment represents a bill raised against a customer, usually for one package.
type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InvoiceNumber string     `gorm:"type:text;unique;not null" json:"invoice_number"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_payments_customer" json:"customer_id"`
	PackageID     *uuid.UUID `gorm:"type:uuid;index:idx_payments_package" json:"package_id,omitempty"`

	Amount float64 `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	Status string  `gorm:"type:text;not null;default:'created';index:idx_payments_status" json:"status"`

	Method    string     `gorm:"type:text" json:"method"`
	Reference string     `gorm:"type:text" json:"reference"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_payments_created" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationship
	Customer Customer `gorm:"foreignKey:CustomerID;references:ID" json:"-"`
}

// TableName specifies the table name
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate sets UUID before creating
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
