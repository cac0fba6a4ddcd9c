package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer roles. Only "customer" accounts count toward dashboard totals.
const (
	RoleCustomer  = "customer"
	RoleStaff     = "staff"
	RoleWarehouse = "warehouse"
	RoleAdmin     = "admin"
)

// Customer represents an account that ships packages through the service.
type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name    string    `gorm:"type:text;not null" json:"name"`
	Email   string    `gorm:"type:text;unique;not null" json:"email"`
	Phone   string    `gorm:"type:text" json:"phone"`
	Address string    `gorm:"type:text" json:"address"`
	Role    string    `gorm:"type:text;not null;default:'customer'" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate sets UUID before creating
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
