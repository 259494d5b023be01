package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Customer struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"not null;uniqueIndex" json:"name"`
	Phone     string            `gorm:"" json:"phone,omitempty"`
	Email     string            `gorm:"" json:"email,omitempty"`
	Notes     string            `gorm:"type:text" json:"notes,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

// PaymentMethod is display-only bookkeeping; no charge is ever made.
type PaymentMethod string

const (
	PaymentMethodACH   PaymentMethod = "ach"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodCheck PaymentMethod = "check"
	PaymentMethodOther PaymentMethod = "other"
)

type PaymentProfile struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	CustomerID snowflake.ID  `gorm:"not null;index" json:"customer_id"`
	Method     PaymentMethod `gorm:"type:text;not null;default:'other'" json:"method"`

	ACHRouting string `gorm:"" json:"ach_routing,omitempty"`
	ACHAccount string `gorm:"" json:"ach_account,omitempty"`

	CardBrand    string `gorm:"" json:"card_brand,omitempty"`
	CardLast4    string `gorm:"" json:"card_last4,omitempty"`
	CardName     string `gorm:"" json:"card_name,omitempty"`
	CardExpMonth int    `gorm:"not null;default:0" json:"card_exp_month,omitempty"`
	CardExpYear  int    `gorm:"not null;default:0" json:"card_exp_year,omitempty"`

	BillStreet       string `gorm:"type:text" json:"bill_street,omitempty"`
	BillCityStateZip string `gorm:"" json:"bill_city_state_zip,omitempty"`

	IsDefault bool      `gorm:"not null" json:"is_default"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (PaymentProfile) TableName() string { return "payment_profiles" }
