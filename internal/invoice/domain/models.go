// Package domain contains persistence models and projections for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Invoice is the persisted record for a service order, at most one per
// order. Amounts are integer cents; dollars exist only at display time.
type Invoice struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	ServiceOrderID snowflake.ID `gorm:"not null;uniqueIndex" json:"service_order_id"`
	InvoiceNo      string       `gorm:"not null" json:"invoice_no"`
	InvoiceDate    *time.Time   `gorm:"" json:"invoice_date,omitempty"`
	DueDate        *time.Time   `gorm:"" json:"due_date,omitempty"`
	SubtotalCents  int64        `gorm:"not null;default:0" json:"subtotal_cents"`
	TaxCents       int64        `gorm:"not null;default:0" json:"tax_cents"`
	TotalCents     int64        `gorm:"not null;default:0" json:"total_cents"`
	Paid           bool         `gorm:"not null;default:false" json:"paid"`
	Notes          string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// SeedLineItem is one priced line in an invoice seed.
type SeedLineItem struct {
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// InvoiceSeed is the read-only projection a document renderer consumes.
// Building one never mutates the order; invoice number and subtotal are
// deterministic for an unchanged order.
type InvoiceSeed struct {
	InvoiceNo     string         `json:"invoice_no"`
	InvoiceDate   time.Time      `json:"invoice_date"`
	DueDate       time.Time      `json:"due_date"`
	Notes         string         `json:"notes,omitempty"`
	LineItems     []SeedLineItem `json:"line_items"`
	SubtotalCents int64          `json:"subtotal_cents"`

	BillToName    string `json:"bill_to_name"`
	BillToAddr    string `json:"bill_to_addr"`
	BillToContact string `json:"bill_to_contact"`

	OrderTitle       string `json:"order_title"`
	OrderDescription string `json:"order_description"`
}
