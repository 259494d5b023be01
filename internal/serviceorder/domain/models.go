// Package domain contains persistence models for service orders and their
// price-snapshot line items.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ServiceOrder is one scheduled occurrence of work at a site.
type ServiceOrder struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	SiteID        snowflake.ID      `gorm:"not null;index" json:"site_id"`
	Title         string            `gorm:"" json:"title,omitempty"`
	Description   string            `gorm:"type:text" json:"description,omitempty"`
	ScheduledDate *time.Time        `gorm:"index" json:"scheduled_date,omitempty"`
	Completed     bool              `gorm:"not null;default:false" json:"completed"`
	Invoiced      bool              `gorm:"not null;default:false" json:"invoiced"`
	Notes         string            `gorm:"type:text" json:"notes,omitempty"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (ServiceOrder) TableName() string { return "service_orders" }

// SOService is an immutable-after-creation price snapshot linking an order
// to a contracted service. UnitPriceCents is the price at the moment the
// order was seeded; later edits to the contracted service or catalog never
// reach it.
type SOService struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	ServiceOrderID snowflake.ID `gorm:"not null;index;uniqueIndex:ux_so_service_link,priority:1" json:"service_order_id"`
	SiteServiceID  snowflake.ID `gorm:"not null;index;uniqueIndex:ux_so_service_link,priority:2" json:"site_service_id"`
	UnitPriceCents int64        `gorm:"not null;default:0" json:"unit_price_cents"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (SOService) TableName() string { return "so_services" }

// SOAssignment links an employee to an order. Unique per pair; assignment
// is idempotent.
type SOAssignment struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	ServiceOrderID snowflake.ID `gorm:"not null;index;uniqueIndex:ux_so_employee,priority:1" json:"service_order_id"`
	EmployeeID     snowflake.ID `gorm:"not null;index;uniqueIndex:ux_so_employee,priority:2" json:"employee_id"`
	AssignedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"assigned_at"`
}

// TableName sets the database table name.
func (SOAssignment) TableName() string { return "so_assignments" }

// LineItem is the read view of a snapshot line joined with the contracted
// service it points at.
type LineItem struct {
	ID             snowflake.ID `json:"id"`
	SiteServiceID  snowflake.ID `json:"site_service_id"`
	Name           string       `json:"name"`
	UnitPriceCents int64        `json:"unit_price_cents"`
}
