// Package domain contains persistence models for sites and their
// contracted services.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Site struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID  snowflake.ID `gorm:"not null;index" json:"customer_id"`
	Name        string       `gorm:"not null" json:"name"`
	Address     string       `gorm:"type:text" json:"address,omitempty"`
	POCName     string       `gorm:"column:poc_name" json:"poc_name,omitempty"`
	POCPhone    string       `gorm:"column:poc_phone" json:"poc_phone,omitempty"`
	POCEmail    string       `gorm:"column:poc_email" json:"poc_email,omitempty"`
	ScopeOfWork string       `gorm:"type:text" json:"scope_of_work,omitempty"`
	AreaZone    string       `gorm:"" json:"area_zone,omitempty"`
	CadenceCode string       `gorm:"" json:"cadence_code,omitempty"`
	Notes       string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Site) TableName() string { return "sites" }

// SiteService is a site's subscription to a catalog (or free-text) service
// with its own effective unit price. The price defaults from the catalog at
// creation time and drifts independently afterwards. Rows are retired via
// the active flag, never deleted, because order line items snapshot against
// them.
type SiteService struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	SiteID         snowflake.ID  `gorm:"not null;index;uniqueIndex:ux_site_service_name,priority:1" json:"site_id"`
	Name           string        `gorm:"not null;uniqueIndex:ux_site_service_name,priority:2" json:"name"`
	CatalogID      *snowflake.ID `gorm:"index" json:"catalog_id,omitempty"`
	UnitPriceCents int64         `gorm:"not null;default:0" json:"unit_price_cents"`
	Active         bool          `gorm:"not null" json:"active"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (SiteService) TableName() string { return "site_services" }
