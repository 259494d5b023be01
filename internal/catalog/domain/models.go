// Package domain contains persistence models for the service catalog.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ServiceCatalog is a globally shared, named service definition with a
// default price in cents. Deactivation is soft: rows stay behind the
// active flag while site services reference them.
type ServiceCatalog struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	Name              string       `gorm:"not null;uniqueIndex" json:"name"`
	DefaultPriceCents int64        `gorm:"not null;default:0" json:"default_price_cents"`
	Description       string       `gorm:"type:text" json:"description,omitempty"`
	Active            bool         `gorm:"not null" json:"active"`
	CreatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (ServiceCatalog) TableName() string { return "service_catalog" }
