package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Employee struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Role      string       `gorm:"not null;default:'Technician'" json:"role"`
	Phone     string       `gorm:"" json:"phone,omitempty"`
	Email     string       `gorm:"" json:"email,omitempty"`
	Active    bool         `gorm:"not null" json:"active"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Employee) TableName() string { return "employees" }
