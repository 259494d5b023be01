package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *ServiceCatalog) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ServiceCatalog, error)
	List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*ServiceCatalog, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
}
