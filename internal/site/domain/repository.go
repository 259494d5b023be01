package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, site *Site) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Site, error)
	ListForCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]*Site, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	InsertService(ctx context.Context, db *gorm.DB, service *SiteService) error
	FindServiceByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*SiteService, error)
	ListServices(ctx context.Context, db *gorm.DB, siteID snowflake.ID) ([]*SiteService, error)
	UpdateServiceFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error

	// LastScheduled returns the max scheduled date over the site's orders,
	// or nil when the site has none.
	LastScheduled(ctx context.Context, db *gorm.DB, siteID snowflake.ID) (*time.Time, error)
}
