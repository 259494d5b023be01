package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *ServiceOrder) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ServiceOrder, error)
	ListForSite(ctx context.Context, db *gorm.DB, siteID snowflake.ID) ([]*ServiceOrder, error)
	ListDueBetween(ctx context.Context, db *gorm.DB, start, end time.Time) ([]*ServiceOrder, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	DeleteLineItems(ctx context.Context, db *gorm.DB, orderID snowflake.ID) error
	InsertLineItem(ctx context.Context, db *gorm.DB, item *SOService) error
	ListLineItems(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]LineItem, error)

	InsertAssignment(ctx context.Context, db *gorm.DB, assignment *SOAssignment) error
	FindAssignment(ctx context.Context, db *gorm.DB, orderID, employeeID snowflake.ID) (*SOAssignment, error)
	DeleteAssignment(ctx context.Context, db *gorm.DB, orderID, employeeID snowflake.ID) error
	ListAssignments(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]*SOAssignment, error)
}
