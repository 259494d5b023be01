package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	List(ctx context.Context, db *gorm.DB) ([]*Customer, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	InsertPaymentProfile(ctx context.Context, db *gorm.DB, profile *PaymentProfile) error
	ListPaymentProfiles(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]*PaymentProfile, error)
	FindPaymentProfile(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PaymentProfile, error)
	ClearDefaultProfiles(ctx context.Context, db *gorm.DB, customerID snowflake.ID) error
	SetDefaultProfile(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
