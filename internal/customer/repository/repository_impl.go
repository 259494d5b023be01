package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/customer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, phone, email, notes, metadata, created_at, updated_at
		 FROM customers WHERE id = ?`,
		id,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Customer, error) {
	var customers []*domain.Customer
	err := db.WithContext(ctx).
		Model(&domain.Customer{}).
		Order("name").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Customer{}).Error
}

func (r *repo) InsertPaymentProfile(ctx context.Context, db *gorm.DB, profile *domain.PaymentProfile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *repo) ListPaymentProfiles(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]*domain.PaymentProfile, error) {
	var profiles []*domain.PaymentProfile
	err := db.WithContext(ctx).
		Model(&domain.PaymentProfile{}).
		Where("customer_id = ?", customerID).
		Order("id").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *repo) FindPaymentProfile(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.PaymentProfile, error) {
	var profile domain.PaymentProfile
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM payment_profiles WHERE id = ?`,
		id,
	).Scan(&profile).Error
	if err != nil {
		return nil, err
	}
	if profile.ID == 0 {
		return nil, nil
	}
	return &profile, nil
}

func (r *repo) ClearDefaultProfiles(ctx context.Context, db *gorm.DB, customerID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE payment_profiles SET is_default = ? WHERE customer_id = ?`,
		false,
		customerID,
	).Error
}

func (r *repo) SetDefaultProfile(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE payment_profiles SET is_default = ? WHERE id = ?`,
		true,
		id,
	).Error
}
