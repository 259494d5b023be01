package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.ServiceCatalog) error {
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ServiceCatalog, error) {
	var entry domain.ServiceCatalog
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, default_price_cents, description, active, created_at, updated_at
		 FROM service_catalog WHERE id = ?`,
		id,
	).Scan(&entry).Error
	if err != nil {
		return nil, err
	}
	if entry.ID == 0 {
		return nil, nil
	}
	return &entry, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*domain.ServiceCatalog, error) {
	var entries []*domain.ServiceCatalog
	stmt := db.WithContext(ctx).Model(&domain.ServiceCatalog{})
	if activeOnly {
		stmt = stmt.Where("active = ?", true)
	}
	err := stmt.Order("name").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.ServiceCatalog{}).
		Where("id = ?", id).
		Updates(fields).Error
}
