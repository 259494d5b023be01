package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/site/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, site *domain.Site) error {
	return db.WithContext(ctx).Create(site).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Site, error) {
	var site domain.Site
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM sites WHERE id = ?`,
		id,
	).Scan(&site).Error
	if err != nil {
		return nil, err
	}
	if site.ID == 0 {
		return nil, nil
	}
	return &site, nil
}

func (r *repo) ListForCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]*domain.Site, error) {
	var sites []*domain.Site
	err := db.WithContext(ctx).
		Model(&domain.Site{}).
		Where("customer_id = ?", customerID).
		Order("name").
		Find(&sites).Error
	if err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Site{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Site{}).Error
}

func (r *repo) InsertService(ctx context.Context, db *gorm.DB, service *domain.SiteService) error {
	return db.WithContext(ctx).Create(service).Error
}

func (r *repo) FindServiceByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.SiteService, error) {
	var service domain.SiteService
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM site_services WHERE id = ?`,
		id,
	).Scan(&service).Error
	if err != nil {
		return nil, err
	}
	if service.ID == 0 {
		return nil, nil
	}
	return &service, nil
}

func (r *repo) ListServices(ctx context.Context, db *gorm.DB, siteID snowflake.ID) ([]*domain.SiteService, error) {
	var services []*domain.SiteService
	err := db.WithContext(ctx).
		Model(&domain.SiteService{}).
		Where("site_id = ?", siteID).
		Order("name").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *repo) UpdateServiceFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.SiteService{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// LastScheduled selects the row rather than MAX() so the column type
// survives the sqlite driver's conversion.
func (r *repo) LastScheduled(ctx context.Context, db *gorm.DB, siteID snowflake.ID) (*time.Time, error) {
	var row struct {
		ScheduledDate *time.Time
	}
	err := db.WithContext(ctx).Raw(
		`SELECT scheduled_date
		 FROM service_orders
		 WHERE site_id = ? AND scheduled_date IS NOT NULL
		 ORDER BY scheduled_date DESC
		 LIMIT 1`,
		siteID,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return row.ScheduledDate, nil
}
