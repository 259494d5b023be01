package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/serviceorder/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.ServiceOrder) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ServiceOrder, error) {
	var order domain.ServiceOrder
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM service_orders WHERE id = ?`,
		id,
	).Scan(&order).Error
	if err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, nil
	}
	return &order, nil
}

func (r *repo) ListForSite(ctx context.Context, db *gorm.DB, siteID snowflake.ID) ([]*domain.ServiceOrder, error) {
	var orders []*domain.ServiceOrder
	err := db.WithContext(ctx).
		Model(&domain.ServiceOrder{}).
		Where("site_id = ?", siteID).
		Order("scheduled_date").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) ListDueBetween(ctx context.Context, db *gorm.DB, start, end time.Time) ([]*domain.ServiceOrder, error) {
	var orders []*domain.ServiceOrder
	err := db.WithContext(ctx).
		Model(&domain.ServiceOrder{}).
		Where("scheduled_date >= ? AND scheduled_date < ?", start, end).
		Order("scheduled_date").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.ServiceOrder{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.ServiceOrder{}).Error
}

func (r *repo) DeleteLineItems(ctx context.Context, db *gorm.DB, orderID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM so_services WHERE service_order_id = ?`,
		orderID,
	).Error
}

func (r *repo) InsertLineItem(ctx context.Context, db *gorm.DB, item *domain.SOService) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) ListLineItems(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]domain.LineItem, error) {
	var lines []domain.LineItem
	err := db.WithContext(ctx).Raw(
		`SELECT ss.id, ss.site_service_id, COALESCE(sv.name, 'Service') AS name, ss.unit_price_cents
		 FROM so_services ss
		 LEFT JOIN site_services sv ON sv.id = ss.site_service_id
		 WHERE ss.service_order_id = ?
		 ORDER BY ss.id`,
		orderID,
	).Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repo) InsertAssignment(ctx context.Context, db *gorm.DB, assignment *domain.SOAssignment) error {
	return db.WithContext(ctx).Create(assignment).Error
}

func (r *repo) FindAssignment(ctx context.Context, db *gorm.DB, orderID, employeeID snowflake.ID) (*domain.SOAssignment, error) {
	var assignment domain.SOAssignment
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM so_assignments WHERE service_order_id = ? AND employee_id = ?`,
		orderID,
		employeeID,
	).Scan(&assignment).Error
	if err != nil {
		return nil, err
	}
	if assignment.ID == 0 {
		return nil, nil
	}
	return &assignment, nil
}

func (r *repo) DeleteAssignment(ctx context.Context, db *gorm.DB, orderID, employeeID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM so_assignments WHERE service_order_id = ? AND employee_id = ?`,
		orderID,
		employeeID,
	).Error
}

func (r *repo) ListAssignments(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]*domain.SOAssignment, error) {
	var assignments []*domain.SOAssignment
	err := db.WithContext(ctx).
		Model(&domain.SOAssignment{}).
		Where("service_order_id = ?", orderID).
		Order("id").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
