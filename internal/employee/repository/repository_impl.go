package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/employee/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, employee *domain.Employee) error {
	return db.WithContext(ctx).Create(employee).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Employee, error) {
	var employee domain.Employee
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM employees WHERE id = ?`,
		id,
	).Scan(&employee).Error
	if err != nil {
		return nil, err
	}
	if employee.ID == 0 {
		return nil, nil
	}
	return &employee, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*domain.Employee, error) {
	var employees []*domain.Employee
	stmt := db.WithContext(ctx).Model(&domain.Employee{})
	if activeOnly {
		stmt = stmt.Where("active = ?", true)
	}
	err := stmt.Order("name").Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Employee{}).Error
}
