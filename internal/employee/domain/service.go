package domain

import (
	"context"
	"errors"
)

type CreateEmployeeRequest struct {
	Name  string
	Role  string
	Phone string
	Email string
}

type UpdateEmployeeRequest struct {
	ID     string
	Name   *string
	Role   *string
	Phone  *string
	Email  *string
	Active *bool
}

type ListEmployeesRequest struct {
	IncludeInactive bool
}

type Service interface {
	Create(context.Context, CreateEmployeeRequest) (Employee, error)
	Update(context.Context, UpdateEmployeeRequest) (Employee, error)
	Delete(ctx context.Context, id string) error
	List(context.Context, ListEmployeesRequest) ([]Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
