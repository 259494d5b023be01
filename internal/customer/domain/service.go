package domain

import (
	"context"
	"errors"
)

type CreateCustomerRequest struct {
	Name  string
	Phone string
	Email string
	Notes string
}

type UpdateCustomerRequest struct {
	ID    string
	Name  *string
	Phone *string
	Email *string
	Notes *string
}

type ListCustomersResponse struct {
	Customers []Customer `json:"customers"`
}

type CreatePaymentProfileRequest struct {
	CustomerID       string
	Method           string
	ACHRouting       string
	ACHAccount       string
	CardBrand        string
	CardLast4        string
	CardName         string
	CardExpMonth     int
	CardExpYear      int
	BillStreet       string
	BillCityStateZip string
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	Update(context.Context, UpdateCustomerRequest) (Customer, error)
	Delete(ctx context.Context, id string) error
	List(context.Context) (ListCustomersResponse, error)
	GetByID(ctx context.Context, id string) (Customer, error)

	CreatePaymentProfile(context.Context, CreatePaymentProfileRequest) (PaymentProfile, error)
	ListPaymentProfiles(ctx context.Context, customerID string) ([]PaymentProfile, error)
	SetDefaultPaymentProfile(ctx context.Context, customerID, profileID string) error
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNameTaken   = errors.New("name_taken")
	ErrNotFound    = errors.New("not_found")
)
