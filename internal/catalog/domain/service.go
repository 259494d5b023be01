package domain

import (
	"context"
	"errors"
)

type CreateEntryRequest struct {
	Name              string
	DefaultPriceCents int64
	Description       string
}

type UpdateEntryRequest struct {
	ID                string
	Name              *string
	DefaultPriceCents *int64
	Description       *string
	Active            *bool
}

type ListEntriesRequest struct {
	IncludeInactive bool
}

type ListEntriesResponse struct {
	Entries []ServiceCatalog `json:"entries"`
}

type Service interface {
	Create(context.Context, CreateEntryRequest) (ServiceCatalog, error)
	Update(context.Context, UpdateEntryRequest) (ServiceCatalog, error)
	Deactivate(ctx context.Context, id string) error
	List(context.Context, ListEntriesRequest) (ListEntriesResponse, error)
	GetByID(ctx context.Context, id string) (ServiceCatalog, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidPrice = errors.New("invalid_price")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNameTaken    = errors.New("name_taken")
	ErrNotFound     = errors.New("not_found")
)
