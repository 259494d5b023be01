package domain

import (
	"context"
	"errors"
	"time"
)

type SeedRequest struct {
	OrderID string
	// TermsDays <= 0 uses the configured default (14).
	TermsDays int
	// Today pins the invoice date; zero means the service clock's current day.
	Today time.Time
}

type CreateFromSeedRequest struct {
	OrderID  string
	Seed     InvoiceSeed
	TaxCents int64
}

type Service interface {
	// Seed builds the invoice projection for an order from its snapshotted
	// line items. Read-only.
	Seed(context.Context, SeedRequest) (InvoiceSeed, error)

	// CreateFromSeed persists an Invoice from a previously built seed and
	// marks the order invoiced, in one transaction.
	CreateFromSeed(context.Context, CreateFromSeedRequest) (Invoice, error)

	GetForOrder(ctx context.Context, orderID string) (Invoice, error)
	MarkPaid(ctx context.Context, orderID string) (Invoice, error)
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
	ErrAlreadyExists = errors.New("already_exists")
)
