package domain

import (
	"context"
	"errors"
	"time"
)

type CreateOrderRequest struct {
	SiteID        string
	Title         string
	Description   string
	ScheduledDate *time.Time
	Notes         string

	// Nil seeds line items from the site's active contracted services;
	// non-nil selects exactly these contracted services instead.
	ServiceIDs []string
}

type UpdateOrderRequest struct {
	ID            string
	Title         *string
	Description   *string
	ScheduledDate *time.Time
	Completed     *bool
	Invoiced      *bool
	Notes         *string

	// Non-nil replaces the order's line items with these contracted
	// services, snapshotted at their current prices.
	ServiceIDs []string
}

type CreateNextOrderRequest struct {
	SiteID string
	// Today anchors the computation when the site has no prior orders;
	// zero means the service clock's current day.
	Today time.Time
}

// OrderWithLines is an order plus its snapshot line items.
type OrderWithLines struct {
	Order ServiceOrder `json:"order"`
	Lines []LineItem   `json:"line_items"`
}

type Service interface {
	Create(context.Context, CreateOrderRequest) (OrderWithLines, error)
	Update(context.Context, UpdateOrderRequest) (OrderWithLines, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (OrderWithLines, error)
	ListForSite(ctx context.Context, siteID string) ([]ServiceOrder, error)
	ListDueInMonth(ctx context.Context, year, month int) ([]ServiceOrder, error)

	// SeedFromSite replaces the order's line items with price snapshots of
	// every active contracted service at the order's site.
	SeedFromSite(ctx context.Context, orderID string) (OrderWithLines, error)

	// SetLineItems replaces the order's line items with exactly the given
	// contracted services, active or not, snapshotted at current prices.
	SetLineItems(ctx context.Context, orderID string, siteServiceIDs []string) (OrderWithLines, error)

	// CreateNextForSite creates the next recurring order for the site:
	// date from the cadence code and last scheduled order, title from the
	// cadence, line items seeded from the site.
	CreateNextForSite(context.Context, CreateNextOrderRequest) (OrderWithLines, error)

	AssignEmployee(ctx context.Context, orderID, employeeID string) (SOAssignment, error)
	UnassignEmployee(ctx context.Context, orderID, employeeID string) error
	ListAssignments(ctx context.Context, orderID string) ([]SOAssignment, error)
}

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidMonth = errors.New("invalid_month")
	ErrNotFound     = errors.New("not_found")
)
