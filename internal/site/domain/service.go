package domain

import (
	"context"
	"errors"
	"time"
)

type CreateSiteRequest struct {
	CustomerID  string
	Name        string
	Address     string
	POCName     string
	POCPhone    string
	POCEmail    string
	ScopeOfWork string
	AreaZone    string
	CadenceCode string
	Notes       string

	// Legacy bulk-edit path: free-text service names to reconcile against
	// the site's contracted services after creation.
	ServiceNames []string
}

type UpdateSiteRequest struct {
	ID          string
	Name        *string
	Address     *string
	POCName     *string
	POCPhone    *string
	POCEmail    *string
	ScopeOfWork *string
	AreaZone    *string
	CadenceCode *string
	Notes       *string

	// Non-nil reconciles the site's contracted services against the set.
	ServiceNames []string
}

type AddServiceRequest struct {
	SiteID         string
	Name           string
	CatalogID      string
	UnitPriceCents *int64
}

type UpdateServiceRequest struct {
	ServiceID      string
	Name           *string
	UnitPriceCents *int64
	Active         *bool
}

type Service interface {
	Create(context.Context, CreateSiteRequest) (Site, error)
	Update(context.Context, UpdateSiteRequest) (Site, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Site, error)
	ListForCustomer(ctx context.Context, customerID string) ([]Site, error)

	AddService(context.Context, AddServiceRequest) (SiteService, error)
	UpdateService(context.Context, UpdateServiceRequest) (SiteService, error)
	ListServices(ctx context.Context, siteID string) ([]SiteService, error)
	ReconcileServiceNames(ctx context.Context, siteID string, names []string) error

	// NextDue reports when the site's next order would fall, based on the
	// last scheduled order (or today when none exist) and the cadence code.
	NextDue(ctx context.Context, siteID string, today time.Time) (time.Time, error)
}

var (
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNameTaken       = errors.New("name_taken")
	ErrNotFound        = errors.New("not_found")
)
