package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/cadence"
	catalogdomain "github.com/founderspc/somanager/internal/catalog/domain"
	"github.com/founderspc/somanager/internal/clock"
	"github.com/founderspc/somanager/internal/site/domain"
	"github.com/founderspc/somanager/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultServiceName is used when neither an explicit name nor a catalog
// link yields one.
const DefaultServiceName = "Service"

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	CatalogRepo catalogdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	catalogRepo catalogdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("site.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		catalogRepo: p.CatalogRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateSiteRequest) (domain.Site, error) {
	customerID, err := s.parseID(req.CustomerID)
	if err != nil {
		return domain.Site{}, domain.ErrInvalidCustomer
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Site{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	site := domain.Site{
		ID:          s.genID.Generate(),
		CustomerID:  customerID,
		Name:        name,
		Address:     req.Address,
		POCName:     strings.TrimSpace(req.POCName),
		POCPhone:    strings.TrimSpace(req.POCPhone),
		POCEmail:    strings.TrimSpace(req.POCEmail),
		ScopeOfWork: req.ScopeOfWork,
		AreaZone:    strings.TrimSpace(req.AreaZone),
		CadenceCode: strings.TrimSpace(req.CadenceCode),
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &site); err != nil {
			return err
		}
		if len(req.ServiceNames) > 0 {
			return s.reconcileServices(ctx, tx, site.ID, req.ServiceNames)
		}
		return nil
	})
	if err != nil {
		return domain.Site{}, err
	}
	return site, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSiteRequest) (domain.Site, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Site{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Site{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.POCName != nil {
		fields["poc_name"] = strings.TrimSpace(*req.POCName)
	}
	if req.POCPhone != nil {
		fields["poc_phone"] = strings.TrimSpace(*req.POCPhone)
	}
	if req.POCEmail != nil {
		fields["poc_email"] = strings.TrimSpace(*req.POCEmail)
	}
	if req.ScopeOfWork != nil {
		fields["scope_of_work"] = *req.ScopeOfWork
	}
	if req.AreaZone != nil {
		fields["area_zone"] = strings.TrimSpace(*req.AreaZone)
	}
	if req.CadenceCode != nil {
		fields["cadence_code"] = strings.TrimSpace(*req.CadenceCode)
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	var updated domain.Site
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if err := s.repo.UpdateFields(ctx, tx, id, fields); err != nil {
			return err
		}
		if req.ServiceNames != nil {
			if err := s.reconcileServices(ctx, tx, id, req.ServiceNames); err != nil {
				return err
			}
		}
		fresh, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		updated = *fresh
		return nil
	})
	if err != nil {
		return domain.Site{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return s.repo.Delete(ctx, tx, id)
	})
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Site, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Site{}, err
	}
	site, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Site{}, err
	}
	if site == nil {
		return domain.Site{}, domain.ErrNotFound
	}
	return *site, nil
}

func (s *Service) ListForCustomer(ctx context.Context, rawCustomerID string) ([]domain.Site, error) {
	customerID, err := s.parseID(rawCustomerID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListForCustomer(ctx, s.db, customerID)
	if err != nil {
		return nil, err
	}
	sites := make([]domain.Site, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		sites = append(sites, *item)
	}
	return sites, nil
}

// AddService creates a contracted service for the site. A catalog link is
// optional and an unresolved catalog id is tolerated: the row is simply
// created without one. Name falls back explicit -> catalog -> "Service",
// price falls back override -> catalog default -> 0.
func (s *Service) AddService(ctx context.Context, req domain.AddServiceRequest) (domain.SiteService, error) {
	siteID, err := s.parseID(req.SiteID)
	if err != nil {
		return domain.SiteService{}, err
	}
	if req.UnitPriceCents != nil && *req.UnitPriceCents < 0 {
		return domain.SiteService{}, domain.ErrInvalidPrice
	}

	var created domain.SiteService
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		site, err := s.repo.FindByID(ctx, tx, siteID)
		if err != nil {
			return err
		}
		if site == nil {
			return domain.ErrNotFound
		}

		name := strings.TrimSpace(req.Name)
		price := int64(0)
		if req.UnitPriceCents != nil {
			price = *req.UnitPriceCents
		}

		var catalogID *snowflake.ID
		if rawCatalogID := strings.TrimSpace(req.CatalogID); rawCatalogID != "" {
			if id, err := snowflake.ParseString(rawCatalogID); err == nil && id != 0 {
				entry, err := s.catalogRepo.FindByID(ctx, tx, id)
				if err != nil {
					return err
				}
				if entry != nil {
					catalogID = &entry.ID
					if name == "" {
						name = entry.Name
					}
					if req.UnitPriceCents == nil {
						price = entry.DefaultPriceCents
					}
				}
			}
		}
		if name == "" {
			name = DefaultServiceName
		}

		now := time.Now().UTC()
		created = domain.SiteService{
			ID:             s.genID.Generate(),
			SiteID:         siteID,
			Name:           name,
			CatalogID:      catalogID,
			UnitPriceCents: price,
			Active:         true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.repo.InsertService(ctx, tx, &created); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrNameTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.SiteService{}, err
	}
	return created, nil
}

// UpdateService edits a contracted service in place. Price edits never
// touch existing order line items; those were snapshotted at seeding time.
func (s *Service) UpdateService(ctx context.Context, req domain.UpdateServiceRequest) (domain.SiteService, error) {
	id, err := s.parseID(req.ServiceID)
	if err != nil {
		return domain.SiteService{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.SiteService{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.UnitPriceCents != nil {
		if *req.UnitPriceCents < 0 {
			return domain.SiteService{}, domain.ErrInvalidPrice
		}
		fields["unit_price_cents"] = *req.UnitPriceCents
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}

	var updated domain.SiteService
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindServiceByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if err := s.repo.UpdateServiceFields(ctx, tx, id, fields); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrNameTaken
			}
			return err
		}
		fresh, err := s.repo.FindServiceByID(ctx, tx, id)
		if err != nil {
			return err
		}
		updated = *fresh
		return nil
	})
	if err != nil {
		return domain.SiteService{}, err
	}
	return updated, nil
}

func (s *Service) ListServices(ctx context.Context, rawSiteID string) ([]domain.SiteService, error) {
	siteID, err := s.parseID(rawSiteID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListServices(ctx, s.db, siteID)
	if err != nil {
		return nil, err
	}
	services := make([]domain.SiteService, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		services = append(services, *item)
	}
	return services, nil
}

// ReconcileServiceNames brings the site's contracted services in line with
// the desired free-text name set: wanted names are (re)activated, missing
// ones are created at price 0, active rows outside the set are retired.
// Rows are never deleted so historical order lines keep their reference.
// The operation is idempotent.
func (s *Service) ReconcileServiceNames(ctx context.Context, rawSiteID string, names []string) error {
	siteID, err := s.parseID(rawSiteID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		site, err := s.repo.FindByID(ctx, tx, siteID)
		if err != nil {
			return err
		}
		if site == nil {
			return domain.ErrNotFound
		}
		return s.reconcileServices(ctx, tx, siteID, names)
	})
}

func (s *Service) reconcileServices(ctx context.Context, tx *gorm.DB, siteID snowflake.ID, names []string) error {
	want := make(map[string]bool, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			want[trimmed] = true
		}
	}

	existing, err := s.repo.ListServices(ctx, tx, siteID)
	if err != nil {
		return err
	}
	byName := make(map[string]*domain.SiteService, len(existing))
	for _, row := range existing {
		byName[strings.TrimSpace(row.Name)] = row
	}

	now := time.Now().UTC()
	for name := range want {
		row, ok := byName[name]
		if !ok {
			fresh := domain.SiteService{
				ID:             s.genID.Generate(),
				SiteID:         siteID,
				Name:           name,
				UnitPriceCents: 0,
				Active:         true,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := s.repo.InsertService(ctx, tx, &fresh); err != nil {
				return err
			}
			continue
		}
		if !row.Active {
			if err := s.repo.UpdateServiceFields(ctx, tx, row.ID, map[string]any{"active": true, "updated_at": now}); err != nil {
				return err
			}
		}
	}

	for name, row := range byName {
		if want[name] || !row.Active {
			continue
		}
		if err := s.repo.UpdateServiceFields(ctx, tx, row.ID, map[string]any{"active": false, "updated_at": now}); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) NextDue(ctx context.Context, rawSiteID string, today time.Time) (time.Time, error) {
	siteID, err := s.parseID(rawSiteID)
	if err != nil {
		return time.Time{}, err
	}
	site, err := s.repo.FindByID(ctx, s.db, siteID)
	if err != nil {
		return time.Time{}, err
	}
	if site == nil {
		return time.Time{}, domain.ErrNotFound
	}

	if today.IsZero() {
		today = s.clock.Now()
	}
	// With no scheduled history the next visit is today; the cadence step
	// only applies from an existing scheduled date.
	last, err := s.repo.LastScheduled(ctx, s.db, siteID)
	if err != nil {
		return time.Time{}, err
	}
	if last == nil {
		u := today.UTC()
		return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return cadence.NextDue(site.CadenceCode, *last), nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
