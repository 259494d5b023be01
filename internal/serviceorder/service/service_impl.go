package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/cadence"
	"github.com/founderspc/somanager/internal/clock"
	"github.com/founderspc/somanager/internal/serviceorder/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("serviceorder.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

type siteRow struct {
	ID          snowflake.ID
	CadenceCode string
}

type siteServiceRow struct {
	ID             snowflake.ID
	UnitPriceCents int64
	Active         bool
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.OrderWithLines, error) {
	siteID, err := s.parseID(req.SiteID)
	if err != nil {
		return domain.OrderWithLines{}, err
	}

	now := time.Now().UTC()
	order := domain.ServiceOrder{
		ID:            s.genID.Generate(),
		SiteID:        siteID,
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		ScheduledDate: normalizeDate(req.ScheduledDate),
		Notes:         req.Notes,
		Metadata:      datatypes.JSONMap{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var result domain.OrderWithLines
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		site, err := s.findSite(ctx, tx, siteID)
		if err != nil {
			return err
		}
		if site == nil {
			return domain.ErrNotFound
		}
		if err := s.repo.Insert(ctx, tx, &order); err != nil {
			return err
		}
		if req.ServiceIDs != nil {
			ids, err := s.parseIDs(req.ServiceIDs)
			if err != nil {
				return err
			}
			if err := s.setLines(ctx, tx, order.ID, ids); err != nil {
				return err
			}
		} else {
			if err := s.seedLines(ctx, tx, &order); err != nil {
				return err
			}
		}
		result, err = s.load(ctx, tx, order.ID)
		return err
	})
	if err != nil {
		return domain.OrderWithLines{}, err
	}
	return result, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateOrderRequest) (domain.OrderWithLines, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.OrderWithLines{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.ScheduledDate != nil {
		fields["scheduled_date"] = *normalizeDate(req.ScheduledDate)
	}
	if req.Completed != nil {
		fields["completed"] = *req.Completed
	}
	if req.Invoiced != nil {
		fields["invoiced"] = *req.Invoiced
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	var result domain.OrderWithLines
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if err := s.repo.UpdateFields(ctx, tx, id, fields); err != nil {
			return err
		}
		if req.ServiceIDs != nil {
			ids, err := s.parseIDs(req.ServiceIDs)
			if err != nil {
				return err
			}
			if err := s.setLines(ctx, tx, id, ids); err != nil {
				return err
			}
		}
		result, err = s.load(ctx, tx, id)
		return err
	})
	if err != nil {
		return domain.OrderWithLines{}, err
	}
	return result, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		return s.repo.Delete(ctx, tx, id)
	})
}

func (s *Service) Get(ctx context.Context, rawID string) (domain.OrderWithLines, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.OrderWithLines{}, err
	}
	result, err := s.load(ctx, s.db, id)
	if err != nil {
		return domain.OrderWithLines{}, err
	}
	return result, nil
}

func (s *Service) ListForSite(ctx context.Context, rawSiteID string) ([]domain.ServiceOrder, error) {
	siteID, err := s.parseID(rawSiteID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListForSite(ctx, s.db, siteID)
	if err != nil {
		return nil, err
	}
	return deref(items), nil
}

func (s *Service) ListDueInMonth(ctx context.Context, year, month int) ([]domain.ServiceOrder, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, domain.ErrInvalidMonth
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	items, err := s.repo.ListDueBetween(ctx, s.db, start, end)
	if err != nil {
		return nil, err
	}
	return deref(items), nil
}

// SeedFromSite is the snapshot boundary: existing line items are dropped
// and every active contracted service of the order's site is copied in at
// its current price, all in one transaction.
func (s *Service) SeedFromSite(ctx context.Context, rawOrderID string) (domain.OrderWithLines, error) {
	id, err := s.parseID(rawOrderID)
	if err != nil {
		return domain.OrderWithLines{}, err
	}

	var result domain.OrderWithLines
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if err := s.seedLines(ctx, tx, order); err != nil {
			return err
		}
		result, err = s.load(ctx, tx, id)
		return err
	})
	if err != nil {
		return domain.OrderWithLines{}, err
	}
	return result, nil
}

// SetLineItems is the explicit-selection path. It ignores the active flag:
// the caller picked the services, so retired ones are allowed. Any missing
// id aborts the whole call.
func (s *Service) SetLineItems(ctx context.Context, rawOrderID string, rawServiceIDs []string) (domain.OrderWithLines, error) {
	id, err := s.parseID(rawOrderID)
	if err != nil {
		return domain.OrderWithLines{}, err
	}
	ids, err := s.parseIDs(rawServiceIDs)
	if err != nil {
		return domain.OrderWithLines{}, err
	}

	var result domain.OrderWithLines
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if err := s.setLines(ctx, tx, id, ids); err != nil {
			return err
		}
		result, err = s.load(ctx, tx, id)
		return err
	})
	if err != nil {
		return domain.OrderWithLines{}, err
	}
	return result, nil
}

// CreateNextForSite computes the next due date from the site's cadence and
// its last scheduled order, then creates and seeds the order in a single
// transaction. With no prior orders the new order falls on today itself;
// the cadence step only applies from an existing scheduled date.
func (s *Service) CreateNextForSite(ctx context.Context, req domain.CreateNextOrderRequest) (domain.OrderWithLines, error) {
	siteID, err := s.parseID(req.SiteID)
	if err != nil {
		return domain.OrderWithLines{}, err
	}

	today := req.Today
	if today.IsZero() {
		today = s.clock.Now()
	}

	var result domain.OrderWithLines
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		site, err := s.findSite(ctx, tx, siteID)
		if err != nil {
			return err
		}
		if site == nil {
			return domain.ErrNotFound
		}

		scheduled := *normalizeDate(&today)
		if last, err := s.lastScheduled(ctx, tx, siteID); err != nil {
			return err
		} else if last != nil {
			scheduled = cadence.NextDue(site.CadenceCode, *last)
		}

		now := time.Now().UTC()
		order := domain.ServiceOrder{
			ID:            s.genID.Generate(),
			SiteID:        siteID,
			Title:         cadence.Title(site.CadenceCode),
			ScheduledDate: &scheduled,
			Metadata:      datatypes.JSONMap{},
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.repo.Insert(ctx, tx, &order); err != nil {
			return err
		}
		if err := s.seedLines(ctx, tx, &order); err != nil {
			return err
		}
		result, err = s.load(ctx, tx, order.ID)
		return err
	})
	if err != nil {
		return domain.OrderWithLines{}, err
	}
	return result, nil
}

func (s *Service) AssignEmployee(ctx context.Context, rawOrderID, rawEmployeeID string) (domain.SOAssignment, error) {
	orderID, err := s.parseID(rawOrderID)
	if err != nil {
		return domain.SOAssignment{}, err
	}
	employeeID, err := s.parseID(rawEmployeeID)
	if err != nil {
		return domain.SOAssignment{}, err
	}

	var assignment domain.SOAssignment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		existing, err := s.repo.FindAssignment(ctx, tx, orderID, employeeID)
		if err != nil {
			return err
		}
		if existing != nil {
			assignment = *existing
			return nil
		}
		assignment = domain.SOAssignment{
			ID:             s.genID.Generate(),
			ServiceOrderID: orderID,
			EmployeeID:     employeeID,
			AssignedAt:     time.Now().UTC(),
		}
		return s.repo.InsertAssignment(ctx, tx, &assignment)
	})
	if err != nil {
		return domain.SOAssignment{}, err
	}
	return assignment, nil
}

func (s *Service) UnassignEmployee(ctx context.Context, rawOrderID, rawEmployeeID string) error {
	orderID, err := s.parseID(rawOrderID)
	if err != nil {
		return err
	}
	employeeID, err := s.parseID(rawEmployeeID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindAssignment(ctx, tx, orderID, employeeID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return s.repo.DeleteAssignment(ctx, tx, orderID, employeeID)
	})
}

func (s *Service) ListAssignments(ctx context.Context, rawOrderID string) ([]domain.SOAssignment, error) {
	orderID, err := s.parseID(rawOrderID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListAssignments(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	assignments := make([]domain.SOAssignment, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		assignments = append(assignments, *item)
	}
	return assignments, nil
}

func (s *Service) seedLines(ctx context.Context, tx *gorm.DB, order *domain.ServiceOrder) error {
	if err := s.repo.DeleteLineItems(ctx, tx, order.ID); err != nil {
		return err
	}

	var services []siteServiceRow
	err := tx.WithContext(ctx).Raw(
		`SELECT id, unit_price_cents, active
		 FROM site_services
		 WHERE site_id = ? AND active = ?
		 ORDER BY name`,
		order.SiteID,
		true,
	).Scan(&services).Error
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, service := range services {
		item := domain.SOService{
			ID:             s.genID.Generate(),
			ServiceOrderID: order.ID,
			SiteServiceID:  service.ID,
			UnitPriceCents: service.UnitPriceCents,
			CreatedAt:      now,
		}
		if err := s.repo.InsertLineItem(ctx, tx, &item); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) setLines(ctx context.Context, tx *gorm.DB, orderID snowflake.ID, serviceIDs []snowflake.ID) error {
	if err := s.repo.DeleteLineItems(ctx, tx, orderID); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, serviceID := range serviceIDs {
		var service siteServiceRow
		err := tx.WithContext(ctx).Raw(
			`SELECT id, unit_price_cents, active FROM site_services WHERE id = ?`,
			serviceID,
		).Scan(&service).Error
		if err != nil {
			return err
		}
		if service.ID == 0 {
			return domain.ErrNotFound
		}
		item := domain.SOService{
			ID:             s.genID.Generate(),
			ServiceOrderID: orderID,
			SiteServiceID:  service.ID,
			UnitPriceCents: service.UnitPriceCents,
			CreatedAt:      now,
		}
		if err := s.repo.InsertLineItem(ctx, tx, &item); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) findSite(ctx context.Context, tx *gorm.DB, siteID snowflake.ID) (*siteRow, error) {
	var site siteRow
	err := tx.WithContext(ctx).Raw(
		`SELECT id, cadence_code FROM sites WHERE id = ?`,
		siteID,
	).Scan(&site).Error
	if err != nil {
		return nil, err
	}
	if site.ID == 0 {
		return nil, nil
	}
	return &site, nil
}

// lastScheduled selects the row rather than MAX() so the column type
// survives the sqlite driver's conversion.
func (s *Service) lastScheduled(ctx context.Context, tx *gorm.DB, siteID snowflake.ID) (*time.Time, error) {
	var row struct {
		ScheduledDate *time.Time
	}
	err := tx.WithContext(ctx).Raw(
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

func (s *Service) load(ctx context.Context, tx *gorm.DB, orderID snowflake.ID) (domain.OrderWithLines, error) {
	order, err := s.repo.FindByID(ctx, tx, orderID)
	if err != nil {
		return domain.OrderWithLines{}, err
	}
	if order == nil {
		return domain.OrderWithLines{}, domain.ErrNotFound
	}
	lines, err := s.repo.ListLineItems(ctx, tx, orderID)
	if err != nil {
		return domain.OrderWithLines{}, err
	}
	return domain.OrderWithLines{Order: *order, Lines: lines}, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func (s *Service) parseIDs(values []string) ([]snowflake.ID, error) {
	ids := make([]snowflake.ID, 0, len(values))
	for _, value := range values {
		id, err := s.parseID(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	d := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func deref(items []*domain.ServiceOrder) []domain.ServiceOrder {
	orders := make([]domain.ServiceOrder, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orders = append(orders, *item)
	}
	return orders
}
