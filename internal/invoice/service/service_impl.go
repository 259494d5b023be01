package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/clock"
	"github.com/founderspc/somanager/internal/config"
	"github.com/founderspc/somanager/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Cfg   config.Config
	Repo  domain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	prefix    string
	termsDays int
}

func New(p Params) domain.Service {
	prefix := strings.TrimSpace(p.Cfg.InvoicePrefix)
	if prefix == "" {
		prefix = "FPC"
	}
	termsDays := p.Cfg.InvoiceTermsDays
	if termsDays <= 0 {
		termsDays = 14
	}
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		prefix:    prefix,
		termsDays: termsDays,
	}
}

type orderRow struct {
	ID            snowflake.ID
	SiteID        snowflake.ID
	Title         string
	Description   string
	ScheduledDate *time.Time
	Notes         string
}

type billToRow struct {
	SiteName      string
	Address       string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
}

type lineRow struct {
	Name           string
	UnitPriceCents int64
}

func (s *Service) Seed(ctx context.Context, req domain.SeedRequest) (domain.InvoiceSeed, error) {
	orderID, err := s.parseID(req.OrderID)
	if err != nil {
		return domain.InvoiceSeed{}, err
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return domain.InvoiceSeed{}, err
	}
	if order == nil {
		return domain.InvoiceSeed{}, domain.ErrNotFound
	}

	today := req.Today
	if today.IsZero() {
		today = s.clock.Now()
	}
	today = dateOnly(today)

	termsDays := req.TermsDays
	if termsDays <= 0 {
		termsDays = s.termsDays
	}

	billTo, err := s.findBillTo(ctx, order.SiteID)
	if err != nil {
		return domain.InvoiceSeed{}, err
	}

	var lines []lineRow
	err = s.db.WithContext(ctx).Raw(
		`SELECT COALESCE(sv.name, 'Service') AS name, ss.unit_price_cents
		 FROM so_services ss
		 LEFT JOIN site_services sv ON sv.id = ss.site_service_id
		 WHERE ss.service_order_id = ?
		 ORDER BY ss.id`,
		orderID,
	).Scan(&lines).Error
	if err != nil {
		return domain.InvoiceSeed{}, err
	}

	items := make([]domain.SeedLineItem, 0, len(lines))
	var subtotal int64
	for _, line := range lines {
		items = append(items, domain.SeedLineItem{
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
		})
		subtotal += line.UnitPriceCents
	}

	return domain.InvoiceSeed{
		InvoiceNo:        s.invoiceNo(order.ID, order.ScheduledDate, today),
		InvoiceDate:      today,
		DueDate:          today.AddDate(0, 0, termsDays),
		Notes:            strings.TrimSpace(order.Notes),
		LineItems:        items,
		SubtotalCents:    subtotal,
		BillToName:       billTo.CustomerName,
		BillToAddr:       billTo.Address,
		BillToContact:    contactLine(billTo.CustomerPhone, billTo.CustomerEmail),
		OrderTitle:       order.Title,
		OrderDescription: order.Description,
	}, nil
}

func (s *Service) CreateFromSeed(ctx context.Context, req domain.CreateFromSeedRequest) (domain.Invoice, error) {
	orderID, err := s.parseID(req.OrderID)
	if err != nil {
		return domain.Invoice{}, err
	}

	now := time.Now().UTC()
	invoiceDate := req.Seed.InvoiceDate
	dueDate := req.Seed.DueDate
	invoice := domain.Invoice{
		ID:             s.genID.Generate(),
		ServiceOrderID: orderID,
		InvoiceNo:      req.Seed.InvoiceNo,
		InvoiceDate:    &invoiceDate,
		DueDate:        &dueDate,
		SubtotalCents:  req.Seed.SubtotalCents,
		TaxCents:       req.TaxCents,
		TotalCents:     req.Seed.SubtotalCents + req.TaxCents,
		Notes:          req.Seed.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order orderRow
		if err := tx.WithContext(ctx).Raw(
			`SELECT id, site_id FROM service_orders WHERE id = ?`,
			orderID,
		).Scan(&order).Error; err != nil {
			return err
		}
		if order.ID == 0 {
			return domain.ErrNotFound
		}

		existing, err := s.repo.FindByOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrAlreadyExists
		}

		if err := s.repo.Insert(ctx, tx, &invoice); err != nil {
			return err
		}
		return tx.WithContext(ctx).Exec(
			`UPDATE service_orders SET invoiced = ?, updated_at = ? WHERE id = ?`,
			true,
			now,
			orderID,
		).Error
	})
	if err != nil {
		return domain.Invoice{}, err
	}
	return invoice, nil
}

func (s *Service) GetForOrder(ctx context.Context, rawOrderID string) (domain.Invoice, error) {
	orderID, err := s.parseID(rawOrderID)
	if err != nil {
		return domain.Invoice{}, err
	}
	invoice, err := s.repo.FindByOrder(ctx, s.db, orderID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *invoice, nil
}

func (s *Service) MarkPaid(ctx context.Context, rawOrderID string) (domain.Invoice, error) {
	orderID, err := s.parseID(rawOrderID)
	if err != nil {
		return domain.Invoice{}, err
	}

	var updated domain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.repo.FindByOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if err := s.repo.UpdateFields(ctx, tx, invoice.ID, map[string]any{
			"paid":       true,
			"updated_at": time.Now().UTC(),
		}); err != nil {
			return err
		}
		fresh, err := s.repo.FindByOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		updated = *fresh
		return nil
	})
	if err != nil {
		return domain.Invoice{}, err
	}
	return updated, nil
}

// invoiceNo derives a deterministic number from the order id and its
// scheduled date, e.g. "FPC-20240601-SO1234". Today only fills in when the
// order has no scheduled date.
func (s *Service) invoiceNo(orderID snowflake.ID, scheduled *time.Time, today time.Time) string {
	d := today
	if scheduled != nil {
		d = *scheduled
	}
	return fmt.Sprintf("%s-%s-SO%s", s.prefix, d.Format("20060102"), orderID)
}

func (s *Service) findOrder(ctx context.Context, orderID snowflake.ID) (*orderRow, error) {
	var order orderRow
	err := s.db.WithContext(ctx).Raw(
		`SELECT id, site_id, title, description, scheduled_date, notes
		 FROM service_orders WHERE id = ?`,
		orderID,
	).Scan(&order).Error
	if err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, nil
	}
	return &order, nil
}

func (s *Service) findBillTo(ctx context.Context, siteID snowflake.ID) (billToRow, error) {
	var billTo billToRow
	err := s.db.WithContext(ctx).Raw(
		`SELECT s.name AS site_name, s.address,
		        c.name AS customer_name, c.phone AS customer_phone, c.email AS customer_email
		 FROM sites s
		 LEFT JOIN customers c ON c.id = s.customer_id
		 WHERE s.id = ?`,
		siteID,
	).Scan(&billTo).Error
	return billTo, err
}

func contactLine(phone, email string) string {
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)
	switch {
	case email != "" && phone != "":
		return phone + "\n" + email
	case email != "":
		return email
	default:
		return phone
	}
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
