package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/clock"
	"github.com/founderspc/somanager/internal/config"
	customerdomain "github.com/founderspc/somanager/internal/customer/domain"
	"github.com/founderspc/somanager/internal/invoice/domain"
	"github.com/founderspc/somanager/internal/invoice/repository"
	serviceorderdomain "github.com/founderspc/somanager/internal/serviceorder/domain"
	sitedomain "github.com/founderspc/somanager/internal/site/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	svc  domain.Service
	node *snowflake.Node
}

func setup(t *testing.T, now time.Time) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&customerdomain.Customer{},
		&sitedomain.Site{},
		&sitedomain.SiteService{},
		&serviceorderdomain.ServiceOrder{},
		&serviceorderdomain.SOService{},
		&domain.Invoice{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(now),
		Cfg: config.Config{
			InvoicePrefix:    "FPC",
			InvoiceTermsDays: 14,
		},
		Repo: repository.Provide(),
	})
	return &fixture{db: db, svc: svc, node: node}
}

func (f *fixture) seedOrder(t *testing.T, scheduled *time.Time) serviceorderdomain.ServiceOrder {
	t.Helper()
	now := time.Now().UTC()

	customer := customerdomain.Customer{
		ID:        f.node.Generate(),
		Name:      "Acme Corp",
		Phone:     "555-0100",
		Email:     "billing@acme.test",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.db.Create(&customer).Error)

	site := sitedomain.Site{
		ID:         f.node.Generate(),
		CustomerID: customer.ID,
		Name:       "Main Office",
		Address:    "1 Main St",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, f.db.Create(&site).Error)

	window := sitedomain.SiteService{
		ID:             f.node.Generate(),
		SiteID:         site.ID,
		Name:           "Window Wash",
		UnitPriceCents: 5000,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, f.db.Create(&window).Error)
	carpet := sitedomain.SiteService{
		ID:             f.node.Generate(),
		SiteID:         site.ID,
		Name:           "Carpet",
		UnitPriceCents: 3000,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, f.db.Create(&carpet).Error)

	order := serviceorderdomain.ServiceOrder{
		ID:            f.node.Generate(),
		SiteID:        site.ID,
		Title:         "Biweekly Cleaning",
		ScheduledDate: scheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, f.db.Create(&order).Error)

	for _, sv := range []sitedomain.SiteService{window, carpet} {
		require.NoError(t, f.db.Create(&serviceorderdomain.SOService{
			ID:             f.node.Generate(),
			ServiceOrderID: order.ID,
			SiteServiceID:  sv.ID,
			UnitPriceCents: sv.UnitPriceCents,
			CreatedAt:      now,
		}).Error)
	}
	return order
}

func TestSeed(t *testing.T) {
	today := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)
	f := setup(t, today)
	scheduled := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	order := f.seedOrder(t, &scheduled)

	seed, err := f.svc.Seed(context.Background(), domain.SeedRequest{OrderID: order.ID.String()})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("FPC-20240615-SO%s", order.ID), seed.InvoiceNo)
	assert.Equal(t, today, seed.InvoiceDate)
	assert.Equal(t, today.AddDate(0, 0, 14), seed.DueDate)
	assert.Equal(t, int64(8000), seed.SubtotalCents)
	require.Len(t, seed.LineItems, 2)
	assert.Equal(t, "Acme Corp", seed.BillToName)
	assert.Equal(t, "1 Main St", seed.BillToAddr)
	assert.Equal(t, "555-0100\nbilling@acme.test", seed.BillToContact)
	assert.Equal(t, "Biweekly Cleaning", seed.OrderTitle)
}

func TestSeed_Deterministic(t *testing.T) {
	today := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)
	f := setup(t, today)
	scheduled := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	order := f.seedOrder(t, &scheduled)

	first, err := f.svc.Seed(context.Background(), domain.SeedRequest{OrderID: order.ID.String()})
	require.NoError(t, err)
	second, err := f.svc.Seed(context.Background(), domain.SeedRequest{OrderID: order.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int64
	require.NoError(t, f.db.Model(&domain.Invoice{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeed_UnscheduledOrderUsesToday(t *testing.T) {
	today := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)
	f := setup(t, today)
	order := f.seedOrder(t, nil)

	seed, err := f.svc.Seed(context.Background(), domain.SeedRequest{OrderID: order.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("FPC-20240620-SO%s", order.ID), seed.InvoiceNo)
}

func TestCreateFromSeed(t *testing.T) {
	today := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)
	f := setup(t, today)
	scheduled := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	order := f.seedOrder(t, &scheduled)
	ctx := context.Background()

	seed, err := f.svc.Seed(ctx, domain.SeedRequest{OrderID: order.ID.String()})
	require.NoError(t, err)

	invoice, err := f.svc.CreateFromSeed(ctx, domain.CreateFromSeedRequest{
		OrderID:  order.ID.String(),
		Seed:     seed,
		TaxCents: 640,
	})
	require.NoError(t, err)
	assert.Equal(t, seed.InvoiceNo, invoice.InvoiceNo)
	assert.Equal(t, int64(8000), invoice.SubtotalCents)
	assert.Equal(t, int64(640), invoice.TaxCents)
	assert.Equal(t, int64(8640), invoice.TotalCents)
	assert.False(t, invoice.Paid)

	var reloaded serviceorderdomain.ServiceOrder
	require.NoError(t, f.db.First(&reloaded, "id = ?", order.ID).Error)
	assert.True(t, reloaded.Invoiced)

	_, err = f.svc.CreateFromSeed(ctx, domain.CreateFromSeedRequest{
		OrderID: order.ID.String(),
		Seed:    seed,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestMarkPaid(t *testing.T) {
	today := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)
	f := setup(t, today)
	order := f.seedOrder(t, nil)
	ctx := context.Background()

	seed, err := f.svc.Seed(ctx, domain.SeedRequest{OrderID: order.ID.String()})
	require.NoError(t, err)
	_, err = f.svc.CreateFromSeed(ctx, domain.CreateFromSeedRequest{
		OrderID: order.ID.String(),
		Seed:    seed,
	})
	require.NoError(t, err)

	paid, err := f.svc.MarkPaid(ctx, order.ID.String())
	require.NoError(t, err)
	assert.True(t, paid.Paid)

	fetched, err := f.svc.GetForOrder(ctx, order.ID.String())
	require.NoError(t, err)
	assert.True(t, fetched.Paid)
}

func TestSeed_UnknownOrder(t *testing.T) {
	f := setup(t, time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC))

	_, err := f.svc.Seed(context.Background(), domain.SeedRequest{OrderID: f.node.Generate().String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
