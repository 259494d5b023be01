package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/clock"
	"github.com/founderspc/somanager/internal/serviceorder/domain"
	"github.com/founderspc/somanager/internal/serviceorder/repository"
	sitedomain "github.com/founderspc/somanager/internal/site/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	svc   domain.Service
	node  *snowflake.Node
	clock *clock.FakeClock
}

func setup(t *testing.T, now time.Time) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&sitedomain.Site{},
		&sitedomain.SiteService{},
		&domain.ServiceOrder{},
		&domain.SOService{},
		&domain.SOAssignment{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(now)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  repository.Provide(),
	})
	return &fixture{db: db, svc: svc, node: node, clock: fake}
}

func (f *fixture) createSite(t *testing.T, cadenceCode string) sitedomain.Site {
	t.Helper()
	now := time.Now().UTC()
	site := sitedomain.Site{
		ID:          f.node.Generate(),
		CustomerID:  f.node.Generate(),
		Name:        "Main Office",
		CadenceCode: cadenceCode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, f.db.Create(&site).Error)
	return site
}

func (f *fixture) addSiteService(t *testing.T, siteID snowflake.ID, name string, priceCents int64, active bool) sitedomain.SiteService {
	t.Helper()
	now := time.Now().UTC()
	sv := sitedomain.SiteService{
		ID:             f.node.Generate(),
		SiteID:         siteID,
		Name:           name,
		UnitPriceCents: priceCents,
		Active:         active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, f.db.Create(&sv).Error)
	return sv
}

func TestCreate_SeedsActiveServices(t *testing.T) {
	f := setup(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	site := f.createSite(t, "")
	f.addSiteService(t, site.ID, "Window Wash", 5000, true)
	f.addSiteService(t, site.ID, "Old Service", 1200, false)

	result, err := f.svc.Create(context.Background(), domain.CreateOrderRequest{
		SiteID: site.ID.String(),
		Title:  "June visit",
	})
	require.NoError(t, err)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, "Window Wash", result.Lines[0].Name)
	assert.Equal(t, int64(5000), result.Lines[0].UnitPriceCents)
}

func TestSeedSnapshot_ImmuneToLaterPriceChanges(t *testing.T) {
	f := setup(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	site := f.createSite(t, "")
	sv := f.addSiteService(t, site.ID, "Window Wash", 5000, true)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, domain.CreateOrderRequest{SiteID: site.ID.String()})
	require.NoError(t, err)
	require.Len(t, first.Lines, 1)
	assert.Equal(t, int64(5000), first.Lines[0].UnitPriceCents)

	require.NoError(t, f.db.Model(&sitedomain.SiteService{}).
		Where("id = ?", sv.ID).
		Update("unit_price_cents", 6000).Error)

	reloaded, err := f.svc.Get(ctx, first.Order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(5000), reloaded.Lines[0].UnitPriceCents)

	second, err := f.svc.Create(ctx, domain.CreateOrderRequest{SiteID: site.ID.String()})
	require.NoError(t, err)
	require.Len(t, second.Lines, 1)
	assert.Equal(t, int64(6000), second.Lines[0].UnitPriceCents)
}

func TestSeedFromSite_ReplacesLines(t *testing.T) {
	f := setup(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	site := f.createSite(t, "")
	sv := f.addSiteService(t, site.ID, "Window Wash", 5000, true)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, domain.CreateOrderRequest{SiteID: site.ID.String()})
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&sitedomain.SiteService{}).
		Where("id = ?", sv.ID).
		Update("unit_price_cents", 7500).Error)
	f.addSiteService(t, site.ID, "Carpet", 3000, true)

	reseeded, err := f.svc.SeedFromSite(ctx, order.Order.ID.String())
	require.NoError(t, err)
	require.Len(t, reseeded.Lines, 2)
	byName := map[string]int64{}
	for _, line := range reseeded.Lines {
		byName[line.Name] = line.UnitPriceCents
	}
	assert.Equal(t, int64(7500), byName["Window Wash"])
	assert.Equal(t, int64(3000), byName["Carpet"])
}

func TestSetLineItems_IgnoresActiveFlag(t *testing.T) {
	f := setup(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	site := f.createSite(t, "")
	retired := f.addSiteService(t, site.ID, "Old Service", 1200, false)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		SiteID:     site.ID.String(),
		ServiceIDs: []string{},
	})
	require.NoError(t, err)
	require.Empty(t, order.Lines)

	result, err := f.svc.SetLineItems(ctx, order.Order.ID.String(), []string{retired.ID.String()})
	require.NoError(t, err)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, retired.ID, result.Lines[0].SiteServiceID)
	assert.Equal(t, int64(1200), result.Lines[0].UnitPriceCents)
}

func TestSetLineItems_MissingServiceAborts(t *testing.T) {
	f := setup(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	site := f.createSite(t, "")
	existing := f.addSiteService(t, site.ID, "Window Wash", 5000, true)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, domain.CreateOrderRequest{SiteID: site.ID.String()})
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)

	_, err = f.svc.SetLineItems(ctx, order.Order.ID.String(), []string{
		existing.ID.String(),
		f.node.Generate().String(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	reloaded, err := f.svc.Get(ctx, order.Order.ID.String())
	require.NoError(t, err)
	assert.Len(t, reloaded.Lines, 1)
}

func TestCreateNextForSite_Biweekly(t *testing.T) {
	f := setup(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	site := f.createSite(t, "biweekly")
	f.addSiteService(t, site.ID, "Window Wash", 5000, true)
	ctx := context.Background()

	// No prior orders: the first visit lands on today itself.
	first, err := f.svc.CreateNextForSite(ctx, domain.CreateNextOrderRequest{SiteID: site.ID.String()})
	require.NoError(t, err)
	require.NotNil(t, first.Order.ScheduledDate)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), *first.Order.ScheduledDate)
	assert.Equal(t, "Biweekly Cleaning", first.Order.Title)
	require.Len(t, first.Lines, 1)
	assert.Equal(t, "Window Wash", first.Lines[0].Name)
	assert.Equal(t, int64(5000), first.Lines[0].UnitPriceCents)

	// The base is the last scheduled order, not today.
	second, err := f.svc.CreateNextForSite(ctx, domain.CreateNextOrderRequest{
		SiteID: site.ID.String(),
		Today:  time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotNil(t, second.Order.ScheduledDate)
	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), *second.Order.ScheduledDate)
}

func TestCreateNextForSite_ExplicitToday(t *testing.T) {
	f := setup(t, time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC))
	site := f.createSite(t, "weekly")
	ctx := context.Background()

	// Explicit today overrides the service clock.
	result, err := f.svc.CreateNextForSite(ctx, domain.CreateNextOrderRequest{
		SiteID: site.ID.String(),
		Today:  time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Order.ScheduledDate)
	assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), *result.Order.ScheduledDate)

	next, err := f.svc.CreateNextForSite(ctx, domain.CreateNextOrderRequest{SiteID: site.ID.String()})
	require.NoError(t, err)
	require.NotNil(t, next.Order.ScheduledDate)
	assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), *next.Order.ScheduledDate)
}

func TestListDueInMonth(t *testing.T) {
	f := setup(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	site := f.createSite(t, "")
	ctx := context.Background()

	inMonth := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	outOfMonth := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	_, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		SiteID:        site.ID.String(),
		ScheduledDate: &inMonth,
	})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, domain.CreateOrderRequest{
		SiteID:        site.ID.String(),
		ScheduledDate: &outOfMonth,
	})
	require.NoError(t, err)

	due, err := f.svc.ListDueInMonth(ctx, 2024, 6)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.NotNil(t, due[0].ScheduledDate)
	assert.Equal(t, inMonth, *due[0].ScheduledDate)

	_, err = f.svc.ListDueInMonth(ctx, 2024, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
}

func TestAssignEmployee_Idempotent(t *testing.T) {
	f := setup(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	site := f.createSite(t, "")
	ctx := context.Background()

	order, err := f.svc.Create(ctx, domain.CreateOrderRequest{SiteID: site.ID.String()})
	require.NoError(t, err)

	employeeID := f.node.Generate()
	first, err := f.svc.AssignEmployee(ctx, order.Order.ID.String(), employeeID.String())
	require.NoError(t, err)

	second, err := f.svc.AssignEmployee(ctx, order.Order.ID.String(), employeeID.String())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	assignments, err := f.svc.ListAssignments(ctx, order.Order.ID.String())
	require.NoError(t, err)
	assert.Len(t, assignments, 1)

	require.NoError(t, f.svc.UnassignEmployee(ctx, order.Order.ID.String(), employeeID.String()))
	assignments, err = f.svc.ListAssignments(ctx, order.Order.ID.String())
	require.NoError(t, err)
	assert.Empty(t, assignments)
}
