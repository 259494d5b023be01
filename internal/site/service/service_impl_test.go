package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/founderspc/somanager/internal/catalog/domain"
	catalogrepository "github.com/founderspc/somanager/internal/catalog/repository"
	"github.com/founderspc/somanager/internal/clock"
	"github.com/founderspc/somanager/internal/site/domain"
	"github.com/founderspc/somanager/internal/site/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type orderStub struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	SiteID        snowflake.ID
	ScheduledDate *time.Time
}

func (orderStub) TableName() string { return "service_orders" }

func setupSiteService(t *testing.T, now time.Time) (*gorm.DB, domain.Service, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalogdomain.ServiceCatalog{},
		&domain.Site{},
		&domain.SiteService{},
		&orderStub{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clock.NewFakeClock(now),
		Repo:        repository.Provide(),
		CatalogRepo: catalogrepository.Provide(),
	})
	return db, svc, node
}

func createSite(t *testing.T, svc domain.Service, node *snowflake.Node, cadenceCode string) domain.Site {
	t.Helper()
	site, err := svc.Create(context.Background(), domain.CreateSiteRequest{
		CustomerID:  node.Generate().String(),
		Name:        "Main Office",
		CadenceCode: cadenceCode,
	})
	require.NoError(t, err)
	return site
}

func TestAddService_CatalogDefaults(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	db, svc, node := setupSiteService(t, now)
	site := createSite(t, svc, node, "")

	entry := catalogdomain.ServiceCatalog{
		ID:                node.Generate(),
		Name:              "Window Wash",
		DefaultPriceCents: 5000,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	require.NoError(t, db.Create(&entry).Error)

	created, err := svc.AddService(context.Background(), domain.AddServiceRequest{
		SiteID:    site.ID.String(),
		CatalogID: entry.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Window Wash", created.Name)
	assert.Equal(t, int64(5000), created.UnitPriceCents)
	require.NotNil(t, created.CatalogID)
	assert.Equal(t, entry.ID, *created.CatalogID)
	assert.True(t, created.Active)

	override := int64(4500)
	custom, err := svc.AddService(context.Background(), domain.AddServiceRequest{
		SiteID:         site.ID.String(),
		Name:           "Deep Clean",
		CatalogID:      entry.ID.String(),
		UnitPriceCents: &override,
	})
	require.NoError(t, err)
	assert.Equal(t, "Deep Clean", custom.Name)
	assert.Equal(t, int64(4500), custom.UnitPriceCents)
}

func TestAddService_UnresolvedCatalogTolerated(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, svc, node := setupSiteService(t, now)
	site := createSite(t, svc, node, "")

	created, err := svc.AddService(context.Background(), domain.AddServiceRequest{
		SiteID:    site.ID.String(),
		CatalogID: node.Generate().String(),
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultServiceName, created.Name)
	assert.Equal(t, int64(0), created.UnitPriceCents)
	assert.Nil(t, created.CatalogID)
}

func TestAddService_DuplicateName(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, svc, node := setupSiteService(t, now)
	site := createSite(t, svc, node, "")

	_, err := svc.AddService(context.Background(), domain.AddServiceRequest{
		SiteID: site.ID.String(),
		Name:   "Window Wash",
	})
	require.NoError(t, err)

	_, err = svc.AddService(context.Background(), domain.AddServiceRequest{
		SiteID: site.ID.String(),
		Name:   "Window Wash",
	})
	assert.ErrorIs(t, err, domain.ErrNameTaken)
}

func TestSiteService_InactiveInsertPersists(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	db, svc, node := setupSiteService(t, now)
	site := createSite(t, svc, node, "")

	retired := domain.SiteService{
		ID:        node.Generate(),
		SiteID:    site.ID,
		Name:      "Old Service",
		Active:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&retired).Error)

	var got domain.SiteService
	require.NoError(t, db.First(&got, "id = ?", retired.ID).Error)
	assert.False(t, got.Active)
}

func TestReconcileServiceNames(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, svc, node := setupSiteService(t, now)
	site := createSite(t, svc, node, "")
	ctx := context.Background()

	price := int64(5000)
	_, err := svc.AddService(ctx, domain.AddServiceRequest{
		SiteID:         site.ID.String(),
		Name:           "Window Wash",
		UnitPriceCents: &price,
	})
	require.NoError(t, err)
	_, err = svc.AddService(ctx, domain.AddServiceRequest{
		SiteID: site.ID.String(),
		Name:   "Deep Clean",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ReconcileServiceNames(ctx, site.ID.String(), []string{"Window Wash", "Carpet"}))

	services, err := svc.ListServices(ctx, site.ID.String())
	require.NoError(t, err)
	require.Len(t, services, 3)

	byName := map[string]domain.SiteService{}
	for _, sv := range services {
		byName[sv.Name] = sv
	}
	assert.True(t, byName["Window Wash"].Active)
	assert.Equal(t, int64(5000), byName["Window Wash"].UnitPriceCents)
	assert.False(t, byName["Deep Clean"].Active)
	assert.True(t, byName["Carpet"].Active)
	assert.Equal(t, int64(0), byName["Carpet"].UnitPriceCents)
}

func TestReconcileServiceNames_Idempotent(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, svc, node := setupSiteService(t, now)
	site := createSite(t, svc, node, "")
	ctx := context.Background()

	names := []string{"Window Wash", "Carpet"}
	require.NoError(t, svc.ReconcileServiceNames(ctx, site.ID.String(), names))
	first, err := svc.ListServices(ctx, site.ID.String())
	require.NoError(t, err)

	require.NoError(t, svc.ReconcileServiceNames(ctx, site.ID.String(), names))
	second, err := svc.ListServices(ctx, site.ID.String())
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Active, second[i].Active)
	}
}

func TestReconcileServiceNames_Reactivates(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, svc, node := setupSiteService(t, now)
	site := createSite(t, svc, node, "")
	ctx := context.Background()

	require.NoError(t, svc.ReconcileServiceNames(ctx, site.ID.String(), []string{"Window Wash"}))
	require.NoError(t, svc.ReconcileServiceNames(ctx, site.ID.String(), nil))

	services, err := svc.ListServices(ctx, site.ID.String())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.False(t, services[0].Active)

	require.NoError(t, svc.ReconcileServiceNames(ctx, site.ID.String(), []string{"Window Wash"}))
	services, err = svc.ListServices(ctx, site.ID.String())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.True(t, services[0].Active)
}

func TestNextDue(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	db, svc, node := setupSiteService(t, now)
	site := createSite(t, svc, node, "biweekly")
	ctx := context.Background()

	// No scheduled history: due today.
	due, err := svc.NextDue(ctx, site.ID.String(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), due)

	scheduled := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&orderStub{
		ID:            node.Generate(),
		SiteID:        site.ID,
		ScheduledDate: &scheduled,
	}).Error)

	due, err = svc.NextDue(ctx, site.ID.String(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC), due)
}

func TestNextDue_UsesLatestScheduled(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	db, svc, node := setupSiteService(t, now)
	site := createSite(t, svc, node, "weekly")
	ctx := context.Background()

	for _, day := range []int{20, 6, 13} {
		scheduled := time.Date(2024, time.June, day, 0, 0, 0, 0, time.UTC)
		require.NoError(t, db.Create(&orderStub{
			ID:            node.Generate(),
			SiteID:        site.ID,
			ScheduledDate: &scheduled,
		}).Error)
	}

	due, err := svc.NextDue(ctx, site.ID.String(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 27, 0, 0, 0, 0, time.UTC), due)
}

func TestNextDue_UnknownSite(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, svc, node := setupSiteService(t, now)

	_, err := svc.NextDue(context.Background(), node.Generate().String(), time.Time{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
