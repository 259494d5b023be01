package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/catalog/domain"
	"github.com/founderspc/somanager/internal/catalog/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.ServiceCatalog{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestCreate(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	entry, err := svc.Create(ctx, domain.CreateEntryRequest{
		Name:              "Window Wash",
		DefaultPriceCents: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Window Wash", entry.Name)
	assert.Equal(t, int64(5000), entry.DefaultPriceCents)
	assert.True(t, entry.Active)

	_, err = svc.Create(ctx, domain.CreateEntryRequest{Name: "Window Wash"})
	assert.ErrorIs(t, err, domain.ErrNameTaken)

	_, err = svc.Create(ctx, domain.CreateEntryRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateEntryRequest{Name: "Carpet", DefaultPriceCents: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestDeactivate_SoftHidesFromList(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	entry, err := svc.Create(ctx, domain.CreateEntryRequest{Name: "Window Wash", DefaultPriceCents: 5000})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateEntryRequest{Name: "Carpet", DefaultPriceCents: 3000})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, entry.ID.String()))

	active, err := svc.List(ctx, domain.ListEntriesRequest{})
	require.NoError(t, err)
	require.Len(t, active.Entries, 1)
	assert.Equal(t, "Carpet", active.Entries[0].Name)

	all, err := svc.List(ctx, domain.ListEntriesRequest{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all.Entries, 2)

	fetched, err := svc.GetByID(ctx, entry.ID.String())
	require.NoError(t, err)
	assert.False(t, fetched.Active)
}
