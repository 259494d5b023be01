package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/catalog/domain"
	"github.com/founderspc/somanager/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateEntryRequest) (domain.ServiceCatalog, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ServiceCatalog{}, domain.ErrInvalidName
	}
	if req.DefaultPriceCents < 0 {
		return domain.ServiceCatalog{}, domain.ErrInvalidPrice
	}

	now := time.Now().UTC()
	entry := domain.ServiceCatalog{
		ID:                s.genID.Generate(),
		Name:              name,
		DefaultPriceCents: req.DefaultPriceCents,
		Description:       strings.TrimSpace(req.Description),
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Insert(ctx, s.db, &entry); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.ServiceCatalog{}, domain.ErrNameTaken
		}
		return domain.ServiceCatalog{}, err
	}

	return entry, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateEntryRequest) (domain.ServiceCatalog, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.ServiceCatalog{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.ServiceCatalog{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.DefaultPriceCents != nil {
		if *req.DefaultPriceCents < 0 {
			return domain.ServiceCatalog{}, domain.ErrInvalidPrice
		}
		fields["default_price_cents"] = *req.DefaultPriceCents
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}

	var updated domain.ServiceCatalog
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		if err := s.repo.UpdateFields(ctx, tx, id, fields); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrNameTaken
			}
			return err
		}
		fresh, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		updated = *fresh
		return nil
	})
	if err != nil {
		return domain.ServiceCatalog{}, err
	}
	return updated, nil
}

// Deactivate flips the active flag. Entries are never hard-deleted while
// contracted services reference them; the schema nullifies those links only
// on a hard delete, which this service does not expose.
func (s *Service) Deactivate(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		return s.repo.UpdateFields(ctx, tx, id, map[string]any{
			"active":     false,
			"updated_at": time.Now().UTC(),
		})
	})
}

func (s *Service) List(ctx context.Context, req domain.ListEntriesRequest) (domain.ListEntriesResponse, error) {
	items, err := s.repo.List(ctx, s.db, !req.IncludeInactive)
	if err != nil {
		return domain.ListEntriesResponse{}, err
	}

	entries := make([]domain.ServiceCatalog, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		entries = append(entries, *item)
	}
	return domain.ListEntriesResponse{Entries: entries}, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.ServiceCatalog, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.ServiceCatalog{}, err
	}
	entry, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.ServiceCatalog{}, err
	}
	if entry == nil {
		return domain.ServiceCatalog{}, domain.ErrNotFound
	}
	return *entry, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
