package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/customer/domain"
	"github.com/founderspc/somanager/pkg/db"
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
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        s.genID.Generate(),
		Name:      name,
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Notes:     req.Notes,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, domain.ErrNameTaken
		}
		return domain.Customer{}, err
	}

	return customer, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Customer{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		fields["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	var updated domain.Customer
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
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
		return domain.Customer{}, err
	}
	return updated, nil
}

// Delete removes the customer; sites, contracted services and orders under
// it go with it via FK cascade.
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

func (s *Service) List(ctx context.Context) (domain.ListCustomersResponse, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return domain.ListCustomersResponse{}, err
	}
	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}
	return domain.ListCustomersResponse{Customers: customers}, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Customer, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Customer{}, err
	}
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) CreatePaymentProfile(ctx context.Context, req domain.CreatePaymentProfileRequest) (domain.PaymentProfile, error) {
	customerID, err := s.parseID(req.CustomerID)
	if err != nil {
		return domain.PaymentProfile{}, err
	}

	method := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(req.Method)))
	switch method {
	case domain.PaymentMethodACH, domain.PaymentMethodCard, domain.PaymentMethodCheck:
	default:
		method = domain.PaymentMethodOther
	}

	profile := domain.PaymentProfile{
		ID:               s.genID.Generate(),
		CustomerID:       customerID,
		Method:           method,
		ACHRouting:       strings.TrimSpace(req.ACHRouting),
		ACHAccount:       strings.TrimSpace(req.ACHAccount),
		CardBrand:        strings.TrimSpace(req.CardBrand),
		CardLast4:        strings.TrimSpace(req.CardLast4),
		CardName:         strings.TrimSpace(req.CardName),
		CardExpMonth:     req.CardExpMonth,
		CardExpYear:      req.CardExpYear,
		BillStreet:       req.BillStreet,
		BillCityStateZip: strings.TrimSpace(req.BillCityStateZip),
		IsDefault:        true,
		CreatedAt:        time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := s.repo.FindByID(ctx, tx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		if err := s.repo.ClearDefaultProfiles(ctx, tx, customerID); err != nil {
			return err
		}
		return s.repo.InsertPaymentProfile(ctx, tx, &profile)
	})
	if err != nil {
		return domain.PaymentProfile{}, err
	}
	return profile, nil
}

func (s *Service) ListPaymentProfiles(ctx context.Context, rawCustomerID string) ([]domain.PaymentProfile, error) {
	customerID, err := s.parseID(rawCustomerID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListPaymentProfiles(ctx, s.db, customerID)
	if err != nil {
		return nil, err
	}
	profiles := make([]domain.PaymentProfile, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		profiles = append(profiles, *item)
	}
	return profiles, nil
}

func (s *Service) SetDefaultPaymentProfile(ctx context.Context, rawCustomerID, rawProfileID string) error {
	customerID, err := s.parseID(rawCustomerID)
	if err != nil {
		return err
	}
	profileID, err := s.parseID(rawProfileID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.repo.FindPaymentProfile(ctx, tx, profileID)
		if err != nil {
			return err
		}
		if profile == nil || profile.CustomerID != customerID {
			return domain.ErrNotFound
		}
		if err := s.repo.ClearDefaultProfiles(ctx, tx, customerID); err != nil {
			return err
		}
		return s.repo.SetDefaultProfile(ctx, tx, profileID)
	})
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
