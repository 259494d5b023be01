package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/employee/domain"
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
		log:   p.Log.Named("employee.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateEmployeeRequest) (domain.Employee, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Employee{}, domain.ErrInvalidName
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "Technician"
	}

	now := time.Now().UTC()
	employee := domain.Employee{
		ID:        s.genID.Generate(),
		Name:      name,
		Role:      role,
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &employee); err != nil {
		return domain.Employee{}, err
	}
	return employee, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateEmployeeRequest) (domain.Employee, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Employee{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Employee{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Role != nil {
		fields["role"] = strings.TrimSpace(*req.Role)
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		fields["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}

	var updated domain.Employee
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
		fresh, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		updated = *fresh
		return nil
	})
	if err != nil {
		return domain.Employee{}, err
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

func (s *Service) List(ctx context.Context, req domain.ListEmployeesRequest) ([]domain.Employee, error) {
	items, err := s.repo.List(ctx, s.db, !req.IncludeInactive)
	if err != nil {
		return nil, err
	}
	employees := make([]domain.Employee, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		employees = append(employees, *item)
	}
	return employees, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Employee, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Employee{}, err
	}
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Employee{}, err
	}
	if item == nil {
		return domain.Employee{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
