package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sipworks/brewadmin/internal/client/domain"
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
	repo  domain.Repository
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Client, error) {
	company := strings.TrimSpace(req.Company)
	if company == "" {
		return nil, domain.ErrInvalidCompany
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "CNY"
	}

	now := time.Now().UTC()
	c := &domain.Client{
		ID:        s.genID.Generate(),
		Company:   company,
		Contact:   trimPtr(req.Contact),
		Email:     trimPtr(req.Email),
		Phone:     trimPtr(req.Phone),
		Address:   trimPtr(req.Address),
		Currency:  currency,
		Notes:     trimPtr(req.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Metadata != nil {
		c.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.Create(ctx, s.db, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Client, error) {
	item, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Company != nil {
		company := strings.TrimSpace(*req.Company)
		if company == "" {
			return nil, domain.ErrInvalidCompany
		}
		item.Company = company
	}
	if req.Contact != nil {
		item.Contact = trimPtr(req.Contact)
	}
	if req.Email != nil {
		item.Email = trimPtr(req.Email)
	}
	if req.Phone != nil {
		item.Phone = trimPtr(req.Phone)
	}
	if req.Address != nil {
		item.Address = trimPtr(req.Address)
	}
	if req.Currency != nil {
		item.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.Notes != nil {
		item.Notes = trimPtr(req.Notes)
	}
	if req.Metadata != nil {
		item.Metadata = datatypes.JSONMap(req.Metadata)
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.find(ctx, id)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Client, error) {
	return s.repo.List(ctx, s.db, domain.ListRequest{
		Search:   strings.TrimSpace(req.Search),
		Currency: strings.ToUpper(strings.TrimSpace(req.Currency)),
	})
}

// Delete refuses to remove a client that still has invoices; the dashboard
// offers cancelling those first.
func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.WithContext(ctx).
		Table("invoices").
		Where("client_id = ?", item.ID).
		Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrClientInUse
	}

	return s.repo.Delete(ctx, s.db, item.ID)
}

func (s *Service) find(ctx context.Context, id string) (*domain.Client, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
