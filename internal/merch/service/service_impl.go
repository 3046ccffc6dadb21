package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sipworks/brewadmin/internal/merch/domain"
	"github.com/sipworks/brewadmin/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Store repository.Repository[domain.MerchItem]
}

type service struct {
	log   *zap.Logger
	genID *snowflake.Node
	store repository.Repository[domain.MerchItem]
}

func New(p Params) domain.Service {
	return &service{
		log:   p.Log.Named("merch.service"),
		genID: p.GenID,
		store: p.Store,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.MerchItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	kind := strings.TrimSpace(req.Kind)
	if kind == "" {
		return nil, domain.ErrInvalidKind
	}
	if req.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidCost
	}

	now := time.Now().UTC()
	item := &domain.MerchItem{
		ID:        s.genID.Generate(),
		Name:      name,
		Kind:      kind,
		Stock:     req.Stock,
		UnitCost:  req.UnitCost,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.MerchItem, error) {
	item, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Kind != nil {
		kind := strings.TrimSpace(*req.Kind)
		if kind == "" {
			return nil, domain.ErrInvalidKind
		}
		item.Kind = kind
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}
	if req.UnitCost != nil {
		if req.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidCost
		}
		item.UnitCost = *req.UnitCost
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.MerchItem, error) {
	return s.find(ctx, id)
}

func (s *service) List(ctx context.Context, req domain.ListRequest) ([]*domain.MerchItem, error) {
	query := &domain.MerchItem{}
	if req.Kind != nil {
		query.Kind = *req.Kind
	}
	items, err := s.store.Find(ctx, query, "created_at DESC")
	if err != nil {
		return nil, err
	}
	// struct queries drop zero values, so the active filter runs here
	if req.Active != nil {
		filtered := items[:0]
		for _, item := range items {
			if item.Active == *req.Active {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}
	return items, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	item, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, item.ID.String())
}

func (s *service) find(ctx context.Context, id string) (*domain.MerchItem, error) {
	itemID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	item, err := s.store.FindOne(ctx, &domain.MerchItem{ID: itemID})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}
