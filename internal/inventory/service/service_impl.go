package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sipworks/brewadmin/internal/inventory/domain"
	productdomain "github.com/sipworks/brewadmin/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	ProductRepo productdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	productRepo productdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("inventory.service"),
		genID:       p.GenID,
		productRepo: p.ProductRepo,
	}
}

func (s *Service) Level(ctx context.Context, productID string) (*domain.StockLevel, error) {
	id, err := s.productID(ctx, productID)
	if err != nil {
		return nil, err
	}

	var level domain.StockLevel
	err = s.db.WithContext(ctx).First(&level, "product_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No movements yet: report an explicit zero level.
		return &domain.StockLevel{ProductID: id, UpdatedAt: time.Now().UTC()}, nil
	}
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func (s *Service) Levels(ctx context.Context) ([]domain.StockLevel, error) {
	var levels []domain.StockLevel
	err := s.db.WithContext(ctx).Order("product_id ASC").Find(&levels).Error
	if err != nil {
		return nil, err
	}
	return levels, nil
}

// Adjust writes the movement and updates the level inside one transaction,
// so the journal and the level can never disagree.
func (s *Service) Adjust(ctx context.Context, req domain.AdjustRequest) (*domain.StockLevel, error) {
	id, err := s.productID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	switch req.Kind {
	case domain.MovementIn, domain.MovementOut, domain.MovementAdjust:
	default:
		return nil, domain.ErrInvalidKind
	}
	if req.Delta == 0 {
		return nil, domain.ErrInvalidDelta
	}
	if req.Kind == domain.MovementIn && req.Delta < 0 {
		return nil, domain.ErrInvalidDelta
	}
	if req.Kind == domain.MovementOut && req.Delta > 0 {
		return nil, domain.ErrInvalidDelta
	}

	now := time.Now().UTC()
	level := &domain.StockLevel{ProductID: id}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.First(level, "product_id = ?", id).Error
		fresh := errors.Is(findErr, gorm.ErrRecordNotFound)
		if findErr != nil && !fresh {
			return findErr
		}

		next := level.Quantity + req.Delta
		if next < 0 {
			return domain.ErrInsufficientStock
		}

		movement := &domain.StockMovement{
			ID:        s.genID.Generate(),
			ProductID: id,
			Kind:      req.Kind,
			Delta:     req.Delta,
			Reason:    req.Reason,
			Actor:     req.Actor,
			CreatedAt: now,
		}
		if err := tx.Create(movement).Error; err != nil {
			return err
		}

		level.Quantity = next
		level.UpdatedAt = now
		if fresh {
			level.ProductID = id
			return tx.Create(level).Error
		}
		return tx.Model(&domain.StockLevel{}).
			Where("product_id = ?", id).
			Updates(map[string]any{"quantity": next, "updated_at": now}).Error
	})
	if err != nil {
		return nil, err
	}

	return level, nil
}

func (s *Service) Movements(ctx context.Context, req domain.MovementsRequest) ([]domain.StockMovement, error) {
	stmt := s.db.WithContext(ctx).Model(&domain.StockMovement{})

	if strings.TrimSpace(req.ProductID) != "" {
		id, err := s.productID(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Where("product_id = ?", id)
	}

	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var movements []domain.StockMovement
	err := stmt.Order("created_at DESC").Limit(limit).Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

func (s *Service) productID(ctx context.Context, raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidProduct
	}

	product, err := s.productRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrProductNotFound
	}
	return id, nil
}
