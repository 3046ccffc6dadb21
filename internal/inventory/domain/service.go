package domain

import (
	"context"
	"errors"
)

// AdjustRequest applies one signed stock delta to a product.
type AdjustRequest struct {
	ProductID string
	Kind      MovementKind
	Delta     int64
	Reason    *string
	Actor     *string
}

type MovementsRequest struct {
	ProductID string
	Limit     int
}

type Service interface {
	Level(ctx context.Context, productID string) (*StockLevel, error)
	Levels(ctx context.Context) ([]StockLevel, error)
	Adjust(ctx context.Context, req AdjustRequest) (*StockLevel, error)
	Movements(ctx context.Context, req MovementsRequest) ([]StockMovement, error)
}

var (
	ErrInvalidProduct    = errors.New("invalid_product")
	ErrInvalidKind       = errors.New("invalid_movement_kind")
	ErrInvalidDelta      = errors.New("invalid_delta")
	ErrProductNotFound   = errors.New("product_not_found")
	ErrInsufficientStock = errors.New("insufficient_stock")
)
