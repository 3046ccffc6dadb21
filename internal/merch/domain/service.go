package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidID   = errors.New("invalid_merch_id")
	ErrInvalidName = errors.New("invalid_merch_name")
	ErrInvalidKind = errors.New("invalid_merch_kind")
	ErrInvalidCost = errors.New("invalid_merch_cost")
	ErrNotFound    = errors.New("merch_not_found")
)

type CreateRequest struct {
	Name     string          `json:"name"`
	Kind     string          `json:"kind"`
	Stock    int64           `json:"stock"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

type UpdateRequest struct {
	ID string `json:"-"`

	Name     *string          `json:"name"`
	Kind     *string          `json:"kind"`
	Stock    *int64           `json:"stock"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
	Active   *bool            `json:"active"`
}

type ListRequest struct {
	Kind   *string `form:"kind"`
	Active *bool   `form:"active"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*MerchItem, error)
	Update(ctx context.Context, req UpdateRequest) (*MerchItem, error)
	Get(ctx context.Context, id string) (*MerchItem, error)
	List(ctx context.Context, req ListRequest) ([]*MerchItem, error)
	Delete(ctx context.Context, id string) error
}
