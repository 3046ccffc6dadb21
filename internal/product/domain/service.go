package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	SKU       string
	Name      string
	NameEN    *string
	Category  string
	UnitPrice decimal.Decimal
	Currency  string
	Active    *bool
	Metadata  map[string]any
}

type UpdateRequest struct {
	ID        string
	Name      *string
	NameEN    *string
	Category  *string
	UnitPrice *decimal.Decimal
	Currency  *string
	Active    *bool
	Metadata  map[string]any
}

type ListRequest struct {
	Category string
	Active   *bool
	Search   string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Product, error)
	Update(ctx context.Context, req UpdateRequest) (*Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, req ListRequest) ([]Product, error)
	Archive(ctx context.Context, id string) (*Product, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidSKU   = errors.New("invalid_sku")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidPrice = errors.New("invalid_unit_price")
	ErrInvalidID    = errors.New("invalid_id")
	ErrDuplicateSKU = errors.New("duplicate_sku")
	ErrNotFound     = errors.New("not_found")
	ErrProductInUse = errors.New("product_in_use")
)
