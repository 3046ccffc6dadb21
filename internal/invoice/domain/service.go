package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/sipworks/brewadmin/pkg/db/pagination"
)

// ItemInput is one line as submitted by the invoice editor.
type ItemInput struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateRequest carries everything needed to create an invoice. When
// InvoiceNumber is empty a number is generated from the configured template.
type CreateRequest struct {
	InvoiceNumber string
	ClientID      string
	PONumber      *string
	DueDate       *time.Time
	Notes         *string
	Language      string

	TaxRate     decimal.Decimal
	TaxIncluded bool
	Currency    string
	FxToCNY     decimal.Decimal

	Items []ItemInput
}

// UpdateRequest replaces the invoice's entire line-item collection and
// rewrites the header. There is no partial line patching.
type UpdateRequest struct {
	ID string

	ClientID *string
	PONumber *string
	DueDate  *time.Time
	Notes    *string
	Language *string

	TaxRate     *decimal.Decimal
	TaxIncluded *bool
	Currency    *string
	FxToCNY     *decimal.Decimal

	Items []ItemInput
}

// ListRequest filters the invoice list. Paging is cursor based: CursorID and
// Limit are resolved by the service from Page before the repository runs.
type ListRequest struct {
	Status      *PaymentStatus
	ClientID    *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	Page pagination.Pagination

	CursorID snowflake.ID
	Limit    int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Invoice, error)
	Update(ctx context.Context, req UpdateRequest) (*Invoice, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req ListRequest) ([]Invoice, *pagination.PageInfo, error)
	GetByID(ctx context.Context, id string) (*Invoice, error)
	MarkPaid(ctx context.Context, id string) (*Invoice, error)
	MarkCancelled(ctx context.Context, id string) (*Invoice, error)
}
