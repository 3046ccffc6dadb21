package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository persists invoice headers and their line items. ReplaceItems and
// the write operations are expected to run inside the transaction handle the
// caller passes in; the service owns transaction boundaries.
type Repository interface {
	Create(ctx context.Context, db *gorm.DB, invoice *Invoice, items []InvoiceItem) error
	UpdateHeader(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	ReplaceItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, items []InvoiceItem) error
	Delete(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	FindItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]InvoiceItem, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Invoice, error)
	NextSequence(ctx context.Context, db *gorm.DB) (int64, error)
}
