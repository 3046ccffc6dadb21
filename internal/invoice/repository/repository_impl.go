package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/sipworks/brewadmin/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, invoice *domain.Invoice, items []domain.InvoiceItem) error {
	if err := db.WithContext(ctx).Create(invoice).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *repo) UpdateHeader(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	if invoice == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("id = ?", invoice.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(invoice).Error
}

// ReplaceItems swaps the full line-item set: delete-all then insert-all.
// Callers must run it inside a transaction so readers never observe a
// partial set.
func (r *repo) ReplaceItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, items []domain.InvoiceItem) error {
	if err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Delete(&domain.InvoiceItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) error {
	if err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Delete(&domain.InvoiceItem{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).
		Where("id = ?", invoiceID).
		Delete(&domain.Invoice{}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) FindItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]domain.InvoiceItem, error) {
	var items []domain.InvoiceItem
	err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.Invoice, error) {
	stmt := db.WithContext(ctx).Model(&domain.Invoice{})

	if filter.Status != nil {
		stmt = stmt.Where("payment_status = ?", *filter.Status)
	}
	if filter.ClientID != nil {
		clientID, err := snowflake.ParseString(*filter.ClientID)
		if err != nil {
			return nil, domain.ErrInvalidClient
		}
		stmt = stmt.Where("client_id = ?", clientID)
	}
	if filter.CreatedFrom != nil {
		stmt = stmt.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		stmt = stmt.Where("created_at <= ?", *filter.CreatedTo)
	}
	if filter.CursorID != 0 {
		stmt = stmt.Where("id < ?", filter.CursorID)
	}
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit)
	}

	// snowflake IDs are time ordered, so id DESC is newest first
	var invoices []domain.Invoice
	if err := stmt.Order("id DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// NextSequence returns one past the highest sequence ever issued. The
// high-water mark survives deletes, so a generated number never collides
// with one still on file.
func (r *repo) NextSequence(ctx context.Context, db *gorm.DB) (int64, error) {
	var maxSeq int64
	err := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Select("COALESCE(MAX(number_seq), 0)").
		Scan(&maxSeq).Error
	if err != nil {
		return 0, err
	}
	return maxSeq + 1, nil
}
