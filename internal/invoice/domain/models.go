// Package domain contains persistence models and contracts for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents invoice payment lifecycle states.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Language selects the label set used when rendering the invoice document.
type Language string

const (
	LanguageZH Language = "zh"
	LanguageEN Language = "en"
)

// Invoice is the persisted invoice header. Monetary fields are stored twice:
// the *_original columns hold native-currency figures, the unsuffixed columns
// hold the CNY accounting equivalents. For CNY invoices the two sets match
// and fx_to_cny is exactly 1.
type Invoice struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	InvoiceNumber string        `gorm:"type:text;not null;uniqueIndex" json:"invoice_number"`
	NumberSeq     int64         `gorm:"column:number_seq;not null;default:0" json:"-"`
	ClientID      snowflake.ID  `gorm:"not null;index" json:"client_id"`
	PONumber      *string       `gorm:"column:po_number;type:text" json:"po_number,omitempty"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	PaymentStatus PaymentStatus `gorm:"type:text;not null;default:'pending'" json:"payment_status"`
	Notes         *string       `gorm:"type:text" json:"notes,omitempty"`
	Language      Language      `gorm:"type:text;not null;default:'zh'" json:"language"`

	TaxRate     decimal.Decimal `gorm:"type:decimal(6,3);not null" json:"tax_rate"`
	TaxIncluded bool            `gorm:"not null" json:"tax_included"`
	Currency    string          `gorm:"type:text;not null" json:"currency"`
	FxToCNY     decimal.Decimal `gorm:"column:fx_to_cny;type:decimal(12,6);not null;default:1" json:"fx_to_cny"`

	Subtotal         decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"subtotal"`
	TaxAmount        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"tax_amount"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	SubtotalOriginal decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"subtotal_original"`
	TaxOriginal      decimal.Decimal `gorm:"column:tax_amount_original;type:decimal(18,4);not null" json:"tax_amount_original"`
	TotalOriginal    decimal.Decimal `gorm:"column:total_amount_original;type:decimal(18,4);not null" json:"total_amount_original"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []InvoiceItem `gorm:"-" json:"items,omitempty"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is a line on an invoice. Items are owned by their invoice:
// updates replace the whole set and deletion removes them with the header.
type InvoiceItem struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID snowflake.ID    `gorm:"not null;index" json:"invoice_id"`
	ProductID snowflake.ID    `gorm:"not null;index" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	Total     decimal.Decimal `gorm:"column:total_price;type:decimal(18,4);not null" json:"total_price"`
	CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }
