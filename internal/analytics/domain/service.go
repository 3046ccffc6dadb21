package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// MonthlyRevenue is one month of accounting figures. Amounts are the CNY
// columns, so USD invoices contribute their converted values.
type MonthlyRevenue struct {
	Month        string          `json:"month"`
	InvoiceCount int64           `json:"invoice_count"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
}

type StatusTotal struct {
	Status       string          `json:"status"`
	InvoiceCount int64           `json:"invoice_count"`
	Total        decimal.Decimal `json:"total"`
}

type TopProduct struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}

type TopClient struct {
	ClientID     string          `json:"client_id"`
	Company      string          `json:"company"`
	InvoiceCount int64           `json:"invoice_count"`
	Total        decimal.Decimal `json:"total"`
}

// Service reads aggregates off the invoice tables. Cancelled invoices are
// excluded everywhere except the by-status breakdown.
type Service interface {
	RevenueByMonth(ctx context.Context, year int) ([]MonthlyRevenue, error)
	TotalsByStatus(ctx context.Context) ([]StatusTotal, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
	TopClients(ctx context.Context, limit int) ([]TopClient, error)
}
