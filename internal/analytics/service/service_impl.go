package service

import (
	"context"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	analyticsdomain "github.com/sipworks/brewadmin/internal/analytics/domain"
	invoicedomain "github.com/sipworks/brewadmin/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(p Params) analyticsdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("analytics.service"),
	}
}

type revenueRow struct {
	CreatedAt   time.Time       `gorm:"column:created_at"`
	Subtotal    decimal.Decimal `gorm:"column:subtotal"`
	TaxAmount   decimal.Decimal `gorm:"column:tax_amount"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount"`
}

// RevenueByMonth buckets per invoice in Go so the decimal sums stay exact
// across dialects. year 0 means all years.
func (s *Service) RevenueByMonth(ctx context.Context, year int) ([]analyticsdomain.MonthlyRevenue, error) {
	stmt := s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Select("created_at, subtotal, tax_amount, total_amount").
		Where("payment_status <> ?", invoicedomain.PaymentStatusCancelled)
	if year > 0 {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		stmt = stmt.Where("created_at >= ? AND created_at < ?", from, from.AddDate(1, 0, 0))
	}

	var rows []revenueRow
	if err := stmt.Find(&rows).Error; err != nil {
		return nil, err
	}

	byMonth := make(map[string]*analyticsdomain.MonthlyRevenue)
	for _, row := range rows {
		month := row.CreatedAt.UTC().Format("2006-01")
		bucket, ok := byMonth[month]
		if !ok {
			bucket = &analyticsdomain.MonthlyRevenue{Month: month}
			byMonth[month] = bucket
		}
		bucket.InvoiceCount++
		bucket.Subtotal = bucket.Subtotal.Add(row.Subtotal)
		bucket.Tax = bucket.Tax.Add(row.TaxAmount)
		bucket.Total = bucket.Total.Add(row.TotalAmount)
	}

	months := make([]analyticsdomain.MonthlyRevenue, 0, len(byMonth))
	for _, bucket := range byMonth {
		months = append(months, *bucket)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	return months, nil
}

type statusRow struct {
	Status string          `gorm:"column:payment_status"`
	Total  decimal.Decimal `gorm:"column:total_amount"`
}

// TotalsByStatus sums per invoice in Go, same as RevenueByMonth, so the
// decimal columns never pass through a dialect-level SUM.
func (s *Service) TotalsByStatus(ctx context.Context) ([]analyticsdomain.StatusTotal, error) {
	var rows []statusRow
	err := s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Select("payment_status, total_amount").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]*analyticsdomain.StatusTotal)
	for _, row := range rows {
		bucket, ok := byStatus[row.Status]
		if !ok {
			bucket = &analyticsdomain.StatusTotal{Status: row.Status}
			byStatus[row.Status] = bucket
		}
		bucket.InvoiceCount++
		bucket.Total = bucket.Total.Add(row.Total)
	}

	totals := make([]analyticsdomain.StatusTotal, 0, len(byStatus))
	for _, bucket := range byStatus {
		totals = append(totals, *bucket)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Status < totals[j].Status })
	return totals, nil
}

type topProductRow struct {
	ProductID  snowflake.ID    `gorm:"column:product_id"`
	Name       string          `gorm:"column:name"`
	Quantity   int64           `gorm:"column:quantity"`
	TotalPrice decimal.Decimal `gorm:"column:total_price"`
}

func (s *Service) TopProducts(ctx context.Context, limit int) ([]analyticsdomain.TopProduct, error) {
	limit = clampLimit(limit)

	var rows []topProductRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT ii.product_id,
		       p.name AS name,
		       ii.quantity,
		       ii.total_price
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		JOIN products p ON p.id = ii.product_id
		WHERE i.payment_status <> ?`,
		invoicedomain.PaymentStatusCancelled,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byProduct := make(map[snowflake.ID]*analyticsdomain.TopProduct)
	for _, row := range rows {
		bucket, ok := byProduct[row.ProductID]
		if !ok {
			bucket = &analyticsdomain.TopProduct{
				ProductID: row.ProductID.String(),
				Name:      row.Name,
			}
			byProduct[row.ProductID] = bucket
		}
		bucket.Quantity += row.Quantity
		bucket.Amount = bucket.Amount.Add(row.TotalPrice)
	}

	products := make([]analyticsdomain.TopProduct, 0, len(byProduct))
	for _, bucket := range byProduct {
		products = append(products, *bucket)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Quantity != products[j].Quantity {
			return products[i].Quantity > products[j].Quantity
		}
		return products[i].Amount.GreaterThan(products[j].Amount)
	})
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

type topClientRow struct {
	ClientID snowflake.ID    `gorm:"column:client_id"`
	Company  string          `gorm:"column:company"`
	Total    decimal.Decimal `gorm:"column:total_amount"`
}

func (s *Service) TopClients(ctx context.Context, limit int) ([]analyticsdomain.TopClient, error) {
	limit = clampLimit(limit)

	var rows []topClientRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT i.client_id,
		       c.company AS company,
		       i.total_amount
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		WHERE i.payment_status <> ?`,
		invoicedomain.PaymentStatusCancelled,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byClient := make(map[snowflake.ID]*analyticsdomain.TopClient)
	for _, row := range rows {
		bucket, ok := byClient[row.ClientID]
		if !ok {
			bucket = &analyticsdomain.TopClient{
				ClientID: row.ClientID.String(),
				Company:  row.Company,
			}
			byClient[row.ClientID] = bucket
		}
		bucket.InvoiceCount++
		bucket.Total = bucket.Total.Add(row.Total)
	}

	clients := make([]analyticsdomain.TopClient, 0, len(byClient))
	for _, bucket := range byClient {
		clients = append(clients, *bucket)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].Total.GreaterThan(clients[j].Total) })
	if len(clients) > limit {
		clients = clients[:limit]
	}
	return clients, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 50 {
		return 50
	}
	return limit
}
