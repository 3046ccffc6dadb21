package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	analyticsdomain "github.com/sipworks/brewadmin/internal/analytics/domain"
	clientdomain "github.com/sipworks/brewadmin/internal/client/domain"
	invoicedomain "github.com/sipworks/brewadmin/internal/invoice/domain"
	productdomain "github.com/sipworks/brewadmin/internal/product/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seeded struct {
	svc    analyticsdomain.Service
	db     *gorm.DB
	node   *snowflake.Node
	client clientdomain.Client
	beer   productdomain.Product
}

func seed(t *testing.T) *seeded {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
		&productdomain.Product{},
		&clientdomain.Client{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	s := &seeded{db: db, node: node}
	s.svc = NewService(Params{DB: db, Log: zap.NewNop()})

	s.client = clientdomain.Client{ID: node.Generate(), Company: "上海迎客酒业", Currency: "CNY"}
	require.NoError(t, db.Create(&s.client).Error)

	s.beer = productdomain.Product{ID: node.Generate(), SKU: "BRW-STOUT-330", Name: "世涛 330ml", Category: "beer", UnitPrice: decimal.RequireFromString("15.00"), Currency: "CNY", Active: true}
	require.NoError(t, db.Create(&s.beer).Error)

	return s
}

func (s *seeded) addInvoice(t *testing.T, createdAt time.Time, status invoicedomain.PaymentStatus, total string, qty int64) {
	t.Helper()

	amount := decimal.RequireFromString(total)
	inv := invoicedomain.Invoice{
		ID:               s.node.Generate(),
		InvoiceNumber:    fmt.Sprintf("INV-%d", s.node.Generate()),
		ClientID:         s.client.ID,
		PaymentStatus:    status,
		Language:         invoicedomain.LanguageZH,
		TaxRate:          decimal.Zero,
		Currency:         "CNY",
		FxToCNY:          decimal.NewFromInt(1),
		Subtotal:         amount,
		TaxAmount:        decimal.Zero,
		TotalAmount:      amount,
		SubtotalOriginal: amount,
		TaxOriginal:      decimal.Zero,
		TotalOriginal:    amount,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
	require.NoError(t, s.db.Create(&inv).Error)

	item := invoicedomain.InvoiceItem{
		ID:        s.node.Generate(),
		InvoiceID: inv.ID,
		ProductID: s.beer.ID,
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString("15.00"),
		Total:     amount,
		CreatedAt: createdAt,
	}
	require.NoError(t, s.db.Create(&item).Error)
}

func TestRevenueByMonth_BucketsAndExcludesCancelled(t *testing.T) {
	s := seed(t)

	jan := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)

	s.addInvoice(t, jan, invoicedomain.PaymentStatusPaid, "100.00", 4)
	s.addInvoice(t, jan, invoicedomain.PaymentStatusPending, "50.50", 2)
	s.addInvoice(t, feb, invoicedomain.PaymentStatusPaid, "80.00", 3)
	s.addInvoice(t, feb, invoicedomain.PaymentStatusCancelled, "999.00", 1)

	months, err := s.svc.RevenueByMonth(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, months, 2)

	assert.Equal(t, "2026-01", months[0].Month)
	assert.Equal(t, int64(2), months[0].InvoiceCount)
	assert.Equal(t, "150.50", months[0].Total.StringFixed(2))

	assert.Equal(t, "2026-02", months[1].Month)
	assert.Equal(t, int64(1), months[1].InvoiceCount)
	assert.Equal(t, "80.00", months[1].Total.StringFixed(2))
}

func TestTotalsByStatus(t *testing.T) {
	s := seed(t)

	now := time.Now().UTC()
	s.addInvoice(t, now, invoicedomain.PaymentStatusPaid, "100.00", 1)
	s.addInvoice(t, now, invoicedomain.PaymentStatusPaid, "40.00", 1)
	s.addInvoice(t, now, invoicedomain.PaymentStatusPending, "25.00", 1)

	totals, err := s.svc.TotalsByStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, "paid", totals[0].Status)
	assert.Equal(t, int64(2), totals[0].InvoiceCount)
	assert.Equal(t, "140.00", totals[0].Total.Round(2).StringFixed(2))

	assert.Equal(t, "pending", totals[1].Status)
	assert.Equal(t, int64(1), totals[1].InvoiceCount)
}

func TestTotalsByStatus_SumsStayExact(t *testing.T) {
	s := seed(t)

	now := time.Now().UTC()
	// fractional amounts that drift under float accumulation
	s.addInvoice(t, now, invoicedomain.PaymentStatusPaid, "0.10", 1)
	s.addInvoice(t, now, invoicedomain.PaymentStatusPaid, "0.20", 1)
	s.addInvoice(t, now, invoicedomain.PaymentStatusPaid, "0.30", 1)

	totals, err := s.svc.TotalsByStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 1)

	assert.True(t, totals[0].Total.Equal(decimal.RequireFromString("0.60")),
		"got %s", totals[0].Total)

	clients, err := s.svc.TopClients(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.True(t, clients[0].Total.Equal(decimal.RequireFromString("0.60")),
		"got %s", clients[0].Total)
}

func TestTopProductsAndClients(t *testing.T) {
	s := seed(t)

	now := time.Now().UTC()
	s.addInvoice(t, now, invoicedomain.PaymentStatusPaid, "60.00", 4)
	s.addInvoice(t, now, invoicedomain.PaymentStatusPending, "30.00", 2)
	s.addInvoice(t, now, invoicedomain.PaymentStatusCancelled, "500.00", 99)

	products, err := s.svc.TopProducts(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, s.beer.ID.String(), products[0].ProductID)
	assert.Equal(t, int64(6), products[0].Quantity)

	clients, err := s.svc.TopClients(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, s.client.ID.String(), clients[0].ClientID)
	assert.Equal(t, int64(2), clients[0].InvoiceCount)
	assert.Equal(t, "90.00", clients[0].Total.Round(2).StringFixed(2))
}
