package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	clientdomain "github.com/sipworks/brewadmin/internal/client/domain"
	clientrepo "github.com/sipworks/brewadmin/internal/client/repository"
	"github.com/sipworks/brewadmin/internal/config"
	invoicedomain "github.com/sipworks/brewadmin/internal/invoice/domain"
	invoicerepo "github.com/sipworks/brewadmin/internal/invoice/repository"
	"github.com/sipworks/brewadmin/internal/invoice/totals"
	productdomain "github.com/sipworks/brewadmin/internal/product/domain"
	productrepo "github.com/sipworks/brewadmin/internal/product/repository"
	"github.com/sipworks/brewadmin/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc    invoicedomain.Service
	db     *gorm.DB
	node   *snowflake.Node
	client clientdomain.Client
	beer   productdomain.Product
	soda   productdomain.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
		&productdomain.Product{},
		&clientdomain.Client{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := &fixture{db: db, node: node}

	f.client = clientdomain.Client{ID: node.Generate(), Company: "杭州山泉饮品有限公司", Currency: "CNY"}
	require.NoError(t, db.Create(&f.client).Error)

	f.beer = productdomain.Product{ID: node.Generate(), SKU: "BRW-IPA-330", Name: "精酿IPA 330ml", Category: "beer", UnitPrice: decimal.RequireFromString("12.50"), Currency: "CNY", Active: true}
	f.soda = productdomain.Product{ID: node.Generate(), SKU: "SDA-YUZU-500", Name: "柚子气泡水 500ml", Category: "soda", UnitPrice: decimal.RequireFromString("6.80"), Currency: "CNY", Active: true}
	require.NoError(t, db.Create(&f.beer).Error)
	require.NoError(t, db.Create(&f.soda).Error)

	f.svc = NewService(ServiceParam{
		DB:          db,
		Log:         zap.NewNop(),
		Cfg:         config.Config{},
		GenID:       node,
		Repo:        invoicerepo.Provide(),
		ClientRepo:  clientrepo.Provide(),
		ProductRepo: productrepo.Provide(),
	})
	return f
}

func (f *fixture) createRequest() invoicedomain.CreateRequest {
	return invoicedomain.CreateRequest{
		ClientID: f.client.ID.String(),
		TaxRate:  decimal.RequireFromString("13"),
		Items: []invoicedomain.ItemInput{
			{ProductID: f.beer.ID.String(), Quantity: 4, UnitPrice: decimal.RequireFromString("12.50")},
			{ProductID: f.soda.ID.String(), Quantity: 5, UnitPrice: decimal.RequireFromString("5.80")},
		},
	}
}

func TestCreate_TaxIncludedTotals(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest()
	req.TaxIncluded = true

	inv, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	// gross 4*12.50 + 5*5.80 = 79.00, inclusive 13%
	assert.Equal(t, "79.00", inv.TotalAmount.StringFixed(2))
	assert.Equal(t, "9.09", inv.TaxAmount.Round(2).StringFixed(2))
	assert.Equal(t, "69.91", inv.Subtotal.Round(2).StringFixed(2))
	assert.True(t, inv.TotalAmount.Equal(inv.Subtotal.Add(inv.TaxAmount)))
	assert.Equal(t, invoicedomain.PaymentStatusPending, inv.PaymentStatus)
	assert.Len(t, inv.Items, 2)
}

func TestCreate_TaxExcludedTotals(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	assert.Equal(t, "79.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "10.27", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "89.27", inv.TotalAmount.StringFixed(2))
}

func TestCreate_USDKeepsBothCurrencies(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest()
	req.Currency = "USD"
	req.FxToCNY = decimal.RequireFromString("7.20")
	req.Items = []invoicedomain.ItemInput{
		{ProductID: f.beer.ID.String(), Quantity: 10, UnitPrice: decimal.RequireFromString("10")},
	}

	inv, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "100.00", inv.SubtotalOriginal.StringFixed(2))
	assert.Equal(t, "113.00", inv.TotalOriginal.StringFixed(2))
	assert.Equal(t, "720.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "813.60", inv.TotalAmount.StringFixed(2))
}

func TestCreate_GeneratesInvoiceNumber(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)
	second, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	assert.Regexp(t, `^INV-\d{8}-0001$`, first.InvoiceNumber)
	assert.Regexp(t, `^INV-\d{8}-0002$`, second.InvoiceNumber)
}

func TestCreate_NumberingSurvivesDelete(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), first.ID.String()))

	third, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)
	assert.Regexp(t, `^INV-\d{8}-0003$`, third.InvoiceNumber)
}

func TestCreate_DuplicateNumberRejected(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest()
	req.InvoiceNumber = "INV-CUSTOM-1"
	_, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, invoicedomain.ErrDuplicateNumber)
}

func TestCreate_UnknownClient(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest()
	req.ClientID = f.node.Generate().String()

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, invoicedomain.ErrClientNotFound)
}

func TestCreate_UnknownProduct(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest()
	req.Items[0].ProductID = f.node.Generate().String()

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, invoicedomain.ErrProductNotFound)
}

func TestCreate_InvalidLineRejectedWithField(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest()
	req.Items[1].Quantity = 0

	_, err := f.svc.Create(context.Background(), req)
	require.Error(t, err)

	var invalid *totals.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "line_items[1].quantity", invalid.Field)

	var count int64
	require.NoError(t, f.db.Model(&invoicedomain.Invoice{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreate_CNYRejectsForeignRate(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest()
	req.FxToCNY = decimal.RequireFromString("7.20")

	_, err := f.svc.Create(context.Background(), req)

	var invalid *totals.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "fx_to_cny", invalid.Field)
}

func TestUpdate_ReplacesAllItems(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)
	require.Len(t, inv.Items, 2)

	updated, err := f.svc.Update(context.Background(), invoicedomain.UpdateRequest{
		ID: inv.ID.String(),
		Items: []invoicedomain.ItemInput{
			{ProductID: f.soda.ID.String(), Quantity: 3, UnitPrice: decimal.RequireFromString("6.80")},
		},
	})
	require.NoError(t, err)

	assert.Len(t, updated.Items, 1)
	assert.Equal(t, "20.40", updated.Subtotal.StringFixed(2))

	var stored []invoicedomain.InvoiceItem
	require.NoError(t, f.db.Where("invoice_id = ?", inv.ID).Find(&stored).Error)
	assert.Len(t, stored, 1)
	assert.Equal(t, f.soda.ID, stored[0].ProductID)
}

func TestUpdate_InvalidLineLeavesInvoiceUntouched(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), invoicedomain.UpdateRequest{
		ID: inv.ID.String(),
		Items: []invoicedomain.ItemInput{
			{ProductID: f.beer.ID.String(), Quantity: 1, UnitPrice: decimal.RequireFromString("-5")},
		},
	})
	require.Error(t, err)

	var stored []invoicedomain.InvoiceItem
	require.NoError(t, f.db.Where("invoice_id = ?", inv.ID).Find(&stored).Error)
	assert.Len(t, stored, 2)
}

func TestUpdate_SwitchCurrencyRecomputes(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	usd := "USD"
	rate := decimal.RequireFromString("7.00")
	updated, err := f.svc.Update(context.Background(), invoicedomain.UpdateRequest{
		ID:       inv.ID.String(),
		Currency: &usd,
		FxToCNY:  &rate,
		Items: []invoicedomain.ItemInput{
			{ProductID: f.beer.ID.String(), Quantity: 1, UnitPrice: decimal.RequireFromString("100")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "USD", updated.Currency)
	assert.Equal(t, "113.00", updated.TotalOriginal.StringFixed(2))
	assert.Equal(t, "791.00", updated.TotalAmount.StringFixed(2))
}

func TestStatusTransitions(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	paid, err := f.svc.MarkPaid(context.Background(), inv.ID.String())
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.PaymentStatusPaid, paid.PaymentStatus)

	cancelled, err := f.svc.MarkCancelled(context.Background(), inv.ID.String())
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.PaymentStatusCancelled, cancelled.PaymentStatus)

	_, err = f.svc.MarkPaid(context.Background(), inv.ID.String())
	assert.ErrorIs(t, err, invoicedomain.ErrStatusTransition)
}

func TestDelete_RemovesItemsToo(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), inv.ID.String()))

	_, err = f.svc.GetByID(context.Background(), inv.ID.String())
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)

	var count int64
	require.NoError(t, f.db.Model(&invoicedomain.InvoiceItem{}).Where("invoice_id = ?", inv.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetByID_LoadsItems(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	got, err := f.svc.GetByID(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, created.InvoiceNumber, got.InvoiceNumber)
}

func TestList_FiltersByStatus(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), f.createRequest())
	require.NoError(t, err)

	_, err = f.svc.MarkPaid(context.Background(), first.ID.String())
	require.NoError(t, err)

	paid := invoicedomain.PaymentStatusPaid
	list, pageInfo, err := f.svc.List(context.Background(), invoicedomain.ListRequest{Status: &paid})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)
	assert.False(t, pageInfo.HasMore)
}

func TestList_CursorPagination(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(context.Background(), f.createRequest())
		require.NoError(t, err)
	}

	first, pageInfo, err := f.svc.List(context.Background(), invoicedomain.ListRequest{
		Page: pagination.Pagination{PageSize: 2},
	})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.True(t, pageInfo.HasMore)
	require.NotEmpty(t, pageInfo.NextPageToken)

	rest, pageInfo, err := f.svc.List(context.Background(), invoicedomain.ListRequest{
		Page: pagination.Pagination{PageSize: 2, PageToken: pageInfo.NextPageToken},
	})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.False(t, pageInfo.HasMore)
	assert.Less(t, rest[0].ID.Int64(), first[1].ID.Int64())
}
