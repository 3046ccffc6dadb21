package render

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	clientdomain "github.com/sipworks/brewadmin/internal/client/domain"
	invoicedomain "github.com/sipworks/brewadmin/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice(t *testing.T, language invoicedomain.Language) (invoicedomain.Invoice, clientdomain.Client, map[int64]string) {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	productID := node.Generate()
	created := time.Date(2026, time.March, 7, 9, 30, 0, 0, time.UTC)

	inv := invoicedomain.Invoice{
		ID:               node.Generate(),
		InvoiceNumber:    "INV-20260307-0012",
		ClientID:         node.Generate(),
		PaymentStatus:    invoicedomain.PaymentStatusPending,
		Language:         language,
		TaxRate:          decimal.RequireFromString("13"),
		TaxIncluded:      false,
		Currency:         "USD",
		FxToCNY:          decimal.RequireFromString("7.20"),
		Subtotal:         decimal.RequireFromString("720.00"),
		TaxAmount:        decimal.RequireFromString("93.60"),
		TotalAmount:      decimal.RequireFromString("813.60"),
		SubtotalOriginal: decimal.RequireFromString("100.00"),
		TaxOriginal:      decimal.RequireFromString("13.00"),
		TotalOriginal:    decimal.RequireFromString("113.00"),
		CreatedAt:        created,
		UpdatedAt:        created,
		Items: []invoicedomain.InvoiceItem{
			{
				ID:        node.Generate(),
				ProductID: productID,
				Quantity:  10,
				UnitPrice: decimal.RequireFromString("10.00"),
				Total:     decimal.RequireFromString("100.00"),
				CreatedAt: created,
			},
		},
	}

	client := clientdomain.Client{
		ID:       inv.ClientID,
		Company:  "Golden Gate Imports LLC",
		Currency: "USD",
	}

	names := map[int64]string{productID.Int64(): "Craft IPA 330ml"}
	return inv, client, names
}

func TestRenderHTML_EnglishUSD(t *testing.T) {
	inv, client, names := sampleInvoice(t, invoicedomain.LanguageEN)

	html, err := NewRenderer().RenderHTML(RenderInput{
		Invoice:      inv,
		Client:       client,
		ProductNames: names,
		CompanyName:  "Hangzhou Springs Beverage Co.",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "INV-20260307-0012")
	assert.Contains(t, html, "Golden Gate Imports LLC")
	assert.Contains(t, html, "Craft IPA 330ml")
	assert.Contains(t, html, "$100.00")
	assert.Contains(t, html, "$113.00")
	// USD invoices carry the converted accounting total
	assert.Contains(t, html, "Total (CNY)")
	assert.Contains(t, html, "¥813.60")
	assert.Contains(t, html, `lang="en"`)
}

func TestRenderHTML_ChineseLabels(t *testing.T) {
	inv, client, names := sampleInvoice(t, invoicedomain.LanguageZH)
	inv.Currency = "CNY"
	inv.FxToCNY = decimal.NewFromInt(1)

	html, err := NewRenderer().RenderHTML(RenderInput{
		Invoice:      inv,
		Client:       client,
		ProductNames: names,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "发票编号")
	assert.Contains(t, html, "合计")
	// CNY invoices do not repeat the total in a second currency
	assert.NotContains(t, html, "合计 (人民币)")
	assert.Contains(t, html, `lang="zh"`)
}

func TestRenderHTML_FallsBackToProductID(t *testing.T) {
	inv, client, _ := sampleInvoice(t, invoicedomain.LanguageEN)

	html, err := NewRenderer().RenderHTML(RenderInput{
		Invoice: inv,
		Client:  client,
	})
	require.NoError(t, err)
	assert.Contains(t, html, inv.Items[0].ProductID.String())
}
