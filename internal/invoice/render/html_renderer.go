package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	invoicedomain "github.com/sipworks/brewadmin/internal/invoice/domain"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="{{.Lang}}">
<head>
  <meta charset="utf-8" />
  <title>{{.L.Title}} {{.Number}}</title>
  <style>
    :root {
      --font: -apple-system, BlinkMacSystemFont, "Segoe UI", "PingFang SC", "Microsoft YaHei", Roboto, Helvetica, Arial, sans-serif;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: var(--font);
      color: #1a1f36;
      background: #f7f9fc;
      -webkit-font-smoothing: antialiased;
    }
    .invoice-card {
      background: #ffffff;
      max-width: 760px;
      margin: 0 auto;
      padding: 60px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
      border-radius: 4px;
    }
    .header {
      display: flex;
      justify-content: space-between;
      margin-bottom: 40px;
    }
    .header-left h1 {
      margin: 0;
      font-size: 24px;
      font-weight: 700;
      color: #1a1f36;
    }
    .header-right {
      text-align: right;
      font-weight: 600;
      color: #8792a2;
      font-size: 16px;
    }
    .meta-grid {
      display: flex;
      justify-content: space-between;
      margin-bottom: 40px;
    }
    .col { flex: 1; }
    .label {
      font-size: 11px;
      text-transform: uppercase;
      color: #8792a2;
      margin-bottom: 6px;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    .value {
      font-size: 14px;
      line-height: 1.5;
      color: #1a1f36;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      margin-bottom: 30px;
    }
    th {
      text-align: left;
      text-transform: uppercase;
      font-size: 11px;
      color: #8792a2;
      border-bottom: 1px solid #e3e8ee;
      padding: 10px 0;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    td {
      padding: 16px 0;
      border-bottom: 1px solid #e3e8ee;
      font-size: 14px;
      color: #1a1f36;
      vertical-align: top;
    }
    .td-right { text-align: right; }
    .item-title { font-weight: 600; margin-bottom: 2px; }
    .totals {
      width: 100%;
      display: flex;
      flex-direction: column;
      align-items: flex-end;
    }
    .total-row {
      display: flex;
      justify-content: space-between;
      width: 280px;
      padding: 6px 0;
      font-size: 14px;
    }
    .total-label { color: #697386; }
    .total-value { color: #1a1f36; text-align: right; font-weight: 500; }
    .total-final {
      border-top: 1px solid #e3e8ee;
      margin-top: 10px;
      padding-top: 10px;
      font-weight: 700;
      font-size: 16px;
      color: #1a1f36;
    }
    .total-cny { font-size: 12px; color: #697386; }
    .footer {
      margin-top: 60px;
      font-size: 12px;
      color: #8792a2;
      border-top: 1px solid #e3e8ee;
      padding-top: 20px;
    }
  </style>
</head>
<body>
  <div class="invoice-card">
    <div class="header">
      <div class="header-left">
        <h1>{{.L.Title}}</h1>
        <div class="label" style="margin-top: 12px;">{{.L.Number}}</div>
        <div class="value">{{.Number}}</div>
      </div>
      <div class="header-right">{{.CompanyName}}</div>
    </div>

    <div class="meta-grid">
      <div class="col">
        <div class="label">{{.L.BillTo}}</div>
        <div class="value">
          <strong>{{.ClientCompany}}</strong><br>
          {{if .ClientContact}}{{.ClientContact}}<br>{{end}}
          {{if .ClientAddress}}{{.ClientAddress}}{{end}}
        </div>
      </div>
      <div class="col" style="flex: 0 0 200px;">
        <div class="label">{{.L.IssuedAt}}</div>
        <div class="value">{{.IssuedAt}}</div>
        {{if .DueDate}}
        <div class="label" style="margin-top: 16px;">{{.L.DueDate}}</div>
        <div class="value">{{.DueDate}}</div>
        {{end}}
        {{if .PONumber}}
        <div class="label" style="margin-top: 16px;">{{.L.PONumber}}</div>
        <div class="value">{{.PONumber}}</div>
        {{end}}
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th style="width: 50%;">{{.L.Item}}</th>
          <th class="td-right">{{.L.Quantity}}</th>
          <th class="td-right">{{.L.UnitPrice}}</th>
          <th class="td-right">{{.L.Amount}}</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td><div class="item-title">{{.Name}}</div></td>
          <td class="td-right">{{.Quantity}}</td>
          <td class="td-right">{{.UnitPrice}}</td>
          <td class="td-right" style="font-weight: 500;">{{.Amount}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="total-row">
        <span class="total-label">{{.L.Subtotal}}</span>
        <span class="total-value">{{.Subtotal}}</span>
      </div>
      <div class="total-row">
        <span class="total-label">{{.L.Tax}}{{if .TaxIncluded}} {{.L.TaxIncluded}}{{end}}</span>
        <span class="total-value">{{.Tax}}</span>
      </div>
      <div class="total-row total-final">
        <span class="total-label" style="color: #1a1f36;">{{.L.Total}}</span>
        <span class="total-value">{{.Total}}</span>
      </div>
      {{if .ShowCNY}}
      <div class="total-row total-cny">
        <span class="total-label">{{.L.TotalCNY}}</span>
        <span class="total-value">{{.TotalCNY}}</span>
      </div>
      {{end}}
    </div>

    {{if .Notes}}
    <div class="footer">{{.Notes}}</div>
    {{end}}
  </div>
</body>
</html>
`

// labelSet holds the printable strings for one document language.
type labelSet struct {
	Title       string
	Number      string
	BillTo      string
	IssuedAt    string
	DueDate     string
	PONumber    string
	Item        string
	Quantity    string
	UnitPrice   string
	Amount      string
	Subtotal    string
	Tax         string
	TaxIncluded string
	Total       string
	TotalCNY    string
}

var labels = map[invoicedomain.Language]labelSet{
	invoicedomain.LanguageZH: {
		Title:       "发票",
		Number:      "发票编号",
		BillTo:      "客户",
		IssuedAt:    "开票日期",
		DueDate:     "到期日",
		PONumber:    "采购单号",
		Item:        "项目",
		Quantity:    "数量",
		UnitPrice:   "单价",
		Amount:      "金额",
		Subtotal:    "小计",
		Tax:         "税额",
		TaxIncluded: "(含税)",
		Total:       "合计",
		TotalCNY:    "合计 (人民币)",
	},
	invoicedomain.LanguageEN: {
		Title:       "Invoice",
		Number:      "Invoice number",
		BillTo:      "Bill to",
		IssuedAt:    "Date issued",
		DueDate:     "Date due",
		PONumber:    "PO number",
		Item:        "Description",
		Quantity:    "Qty",
		UnitPrice:   "Unit price",
		Amount:      "Amount",
		Subtotal:    "Subtotal",
		Tax:         "Tax",
		TaxIncluded: "(included)",
		Total:       "Total",
		TotalCNY:    "Total (CNY)",
	},
}

type itemView struct {
	Name      string
	Quantity  int64
	UnitPrice string
	Amount    string
}

type invoiceView struct {
	L    labelSet
	Lang string

	Number        string
	CompanyName   string
	ClientCompany string
	ClientContact string
	ClientAddress string
	IssuedAt      string
	DueDate       string
	PONumber      string
	Notes         string

	Items []itemView

	Subtotal    string
	Tax         string
	Total       string
	TaxIncluded bool
	ShowCNY     bool
	TotalCNY    string
}

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Parse(invoiceHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(input RenderInput) (string, error) {
	view := buildView(input)

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildView(input RenderInput) invoiceView {
	inv := input.Invoice

	language := inv.Language
	if _, ok := labels[language]; !ok {
		language = invoicedomain.LanguageZH
	}

	company := strings.TrimSpace(input.CompanyName)
	if company == "" {
		company = input.Client.Company
	}

	view := invoiceView{
		L:             labels[language],
		Lang:          string(language),
		Number:        inv.InvoiceNumber,
		CompanyName:   company,
		ClientCompany: input.Client.Company,
		IssuedAt:      formatDate(&inv.CreatedAt),
		Notes:         deref(inv.Notes),
		PONumber:      deref(inv.PONumber),
		TaxIncluded:   inv.TaxIncluded,
		Subtotal:      formatMoney(inv.SubtotalOriginal, inv.Currency),
		Tax:           formatMoney(inv.TaxOriginal, inv.Currency),
		Total:         formatMoney(inv.TotalOriginal, inv.Currency),
	}
	if input.Client.Contact != nil {
		view.ClientContact = *input.Client.Contact
	}
	if input.Client.Address != nil {
		view.ClientAddress = *input.Client.Address
	}
	if inv.DueDate != nil {
		view.DueDate = formatDate(inv.DueDate)
	}
	if inv.Currency != "CNY" {
		view.ShowCNY = true
		view.TotalCNY = formatMoney(inv.TotalAmount, "CNY")
	}

	for _, item := range inv.Items {
		name := input.ProductNames[item.ProductID.Int64()]
		if name == "" {
			name = item.ProductID.String()
		}
		view.Items = append(view.Items, itemView{
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: formatMoney(item.UnitPrice, inv.Currency),
			Amount:    formatMoney(item.Total, inv.Currency),
		})
	}

	return view
}

var currencySymbols = map[string]string{
	"CNY": "¥",
	"USD": "$",
}

func formatMoney(amount decimal.Decimal, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if symbol, ok := currencySymbols[currency]; ok {
		return symbol + amount.StringFixed(2)
	}
	return fmt.Sprintf("%s %s", currency, amount.StringFixed(2))
}

func formatDate(value *time.Time) string {
	if value == nil || value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02")
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
