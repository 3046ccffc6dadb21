// Package totals computes invoice monetary figures.
//
// Everything in this package is PURE:
// - No side effects
// - No DB access
// - Fully deterministic
//
// The same inputs always produce the same Totals, so callers are free to
// recompute on every keystroke of a live editing form.
package totals

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency codes the ledger supports.
const (
	CurrencyCNY = "CNY"
	CurrencyUSD = "USD"
)

var (
	hundred = decimal.NewFromInt(100)
)

// LineInput is a single invoice line as entered in the editor.
type LineInput struct {
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Total returns quantity * unit price at full precision.
func (l LineInput) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// TaxPolicy describes how the single invoice-level tax rate applies.
// Inclusive means line prices already embed tax; exclusive means tax is
// added on top of the item subtotal.
type TaxPolicy struct {
	Rate      decimal.Decimal // raw percentage in [0,100], e.g. 13 for 13%
	Inclusive bool
}

// CurrencyContext carries the invoice currency and its conversion rate
// into the CNY accounting ledger. FxToCNY must be exactly 1 for CNY.
type CurrencyContext struct {
	Currency string
	FxToCNY  decimal.Decimal
}

// Totals is the derived set of monetary figures for an invoice.
// The Original triple is in the invoice's native currency; the unsuffixed
// triple is the CNY accounting equivalent. For CNY invoices both are equal.
type Totals struct {
	SubtotalOriginal decimal.Decimal
	TaxOriginal      decimal.Decimal
	TotalOriginal    decimal.Decimal

	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Round returns a copy with every figure rounded to the given number of
// decimal places. Intended for the presentation boundary only; persistence
// and recomputation keep full precision.
func (t Totals) Round(places int32) Totals {
	return Totals{
		SubtotalOriginal: t.SubtotalOriginal.Round(places),
		TaxOriginal:      t.TaxOriginal.Round(places),
		TotalOriginal:    t.TotalOriginal.Round(places),
		Subtotal:         t.Subtotal.Round(places),
		Tax:              t.Tax.Round(places),
		Total:            t.Total.Round(places),
	}
}

// InvalidInputError reports a rejected calculator input. The Field names
// the offending value so form UIs can highlight it. Invalid input is never
// silently coerced to zero.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid invoice input: %s (%s)", e.Field, e.Reason)
}

func invalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// Compute derives the full set of invoice totals from line items, the tax
// policy, and the currency context.
//
// Inclusive tax is backed out with the VAT formula tax = S * r / (100 + r),
// where S is the sum of line totals and r the raw percentage. Exclusive tax
// is S * r / 100 added on top. In both branches total = subtotal + tax holds
// exactly, in the native currency and in the CNY equivalent.
func Compute(lines []LineInput, policy TaxPolicy, currency CurrencyContext) (Totals, error) {
	if len(lines) == 0 {
		return Totals{}, invalidInput("line_items", "at least one line item is required")
	}
	for i, line := range lines {
		if line.Quantity < 1 {
			return Totals{}, invalidInput(fmt.Sprintf("line_items[%d].quantity", i), "must be at least 1")
		}
		if line.UnitPrice.IsNegative() {
			return Totals{}, invalidInput(fmt.Sprintf("line_items[%d].unit_price", i), "must not be negative")
		}
	}
	if policy.Rate.IsNegative() || policy.Rate.GreaterThan(hundred) {
		return Totals{}, invalidInput("tax_rate", "must be between 0 and 100")
	}

	switch currency.Currency {
	case CurrencyCNY:
		if !currency.FxToCNY.Equal(decimal.NewFromInt(1)) {
			return Totals{}, invalidInput("fx_to_cny", "must be 1 for CNY invoices")
		}
	case CurrencyUSD:
		if !currency.FxToCNY.IsPositive() {
			return Totals{}, invalidInput("fx_to_cny", "must be positive")
		}
	default:
		return Totals{}, invalidInput("currency", "must be CNY or USD")
	}

	itemsSubtotal := decimal.Zero
	for _, line := range lines {
		itemsSubtotal = itemsSubtotal.Add(line.Total())
	}

	var subtotal, tax, total decimal.Decimal
	if policy.Inclusive {
		// Back the tax out of the gross amount; total stays what the
		// customer sees on the lines.
		tax = itemsSubtotal.Mul(policy.Rate).Div(hundred.Add(policy.Rate))
		subtotal = itemsSubtotal.Sub(tax)
		total = itemsSubtotal
	} else {
		tax = itemsSubtotal.Mul(policy.Rate).Div(hundred)
		subtotal = itemsSubtotal
		total = itemsSubtotal.Add(tax)
	}

	fx := currency.FxToCNY
	return Totals{
		SubtotalOriginal: subtotal,
		TaxOriginal:      tax,
		TotalOriginal:    total,
		Subtotal:         subtotal.Mul(fx),
		Tax:              tax.Mul(fx),
		Total:            total.Mul(fx),
	}, nil
}
