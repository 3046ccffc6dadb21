package totals

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(qty int64, price string) LineInput {
	return LineInput{ProductID: 1, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func cny() CurrencyContext {
	return CurrencyContext{Currency: CurrencyCNY, FxToCNY: decimal.NewFromInt(1)}
}

func usd(fx string) CurrencyContext {
	return CurrencyContext{Currency: CurrencyUSD, FxToCNY: decimal.RequireFromString(fx)}
}

func TestCompute_TaxIncluded(t *testing.T) {
	// items_subtotal = 2*12 + 1*55 = 79.00, rate 13% inclusive:
	// tax = 79 * 13/113, subtotal = 79 - tax, total = 79
	got, err := Compute(
		[]LineInput{line(2, "12.00"), line(1, "55.00")},
		TaxPolicy{Rate: decimal.NewFromInt(13), Inclusive: true},
		cny(),
	)
	require.NoError(t, err)

	assert.True(t, got.TotalOriginal.Equal(decimal.RequireFromString("79")), "total = %s", got.TotalOriginal)
	assert.Equal(t, "9.09", got.TaxOriginal.Round(2).String())
	assert.Equal(t, "69.91", got.SubtotalOriginal.Round(2).String())

	// CNY invoice: accounting triple matches the native triple.
	assert.True(t, got.Subtotal.Equal(got.SubtotalOriginal))
	assert.True(t, got.Tax.Equal(got.TaxOriginal))
	assert.True(t, got.Total.Equal(got.TotalOriginal))
}

func TestCompute_TaxExcluded(t *testing.T) {
	got, err := Compute(
		[]LineInput{line(2, "12.00"), line(1, "55.00")},
		TaxPolicy{Rate: decimal.NewFromInt(13), Inclusive: false},
		cny(),
	)
	require.NoError(t, err)

	assert.True(t, got.SubtotalOriginal.Equal(decimal.RequireFromString("79")))
	assert.True(t, got.TaxOriginal.Equal(decimal.RequireFromString("10.27")))
	assert.True(t, got.TotalOriginal.Equal(decimal.RequireFromString("89.27")))
}

func TestCompute_USDConversion(t *testing.T) {
	// native total 100 USD at 7.20 => 720 CNY
	got, err := Compute(
		[]LineInput{line(1, "100.00")},
		TaxPolicy{Rate: decimal.NewFromInt(13), Inclusive: true},
		usd("7.20"),
	)
	require.NoError(t, err)

	assert.True(t, got.TotalOriginal.Equal(decimal.RequireFromString("100")))
	assert.True(t, got.Total.Equal(decimal.RequireFromString("720")))
	assert.True(t, got.Subtotal.Add(got.Tax).Equal(got.Total))
}

func TestCompute_TotalIsSubtotalPlusTax(t *testing.T) {
	cases := []struct {
		name      string
		lines     []LineInput
		rate      string
		inclusive bool
		currency  CurrencyContext
	}{
		{"inclusive cny", []LineInput{line(3, "19.99"), line(7, "0.45")}, "13", true, cny()},
		{"exclusive cny", []LineInput{line(3, "19.99"), line(7, "0.45")}, "13", false, cny()},
		{"inclusive usd", []LineInput{line(2, "7.77")}, "9", true, usd("7.1345")},
		{"exclusive usd", []LineInput{line(2, "7.77")}, "9", false, usd("7.1345")},
		{"free line", []LineInput{line(1, "0"), line(1, "10")}, "6", false, cny()},
		{"full rate", []LineInput{line(1, "50")}, "100", true, cny()},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.lines, TaxPolicy{Rate: decimal.RequireFromString(tt.rate), Inclusive: tt.inclusive}, tt.currency)
			require.NoError(t, err)

			assert.True(t, got.SubtotalOriginal.Add(got.TaxOriginal).Equal(got.TotalOriginal),
				"native: %s + %s != %s", got.SubtotalOriginal, got.TaxOriginal, got.TotalOriginal)
			assert.True(t, got.Subtotal.Add(got.Tax).Equal(got.Total),
				"cny: %s + %s != %s", got.Subtotal, got.Tax, got.Total)
		})
	}
}

func TestCompute_ZeroRate(t *testing.T) {
	for _, inclusive := range []bool{true, false} {
		got, err := Compute(
			[]LineInput{line(4, "2.50")},
			TaxPolicy{Rate: decimal.Zero, Inclusive: inclusive},
			cny(),
		)
		require.NoError(t, err)
		assert.True(t, got.TaxOriginal.IsZero())
		assert.True(t, got.SubtotalOriginal.Equal(decimal.NewFromInt(10)))
		assert.True(t, got.TotalOriginal.Equal(decimal.NewFromInt(10)))
	}
}

func TestCompute_ModesAgreeAtBoundary(t *testing.T) {
	// Feeding the inclusive-mode net subtotal back through exclusive mode at
	// the same rate must reproduce the gross total.
	rate := decimal.NewFromInt(13)
	gross, err := Compute([]LineInput{line(1, "79.00")}, TaxPolicy{Rate: rate, Inclusive: true}, cny())
	require.NoError(t, err)

	net, err := Compute(
		[]LineInput{{ProductID: 1, Quantity: 1, UnitPrice: gross.SubtotalOriginal}},
		TaxPolicy{Rate: rate, Inclusive: false},
		cny(),
	)
	require.NoError(t, err)

	assert.True(t, net.TotalOriginal.Sub(gross.TotalOriginal).Abs().LessThan(decimal.New(1, -9)),
		"exclusive(net subtotal) total = %s, want %s", net.TotalOriginal, gross.TotalOriginal)
}

func TestCompute_Idempotent(t *testing.T) {
	lines := []LineInput{line(2, "12.00"), line(1, "55.00")}
	policy := TaxPolicy{Rate: decimal.NewFromInt(13), Inclusive: true}

	first, err := Compute(lines, policy, usd("7.20"))
	require.NoError(t, err)
	second, err := Compute(lines, policy, usd("7.20"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_InvalidInput(t *testing.T) {
	valid := []LineInput{line(1, "10")}

	cases := []struct {
		name      string
		lines     []LineInput
		policy    TaxPolicy
		currency  CurrencyContext
		wantField string
	}{
		{"empty lines", nil, TaxPolicy{Rate: decimal.NewFromInt(13)}, cny(), "line_items"},
		{"zero quantity", []LineInput{line(0, "10")}, TaxPolicy{}, cny(), "line_items[0].quantity"},
		{"negative price", []LineInput{line(1, "-0.01")}, TaxPolicy{}, cny(), "line_items[0].unit_price"},
		{"negative rate", valid, TaxPolicy{Rate: decimal.NewFromInt(-5)}, cny(), "tax_rate"},
		{"rate above 100", valid, TaxPolicy{Rate: decimal.RequireFromString("100.5")}, cny(), "tax_rate"},
		{"zero fx", valid, TaxPolicy{}, usd("0"), "fx_to_cny"},
		{"negative fx", valid, TaxPolicy{}, CurrencyContext{Currency: CurrencyUSD, FxToCNY: decimal.NewFromInt(-7)}, "fx_to_cny"},
		{"cny with drifted fx", valid, TaxPolicy{}, CurrencyContext{Currency: CurrencyCNY, FxToCNY: decimal.RequireFromString("7.2")}, "fx_to_cny"},
		{"unknown currency", valid, TaxPolicy{}, CurrencyContext{Currency: "EUR", FxToCNY: decimal.NewFromInt(1)}, "currency"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.lines, tt.policy, tt.currency)
			require.Error(t, err)

			var invalid *InvalidInputError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantField, invalid.Field)
		})
	}
}

func TestTotalsRound(t *testing.T) {
	got, err := Compute(
		[]LineInput{line(2, "12.00"), line(1, "55.00")},
		TaxPolicy{Rate: decimal.NewFromInt(13), Inclusive: true},
		cny(),
	)
	require.NoError(t, err)

	rounded := got.Round(2)
	assert.Equal(t, "9.09", rounded.TaxOriginal.String())
	assert.Equal(t, "69.91", rounded.SubtotalOriginal.String())
	// Rounding is presentation-only: the original value is untouched.
	assert.False(t, got.TaxOriginal.Equal(rounded.TaxOriginal))
}
