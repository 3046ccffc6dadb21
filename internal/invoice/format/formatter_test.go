package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceNumber(t *testing.T) {
	issued := time.Date(2026, 3, 7, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name     string
		template string
		seq      int64
		want     string
	}{
		{"default template", DefaultInvoiceNumberTemplate, 12, "INV-20260307-0012"},
		{"plain sequence", "BRW-{SEQ}", 7, "BRW-7"},
		{"short year", "{YY}{MM}-{SEQ6}", 345, "2603-000345"},
		{"no tokens", "FIXED-1", 1, "FIXED-1"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InvoiceNumber(tt.template, issued, tt.seq)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvoiceNumber_Errors(t *testing.T) {
	issued := time.Now()

	_, err := InvoiceNumber("", issued, 1)
	assert.Error(t, err)

	_, err = InvoiceNumber("INV-{SEQ}", issued, 0)
	assert.Error(t, err)

	_, err = InvoiceNumber("INV-{NOPE}", issued, 1)
	assert.Error(t, err)
}
