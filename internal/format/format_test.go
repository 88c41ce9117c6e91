package format

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   string
		contains []string
	}{
		{"0", []string{"0,00", "€"}},
		{"2500.5", []string{",50", "€"}},
		{"1749.185", []string{",19", "€"}},
		{"-275", []string{"-", "275,00"}},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := FormatCurrency(decimal.RequireFromString(tt.amount))
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			assert.True(t, strings.HasSuffix(got, "€"), got)
			assert.NotContains(t, got, ".", "decimal separator is a comma")
		})
	}
}

func TestFormatSignedCurrency(t *testing.T) {
	assert.True(t, strings.HasPrefix(FormatSignedCurrency(decimal.NewFromInt(10)), "+"))
	assert.False(t, strings.HasPrefix(FormatSignedCurrency(decimal.Zero), "+"))
	assert.True(t, strings.HasPrefix(FormatSignedCurrency(decimal.NewFromInt(-10)), "-"))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "20,0 %", FormatPercent(decimal.RequireFromString("0.2")))
	assert.Equal(t, "19,0 %", FormatPercent(decimal.RequireFromString("0.190326")))
	assert.Equal(t, "0,0 %", FormatPercent(decimal.Zero))
	assert.Contains(t, FormatPercent(decimal.RequireFromString("0.30033")), "30,0")
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "12,50 %", FormatRate(decimal.RequireFromString("0.125")))
	assert.Equal(t, "34,90 %", FormatRate(decimal.RequireFromString("0.349")))
}
