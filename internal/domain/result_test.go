package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAppliedBracket(t *testing.T) {
	none := NoBracket()
	assert.False(t, none.Present())
	assert.Equal(t, 0, none.Number())
	_, ok := none.Get()
	assert.False(t, ok)

	upper := decimal.NewFromInt(43090)
	b := TaxBracket{Min: decimal.NewFromInt(29397), Max: &upper, Rate: decimal.RequireFromString("0.349"), Deduction: decimal.RequireFromString("4209.94")}
	applied := BracketAt(5, b)
	assert.True(t, applied.Present())
	assert.Equal(t, 6, applied.Number())
	got, ok := applied.Get()
	require.True(t, ok)
	assert.True(t, got.Rate.Equal(b.Rate))
}

func TestAppliedBracket_Marshal(t *testing.T) {
	data, err := json.Marshal(struct {
		B AppliedBracket `json:"b"`
	}{NoBracket()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"b": null}`, string(data))

	b := TaxBracket{Min: decimal.NewFromInt(86634), Rate: decimal.RequireFromString("0.48"), Deduction: decimal.RequireFromString("11387.17")}
	data, err = json.Marshal(BracketAt(8, b))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"number":9`)
	assert.NotContains(t, string(data), `"max"`, "unbounded bracket omits max")

	out, err := yaml.Marshal(map[string]AppliedBracket{"b": BracketAt(8, b)})
	require.NoError(t, err)
	assert.Contains(t, string(out), "number: 9")
}

func TestTaxResult_Helpers(t *testing.T) {
	r := TaxResult{
		SocialSecurityAnnual: decimal.NewFromInt(3850),
		IncomeTaxAnnual:      decimal.RequireFromString("6661.41"),
	}
	assert.False(t, r.HasCredits())
	assert.False(t, r.HasSurtax())
	assert.True(t, r.TotalDeductionsAnnual().Equal(decimal.RequireFromString("10511.41")))

	r.TotalCredits = decimal.NewFromInt(600)
	r.Surtax = decimal.NewFromInt(1)
	assert.True(t, r.HasCredits())
	assert.True(t, r.HasSurtax())
}
