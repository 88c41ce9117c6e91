package calculation

import (
	"testing"

	"github.com/rgehrsitz/ptpay/internal/config"
	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSocialSecurity_Employee(t *testing.T) {
	calc := NewSocialSecurityCalculator(config.DefaultRules())

	c := calc.Calculate(domain.Employee, d("2500"), d("35000"), 14)
	assert.True(t, c.Monthly.Equal(d("275")))
	assert.True(t, c.Annual.Equal(d("3850")), "annual is taken from annual gross, not 12x monthly")
	assert.False(t, c.Capped)

	high := calc.Calculate(domain.Employee, d("20000"), d("280000"), 14)
	assert.True(t, high.Monthly.Equal(d("2200")), "employee contributions are uncapped")
	assert.False(t, high.Capped)
}

func TestSocialSecurity_SelfEmployedCeiling(t *testing.T) {
	calc := NewSocialSecurityCalculator(config.DefaultRules())
	ceiling := d("6445.56")
	assert.True(t, calc.Ceiling.Equal(ceiling))

	tests := []struct {
		name    string
		monthly string
		want    string
		capped  bool
	}{
		{"well below ceiling", "3000", "642", false},
		{"double the salary doubles the charge", "6000", "1284", false},
		{"exactly at ceiling", "6445.56", "1379.34984", false},
		{"above ceiling", "7000", "1379.34984", true},
		{"far above ceiling", "50000", "1379.34984", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monthly := d(tt.monthly)
			c := calc.Calculate(domain.SelfEmployed, monthly, monthly.Mul(decimal.NewFromInt(14)), 14)
			assert.True(t, d(tt.want).Equal(c.Monthly), "expected %s, got %s", tt.want, c.Monthly)
			assert.Equal(t, tt.capped, c.Capped)
			assert.True(t, c.Annual.Equal(c.Monthly.Mul(decimal.NewFromInt(14))))
			assert.True(t, c.Ceiling.Equal(ceiling))
		})
	}
}

func TestSocialSecurity_CeilingAppliedPerPayment(t *testing.T) {
	calc := NewSocialSecurityCalculator(config.DefaultRules())

	// 12 payments of 7000 = 84000; capping per payment gives 12 x 1379.34984,
	// not a cap on the annual sum.
	c := calc.Calculate(domain.SelfEmployed, d("7000"), d("84000"), 12)
	assert.True(t, c.Annual.Equal(d("16552.19808")))
	assert.True(t, c.Capped)
}
