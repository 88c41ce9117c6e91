package calculation

import (
	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/shopspring/decimal"
)

// Contribution is the worker's social security charge for one evaluation.
type Contribution struct {
	Monthly decimal.Decimal
	Annual  decimal.Decimal
	Rate    decimal.Decimal
	// Capped is true when the self-employed monthly ceiling bound the base.
	Capped  bool
	Ceiling decimal.Decimal
}

// SocialSecurityCalculator handles Segurança Social contributions
type SocialSecurityCalculator struct {
	Rules   domain.SocialSecurityRules
	Ceiling decimal.Decimal // monthly self-employed base cap
}

// NewSocialSecurityCalculator creates a contribution calculator from a rules table
func NewSocialSecurityCalculator(rules domain.TaxRules) *SocialSecurityCalculator {
	return &SocialSecurityCalculator{
		Rules:   rules.SocialSecurity,
		Ceiling: rules.SelfEmployedCeiling(),
	}
}

// Calculate returns the contribution for the given category.
//
// Employees pay a flat, uncapped rate; the monthly and annual figures are each
// taken from the matching gross so that 14-payment schedules stay exact.
// Self-employed workers pay on min(monthly gross, ceiling) per payment, and the
// annual figure is that monthly charge times the payment count.
func (c *SocialSecurityCalculator) Calculate(category domain.EmploymentCategory, grossMonthly, grossAnnual decimal.Decimal, payments int) Contribution {
	if category == domain.SelfEmployed {
		return c.selfEmployed(grossMonthly, payments)
	}
	return Contribution{
		Monthly: grossMonthly.Mul(c.Rules.EmployeeRate),
		Annual:  grossAnnual.Mul(c.Rules.EmployeeRate),
		Rate:    c.Rules.EmployeeRate,
		Ceiling: c.Ceiling,
	}
}

func (c *SocialSecurityCalculator) selfEmployed(grossMonthly decimal.Decimal, payments int) Contribution {
	base := decimal.Min(grossMonthly, c.Ceiling)
	monthly := base.Mul(c.Rules.SelfEmployedRate)
	return Contribution{
		Monthly: monthly,
		Annual:  monthly.Mul(decimal.NewFromInt(int64(payments))),
		Rate:    c.Rules.SelfEmployedRate,
		Capped:  grossMonthly.GreaterThan(c.Ceiling),
		Ceiling: c.Ceiling,
	}
}
