package calculation

import (
	"fmt"

	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ReferenceMonthlySalaries are the monthly gross amounts of the reference
// salary table, starting at the 2026 minimum wage.
var ReferenceMonthlySalaries = lo.Map(
	[]int64{870, 1000, 1250, 1500, 1750, 2000, 2500, 3000, 3500, 4000, 4500, 5000, 6000, 7000, 8000, 9000, 10000},
	func(v int64, _ int) decimal.Decimal { return decimal.NewFromInt(v) },
)

// ExampleRow is one line of a salary table.
type ExampleRow struct {
	GrossSalary decimal.Decimal
	Result      *domain.TaxResult
}

// Examples evaluates the profile at each gross salary.
func (ce *CalculationEngine) Examples(profile domain.TaxInput, salaries []decimal.Decimal) ([]ExampleRow, error) {
	rows := make([]ExampleRow, 0, len(salaries))
	for _, gross := range salaries {
		in := profile
		in.GrossSalary = gross
		res, err := ce.Calculate(in)
		if err != nil {
			return nil, fmt.Errorf("salary %s: %w", gross.StringFixed(2), err)
		}
		rows = append(rows, ExampleRow{GrossSalary: gross, Result: res})
	}
	return rows, nil
}
