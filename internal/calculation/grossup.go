package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrTargetUnreachable is returned when no gross salary within the search
// range yields the requested net.
var ErrTargetUnreachable = errors.New("target net income is unreachable")

// GrossUpRequest asks for the gross salary that yields TargetNet. The
// profile's SalaryMode decides whether TargetNet and the answer are
// per-payment or annual figures; its GrossSalary is ignored.
type GrossUpRequest struct {
	Profile       domain.TaxInput
	TargetNet     decimal.Decimal
	Tolerance     decimal.Decimal // default 0.01
	MaxIterations int             // default 200
}

// GrossUpResult is the outcome of a gross-up search.
type GrossUpResult struct {
	GrossSalary decimal.Decimal
	Result      *domain.TaxResult
	Iterations  int
	// Converged is false when the search ran out of iterations before net
	// came within Tolerance of the target; GrossSalary is then the closest
	// gross found whose net reaches the target.
	Converged bool
}

func netFor(mode domain.SalaryInputMode, r *domain.TaxResult) decimal.Decimal {
	if mode == domain.SalaryAnnual {
		return r.NetAnnual
	}
	return r.NetMonthly
}

// GrossUp finds a gross salary whose net matches the target by bisection.
// Net pay drops at the minimum-subsistence threshold, so some targets have
// two solutions; the search keeps net(lo) < target <= net(hi) and returns
// whichever crossing it brackets.
func (ce *CalculationEngine) GrossUp(ctx context.Context, req GrossUpRequest) (*GrossUpResult, error) {
	if req.TargetNet.IsNegative() {
		return nil, fmt.Errorf("%w: target net must not be negative", domain.ErrInvalidInput)
	}
	if req.Tolerance.IsNegative() {
		return nil, fmt.Errorf("%w: tolerance must not be negative", domain.ErrInvalidInput)
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = decimal.NewFromFloat(0.01)
	}
	if req.MaxIterations <= 0 {
		req.MaxIterations = 200
	}

	profile := req.Profile
	profile.GrossSalary = decimal.Zero
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	profile = profile.Canonical()

	eval := func(gross decimal.Decimal) (*domain.TaxResult, error) {
		in := profile
		in.GrossSalary = gross
		return ce.Calculate(in)
	}

	if req.TargetNet.IsZero() {
		res, err := eval(decimal.Zero)
		if err != nil {
			return nil, err
		}
		return &GrossUpResult{GrossSalary: decimal.Zero, Result: res, Converged: true}, nil
	}

	lo := decimal.Zero
	hi := req.TargetNet.Mul(decimal.NewFromInt(2))
	hiRes, err := eval(hi)
	if err != nil {
		return nil, err
	}
	for i := 0; netFor(profile.SalaryMode, hiRes).LessThan(req.TargetNet); i++ {
		if i >= 40 {
			return nil, fmt.Errorf("%w: net %s", ErrTargetUnreachable, req.TargetNet.StringFixed(2))
		}
		lo = hi
		hi = hi.Mul(decimal.NewFromInt(2))
		if hiRes, err = eval(hi); err != nil {
			return nil, err
		}
	}

	cent := decimal.NewFromFloat(0.005)
	two := decimal.NewFromInt(2)
	iterations := 0
	for iterations < req.MaxIterations && hi.Sub(lo).GreaterThan(cent) {
		iterations++
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		midRes, err := eval(mid)
		if err != nil {
			return nil, err
		}
		if netFor(profile.SalaryMode, midRes).LessThan(req.TargetNet) {
			lo = mid
		} else {
			hi, hiRes = mid, midRes
		}
	}

	diff := netFor(profile.SalaryMode, hiRes).Sub(req.TargetNet).Abs()
	converged := diff.LessThanOrEqual(req.Tolerance)
	if !converged {
		ce.Logger.Warnf("gross-up stopped %s away from target %s", diff.StringFixed(2), req.TargetNet.StringFixed(2))
	}
	return &GrossUpResult{
		GrossSalary: hi,
		Result:      hiRes,
		Iterations:  iterations,
		Converged:   converged,
	}, nil
}
