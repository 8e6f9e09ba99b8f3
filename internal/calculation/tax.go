package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/nzbudget/budget-server/internal/domain"
)

// TaxBracket is one marginal PAYE bracket.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// Inverse search configuration: bisection over weekly gross with a fixed
// iteration cap. $0.01 on weekly income is plenty for this domain; the cap
// is a hard bound, after which the best approximation found is returned.
const grossSearchIterations = 50

var (
	grossSearchTolerance = decimal.NewFromFloat(0.01)
	grossSearchSpan      = decimal.NewFromFloat(2.5)

	weeksPerYear = decimal.NewFromInt(52)
)

// DeductionCalculator computes New Zealand statutory deductions for a
// weekly pay figure: PAYE, ACC earner levy, KiwiSaver, student loan
// repayments, and the IETC credit.
type DeductionCalculator struct {
	Brackets []TaxBracket

	ACCLevyRate    decimal.Decimal
	ACCMaxEarnings decimal.Decimal

	IETCAmount        decimal.Decimal
	IETCMinIncome     decimal.Decimal
	IETCAbateIncome   decimal.Decimal
	IETCMaxIncome     decimal.Decimal
	IETCAbatementRate decimal.Decimal

	KiwiSaverEmployerRate decimal.Decimal

	StudentLoanRate      decimal.Decimal
	StudentLoanThreshold decimal.Decimal // annual repayment threshold
}

// NewDeductionCalculator creates a calculator with the 2024/25 New Zealand
// rates and thresholds.
func NewDeductionCalculator() *DeductionCalculator {
	return &DeductionCalculator{
		Brackets: []TaxBracket{
			{decimal.Zero, decimal.NewFromInt(15600), decimal.NewFromFloat(0.105)},
			{decimal.NewFromInt(15600), decimal.NewFromInt(53500), decimal.NewFromFloat(0.175)},
			{decimal.NewFromInt(53500), decimal.NewFromInt(78100), decimal.NewFromFloat(0.30)},
			{decimal.NewFromInt(78100), decimal.NewFromInt(180000), decimal.NewFromFloat(0.33)},
			{decimal.NewFromInt(180000), decimal.NewFromInt(999999999), decimal.NewFromFloat(0.39)},
		},
		ACCLevyRate:           decimal.NewFromFloat(0.0167),
		ACCMaxEarnings:        decimal.NewFromInt(152790),
		IETCAmount:            decimal.NewFromInt(520),
		IETCMinIncome:         decimal.NewFromInt(24000),
		IETCAbateIncome:       decimal.NewFromInt(66000),
		IETCMaxIncome:         decimal.NewFromInt(70000),
		IETCAbatementRate:     decimal.NewFromFloat(0.13),
		KiwiSaverEmployerRate: decimal.NewFromFloat(0.03),
		StudentLoanRate:       decimal.NewFromFloat(0.12),
		StudentLoanThreshold:  decimal.NewFromInt(22828),
	}
}

// DeductionOptions selects which deductions apply for a pay calculation.
// Callers are expected to hand in sanitized values; the calculator does not
// re-check them.
type DeductionOptions struct {
	KiwiSaver       bool
	KiwiSaverRate   decimal.Decimal
	StudentLoan     bool
	IETCEligible    bool
	WeeklyAllowance decimal.Decimal // non-taxable, added after deductions
}

// ProgressiveTax computes annual income tax as the cumulative sum across
// the marginal brackets. No rounding happens here; display rounding is the
// presentation layer's concern.
func (c *DeductionCalculator) ProgressiveTax(annualIncome decimal.Decimal) decimal.Decimal {
	if annualIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var tax decimal.Decimal
	for _, bracket := range c.Brackets {
		if annualIncome.LessThanOrEqual(bracket.Min) {
			break
		}
		inBracket := decimal.Min(annualIncome, bracket.Max).Sub(bracket.Min)
		if inBracket.GreaterThan(decimal.Zero) {
			tax = tax.Add(inBracket.Mul(bracket.Rate))
		}
	}
	return tax
}

// ACCLevy computes the annual ACC earner levy, capped at the maximum
// leviable earnings.
func (c *DeductionCalculator) ACCLevy(annualIncome decimal.Decimal) decimal.Decimal {
	if annualIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.Min(annualIncome, c.ACCMaxEarnings).Mul(c.ACCLevyRate)
}

// IETC computes the annual Independent Earner Tax Credit: a flat $520
// within the eligible band, abated at 13c per dollar above $66,000 and gone
// entirely at $70,000.
func (c *DeductionCalculator) IETC(annualIncome decimal.Decimal, eligible bool) decimal.Decimal {
	if !eligible {
		return decimal.Zero
	}
	if annualIncome.LessThan(c.IETCMinIncome) || annualIncome.GreaterThan(c.IETCMaxIncome) {
		return decimal.Zero
	}
	if annualIncome.LessThanOrEqual(c.IETCAbateIncome) {
		return c.IETCAmount
	}
	abated := c.IETCAmount.Sub(annualIncome.Sub(c.IETCAbateIncome).Mul(c.IETCAbatementRate))
	return decimal.Max(decimal.Zero, abated)
}

// NetFromGross derives the weekly deduction breakdown for a weekly gross
// pay. Non-positive gross returns a zero-valued result, which downstream
// consumers treat as a valid degenerate case.
func (c *DeductionCalculator) NetFromGross(weeklyGross decimal.Decimal, opts DeductionOptions) domain.DeductionResult {
	if weeklyGross.LessThanOrEqual(decimal.Zero) {
		return domain.DeductionResult{}
	}

	annual := weeklyGross.Mul(weeksPerYear)

	annualTax := c.ProgressiveTax(annual)
	ietc := c.IETC(annual, opts.IETCEligible)
	// The credit reduces tax, floored at zero.
	annualTax = decimal.Max(decimal.Zero, annualTax.Sub(ietc))

	weeklyTax := annualTax.Div(weeksPerYear)
	weeklyACC := c.ACCLevy(annual).Div(weeksPerYear)

	var kiwiSaver, kiwiSaverEmployer decimal.Decimal
	if opts.KiwiSaver {
		kiwiSaver = weeklyGross.Mul(opts.KiwiSaverRate)
		kiwiSaverEmployer = weeklyGross.Mul(c.KiwiSaverEmployerRate)
	}

	var studentLoan decimal.Decimal
	weeklyThreshold := c.StudentLoanThreshold.Div(weeksPerYear)
	if opts.StudentLoan && weeklyGross.GreaterThan(weeklyThreshold) {
		studentLoan = weeklyGross.Sub(weeklyThreshold).Mul(c.StudentLoanRate)
	}

	net := weeklyGross.Sub(weeklyTax).Sub(weeklyACC).Sub(kiwiSaver).Sub(studentLoan).Add(opts.WeeklyAllowance)

	return domain.DeductionResult{
		WeeklyGross:       weeklyGross,
		AnnualGross:       annual,
		PAYE:              weeklyTax,
		ACCLevy:           weeklyACC,
		KiwiSaverEmployee: kiwiSaver,
		KiwiSaverEmployer: kiwiSaverEmployer,
		StudentLoan:       studentLoan,
		IETCCredit:        ietc.Div(weeksPerYear),
		Allowance:         opts.WeeklyAllowance,
		WeeklyNet:         net,
	}
}

// GrossFromNet inverts NetFromGross by bisection. Net income is
// monotonically non-decreasing in gross and the total deduction rate is
// bounded below 100%, so a root exists in [target, target*2.5]. If the
// iteration cap is reached the best approximation found is returned.
//
// The weekly allowance is non-taxable: it is subtracted from the target
// before the search and re-added in the final result.
func (c *DeductionCalculator) GrossFromNet(targetWeeklyNet decimal.Decimal, opts DeductionOptions) domain.DeductionResult {
	if targetWeeklyNet.LessThanOrEqual(decimal.Zero) {
		return domain.DeductionResult{}
	}

	target := targetWeeklyNet.Sub(opts.WeeklyAllowance)
	if target.LessThanOrEqual(decimal.Zero) {
		return domain.DeductionResult{Allowance: opts.WeeklyAllowance, WeeklyNet: opts.WeeklyAllowance}
	}

	searchOpts := opts
	searchOpts.WeeklyAllowance = decimal.Zero

	lo := target
	hi := target.Mul(grossSearchSpan)
	mid := lo

	for i := 0; i < grossSearchIterations; i++ {
		mid = lo.Add(hi).Div(decimal.NewFromInt(2))
		net := c.NetFromGross(mid, searchOpts).WeeklyNet

		diff := net.Sub(target)
		if diff.Abs().LessThanOrEqual(grossSearchTolerance) {
			break
		}
		if diff.LessThan(decimal.Zero) {
			lo = mid
		} else {
			hi = mid
		}
	}

	return c.NetFromGross(mid, opts)
}
