package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressiveTaxBracketBoundaries(t *testing.T) {
	calc := NewDeductionCalculator()

	tests := []struct {
		name     string
		income   decimal.Decimal
		expected decimal.Decimal
	}{
		{"zero income", decimal.Zero, decimal.Zero},
		{"negative income", decimal.NewFromInt(-100), decimal.Zero},
		{"inside first bracket", decimal.NewFromInt(10000), decimal.NewFromFloat(1050)},
		{"top of 10.5% bracket", decimal.NewFromInt(15600), decimal.NewFromFloat(1638)}, // 15600*0.105
		{"top of 17.5% bracket", decimal.NewFromInt(53500), decimal.NewFromFloat(8270.5)}, // 1638 + 37900*0.175
		{"top of 30% bracket", decimal.NewFromInt(78100), decimal.NewFromFloat(15650.5)}, // 8270.5 + 24600*0.30
		{"top of 33% bracket", decimal.NewFromInt(180000), decimal.NewFromFloat(49277.5)}, // 15650.5 + 101900*0.33
		{"into 39% bracket", decimal.NewFromInt(200000), decimal.NewFromFloat(57077.5)}, // 49277.5 + 20000*0.39
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax := calc.ProgressiveTax(tt.income)
			assert.True(t, tax.Equal(tt.expected),
				"expected %s, got %s", tt.expected.StringFixed(2), tax.StringFixed(2))
		})
	}
}

func TestACCLevy(t *testing.T) {
	calc := NewDeductionCalculator()

	levy := calc.ACCLevy(decimal.NewFromInt(62400))
	assert.True(t, levy.Equal(decimal.NewFromFloat(1042.08)), "got %s", levy.StringFixed(4))

	// Capped at maximum leviable earnings.
	capped := calc.ACCLevy(decimal.NewFromInt(300000))
	expected := decimal.NewFromInt(152790).Mul(decimal.NewFromFloat(0.0167))
	assert.True(t, capped.Equal(expected), "got %s", capped.StringFixed(4))

	assert.True(t, calc.ACCLevy(decimal.Zero).IsZero())
}

func TestIETCAbatement(t *testing.T) {
	calc := NewDeductionCalculator()

	tests := []struct {
		name     string
		income   decimal.Decimal
		eligible bool
		expected decimal.Decimal
	}{
		{"not eligible", decimal.NewFromInt(50000), false, decimal.Zero},
		{"below band", decimal.NewFromInt(23999), true, decimal.Zero},
		{"bottom of band", decimal.NewFromInt(24000), true, decimal.NewFromInt(520)},
		{"top of flat band", decimal.NewFromInt(66000), true, decimal.NewFromInt(520)},
		{"abating", decimal.NewFromInt(68000), true, decimal.NewFromInt(260)}, // 520 - 2000*0.13
		{"fully abated", decimal.NewFromInt(70000), true, decimal.Zero},
		{"above band", decimal.NewFromInt(70001), true, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			credit := calc.IETC(tt.income, tt.eligible)
			assert.True(t, credit.Equal(tt.expected),
				"expected %s, got %s", tt.expected.StringFixed(2), credit.StringFixed(2))
		})
	}
}

func TestNetFromGrossBreakdown(t *testing.T) {
	calc := NewDeductionCalculator()

	// $1200/week gross, no options: annual 62,400.
	// Tax: 1638 + 6632.50 + 2670 = 10,940.50/year; ACC: 1042.08/year.
	result := calc.NetFromGross(decimal.NewFromInt(1200), DeductionOptions{})

	assert.True(t, result.AnnualGross.Equal(decimal.NewFromInt(62400)))
	weeklyTax, _ := result.PAYE.Float64()
	assert.InDelta(t, 210.39, weeklyTax, 0.01)
	weeklyACC, _ := result.ACCLevy.Float64()
	assert.InDelta(t, 20.04, weeklyACC, 0.001)
	net, _ := result.WeeklyNet.Float64()
	assert.InDelta(t, 969.57, net, 0.01)

	assert.True(t, result.KiwiSaverEmployee.IsZero())
	assert.True(t, result.StudentLoan.IsZero())
	assert.True(t, result.IETCCredit.IsZero())
}

func TestNetFromGrossAllOptions(t *testing.T) {
	calc := NewDeductionCalculator()

	opts := DeductionOptions{
		KiwiSaver:       true,
		KiwiSaverRate:   decimal.NewFromFloat(0.03),
		StudentLoan:     true,
		IETCEligible:    true,
		WeeklyAllowance: decimal.NewFromInt(50),
	}
	gross := decimal.NewFromInt(1000)
	result := calc.NetFromGross(gross, opts)

	// KiwiSaver: 3% employee deducted, 3% employer reported alongside.
	assert.True(t, result.KiwiSaverEmployee.Equal(decimal.NewFromInt(30)))
	assert.True(t, result.KiwiSaverEmployer.Equal(decimal.NewFromInt(30)))

	// Student loan: 12% of gross above the weekly threshold (22828/52).
	threshold := decimal.NewFromInt(22828).Div(decimal.NewFromInt(52))
	expectedLoan := gross.Sub(threshold).Mul(decimal.NewFromFloat(0.12))
	assert.True(t, result.StudentLoan.Equal(expectedLoan),
		"expected %s, got %s", expectedLoan.StringFixed(4), result.StudentLoan.StringFixed(4))

	// Annual 52,000 sits in the IETC flat band.
	assert.True(t, result.IETCCredit.Equal(decimal.NewFromInt(520).Div(decimal.NewFromInt(52))))

	// Allowance is added after deductions.
	assert.True(t, result.Allowance.Equal(decimal.NewFromInt(50)))

	withoutAllowance := calc.NetFromGross(gross, DeductionOptions{
		KiwiSaver:     true,
		KiwiSaverRate: decimal.NewFromFloat(0.03),
		StudentLoan:   true,
		IETCEligible:  true,
	})
	assert.True(t, result.WeeklyNet.Sub(withoutAllowance.WeeklyNet).Equal(decimal.NewFromInt(50)))
}

func TestNetFromGrossDegenerateInput(t *testing.T) {
	calc := NewDeductionCalculator()

	zero := calc.NetFromGross(decimal.Zero, DeductionOptions{})
	assert.True(t, zero.WeeklyNet.IsZero())
	assert.True(t, zero.PAYE.IsZero())

	negative := calc.NetFromGross(decimal.NewFromInt(-500), DeductionOptions{})
	assert.True(t, negative.WeeklyNet.IsZero())
}

func TestNetMonotonicInGross(t *testing.T) {
	calc := NewDeductionCalculator()
	opts := DeductionOptions{
		KiwiSaver:     true,
		KiwiSaverRate: decimal.NewFromFloat(0.04),
		StudentLoan:   true,
		IETCEligible:  true,
	}

	prev := decimal.NewFromInt(-1)
	for g := 0; g <= 5000; g += 25 {
		net := calc.NetFromGross(decimal.NewFromInt(int64(g)), opts).WeeklyNet
		require.True(t, net.GreaterThanOrEqual(prev),
			"net decreased at gross %d: %s -> %s", g, prev.StringFixed(4), net.StringFixed(4))
		prev = net
	}
}

func TestGrossFromNetRoundTrip(t *testing.T) {
	calc := NewDeductionCalculator()
	opts := DeductionOptions{
		KiwiSaver:     true,
		KiwiSaverRate: decimal.NewFromFloat(0.03),
		StudentLoan:   true,
		IETCEligible:  true,
	}

	for _, g := range []int64{250, 900, 1500, 2000} {
		gross := decimal.NewFromInt(g)
		net := calc.NetFromGross(gross, opts).WeeklyNet
		back := calc.GrossFromNet(net, opts).WeeklyGross

		diff, _ := back.Sub(gross).Abs().Float64()
		assert.LessOrEqual(t, diff, 0.02, "round trip off by %.4f at gross %d", diff, g)
	}

	// High income: the deduction rate is steeper, so the $0.01 net tolerance
	// maps to a slightly wider gross window.
	gross := decimal.NewFromInt(5000)
	net := calc.NetFromGross(gross, opts).WeeklyNet
	back := calc.GrossFromNet(net, opts).WeeklyGross
	diff, _ := back.Sub(gross).Abs().Float64()
	assert.LessOrEqual(t, diff, 0.05)
}

func TestGrossFromNetAllowanceHandling(t *testing.T) {
	calc := NewDeductionCalculator()
	opts := DeductionOptions{WeeklyAllowance: decimal.NewFromInt(80)}

	gross := decimal.NewFromInt(1100)
	net := calc.NetFromGross(gross, opts).WeeklyNet
	result := calc.GrossFromNet(net, opts)

	diff, _ := result.WeeklyGross.Sub(gross).Abs().Float64()
	assert.LessOrEqual(t, diff, 0.02)
	assert.True(t, result.Allowance.Equal(decimal.NewFromInt(80)))

	// A target below the allowance needs no gross income at all.
	small := calc.GrossFromNet(decimal.NewFromInt(50), opts)
	assert.True(t, small.WeeklyGross.IsZero())

	// Degenerate target.
	assert.True(t, calc.GrossFromNet(decimal.Zero, opts).WeeklyNet.IsZero())
}
