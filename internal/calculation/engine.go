package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nzbudget/budget-server/internal/domain"
)

// Engine orchestrates the budget calculations: deriving weekly net income
// from the pay settings, normalizing expenses, and running the per-account
// catch-up and unified projections. Engines are pure given their inputs;
// all mutable state lives with the caller.
type Engine struct {
	Deductions *DeductionCalculator
	Logger     Logger
}

// NewEngine creates an engine with current NZ deduction rates and a no-op
// logger.
func NewEngine() *Engine {
	return &Engine{
		Deductions: NewDeductionCalculator(),
		Logger:     NopLogger{},
	}
}

// SetLogger sets the engine's logger. Nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// deductionOptions maps the budget settings onto a deduction option set,
// converting the allowance to its weekly equivalent.
func deductionOptions(s domain.Settings) DeductionOptions {
	freq := s.AllowanceFrequency
	if freq == "" {
		freq = domain.Weekly
	}
	return DeductionOptions{
		KiwiSaver:       s.KiwiSaver,
		KiwiSaverRate:   s.KiwiSaverRate,
		StudentLoan:     s.StudentLoan,
		IETCEligible:    s.IETC,
		WeeklyAllowance: WeeklyEquivalent(s.AllowanceAmount, freq),
	}
}

// WeeklyDeductions computes the deduction breakdown for the budget's pay
// settings, inverting net pay to gross when the pay type is net.
func (e *Engine) WeeklyDeductions(s domain.Settings) domain.DeductionResult {
	opts := deductionOptions(s)
	if s.PayType == domain.PayNet {
		return e.Deductions.GrossFromNet(s.PayAmount, opts)
	}
	return e.Deductions.NetFromGross(s.PayAmount, opts)
}

// RunBudget computes the full summary for one budget snapshot. The budget
// is expected to be sanitized; RunBudget does not mutate it.
func (e *Engine) RunBudget(b *domain.Budget) *domain.BudgetSummary {
	start := b.Settings.StartDate
	horizon := b.Settings.HorizonWeeks

	deductions := e.WeeklyDeductions(b.Settings)

	weeklyTotal := decimal.Zero
	for _, exp := range b.Expenses {
		weeklyTotal = weeklyTotal.Add(WeeklyAmount(exp, start))
	}
	surplus := deductions.WeeklyNet.Sub(weeklyTotal)

	summary := &domain.BudgetSummary{
		Deductions:         deductions,
		WeeklyExpenseTotal: weeklyTotal,
		WeeklySurplus:      surplus,
		GeneratedAt:        time.Now().UTC(),
	}

	// Spare weekly capacity above every account's equilibrium requirement.
	// Each account's transfer ceiling is its own equilibrium plus this.
	headroom := decimal.Max(decimal.Zero, surplus)

	for _, account := range b.Accounts {
		if account.IsSpendingAccount {
			continue
		}
		expenses := b.ExpensesFor(account.ID)
		if len(expenses) == 0 {
			continue
		}

		equilibrium := decimal.Zero
		for _, exp := range expenses {
			equilibrium = equilibrium.Add(WeeklyAmount(exp, start))
		}
		maxTransfer := equilibrium.Add(headroom)

		summary.Plans = append(summary.Plans, e.PlanCatchUp(account, expenses, maxTransfer, start, horizon))
		summary.Projections = append(summary.Projections, e.ProjectUnified(account, expenses, start, horizon))
	}

	return summary
}
