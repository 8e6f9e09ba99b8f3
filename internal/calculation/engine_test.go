package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzbudget/budget-server/internal/domain"
	"github.com/nzbudget/budget-server/pkg/dateutil"
)

func testBudget() *domain.Budget {
	return &domain.Budget{
		Settings: domain.Settings{
			PayAmount:    decimal.NewFromInt(1200),
			PayType:      domain.PayGross,
			HorizonWeeks: 12,
			StartDate:    dateutil.Date(2025, time.January, 6),
		},
		Accounts: []domain.Account{
			{ID: "spend", Name: "everyday", IsSpendingAccount: true},
			{ID: "a1", Name: "bills"},
		},
		Expenses: []domain.Expense{
			{
				ID: "e1", Name: "groceries", Amount: decimal.NewFromInt(100),
				Frequency: domain.Weekly, DueDay: int(time.Monday), AccountID: "a1",
			},
		},
	}
}

func TestRunBudget(t *testing.T) {
	engine := NewEngine()
	summary := engine.RunBudget(testBudget())

	net, _ := summary.Deductions.WeeklyNet.Float64()
	assert.InDelta(t, 969.57, net, 0.01)

	assert.True(t, summary.WeeklyExpenseTotal.Equal(decimal.NewFromInt(100)))

	surplus, _ := summary.WeeklySurplus.Float64()
	assert.InDelta(t, 869.57, surplus, 0.01)

	// One plan and one projection for the bills account; the spending
	// account is skipped.
	require.Len(t, summary.Plans, 1)
	require.Len(t, summary.Projections, 1)
	assert.Equal(t, "a1", summary.Plans[0].AccountID)
	assert.False(t, summary.Plans[0].Infeasible)

	// Ceiling is the account's own need plus the budget-wide headroom.
	maxT, _ := summary.Plans[0].MaxTransfer.Float64()
	assert.InDelta(t, 969.57, maxT, 0.01)
}

func TestRunBudgetNetPayType(t *testing.T) {
	engine := NewEngine()

	b := testBudget()
	b.Settings.PayType = domain.PayNet
	b.Settings.PayAmount = decimal.NewFromInt(900)

	summary := engine.RunBudget(b)

	net, _ := summary.Deductions.WeeklyNet.Float64()
	assert.InDelta(t, 900, net, 0.02)
	assert.True(t, summary.Deductions.WeeklyGross.GreaterThan(decimal.NewFromInt(900)))
}

func TestRunBudgetZeroIncome(t *testing.T) {
	engine := NewEngine()

	b := testBudget()
	b.Settings.PayAmount = decimal.Zero

	summary := engine.RunBudget(b)

	// Degenerate income is a valid steady state, not an error.
	assert.True(t, summary.Deductions.WeeklyNet.IsZero())
	assert.True(t, summary.WeeklySurplus.IsNegative())

	// With no headroom, the ceiling equals the equilibrium need and the
	// plan stays feasible.
	require.Len(t, summary.Plans, 1)
	assert.False(t, summary.Plans[0].Infeasible)
	assert.True(t, summary.Plans[0].MaxTransfer.Equal(summary.Plans[0].EquilibriumTransfer))
}

func TestEngineSetLogger(t *testing.T) {
	engine := NewEngine()
	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger)
}
