package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzbudget/budget-server/internal/domain"
)

func TestProjectUnifiedSpikeWeeks(t *testing.T) {
	engine := NewEngine()

	// A monthly bill always exceeds its own weekly equivalent, so every
	// due week is a spike week.
	expense := domain.Expense{
		ID: "rent", Name: "rent", Amount: decimal.NewFromInt(400),
		Frequency: domain.Monthly, DueDay: 8, AccountID: "a1",
	}

	proj := engine.ProjectUnified(billsAccount(1000), []domain.Expense{expense}, monday, 26)

	require.Len(t, proj.Weeks, 26)
	require.NotEmpty(t, proj.SpikeWeeks)
	assert.Equal(t, 1, proj.SpikeWeeks[0]) // Jan 8 falls in week 1

	for _, w := range proj.Weeks {
		if w.DueTotal.GreaterThan(w.Transfer) {
			assert.True(t, w.IsSpike, "week %d should be flagged", w.Week)
		} else {
			assert.False(t, w.IsSpike, "week %d wrongly flagged", w.Week)
		}
	}
}

func TestProjectUnifiedAccelerationStop(t *testing.T) {
	engine := NewEngine()

	account := billsAccount(500)
	account.AccelerationAmount = decimal.NewFromInt(50)
	account.AccelerationBufferWeeks = 2

	proj := engine.ProjectUnified(account, []domain.Expense{weeklyExpense(100)}, monday, 12)

	// The balance is already healthy, so acceleration is safe to stop after
	// the first week plus the two-week buffer.
	require.NotNil(t, proj.AccelerationStopWeek)
	assert.Equal(t, 3, *proj.AccelerationStopWeek)

	for _, w := range proj.Weeks {
		if w.Week <= 3 {
			assert.True(t, w.Transfer.Equal(decimal.NewFromInt(150)), "week %d", w.Week)
		} else {
			assert.True(t, w.Transfer.Equal(decimal.NewFromInt(100)), "week %d", w.Week)
		}
	}
}

func TestProjectUnifiedNoAcceleration(t *testing.T) {
	engine := NewEngine()

	proj := engine.ProjectUnified(billsAccount(0), []domain.Expense{weeklyExpense(100)}, monday, 8)

	assert.Nil(t, proj.AccelerationStopWeek)
	for _, w := range proj.Weeks {
		assert.True(t, w.Transfer.Equal(decimal.NewFromInt(100)))
		assert.True(t, w.IsEquilibrium)
	}
	assert.True(t, proj.MinBalance.Equal(decimal.Zero))
}

func TestProjectUnifiedMinBalance(t *testing.T) {
	engine := NewEngine()

	// Underfunded account: the first monthly bill lands before the weekly
	// equivalent has accumulated, dipping the balance negative.
	expense := domain.Expense{
		ID: "rent", Name: "rent", Amount: decimal.NewFromInt(400),
		Frequency: domain.Monthly, DueDay: 8, AccountID: "a1",
	}

	proj := engine.ProjectUnified(billsAccount(0), []domain.Expense{expense}, monday, 26)
	assert.True(t, proj.MinBalance.IsNegative())
}

func TestProjectUnifiedEmptyHorizon(t *testing.T) {
	engine := NewEngine()

	proj := engine.ProjectUnified(billsAccount(250), []domain.Expense{weeklyExpense(100)}, monday, 0)
	assert.Empty(t, proj.Weeks)
	assert.True(t, proj.MinBalance.Equal(decimal.NewFromInt(250)))
}
