package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzbudget/budget-server/internal/domain"
)

const validProfile = `
settings:
  pay_amount: 1200
  pay_type: gross
  kiwisaver: true
  kiwisaver_rate: 0.03
  student_loan: false
  ietc: false
  horizon_weeks: 26
  start_date: 2025-01-06
accounts:
  - id: spend
    name: everyday
    balance: 250
    is_spending_account: true
  - id: bills
    name: bills
    balance: 0
    acceleration_amount: 25
expenses:
  - id: rent
    name: rent
    amount: 400
    frequency: monthly
    due_day: 8
    account_id: bills
  - id: car
    name: insurance
    amount: 520
    frequency: annually
    due_date: 2025-06-15
    account_id: bills
`

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()
	budget, err := parser.LoadFromFile(writeProfile(t, validProfile))
	require.NoError(t, err)

	assert.True(t, budget.Settings.PayAmount.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, domain.PayGross, budget.Settings.PayType)
	assert.Equal(t, 26, budget.Settings.HorizonWeeks)
	require.Len(t, budget.Accounts, 2)
	require.Len(t, budget.Expenses, 2)

	spending, ok := budget.SpendingAccount()
	require.True(t, ok)
	assert.Equal(t, "spend", spending.ID)

	require.NotNil(t, budget.Expenses[1].DueDate)
	assert.Equal(t, 2025, budget.Expenses[1].DueDate.Year())
}

func TestLoadFromFileMissing(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestValidateBudgetErrors(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		mutate  func(*domain.Budget)
		wantErr string
	}{
		{
			"negative amount",
			func(b *domain.Budget) { b.Expenses[0].Amount = decimal.NewFromInt(-1) },
			"must not be negative",
		},
		{
			"unknown frequency",
			func(b *domain.Budget) { b.Expenses[0].Frequency = "sometimes" },
			"unknown frequency",
		},
		{
			"weekly due day out of range",
			func(b *domain.Budget) {
				b.Expenses[0].Frequency = domain.Weekly
				b.Expenses[0].DueDay = 9
			},
			"out of range 0-6",
		},
		{
			"two spending accounts",
			func(b *domain.Budget) { b.Accounts[1].IsSpendingAccount = true },
			"at most one spending account",
		},
		{
			"unknown account reference",
			func(b *domain.Budget) { b.Expenses[0].AccountID = "nope" },
			"unknown account",
		},
		{
			"duplicate expense id",
			func(b *domain.Budget) { b.Expenses[1].ID = b.Expenses[0].ID },
			"duplicate expense id",
		},
		{
			"zero horizon",
			func(b *domain.Budget) { b.Settings.HorizonWeeks = 0 },
			"at least 1 week",
		},
		{
			"bad pay type",
			func(b *domain.Budget) { b.Settings.PayType = "hourly" },
			"pay type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget, err := parser.LoadFromFile(writeProfile(t, validProfile))
			require.NoError(t, err)

			tt.mutate(budget)
			err = parser.ValidateBudget(budget)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
