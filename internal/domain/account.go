package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Account is a named money pool that funds zero or more expenses.
type Account struct {
	ID      string          `yaml:"id" json:"id"`
	Name    string          `yaml:"name" json:"name"`
	Balance decimal.Decimal `yaml:"balance" json:"balance"`

	// AccelerationAmount is a user-configured extra weekly contribution on
	// top of the account's equilibrium requirement.
	AccelerationAmount decimal.Decimal `yaml:"acceleration_amount,omitempty" json:"acceleration_amount"`

	// AccelerationBufferWeeks keeps the acceleration running this many weeks
	// past the point where it could safely stop.
	AccelerationBufferWeeks int `yaml:"acceleration_buffer_weeks,omitempty" json:"acceleration_buffer_weeks"`

	// IsSpendingAccount marks the account income lands in and day-to-day
	// spending comes out of. At most one per budget.
	IsSpendingAccount bool `yaml:"is_spending_account,omitempty" json:"is_spending_account"`

	// IsWeekAhead opts the account's weekly/fortnightly expenses into the
	// week-ahead target: their sub-ledgers must hold next week's payment too.
	IsWeekAhead bool `yaml:"is_week_ahead,omitempty" json:"is_week_ahead"`

	TargetBalance       decimal.Decimal `yaml:"target_balance,omitempty" json:"target_balance"`
	Priority            int             `yaml:"priority,omitempty" json:"priority"`
	StartingBalanceDate *time.Time      `yaml:"starting_balance_date,omitempty" json:"starting_balance_date,omitempty"`
}

// Validate checks the account's internal consistency.
func (a *Account) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("account name is required")
	}
	if a.AccelerationAmount.IsNegative() {
		return fmt.Errorf("account %s: acceleration amount must not be negative", a.Name)
	}
	if a.AccelerationBufferWeeks < 0 {
		return fmt.Errorf("account %s: acceleration buffer weeks must not be negative", a.Name)
	}
	return nil
}

// Sanitize coerces out-of-contract values to their degenerate form. The
// balance is allowed to be negative (overdrawn accounts are legitimate).
func (a *Account) Sanitize() {
	if a.AccelerationAmount.IsNegative() {
		a.AccelerationAmount = decimal.Zero
	}
	if a.AccelerationBufferWeeks < 0 {
		a.AccelerationBufferWeeks = 0
	}
}
