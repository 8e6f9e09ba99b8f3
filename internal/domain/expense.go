package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a recurring or one-off obligation. Weekly and fortnightly
// expenses are due on DueDay (a weekday), monthly expenses on DueDay (a
// day of month), annual and one-off expenses on DueDate. The frequency
// decides which field is authoritative; the other is ignored.
type Expense struct {
	ID        string          `yaml:"id" json:"id"`
	Name      string          `yaml:"name" json:"name"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency Frequency       `yaml:"frequency" json:"frequency"`
	DueDay    int             `yaml:"due_day,omitempty" json:"due_day,omitempty"`
	DueDate   *time.Time      `yaml:"due_date,omitempty" json:"due_date,omitempty"`

	// AccountID links the expense to the account that funds it. Empty means
	// unallocated. The reference is weak: deleting the account orphans the
	// expense rather than deleting it.
	AccountID string `yaml:"account_id,omitempty" json:"account_id,omitempty"`

	// SubAccountBalance is the virtual sub-ledger embedded in the expense,
	// tracking how much has been set aside toward this specific obligation.
	// This is deliberately denormalized; it is owned by the expense, not a
	// separate entity.
	SubAccountBalance decimal.Decimal `yaml:"sub_account_balance,omitempty" json:"sub_account_balance"`
}

// Validate checks the expense's internal consistency.
func (e *Expense) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("expense name is required")
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("expense %s: amount must not be negative, got %s", e.Name, e.Amount.StringFixed(2))
	}
	if !e.Frequency.Valid() {
		return fmt.Errorf("expense %s: unknown frequency %q", e.Name, e.Frequency)
	}
	if err := e.Frequency.ValidateDueDay(e.DueDay); err != nil {
		return fmt.Errorf("expense %s: %w", e.Name, err)
	}
	if e.Frequency.IsDated() && e.DueDate == nil {
		return fmt.Errorf("expense %s: %s expense requires a due date", e.Name, e.Frequency)
	}
	return nil
}

// Sanitize coerces out-of-contract numeric values to their degenerate form.
// The calculation core assumes sanitized input and never re-checks.
func (e *Expense) Sanitize() {
	if e.Amount.IsNegative() {
		e.Amount = decimal.Zero
	}
	if e.SubAccountBalance.IsNegative() {
		e.SubAccountBalance = decimal.Zero
	}
}
