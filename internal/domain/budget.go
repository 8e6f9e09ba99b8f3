package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PayType says whether the configured pay amount is before or after
// deductions.
type PayType string

const (
	PayGross PayType = "gross"
	PayNet   PayType = "net"
)

// Settings holds the scalar budget configuration for one profile.
type Settings struct {
	PayAmount decimal.Decimal `yaml:"pay_amount" json:"pay_amount"` // weekly
	PayType   PayType         `yaml:"pay_type" json:"pay_type"`

	KiwiSaver     bool            `yaml:"kiwisaver" json:"kiwisaver"`
	KiwiSaverRate decimal.Decimal `yaml:"kiwisaver_rate,omitempty" json:"kiwisaver_rate"`
	StudentLoan   bool            `yaml:"student_loan" json:"student_loan"`
	IETC          bool            `yaml:"ietc" json:"ietc"`

	AllowanceAmount    decimal.Decimal `yaml:"allowance_amount,omitempty" json:"allowance_amount"`
	AllowanceFrequency Frequency       `yaml:"allowance_frequency,omitempty" json:"allowance_frequency,omitempty"`

	HorizonWeeks int       `yaml:"horizon_weeks" json:"horizon_weeks"`
	StartDate    time.Time `yaml:"start_date" json:"start_date"`
}

// Validate checks the settings for internal consistency.
func (s *Settings) Validate() error {
	if s.PayType != PayGross && s.PayType != PayNet {
		return fmt.Errorf("pay type must be %q or %q, got %q", PayGross, PayNet, s.PayType)
	}
	if s.PayAmount.IsNegative() {
		return fmt.Errorf("pay amount must not be negative")
	}
	if s.KiwiSaver && (s.KiwiSaverRate.IsNegative() || s.KiwiSaverRate.GreaterThan(decimal.NewFromFloat(0.10))) {
		return fmt.Errorf("kiwisaver rate must be between 0 and 0.10, got %s", s.KiwiSaverRate)
	}
	if s.HorizonWeeks < 1 {
		return fmt.Errorf("horizon must be at least 1 week, got %d", s.HorizonWeeks)
	}
	if s.AllowanceFrequency != "" && !s.AllowanceFrequency.Valid() {
		return fmt.Errorf("unknown allowance frequency %q", s.AllowanceFrequency)
	}
	return nil
}

// Budget is the immutable snapshot handed to the calculation core: the
// scalar settings plus the full account and expense lists for one profile.
// The core never mutates it.
type Budget struct {
	Settings Settings  `yaml:"settings" json:"settings"`
	Accounts []Account `yaml:"accounts" json:"accounts"`
	Expenses []Expense `yaml:"expenses" json:"expenses"`
}

// SpendingAccount returns the designated spending account, if any.
func (b *Budget) SpendingAccount() (*Account, bool) {
	for i := range b.Accounts {
		if b.Accounts[i].IsSpendingAccount {
			return &b.Accounts[i], true
		}
	}
	return nil, false
}

// Account returns the account with the given id, if present.
func (b *Budget) Account(id string) (*Account, bool) {
	for i := range b.Accounts {
		if b.Accounts[i].ID == id {
			return &b.Accounts[i], true
		}
	}
	return nil, false
}

// ExpensesFor returns the expenses funded by the given account.
func (b *Budget) ExpensesFor(accountID string) []Expense {
	var out []Expense
	for _, e := range b.Expenses {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks the whole snapshot, including the single-spending-account
// invariant and referential integrity of expense links.
func (b *Budget) Validate() error {
	if err := b.Settings.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	spending := 0
	for i := range b.Accounts {
		if err := b.Accounts[i].Validate(); err != nil {
			return err
		}
		if b.Accounts[i].IsSpendingAccount {
			spending++
		}
	}
	if spending > 1 {
		return fmt.Errorf("at most one spending account is allowed, found %d", spending)
	}

	for i := range b.Expenses {
		if err := b.Expenses[i].Validate(); err != nil {
			return err
		}
		// Orphaned account links are tolerated (weak reference), but a link
		// must at least be well-formed when the account list is present.
	}
	return nil
}

// Sanitize normalizes every numeric field the core assumes is in contract.
func (b *Budget) Sanitize() {
	if b.Settings.PayAmount.IsNegative() {
		b.Settings.PayAmount = decimal.Zero
	}
	if b.Settings.AllowanceAmount.IsNegative() {
		b.Settings.AllowanceAmount = decimal.Zero
	}
	for i := range b.Accounts {
		b.Accounts[i].Sanitize()
	}
	for i := range b.Expenses {
		b.Expenses[i].Sanitize()
	}
}
