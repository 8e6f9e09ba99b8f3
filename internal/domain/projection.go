package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeductionResult is the weekly deduction breakdown for a given gross
// income and option set. It is a pure function output with no identity.
type DeductionResult struct {
	WeeklyGross decimal.Decimal `json:"weekly_gross"`
	AnnualGross decimal.Decimal `json:"annual_gross"`

	PAYE              decimal.Decimal `json:"paye"`
	ACCLevy           decimal.Decimal `json:"acc_levy"`
	KiwiSaverEmployee decimal.Decimal `json:"kiwisaver_employee"`
	KiwiSaverEmployer decimal.Decimal `json:"kiwisaver_employer"` // informational, not deducted
	StudentLoan       decimal.Decimal `json:"student_loan"`
	IETCCredit        decimal.Decimal `json:"ietc_credit"`
	Allowance         decimal.Decimal `json:"allowance"` // non-taxable, added after deductions

	WeeklyNet decimal.Decimal `json:"weekly_net"`
}

// DueExpense is one expense occurrence inside a simulated week.
type DueExpense struct {
	ExpenseID string          `json:"expense_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// WeekEntry is one simulated week of an account's ledger. Entries are
// append-only; a finished schedule is never mutated.
type WeekEntry struct {
	Week          int             `json:"week"` // 1-based
	Date          time.Time       `json:"date"`
	Due           []DueExpense    `json:"due,omitempty"`
	DueTotal      decimal.Decimal `json:"due_total"`
	Transfer      decimal.Decimal `json:"transfer"`
	CatchUp       decimal.Decimal `json:"catch_up"` // portion of Transfer above equilibrium
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	IsEquilibrium bool            `json:"is_equilibrium"`
	IsSpike       bool            `json:"is_spike"` // due expenses exceed the steady transfer
}

// CatchUpPlan is the output of the catch-up scheduler for one account.
// When Infeasible is set the schedule is empty and the remaining fields
// explain why; callers must check Infeasible before using Schedule.
type CatchUpPlan struct {
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`

	StartingBalance     decimal.Decimal `json:"starting_balance"`
	EquilibriumTransfer decimal.Decimal `json:"equilibrium_transfer"`
	MaxTransfer         decimal.Decimal `json:"max_transfer"`

	Schedule            []WeekEntry `json:"schedule"`
	EquilibriumWeek     *int        `json:"equilibrium_week,omitempty"` // 1-based, nil if never reached
	CanReachEquilibrium bool        `json:"can_reach_equilibrium"`

	Infeasible bool   `json:"infeasible"`
	Reason     string `json:"reason,omitempty"`
}

// UnifiedProjection is the single-phase projection of one account across
// all of its expenses: spike weeks, minimum balance, and the earliest week
// the acceleration contribution can safely stop.
type UnifiedProjection struct {
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`

	Weeks      []WeekEntry     `json:"weeks"`
	SpikeWeeks []int           `json:"spike_weeks,omitempty"` // 1-based
	MinBalance decimal.Decimal `json:"min_balance"`

	// AccelerationStopWeek is the first week (1-based) after which the
	// acceleration amount is no longer needed, including the configured
	// buffer. Nil when no acceleration is set or it never becomes safe.
	AccelerationStopWeek *int `json:"acceleration_stop_week,omitempty"`
}

// BudgetSummary bundles everything the presentation layer renders for one
// budget snapshot.
type BudgetSummary struct {
	Deductions         DeductionResult `json:"deductions"`
	WeeklyExpenseTotal decimal.Decimal `json:"weekly_expense_total"`
	WeeklySurplus      decimal.Decimal `json:"weekly_surplus"` // net income minus weekly-equivalent expenses

	Plans       []CatchUpPlan       `json:"plans"`
	Projections []UnifiedProjection `json:"projections"`

	GeneratedAt time.Time `json:"generated_at"`
}
