package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nzbudget/budget-server/internal/domain"
	"github.com/nzbudget/budget-server/pkg/dateutil"
)

// PlanCatchUp builds the catch-up schedule for one account: the weekly
// equilibrium transfer plus whatever temporary extra is needed, bounded by
// maxTransfer, until regular transfers alone keep the account solvent.
//
// Each week before equilibrium runs a lookahead: the rest of the horizon is
// simulated at equilibrium-only transfers, and the deepest projected
// deficit (combined with any outstanding week-ahead targets via max, not
// sum) sets this week's extra. Once the lookahead finds no deficit the
// equilibrium flag latches; it never reverts, even if a later week would in
// isolation ask for more.
func (e *Engine) PlanCatchUp(account domain.Account, expenses []domain.Expense, maxTransfer decimal.Decimal, start time.Time, horizonWeeks int) domain.CatchUpPlan {
	plan := domain.CatchUpPlan{
		AccountID:       account.ID,
		AccountName:     account.Name,
		StartingBalance: account.Balance,
		MaxTransfer:     maxTransfer,
		Schedule:        []domain.WeekEntry{},
	}

	equilibrium := decimal.Zero
	for _, exp := range expenses {
		equilibrium = equilibrium.Add(WeeklyAmount(exp, start))
	}
	plan.EquilibriumTransfer = equilibrium

	if len(expenses) == 0 || horizonWeeks < 1 {
		// Nothing to fund is a legitimate steady state, not an error.
		plan.CanReachEquilibrium = true
		return plan
	}

	if equilibrium.GreaterThan(maxTransfer) {
		plan.Infeasible = true
		plan.Reason = fmt.Sprintf("equilibrium transfer %s exceeds maximum affordable transfer %s",
			equilibrium.StringFixed(2), maxTransfer.StringFixed(2))
		e.Logger.Warnf("account %s: %s", account.Name, plan.Reason)
		return plan
	}

	table := buildWeekTable(expenses, start, horizonWeeks)
	maxExtra := maxTransfer.Sub(equilibrium)
	weekAheadRemaining := decimal.Zero
	if account.IsWeekAhead {
		weekAheadRemaining = weekAheadDeficit(expenses, start)
	}

	balance := account.Balance
	equilibriumReached := false
	var equilibriumWeek *int

	for w := 0; w < horizonWeeks; w++ {
		transfer := equilibrium
		catchUp := decimal.Zero

		if !equilibriumReached {
			minBal := minBalanceFrom(balance, table.totals[w:], equilibrium)
			balanceDeficit := decimal.Zero
			if minBal.IsNegative() {
				balanceDeficit = minBal.Neg()
			}

			// The binding constraint drives the pace: whichever of the
			// balance deficit and the week-ahead shortfall is larger.
			combined := decimal.Max(balanceDeficit, weekAheadRemaining)

			if combined.LessThanOrEqual(decimal.Zero) {
				equilibriumReached = true
				week := w + 1
				equilibriumWeek = &week
			} else {
				extra := decimal.Min(combined, maxExtra)
				transfer = equilibrium.Add(extra)
				catchUp = extra
				weekAheadRemaining = decimal.Max(decimal.Zero, weekAheadRemaining.Sub(extra))
			}
		}

		before := balance
		balance = balance.Add(transfer).Sub(table.totals[w])

		plan.Schedule = append(plan.Schedule, domain.WeekEntry{
			Week:          w + 1,
			Date:          dateutil.AddWeeks(table.start, w),
			Due:           table.due[w],
			DueTotal:      table.totals[w],
			Transfer:      transfer,
			CatchUp:       catchUp,
			BalanceBefore: before,
			BalanceAfter:  balance,
			IsEquilibrium: equilibriumReached,
		})
	}

	plan.EquilibriumWeek = equilibriumWeek
	plan.CanReachEquilibrium = equilibriumWeek != nil
	return plan
}

// weekAheadDeficit totals the outstanding per-expense targets: repeating
// weekly/fortnightly expenses want twice their weekly amount banked in
// their sub-ledger (next week's payment always ready), dated expenses want
// their full amount banked a week ahead of the due date.
func weekAheadDeficit(expenses []domain.Expense, asOf time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		var target decimal.Decimal
		switch e.Frequency {
		case domain.Weekly, domain.Fortnightly:
			target = WeeklyAmount(e, asOf).Mul(two)
		default:
			target = e.Amount
		}
		shortfall := target.Sub(e.SubAccountBalance)
		if shortfall.IsPositive() {
			total = total.Add(shortfall)
		}
	}
	return total
}
