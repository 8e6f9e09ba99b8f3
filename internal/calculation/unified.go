package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nzbudget/budget-server/internal/domain"
	"github.com/nzbudget/budget-server/pkg/dateutil"
)

// ProjectUnified runs the single-phase projection for one account across
// all of its expenses at once. It applies the steady transfer (equilibrium
// plus any configured acceleration) week by week, flags spike weeks where
// the dues exceed the transfer, and finds the earliest week after which the
// acceleration can safely stop: the first week whose remaining horizon
// stays solvent on equilibrium-only transfers, pushed out by the account's
// buffer weeks.
func (e *Engine) ProjectUnified(account domain.Account, expenses []domain.Expense, start time.Time, horizonWeeks int) domain.UnifiedProjection {
	proj := domain.UnifiedProjection{
		AccountID:   account.ID,
		AccountName: account.Name,
		Weeks:       []domain.WeekEntry{},
	}
	if horizonWeeks < 1 {
		proj.MinBalance = account.Balance
		return proj
	}

	equilibrium := decimal.Zero
	for _, exp := range expenses {
		equilibrium = equilibrium.Add(WeeklyAmount(exp, start))
	}

	accelerating := account.AccelerationAmount.IsPositive()
	steady := equilibrium.Add(account.AccelerationAmount)

	table := buildWeekTable(expenses, start, horizonWeeks)

	balance := account.Balance
	minBalance := balance
	var stopWeek *int

	for w := 0; w < horizonWeeks; w++ {
		transfer := equilibrium
		if accelerating && (stopWeek == nil || w+1 <= *stopWeek) {
			transfer = steady
		}

		before := balance
		balance = balance.Add(transfer).Sub(table.totals[w])
		if balance.LessThan(minBalance) {
			minBalance = balance
		}

		isSpike := table.totals[w].GreaterThan(transfer)
		if isSpike {
			proj.SpikeWeeks = append(proj.SpikeWeeks, w+1)
		}

		proj.Weeks = append(proj.Weeks, domain.WeekEntry{
			Week:          w + 1,
			Date:          dateutil.AddWeeks(table.start, w),
			Due:           table.due[w],
			DueTotal:      table.totals[w],
			Transfer:      transfer,
			BalanceBefore: before,
			BalanceAfter:  balance,
			IsEquilibrium: transfer.Equal(equilibrium),
			IsSpike:       isSpike,
		})

		// Same solvency check as the catch-up lookahead, but walked forward
		// week by week instead of re-run against each candidate transfer.
		if accelerating && stopWeek == nil && staysSolvent(balance, table.totals[w+1:], equilibrium) {
			week := w + 1 + account.AccelerationBufferWeeks
			stopWeek = &week
		}
	}

	proj.MinBalance = minBalance
	if stopWeek != nil && *stopWeek <= horizonWeeks {
		proj.AccelerationStopWeek = stopWeek
	}
	return proj
}
