package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nzbudget/budget-server/internal/domain"
	"github.com/nzbudget/budget-server/pkg/dateutil"
)

// weekTable precomputes, for every week of a projection, which expenses
// fall due and what they total. Week w covers the seven days starting at
// start + 7w.
type weekTable struct {
	start  time.Time
	due    [][]domain.DueExpense
	totals []decimal.Decimal
}

func buildWeekTable(expenses []domain.Expense, start time.Time, horizonWeeks int) weekTable {
	t := weekTable{
		start:  dateutil.Truncate(start),
		due:    make([][]domain.DueExpense, horizonWeeks),
		totals: make([]decimal.Decimal, horizonWeeks),
	}
	if horizonWeeks < 1 {
		return t
	}
	end := t.start.AddDate(0, 0, 7*horizonWeeks-1)

	for _, e := range expenses {
		for _, occ := range OccurrencesBetween(e, t.start, end) {
			w := int(occ.Sub(t.start).Hours()/24) / 7
			if w < 0 || w >= horizonWeeks {
				continue
			}
			t.due[w] = append(t.due[w], domain.DueExpense{
				ExpenseID: e.ID,
				Name:      e.Name,
				Amount:    e.Amount,
			})
			t.totals[w] = t.totals[w].Add(e.Amount)
		}
	}
	return t
}

// minBalanceFrom simulates the remaining weeks applying a fixed weekly
// transfer and returns the most negative balance reached (or the starting
// balance when no weeks remain). This is the shared solvency primitive
// behind both the catch-up lookahead and the acceleration stop check.
func minBalanceFrom(balance decimal.Decimal, weekTotals []decimal.Decimal, transfer decimal.Decimal) decimal.Decimal {
	minBal := balance
	for _, due := range weekTotals {
		balance = balance.Add(transfer).Sub(due)
		if balance.LessThan(minBal) {
			minBal = balance
		}
	}
	return minBal
}

// staysSolvent reports whether a fixed weekly transfer keeps the balance
// non-negative across the remaining weeks.
func staysSolvent(balance decimal.Decimal, weekTotals []decimal.Decimal, transfer decimal.Decimal) bool {
	return !minBalanceFrom(balance, weekTotals, transfer).IsNegative()
}
