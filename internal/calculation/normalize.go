package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nzbudget/budget-server/internal/domain"
	"github.com/nzbudget/budget-server/pkg/dateutil"
	"github.com/nzbudget/budget-server/pkg/money"
)

var two = decimal.NewFromInt(2)

// WeeklyAmount converts an expense of any frequency into its weekly
// equivalent as of a given date. Monthly amounts use the uniform 52/12
// average-month factor. One-off expenses are amortized evenly over the
// weeks remaining until they fall due, so a one-off due next year costs a
// little every week rather than everything at once.
func WeeklyAmount(e domain.Expense, asOf time.Time) decimal.Decimal {
	switch e.Frequency {
	case domain.Weekly:
		return e.Amount
	case domain.Fortnightly:
		return e.Amount.Div(two)
	case domain.Monthly:
		return e.Amount.Div(money.WeeksPerMonth)
	case domain.Annually:
		return e.Amount.Div(money.WeeksPerYear)
	case domain.OneOff:
		if e.DueDate == nil {
			return decimal.Zero
		}
		weeks := dateutil.WeeksUntil(asOf, *e.DueDate)
		if weeks < 1 {
			weeks = 1
		}
		return e.Amount.Div(decimal.NewFromInt(int64(weeks)))
	}
	return decimal.Zero
}

// WeeklyEquivalent converts a plain amount at a given frequency to weekly.
// Used for allowances and other scalar figures that are not expenses.
func WeeklyEquivalent(amount decimal.Decimal, freq domain.Frequency) decimal.Decimal {
	switch freq {
	case domain.Fortnightly:
		return amount.Div(two)
	case domain.Monthly:
		return amount.Div(money.WeeksPerMonth)
	case domain.Annually:
		return amount.Div(money.WeeksPerYear)
	default:
		return amount
	}
}

// OccurrencesBetween returns the concrete due dates of an expense within
// [start, end], inclusive on both ends. Dates are local calendar dates with
// no time-of-day component.
func OccurrencesBetween(e domain.Expense, start, end time.Time) []time.Time {
	start = dateutil.Truncate(start)
	end = dateutil.Truncate(end)
	if end.Before(start) {
		return nil
	}

	switch e.Frequency {
	case domain.Weekly:
		return steppedOccurrences(start, end, e.DueDay, 7)
	case domain.Fortnightly:
		return steppedOccurrences(start, end, e.DueDay, 14)
	case domain.Monthly:
		return monthlyOccurrences(start, end, e.DueDay)
	case domain.Annually:
		return annualOccurrences(e, start, end)
	case domain.OneOff:
		if e.DueDate == nil {
			return nil
		}
		due := dateutil.Truncate(*e.DueDate)
		if !due.Before(start) && !due.After(end) {
			return []time.Time{due}
		}
		return nil
	}
	return nil
}

func steppedOccurrences(start, end time.Time, dueDay, stepDays int) []time.Time {
	var out []time.Time
	for d := dateutil.NextWeekday(start, time.Weekday(dueDay)); !d.After(end); d = d.AddDate(0, 0, stepDays) {
		out = append(out, d)
	}
	return out
}

func monthlyOccurrences(start, end time.Time, dueDay int) []time.Time {
	var out []time.Time
	for d := dateutil.NextMonthlyDue(start, dueDay); !d.After(end); d = dateutil.AddCalendarMonth(d, dueDay) {
		out = append(out, d)
	}
	return out
}

// annualOccurrences evaluates the stored date across year offsets so that
// projections longer than a year still see every anniversary.
func annualOccurrences(e domain.Expense, start, end time.Time) []time.Time {
	if e.DueDate == nil {
		return nil
	}
	anchor := dateutil.Truncate(*e.DueDate)

	var out []time.Time
	for year := start.Year(); year <= end.Year(); year++ {
		day := dateutil.ClampDay(year, anchor.Month(), anchor.Day())
		d := dateutil.Date(year, anchor.Month(), day)
		if !d.Before(start) && !d.After(end) {
			out = append(out, d)
		}
	}
	return out
}
