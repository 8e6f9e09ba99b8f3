package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates. Dates carry no
// time-of-day or timezone component; everything is anchored to UTC midnight
// so that parsing "2006-01-02" never shifts the day.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Date builds a UTC-midnight date from its components.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate strips any time-of-day component from t.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// AddWeeks returns the date n whole weeks after t.
func AddWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, 7*n)
}

// WeeksUntil returns the number of whole weeks (rounded up) from `from` to
// `to`. Returns 0 when `to` is not after `from`.
func WeeksUntil(from, to time.Time) int {
	from = Truncate(from)
	to = Truncate(to)
	if !to.After(from) {
		return 0
	}
	days := int(to.Sub(from).Hours() / 24)
	return (days + 6) / 7
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay clamps a day-of-month to the last valid day of the given month,
// so a due day of 31 pays on the 30th (or 28th/29th) in shorter months.
func ClampDay(year int, month time.Month, day int) int {
	if day < 1 {
		return 1
	}
	if last := DaysInMonth(year, month); day > last {
		return last
	}
	return day
}

// NextWeekday returns the first date on or after `from` that falls on the
// given weekday.
func NextWeekday(from time.Time, weekday time.Weekday) time.Time {
	from = Truncate(from)
	offset := (int(weekday) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, offset)
}

// NextMonthlyDue returns the first monthly due date on or after `from` for
// an expense due on dueDay each month. Day-of-month overflow clamps to the
// last day of the month rather than rolling into the next one.
func NextMonthlyDue(from time.Time, dueDay int) time.Time {
	from = Truncate(from)
	due := Date(from.Year(), from.Month(), ClampDay(from.Year(), from.Month(), dueDay))
	if due.Before(from) {
		next := Date(from.Year(), from.Month(), 1).AddDate(0, 1, 0)
		due = Date(next.Year(), next.Month(), ClampDay(next.Year(), next.Month(), dueDay))
	}
	return due
}

// AddCalendarMonth steps a monthly due date forward one calendar month,
// re-clamping against the target month's length. The caller supplies the
// original dueDay so that a date clamped to Feb 28 can recover to the 31st
// in longer months.
func AddCalendarMonth(t time.Time, dueDay int) time.Time {
	next := Date(t.Year(), t.Month(), 1).AddDate(0, 1, 0)
	return Date(next.Year(), next.Month(), ClampDay(next.Year(), next.Month(), dueDay))
}
