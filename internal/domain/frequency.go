package domain

import "fmt"

// Frequency describes how often an expense recurs.
type Frequency string

const (
	Weekly      Frequency = "weekly"
	Fortnightly Frequency = "fortnightly"
	Monthly     Frequency = "monthly"
	Annually    Frequency = "annually"
	OneOff      Frequency = "one-off"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case Weekly, Fortnightly, Monthly, Annually, OneOff:
		return true
	}
	return false
}

// IsDated reports whether occurrences of this frequency are anchored to a
// calendar date rather than a repeating due day.
func (f Frequency) IsDated() bool {
	return f == Annually || f == OneOff
}

// ValidateDueDay checks a due-day value against the frequency's semantics:
// day-of-week (0-6) for weekly/fortnightly, day-of-month (1-31) for monthly.
// Dated frequencies ignore the due day entirely.
func (f Frequency) ValidateDueDay(dueDay int) error {
	switch f {
	case Weekly, Fortnightly:
		if dueDay < 0 || dueDay > 6 {
			return fmt.Errorf("due day %d out of range 0-6 for %s expense", dueDay, f)
		}
	case Monthly:
		if dueDay < 1 || dueDay > 31 {
			return fmt.Errorf("due day %d out of range 1-31 for monthly expense", dueDay)
		}
	}
	return nil
}
