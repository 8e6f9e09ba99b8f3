package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/nzbudget/budget-server/internal/domain"
	"github.com/nzbudget/budget-server/pkg/dateutil"
)

// ConsoleFormatter renders the deduction breakdown and per-account weekly
// schedules as plain text tables.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(summary *domain.BudgetSummary) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "WEEKLY BUDGET SUMMARY")
	fmt.Fprintln(&buf, "================================")
	writeDeductions(&buf, summary.Deductions)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Weekly expenses: %s\n", FormatCurrency(summary.WeeklyExpenseTotal))
	fmt.Fprintf(&buf, "Weekly surplus:  %s\n", FormatCurrency(summary.WeeklySurplus))

	for _, plan := range summary.Plans {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "CATCH-UP: %s (start %s, equilibrium %s/wk, max %s/wk)\n",
			plan.AccountName,
			FormatCurrency(plan.StartingBalance),
			FormatCurrency(plan.EquilibriumTransfer),
			FormatCurrency(plan.MaxTransfer),
		)
		if plan.Infeasible {
			fmt.Fprintf(&buf, "  INFEASIBLE: %s\n", plan.Reason)
			continue
		}
		if plan.EquilibriumWeek != nil {
			fmt.Fprintf(&buf, "  Equilibrium reached in week %d\n", *plan.EquilibriumWeek)
		} else {
			fmt.Fprintf(&buf, "  Equilibrium not reached within the horizon\n")
		}
		writeSchedule(&buf, plan.Schedule)
	}

	for _, proj := range summary.Projections {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "PROJECTION: %s (min balance %s)\n", proj.AccountName, FormatCurrency(proj.MinBalance))
		if len(proj.SpikeWeeks) > 0 {
			fmt.Fprintf(&buf, "  Spike weeks: %s\n", joinWeeks(proj.SpikeWeeks))
		}
		if proj.AccelerationStopWeek != nil {
			fmt.Fprintf(&buf, "  Acceleration can stop after week %d\n", *proj.AccelerationStopWeek)
		}
	}

	return buf.Bytes(), nil
}

func writeDeductions(buf *bytes.Buffer, d domain.DeductionResult) {
	fmt.Fprintf(buf, "Weekly gross:    %s (annual %s)\n", FormatCurrency(d.WeeklyGross), FormatCurrency(d.AnnualGross))
	fmt.Fprintf(buf, "  PAYE:          %s\n", FormatCurrency(d.PAYE))
	fmt.Fprintf(buf, "  ACC levy:      %s\n", FormatCurrency(d.ACCLevy))
	if !d.KiwiSaverEmployee.IsZero() {
		fmt.Fprintf(buf, "  KiwiSaver:     %s (employer %s)\n", FormatCurrency(d.KiwiSaverEmployee), FormatCurrency(d.KiwiSaverEmployer))
	}
	if !d.StudentLoan.IsZero() {
		fmt.Fprintf(buf, "  Student loan:  %s\n", FormatCurrency(d.StudentLoan))
	}
	if !d.IETCCredit.IsZero() {
		fmt.Fprintf(buf, "  IETC credit:   %s\n", FormatCurrency(d.IETCCredit))
	}
	if !d.Allowance.IsZero() {
		fmt.Fprintf(buf, "  Allowance:     %s\n", FormatCurrency(d.Allowance))
	}
	fmt.Fprintf(buf, "Weekly net:      %s\n", FormatCurrency(d.WeeklyNet))
}

func writeSchedule(buf *bytes.Buffer, schedule []domain.WeekEntry) {
	if len(schedule) == 0 {
		return
	}
	fmt.Fprintf(buf, "  %-4s %-10s %10s %10s %10s %10s  %s\n",
		"Week", "Date", "Due", "Transfer", "CatchUp", "Balance", "")
	for _, entry := range schedule {
		marker := ""
		if entry.IsSpike {
			marker = "spike"
		}
		if entry.IsEquilibrium && marker == "" {
			marker = "eq"
		}
		fmt.Fprintf(buf, "  %-4d %-10s %10s %10s %10s %10s  %s\n",
			entry.Week,
			entry.Date.Format(dateutil.DateLayout),
			entry.DueTotal.StringFixed(2),
			entry.Transfer.StringFixed(2),
			entry.CatchUp.StringFixed(2),
			entry.BalanceAfter.StringFixed(2),
			marker,
		)
	}
}

func joinWeeks(weeks []int) string {
	parts := make([]string, len(weeks))
	for i, w := range weeks {
		parts[i] = fmt.Sprintf("%d", w)
	}
	return strings.Join(parts, ", ")
}
