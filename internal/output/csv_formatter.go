package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/nzbudget/budget-server/internal/domain"
	"github.com/nzbudget/budget-server/pkg/dateutil"
)

// CSVFormatter exports the weekly schedule rows of every catch-up plan
// (one row per account-week).
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(summary *domain.BudgetSummary) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Account", "Week", "Date", "DueTotal", "Transfer", "CatchUp", "BalanceBefore", "BalanceAfter", "Equilibrium", "Spike"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, plan := range summary.Plans {
		for _, entry := range plan.Schedule {
			row := []string{
				plan.AccountName,
				strconv.Itoa(entry.Week),
				entry.Date.Format(dateutil.DateLayout),
				entry.DueTotal.StringFixed(2),
				entry.Transfer.StringFixed(2),
				entry.CatchUp.StringFixed(2),
				entry.BalanceBefore.StringFixed(2),
				entry.BalanceAfter.StringFixed(2),
				strconv.FormatBool(entry.IsEquilibrium),
				strconv.FormatBool(entry.IsSpike),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
