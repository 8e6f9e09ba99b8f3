package output

import (
	"encoding/json"

	"github.com/nzbudget/budget-server/internal/domain"
)

// JSONFormatter serializes the budget summary as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(summary *domain.BudgetSummary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}
