package main

import (
	"fmt"
	"os"

	calc "github.com/nzbudget/budget-server/internal/calculation"
	"github.com/nzbudget/budget-server/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_catchup <profile.yaml>")
		return
	}
	p := config.NewInputParser()
	budget, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}

	engine := calc.NewEngine()
	summary := engine.RunBudget(budget)

	fmt.Printf("weekly net: %s  expenses: %s  surplus: %s\n",
		summary.Deductions.WeeklyNet.StringFixed(2),
		summary.WeeklyExpenseTotal.StringFixed(2),
		summary.WeeklySurplus.StringFixed(2))

	for _, plan := range summary.Plans {
		fmt.Printf("\n%s: start=%s eq=%s max=%s infeasible=%v\n",
			plan.AccountName,
			plan.StartingBalance.StringFixed(2),
			plan.EquilibriumTransfer.StringFixed(2),
			plan.MaxTransfer.StringFixed(2),
			plan.Infeasible)
		for _, w := range plan.Schedule {
			fmt.Printf("  w%-3d %s due=%8s transfer=%8s catchup=%8s after=%9s eq=%v\n",
				w.Week, w.Date.Format("2006-01-02"),
				w.DueTotal.StringFixed(2), w.Transfer.StringFixed(2),
				w.CatchUp.StringFixed(2), w.BalanceAfter.StringFixed(2),
				w.IsEquilibrium)
		}
	}
}
