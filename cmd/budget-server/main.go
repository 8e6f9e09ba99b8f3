package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "budget-server",
	Short: "NZ weekly budgeting engine",
	Long: `budget-server projects a weekly budget: NZ tax and deduction
breakdowns, weekly-equivalent expense normalization, and catch-up
schedules that bring savings accounts to equilibrium.`,
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(calcCmd())
	rootCmd.AddCommand(projectCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
