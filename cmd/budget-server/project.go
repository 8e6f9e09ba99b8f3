package main

import (
	"github.com/spf13/cobra"

	"github.com/nzbudget/budget-server/internal/calculation"
	"github.com/nzbudget/budget-server/internal/config"
	"github.com/nzbudget/budget-server/internal/output"
)

func projectCmd() *cobra.Command {
	var flagFormat string

	cmd := &cobra.Command{
		Use:   "project <profile.yaml>",
		Short: "Project a budget profile from a YAML file",
		Long:  `Load a budget profile and print the full projection: deduction breakdown, catch-up schedules and spike weeks per account.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			budget, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			summary := calculation.NewEngine().RunBudget(budget)
			return output.GenerateReport(summary, flagFormat)
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "console", "output format (console, json, csv)")

	return cmd
}
