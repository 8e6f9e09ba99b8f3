package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/nzbudget/budget-server/internal/calculation"
	"github.com/nzbudget/budget-server/internal/domain"
	"github.com/nzbudget/budget-server/internal/output"
)

func calcCmd() *cobra.Command {
	var (
		flagGross         string
		flagNet           string
		flagKiwiSaver     bool
		flagKiwiSaverRate string
		flagStudentLoan   bool
		flagIETC          bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "One-shot weekly deduction breakdown",
		Long:  `Compute PAYE, ACC, KiwiSaver, student loan and IETC for a weekly pay amount. Exactly one of --gross or --net is required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (flagGross == "") == (flagNet == "") {
				return fmt.Errorf("exactly one of --gross or --net is required")
			}

			settings := domain.Settings{
				PayType:      domain.PayGross,
				HorizonWeeks: 1,
				KiwiSaver:    flagKiwiSaver,
				StudentLoan:  flagStudentLoan,
				IETC:         flagIETC,
			}
			raw := flagGross
			if flagNet != "" {
				raw = flagNet
				settings.PayType = domain.PayNet
			}

			amount, err := decimal.NewFromString(raw)
			if err != nil || amount.IsNegative() {
				return fmt.Errorf("pay amount must be a non-negative number, got %q", raw)
			}
			settings.PayAmount = amount

			if flagKiwiSaver {
				if settings.KiwiSaverRate, err = decimal.NewFromString(flagKiwiSaverRate); err != nil {
					return fmt.Errorf("invalid kiwisaver rate %q", flagKiwiSaverRate)
				}
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			result := calculation.NewEngine().WeeklyDeductions(settings)
			printDeductions(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagGross, "gross", "", "weekly gross pay")
	cmd.Flags().StringVar(&flagNet, "net", "", "weekly net (take-home) pay")
	cmd.Flags().BoolVar(&flagKiwiSaver, "kiwisaver", false, "deduct KiwiSaver employee contribution")
	cmd.Flags().StringVar(&flagKiwiSaverRate, "kiwisaver-rate", "0.03", "KiwiSaver employee rate")
	cmd.Flags().BoolVar(&flagStudentLoan, "student-loan", false, "deduct student loan repayments")
	cmd.Flags().BoolVar(&flagIETC, "ietc", false, "apply the independent earner tax credit")

	return cmd
}

func printDeductions(cmd *cobra.Command, d domain.DeductionResult) {
	cmd.Printf("Weekly gross:   %s (annual %s)\n", output.FormatCurrency(d.WeeklyGross), output.FormatCurrency(d.AnnualGross))
	cmd.Printf("  PAYE:         %s\n", output.FormatCurrency(d.PAYE))
	cmd.Printf("  ACC levy:     %s\n", output.FormatCurrency(d.ACCLevy))
	if !d.KiwiSaverEmployee.IsZero() {
		cmd.Printf("  KiwiSaver:    %s (employer %s)\n", output.FormatCurrency(d.KiwiSaverEmployee), output.FormatCurrency(d.KiwiSaverEmployer))
	}
	if !d.StudentLoan.IsZero() {
		cmd.Printf("  Student loan: %s\n", output.FormatCurrency(d.StudentLoan))
	}
	if !d.IETCCredit.IsZero() {
		cmd.Printf("  IETC credit:  %s\n", output.FormatCurrency(d.IETCCredit))
	}
	cmd.Printf("Weekly net:     %s\n", output.FormatCurrency(d.WeeklyNet))
}
