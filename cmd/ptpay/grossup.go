package main

import (
	"fmt"

	"github.com/rgehrsitz/ptpay/internal/calculation"
	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/rgehrsitz/ptpay/internal/format"
	"github.com/rgehrsitz/ptpay/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func grossUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gross-up",
		Short: "Find the gross salary that yields a target net",
		Long: "Search for the gross salary whose net pay matches --target.\n" +
			"The target is per payment, or per year with --annual.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rawTarget, _ := cmd.Flags().GetString("target")
			if rawTarget == "" {
				return fmt.Errorf("--target is required")
			}
			target, err := decimal.NewFromString(rawTarget)
			if err != nil {
				return fmt.Errorf("--target %q is not a number", rawTarget)
			}
			rawTolerance, _ := cmd.Flags().GetString("tolerance")
			tolerance, err := decimal.NewFromString(rawTolerance)
			if err != nil {
				return fmt.Errorf("--tolerance %q is not a number", rawTolerance)
			}

			profile, err := profileFromFlags(cmd)
			if err != nil {
				return err
			}
			if annual, _ := cmd.Flags().GetBool("annual"); annual {
				profile.SalaryMode = domain.SalaryAnnual
			}

			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			res, err := engine.GrossUp(cmd.Context(), calculation.GrossUpRequest{
				Profile:   profile,
				TargetNet: target,
				Tolerance: tolerance,
			})
			if err != nil {
				return err
			}

			period := "per payment"
			net := res.Result.NetMonthly
			if profile.SalaryMode == domain.SalaryAnnual {
				period = "per year"
				net = res.Result.NetAnnual
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Target net %s: %s\n", period, format.FormatCurrency(target))
			fmt.Fprintf(out, "Gross %s:      %s\n", period, format.FormatCurrency(res.GrossSalary))
			fmt.Fprintf(out, "Resulting net:  %s\n", format.FormatCurrency(net))
			fmt.Fprintf(out, "Bracket:        %s\n", output.BracketSummary(profile, res.Result))
			fmt.Fprintf(out, "Iterations:     %d\n", res.Iterations)
			if !res.Converged {
				fmt.Fprintln(out, "Warning: search stopped before reaching the tolerance")
			}
			return nil
		},
	}
	addProfileFlags(cmd, false)
	cmd.Flags().String("target", "", "Target net salary")
	cmd.Flags().Bool("annual", false, "Target and answer are annual amounts")
	cmd.Flags().String("tolerance", "0.01", "Accepted distance from the target")
	return cmd
}
