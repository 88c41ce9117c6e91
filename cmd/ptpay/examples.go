package main

import (
	"fmt"

	"github.com/rgehrsitz/ptpay/internal/calculation"
	"github.com/rgehrsitz/ptpay/internal/output"
	"github.com/spf13/cobra"
)

func examplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples",
		Short: "Print the reference salary table",
		Long: "Evaluate the reference monthly salaries (minimum wage to 10 000 €) under\n" +
			"one profile. The default profile is monthly, 14 payments, employee,\n" +
			"standard regime, single, no dependents.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := profileFromFlags(cmd)
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			rows, err := engine.Examples(profile, calculation.ReferenceMonthlySalaries)
			if err != nil {
				return err
			}

			asCSV, _ := cmd.Flags().GetBool("csv")
			if asCSV {
				data, err := output.FormatExamplesCSV(rows)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "SALARY EXAMPLES (tax year %d)\n", engine.Rules.Metadata.TaxYear)
			fmt.Fprintf(out, "Profile: %s salary, %s\n", profile.SalaryMode, output.TraitsSummary(profile))
			fmt.Fprintln(out)
			fmt.Fprint(out, output.FormatExamplesTable(rows))
			return nil
		},
	}
	addProfileFlags(cmd, false)
	cmd.Flags().Bool("csv", false, "Print CSV instead of a table")
	return cmd
}
