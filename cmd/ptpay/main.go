package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/ptpay/internal/calculation"
	"github.com/rgehrsitz/ptpay/internal/compare"
	"github.com/rgehrsitz/ptpay/internal/config"
	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/rgehrsitz/ptpay/internal/logging"
	"github.com/rgehrsitz/ptpay/internal/output"
	"github.com/rgehrsitz/ptpay/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var log = logging.For("cli")

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ptpay %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(out, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// newEngine configures logging from the persistent flags and builds an
// engine over the embedded or overridden rules table.
func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	level, _ := cmd.Flags().GetString("log-level")
	if err := logging.Setup(level, cmd.ErrOrStderr()); err != nil {
		return nil, err
	}
	rulesFile, _ := cmd.Flags().GetString("rules")
	rules, err := config.ResolveRules(rulesFile)
	if err != nil {
		return nil, err
	}
	if rulesFile != "" {
		log.Infof("using rules from %s (tax year %d)", rulesFile, rules.Metadata.TaxYear)
	}
	engine := calculation.NewCalculationEngineWithRules(rules)
	engine.SetLogger(logging.For("calculation"))
	engine.Debug = logging.DebugEnabled()
	return engine, nil
}

// addProfileFlags registers the input-record flags. The gross salary flag
// is left out for commands that vary it themselves.
func addProfileFlags(cmd *cobra.Command, withGross bool) {
	if withGross {
		cmd.Flags().String("gross", "", "Gross salary (per payment, or per year with --mode annual)")
		cmd.Flags().String("name", "cli", "Scenario name used in the report")
	}
	cmd.Flags().String("mode", string(domain.SalaryMonthly), "Salary input mode (monthly, annual)")
	cmd.Flags().Int("payments", domain.FourteenPayments, "Payments per year (12 or 14)")
	cmd.Flags().String("category", string(domain.Employee), "Employment category (employee, self_employed)")
	cmd.Flags().String("regime", string(domain.RegimeStandard), "Tax regime (standard, flat)")
	cmd.Flags().String("marital", string(domain.Single), "Marital status (single, married_single_earner, married_two_earners)")
	cmd.Flags().Int("dependents", 0, "Number of dependents")
	cmd.Flags().Bool("disability", false, "Claim the disability credit")
}

// profileFromFlags builds an input record from the flags of addProfileFlags
func profileFromFlags(cmd *cobra.Command) (domain.TaxInput, error) {
	flags := cmd.Flags()
	var in domain.TaxInput
	var err error

	if flags.Lookup("gross") != nil {
		raw, _ := flags.GetString("gross")
		if raw == "" {
			return in, fmt.Errorf("--gross is required when no scenario file is given")
		}
		if in.GrossSalary, err = decimal.NewFromString(raw); err != nil {
			return in, fmt.Errorf("%w: --gross %q is not a number", domain.ErrInvalidSalary, raw)
		}
	}

	mode, _ := flags.GetString("mode")
	if in.SalaryMode, err = domain.ParseSalaryInputMode(mode); err != nil {
		return in, err
	}
	category, _ := flags.GetString("category")
	if in.Category, err = domain.ParseEmploymentCategory(category); err != nil {
		return in, err
	}
	regime, _ := flags.GetString("regime")
	if in.Regime, err = domain.ParseTaxRegime(regime); err != nil {
		return in, err
	}
	marital, _ := flags.GetString("marital")
	if in.MaritalStatus, err = domain.ParseMaritalStatus(marital); err != nil {
		return in, err
	}
	in.PaymentCount, _ = flags.GetInt("payments")
	in.Dependents, _ = flags.GetInt("dependents")
	in.HasDisability, _ = flags.GetBool("disability")
	return in, nil
}

// loadScenarios reads the scenario file, or builds a one-scenario
// configuration from the profile flags when no file is given.
func loadScenarios(cmd *cobra.Command, args []string) (*domain.Configuration, error) {
	if len(args) == 1 {
		return config.NewInputParser().LoadFromFile(args[0])
	}
	in, err := profileFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	name, _ := cmd.Flags().GetString("name")
	return &domain.Configuration{Scenarios: []domain.Scenario{{Name: name, Input: in}}}, nil
}

// emitReport renders the report to stdout, or to a timestamped file with --write
func emitReport(cmd *cobra.Command, report *domain.Report, formatName string) error {
	f := output.GetFormatterByName(formatName)
	if f == nil {
		return fmt.Errorf("unknown output format %q (valid: %s; aliases: %s)", formatName,
			strings.Join(output.AvailableFormatterNames(), ", "),
			strings.Join(output.AvailableFormatAliases(), ", "))
	}
	write, _ := cmd.Flags().GetBool("write")
	if write {
		filename, err := output.WriteFormatted(f, report, output.FileExtension(f))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [scenario-file]",
		Short: "Calculate net pay for a scenario file or a single profile",
		Long: "Calculate net pay, social security, IRS and effective rates.\n\n" +
			"Either pass a YAML scenario file or describe one profile with flags:\n" +
			"  ptpay calculate --gross 2500\n" +
			"  ptpay calculate --gross 100000 --mode annual --regime flat",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenarios(cmd, args)
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			report, err := engine.RunScenarios(cfg)
			if err != nil {
				return err
			}
			formatName, _ := cmd.Flags().GetString("format")
			return emitReport(cmd, report, formatName)
		},
	}
	addProfileFlags(cmd, true)
	cmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, csv, detailed-csv, json, yaml, html, pdf)")
	cmd.Flags().Bool("write", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scenario-file]",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid (%d scenarios)\n", args[0], len(cfg.Scenarios))
			return nil
		},
	}
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [scenario-file]",
		Short: "Compare a base scenario against templates, transforms or other scenarios",
		Long: "Compare a base scenario against alternatives.\n\n" +
			"Alternatives come from templates (--with), a custom transform chain\n" +
			"(--transform, repeatable) or, when neither is given, the other\n" +
			"scenarios of the file.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listTemplates, _ := cmd.Flags().GetBool("list-templates")
			if listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}

			cfg, err := loadScenarios(cmd, args)
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}

			base, _ := cmd.Flags().GetString("base")
			with, _ := cmd.Flags().GetString("with")
			specs, _ := cmd.Flags().GetStringArray("transform")
			templates := transform.ParseTemplateList(with)

			ce := compare.NewCompareEngine(engine)
			ctx := cmd.Context()

			var set *compare.ComparisonSet
			if len(templates) == 0 && len(specs) == 0 {
				if len(cfg.Scenarios) < 2 {
					return fmt.Errorf("nothing to compare: use --with, --transform or a file with several scenarios")
				}
				set, err = ce.CompareScenarios(ctx, cfg, base, nil)
			} else {
				set, err = ce.Compare(ctx, cfg, compare.CompareOptions{
					BaseScenarioName: base,
					Templates:        templates,
					TransformSpecs:   specs,
				})
			}
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			if len(args) == 1 {
				set.ConfigPath = args[0]
			}

			formatName, _ := cmd.Flags().GetString("format")
			return emitComparison(cmd, set, engine.Rules, formatName)
		},
	}
	addProfileFlags(cmd, true)
	cmd.Flags().String("base", "", "Base scenario name (default: the first scenario)")
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArray("transform", nil, "Transform spec name:key=value (repeatable)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json, or any report format)")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	cmd.Flags().Bool("write", false, "Write report formats to a timestamped file instead of stdout")
	return cmd
}

func emitComparison(cmd *cobra.Command, set *compare.ComparisonSet, rules domain.TaxRules, formatName string) error {
	var text string
	var err error
	switch strings.ToLower(formatName) {
	case "table", "":
		text = (&compare.TableFormatter{}).Format(set)
	case "csv":
		text, err = (&compare.CSVFormatter{}).Format(set)
	case "json":
		text, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
		text += "\n"
	default:
		return emitReport(cmd, set.ToReport(calculation.DefaultAssumptions(rules)), formatName)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), text)
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ptpay",
		Short: "Portuguese net pay calculator",
		Long: "Net take-home pay for Portuguese taxpayers: social security, progressive or\n" +
			"flat IRS, solidarity surtax, marital splitting and tax credits.",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("rules", "", "Path to a tax rules YAML file (default: embedded rules)")
	root.PersistentFlags().String("log-level", "warn", "Log level ("+strings.Join(logging.LevelNames(), ", ")+")")

	root.AddCommand(calculateCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(examplesCmd())
	root.AddCommand(grossUpCmd())
	root.AddCommand(rulesCmd())
	root.AddCommand(templatesCmd())
	root.AddCommand(transformsCmd())
	root.AddCommand(versionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
