package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/ptpay/internal/calculation"
	"github.com/rgehrsitz/ptpay/internal/config"
	"github.com/rgehrsitz/ptpay/internal/logging"
	"github.com/rgehrsitz/ptpay/internal/tui"
)

// setup builds the engine and the model. Logs go to logFile, or nowhere:
// the terminal belongs to the TUI.
func setup(rulesFile, logLevel, logFile, configPath string) (tui.Model, io.Closer, error) {
	var out io.Writer = io.Discard
	var closer io.Closer = io.NopCloser(nil)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return tui.Model{}, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	if err := logging.Setup(logLevel, out); err != nil {
		closer.Close()
		return tui.Model{}, nil, err
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			closer.Close()
			return tui.Model{}, nil, fmt.Errorf("scenario file not found: %s", configPath)
		}
	}

	rules, err := config.ResolveRules(rulesFile)
	if err != nil {
		closer.Close()
		return tui.Model{}, nil, err
	}
	engine := calculation.NewCalculationEngineWithRules(rules)
	engine.SetLogger(logging.For("calculation"))
	engine.Debug = logging.DebugEnabled()
	logging.For("tui").Infof("starting, tax year %d, scenario file %q", rules.Metadata.TaxYear, configPath)

	return tui.NewModel(engine, configPath), closer, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ptpay-tui [scenario-file]",
		Short: "Interactive Portuguese net pay calculator",
		Long: "Edit the taxpayer profile and watch net pay update on every change.\n" +
			"An optional scenario file can be browsed with the s key.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := ""
			if len(args) == 1 {
				configPath = args[0]
			}
			rulesFile, _ := cmd.Flags().GetString("rules")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFile, _ := cmd.Flags().GetString("log-file")

			model, closer, err := setup(rulesFile, logLevel, logFile, configPath)
			if err != nil {
				return err
			}
			defer closer.Close()

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("rules", "", "Path to a tax rules YAML file (default: embedded rules)")
	cmd.Flags().String("log-level", "info", "Log level")
	cmd.Flags().String("log-file", "", "Append logs to this file (default: discard)")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
