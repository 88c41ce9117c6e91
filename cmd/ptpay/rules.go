package main

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/ptpay/internal/config"
	"github.com/rgehrsitz/ptpay/internal/transform"
	"github.com/spf13/cobra"
)

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the tax rules table in use",
		Long:  "Print the rules YAML: the --rules override file if given, the embedded table otherwise.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rulesFile, _ := cmd.Flags().GetString("rules")
			if rulesFile == "" {
				_, err := cmd.OutOrStdout().Write(config.EmbeddedRulesYAML())
				return err
			}
			if _, err := config.LoadRulesFromFile(rulesFile); err != nil {
				return err
			}
			data, err := os.ReadFile(rulesFile)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the scenario templates usable with compare --with",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
		},
	}
}

func transformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transforms",
		Short: "List the transforms usable with compare --transform",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available transforms (name:key=value,...):")
			for _, name := range transform.NewTransformRegistry().List() {
				fmt.Fprintf(out, "  %s\n", name)
			}
		},
	}
}
