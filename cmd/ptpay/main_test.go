package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioFile = "../../test/testdata/scenarios.yaml"

// run executes the CLI with args and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
	})
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "ptpay", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("rules"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"calculate", "validate", "compare", "examples", "gross-up", "rules", "templates", "transforms", "version"} {
		assert.True(t, names[want], "command %s is registered", want)
	}

	out, _, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")

	_, _, err = run(t, "invalid-command")
	assert.Error(t, err)
	_, _, err = run(t, "--invalid-flag")
	assert.Error(t, err)
}

func TestCalculate_Flags(t *testing.T) {
	out, _, err := run(t, "calculate", "--gross", "2500", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "cli,35000.00,3850.00,6661.41,24488.59,1749.19,0.3003")

	out, _, err = run(t, "calculate", "--gross", "100000", "--mode", "annual", "--regime", "flat", "--name", "expat", "-f", "detailed-csv")
	require.NoError(t, err)
	assert.Contains(t, out, "expat,")
	assert.Contains(t, out, "71200.00")

	out, _, err = run(t, "calculate", "--gross", "2500")
	require.NoError(t, err)
	assert.Contains(t, out, "PORTUGUESE NET PAY ANALYSIS - TAX YEAR 2026")
}

func TestCalculate_File(t *testing.T) {
	out, _, err := run(t, "calculate", scenarioFile, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"tax_year": 2026`)
	assert.Contains(t, out, `"name": "couple_200k"`)

	out, _, err = run(t, "calculate", scenarioFile, "-f", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "NET PAY SUMMARY (tax year 2026)")
	assert.Contains(t, out, "family_3000")

	out, _, err = run(t, "calculate", "../../test/testdata/aliases.yaml", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "nhr_couple,100000.00,11000.00,17800.00,71200.00")
}

func TestCalculate_Errors(t *testing.T) {
	_, _, err := run(t, "calculate")
	assert.ErrorContains(t, err, "--gross is required")

	_, _, err = run(t, "calculate", "--gross", "abc")
	assert.True(t, errors.Is(err, domain.ErrInvalidSalary))

	_, _, err = run(t, "calculate", "--gross", "2500", "--payments", "13")
	assert.True(t, errors.Is(err, domain.ErrInvalidPaymentCount))

	_, _, err = run(t, "calculate", "--gross", "2500", "--marital", "widowed")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, _, err = run(t, "calculate", "--gross", "2500", "-f", "docx")
	assert.ErrorContains(t, err, "unknown output format")

	_, _, err = run(t, "calculate", "--gross", "2500", "--log-level", "loud")
	assert.ErrorContains(t, err, "log level")

	_, _, err = run(t, "calculate", "--gross", "2500", "--rules", "missing.yaml")
	assert.Error(t, err)

	_, _, err = run(t, "calculate", "../../test/testdata/invalid_scenarios.yaml")
	assert.Error(t, err)
}

func TestCalculate_DebugLogging(t *testing.T) {
	_, stderr, err := run(t, "calculate", "--gross", "2500", "--log-level", "debug", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, stderr, "module=calculation")
	assert.Contains(t, stderr, "scenario cli")
	assert.Contains(t, stderr, "taxable=31150.00")
	assert.Contains(t, stderr, "tax before credits=6661.41")

	_, stderr, err = run(t, "calculate", "--gross", "2500", "--log-level", "trace", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, stderr, "taxable=31150.00")

	_, stderr, err = run(t, "calculate", "--gross", "2500", "--log-level", "info", "-f", "csv")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "taxable=")
}

func TestCalculate_Write(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, _, err := run(t, "calculate", "--gross", "2500", "-f", "html", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to ptpay_report_")

	matches, err := filepath.Glob(filepath.Join(dir, "ptpay_report_*.html"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Net Pay Analysis 2026")
}

func TestValidate(t *testing.T) {
	out, _, err := run(t, "validate", scenarioFile)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (5 scenarios)")

	_, _, err = run(t, "validate", "../../test/testdata/invalid_scenarios.yaml")
	assert.Error(t, err)

	_, _, err = run(t, "validate")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	out, _, err := run(t, "compare", scenarioFile, "--with", "flat_regime,plus_one_dependent")
	require.NoError(t, err)
	assert.Contains(t, out, "NET PAY SCENARIO COMPARISON")
	assert.Contains(t, out, "Base Scenario: employee_2500")
	assert.Contains(t, out, "Configuration: "+scenarioFile)
	assert.Contains(t, out, "employee_2500_flat_regime")
	assert.Contains(t, out, "RECOMMENDATIONS")

	out, _, err = run(t, "compare", "--gross", "2500", "--transform", "set_dependents:count=2", "--transform", "set_disability:enabled=true", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "cli_custom,alternative,")

	out, _, err = run(t, "compare", scenarioFile, "--base", "flat_100k", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"baseScenarioName": "flat_100k"`)
	assert.Equal(t, 4, strings.Count(out, `"scenarioName"`)-1, "every other scenario is an alternative")

	out, _, err = run(t, "compare", scenarioFile, "--with", "self_employed", "-f", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "employee_2500_self_employed")

	out, _, err = run(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Templates")
}

func TestCompare_Errors(t *testing.T) {
	_, _, err := run(t, "compare", "--gross", "2500")
	assert.ErrorContains(t, err, "nothing to compare")

	_, _, err = run(t, "compare", scenarioFile, "--with", "unknown_template")
	assert.ErrorContains(t, err, "comparison failed")

	_, _, err = run(t, "compare", scenarioFile, "--base", "nobody", "--with", "flat_regime")
	assert.Error(t, err)
}

func TestExamples(t *testing.T) {
	out, _, err := run(t, "examples", "--csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 18)
	assert.True(t, strings.HasPrefix(lines[0], "GrossMonthly,"))
	assert.True(t, strings.HasPrefix(lines[1], "870.00,95.70,0.00,774.30,"))

	out, _, err = run(t, "examples", "--regime", "flat")
	require.NoError(t, err)
	assert.Contains(t, out, "SALARY EXAMPLES (tax year 2026)")
	assert.Contains(t, out, "flat alternative")

	_, _, err = run(t, "examples", "--category", "robot")
	assert.Error(t, err)
}

func TestGrossUp(t *testing.T) {
	out, _, err := run(t, "gross-up", "--target", "1749.185")
	require.NoError(t, err)
	assert.Contains(t, out, "Target net per payment:")
	assert.Contains(t, out, "#6")
	assert.NotContains(t, out, "Warning")

	out, _, err = run(t, "gross-up", "--target", "71200", "--annual", "--regime", "flat")
	require.NoError(t, err)
	assert.Contains(t, out, "Gross per year:")
	assert.Contains(t, out, "n/a (flat regime)")

	_, _, err = run(t, "gross-up")
	assert.ErrorContains(t, err, "--target is required")
	_, _, err = run(t, "gross-up", "--target", "x")
	assert.Error(t, err)
	_, _, err = run(t, "gross-up", "--target", "-5")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, _, err = run(t, "gross-up", "--target", "1000", "--tolerance", "-0.5")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRulesAndCatalogs(t *testing.T) {
	out, _, err := run(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "tax_year: 2026")

	override := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(override, []byte(out), 0o644))
	again, _, err := run(t, "rules", "--rules", override)
	require.NoError(t, err)
	assert.Equal(t, out, again)

	_, _, err = run(t, "rules", "--rules", filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)

	out, _, err = run(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "flat_regime")

	out, _, err = run(t, "transforms")
	require.NoError(t, err)
	assert.Contains(t, out, "set_regime")
	assert.Contains(t, out, "scale_salary")

	out, _, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ptpay dev")
}
