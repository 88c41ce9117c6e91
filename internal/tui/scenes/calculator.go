package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ptpay/internal/calculation"
	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/rgehrsitz/ptpay/internal/format"
	"github.com/rgehrsitz/ptpay/internal/output"
	"github.com/rgehrsitz/ptpay/internal/tui/components"
	"github.com/rgehrsitz/ptpay/internal/tui/tuistyles"
)

// Field identifies one form control, in focus order.
type Field int

const (
	FieldSalaryMode Field = iota
	FieldSalary
	FieldPayments
	FieldCategory
	FieldRegime
	FieldMarital
	FieldDependents
	FieldDisability
	fieldCount
)

var (
	keyNext  = key.NewBinding(key.WithKeys("tab", "down"))
	keyPrev  = key.NewBinding(key.WithKeys("shift+tab", "up"))
	keyLeft  = key.NewBinding(key.WithKeys("left"))
	keyRight = key.NewBinding(key.WithKeys("right", " ", "enter"))
)

// CalculatorModel is the input form plus the live result panel. Every edit
// re-runs the calculation.
type CalculatorModel struct {
	engine *calculation.CalculationEngine

	salary     textinput.Model
	dependents textinput.Model

	mode       *components.Choice
	payments   *components.Choice
	category   *components.Choice
	regime     *components.Choice
	marital    *components.Choice
	disability *components.Choice

	focus  Field
	result *domain.TaxResult
	input  domain.TaxInput
	err    error
	width  int
}

// NewCalculatorModel creates the form filled with in and computes it.
func NewCalculatorModel(engine *calculation.CalculationEngine, in domain.TaxInput) *CalculatorModel {
	salary := textinput.New()
	salary.Prompt = ""
	salary.CharLimit = 12
	salary.Width = 14

	deps := textinput.New()
	deps.Prompt = ""
	deps.CharLimit = 2
	deps.Width = 4

	m := &CalculatorModel{
		engine:     engine,
		salary:     salary,
		dependents: deps,
		mode: components.NewChoice("Salary input", []components.Option{
			{Value: string(domain.SalaryMonthly), Label: "Monthly"},
			{Value: string(domain.SalaryAnnual), Label: "Annual"},
		}, ""),
		payments: components.NewChoice("Payments / year", []components.Option{
			{Value: "12", Label: "12"},
			{Value: "14", Label: "14"},
		}, ""),
		category: components.NewChoice("Category", []components.Option{
			{Value: string(domain.Employee), Label: "Employee"},
			{Value: string(domain.SelfEmployed), Label: "Self-employed"},
		}, ""),
		regime: components.NewChoice("Tax regime", []components.Option{
			{Value: string(domain.RegimeStandard), Label: "Standard"},
			{Value: string(domain.RegimeFlat), Label: "Flat (NHR/IFICI)"},
		}, ""),
		marital: components.NewChoice("Marital status", []components.Option{
			{Value: string(domain.Single), Label: "Single"},
			{Value: string(domain.MarriedSingleEarner), Label: "Married, one earner"},
			{Value: string(domain.MarriedTwoEarners), Label: "Married, two earners"},
		}, ""),
		disability: components.NewChoice("Disability ≥60%", []components.Option{
			{Value: "false", Label: "No"},
			{Value: "true", Label: "Yes"},
		}, ""),
	}
	m.SetInput(in)
	m.setFocus(FieldSalary)
	return m
}

// SetInput replaces every field with the values of in and recomputes
func (m *CalculatorModel) SetInput(in domain.TaxInput) {
	in = in.WithDefaults().Canonical()
	m.salary.SetValue(in.GrossSalary.String())
	m.salary.CursorEnd()
	m.dependents.SetValue(strconv.Itoa(in.Dependents))
	m.dependents.CursorEnd()
	m.mode.Select(string(in.SalaryMode))
	m.payments.Select(strconv.Itoa(in.PaymentCount))
	m.category.Select(string(in.Category))
	m.regime.Select(string(in.Regime))
	m.marital.Select(string(in.MaritalStatus))
	m.disability.Select(strconv.FormatBool(in.HasDisability))
	m.Recalculate()
}

// SetWidth updates the available width
func (m *CalculatorModel) SetWidth(width int) {
	m.width = width
}

// Focus returns the focused field
func (m *CalculatorModel) Focus() Field { return m.focus }

// Result returns the last successful result, nil after an error
func (m *CalculatorModel) Result() *domain.TaxResult { return m.result }

// Err returns the error of the last recalculation
func (m *CalculatorModel) Err() error { return m.err }

// Input reads the form into an input record. An empty salary counts as zero.
func (m *CalculatorModel) Input() (domain.TaxInput, error) {
	in := domain.TaxInput{
		SalaryMode:    domain.SalaryInputMode(m.mode.Value()),
		Category:      domain.EmploymentCategory(m.category.Value()),
		Regime:        domain.TaxRegime(m.regime.Value()),
		MaritalStatus: domain.MaritalStatus(m.marital.Value()),
		HasDisability: m.disability.Value() == "true",
	}

	raw := strings.ReplaceAll(strings.TrimSpace(m.salary.Value()), ",", ".")
	if raw == "" {
		in.GrossSalary = decimal.Zero
	} else {
		gross, err := decimal.NewFromString(raw)
		if err != nil {
			return in, fmt.Errorf("%w: gross salary %q is not a number", domain.ErrInvalidSalary, m.salary.Value())
		}
		in.GrossSalary = gross
	}

	payments, err := strconv.Atoi(m.payments.Value())
	if err != nil {
		return in, fmt.Errorf("%w: %v", domain.ErrInvalidPaymentCount, err)
	}
	in.PaymentCount = payments

	if rawDeps := strings.TrimSpace(m.dependents.Value()); rawDeps != "" {
		deps, err := strconv.Atoi(rawDeps)
		if err != nil {
			return in, fmt.Errorf("%w: dependents %q is not a whole number", domain.ErrInvalidDependents, rawDeps)
		}
		in.Dependents = deps
	}
	return in, nil
}

// Recalculate evaluates the current form
func (m *CalculatorModel) Recalculate() {
	in, err := m.Input()
	if err == nil {
		m.input = in
		m.result, err = m.engine.Calculate(in)
	}
	if err != nil {
		m.result = nil
	}
	m.err = err
}

func (m *CalculatorModel) choiceAt(f Field) *components.Choice {
	switch f {
	case FieldSalaryMode:
		return m.mode
	case FieldPayments:
		return m.payments
	case FieldCategory:
		return m.category
	case FieldRegime:
		return m.regime
	case FieldMarital:
		return m.marital
	case FieldDisability:
		return m.disability
	}
	return nil
}

func (m *CalculatorModel) setFocus(f Field) tea.Cmd {
	m.focus = f
	for i := Field(0); i < fieldCount; i++ {
		if c := m.choiceAt(i); c != nil {
			c.IsFocused = i == f
		}
	}
	m.salary.Blur()
	m.dependents.Blur()
	switch f {
	case FieldSalary:
		return m.salary.Focus()
	case FieldDependents:
		return m.dependents.Focus()
	}
	return nil
}

// Update handles messages for the calculator scene
func (m *CalculatorModel) Update(msg tea.Msg) (*CalculatorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch {
	case key.Matches(keyMsg, keyNext):
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case key.Matches(keyMsg, keyPrev):
		return m, m.setFocus((m.focus - 1 + fieldCount) % fieldCount)
	}

	if c := m.choiceAt(m.focus); c != nil {
		switch {
		case key.Matches(keyMsg, keyLeft):
			c.Prev()
		case key.Matches(keyMsg, keyRight):
			c.Next()
		default:
			return m, nil
		}
		m.Recalculate()
		return m, nil
	}

	if keyMsg.Type == tea.KeyRunes && !acceptsRunes(m.focus, keyMsg.Runes) {
		return m, nil
	}
	return m.updateInputs(msg)
}

// acceptsRunes keeps the text fields numeric
func acceptsRunes(f Field, runes []rune) bool {
	for _, r := range runes {
		switch {
		case r >= '0' && r <= '9':
		case (r == '.' || r == ',') && f == FieldSalary:
		default:
			return false
		}
	}
	return true
}

func (m *CalculatorModel) updateInputs(msg tea.Msg) (*CalculatorModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FieldSalary:
		before := m.salary.Value()
		m.salary, cmd = m.salary.Update(msg)
		if m.salary.Value() != before {
			m.Recalculate()
		}
	case FieldDependents:
		before := m.dependents.Value()
		m.dependents, cmd = m.dependents.Update(msg)
		if m.dependents.Value() != before {
			m.Recalculate()
		}
	}
	return m, cmd
}

// View renders the form and the result side by side, or stacked when narrow
func (m *CalculatorModel) View() string {
	form := tuistyles.PanelStyle.Render(m.renderForm())
	results := tuistyles.PanelStyle.Render(m.renderResults())
	if m.width > 0 && m.width < lipgloss.Width(form)+lipgloss.Width(results)+2 {
		return lipgloss.JoinVertical(lipgloss.Left, form, results)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, form, "  ", results)
}

func (m *CalculatorModel) textRow(f Field, label string, input textinput.Model) string {
	style := tuistyles.FieldLabelStyle
	if m.focus == f {
		style = tuistyles.FocusedLabelStyle
	}
	return style.Render(label) + input.View()
}

func (m *CalculatorModel) renderForm() string {
	salaryLabel := "Gross (monthly)"
	if m.mode.Value() == string(domain.SalaryAnnual) {
		salaryLabel = "Gross (annual)"
	}
	rows := []string{
		tuistyles.TitleStyle.Render("Input"),
		m.mode.Render(),
		m.textRow(FieldSalary, salaryLabel, m.salary),
		m.payments.Render(),
		m.category.Render(),
		m.regime.Render(),
		m.marital.Render(),
		m.textRow(FieldDependents, "Dependents", m.dependents),
		m.disability.Render(),
	}
	return strings.Join(rows, "\n")
}

func (m *CalculatorModel) renderResults() string {
	if m.err != nil {
		return tuistyles.TitleStyle.Render("Result") + "\n" + tuistyles.ErrorStyle.Render(m.err.Error())
	}
	if m.result == nil {
		return tuistyles.TitleStyle.Render("Result")
	}
	return RenderResult(m.input, m.result)
}

// RenderResult draws the breakdown of one evaluation
func RenderResult(in domain.TaxInput, r *domain.TaxResult) string {
	var sb strings.Builder
	line := func(label string, v decimal.Decimal, style lipgloss.Style, note string) {
		card := components.NewMetricCard(label, format.FormatCurrency(v)).WithStyle(style).WithNote(note)
		sb.WriteString(card.RenderLine() + "\n")
	}
	section := func(title string) {
		sb.WriteString(tuistyles.SectionStyle.Render(title) + "\n")
	}

	sb.WriteString(components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Net per payment", format.FormatCurrency(r.NetMonthly)).
			WithStyle(tuistyles.NetValueStyle).
			WithNote(fmt.Sprintf("%d payments", r.PaymentCount)),
		components.NewMetricCard("Net per year", format.FormatCurrency(r.NetAnnual)).
			WithStyle(tuistyles.NetValueStyle),
	}, 2) + "\n")

	capped := ""
	if r.ContributionCapped {
		capped = "capped"
	}

	section("Per payment")
	line("Gross", r.GrossMonthly, tuistyles.MetricValueStyle, "")
	line("Social security", r.SocialSecurityMonthly.Neg(), tuistyles.DeductionStyle, capped)
	line("IRS", r.IncomeTaxMonthly.Neg(), tuistyles.DeductionStyle, "")
	line("Net", r.NetMonthly, tuistyles.NetValueStyle, "")

	section("Per year")
	line("Gross", r.GrossAnnual, tuistyles.MetricValueStyle, "")
	line("Social security", r.SocialSecurityAnnual.Neg(), tuistyles.DeductionStyle, capped)
	line("Taxable income", r.TaxableIncome, tuistyles.MetricValueStyle, "")
	line("IRS before credits", r.IncomeTaxBeforeCredits, tuistyles.MetricValueStyle, "")
	if r.HasSurtax() {
		line("Solidarity surtax", r.Surtax, tuistyles.DeductionStyle, "")
	}
	line("IRS", r.IncomeTaxAnnual.Neg(), tuistyles.DeductionStyle, "")
	line("Net", r.NetAnnual, tuistyles.NetValueStyle, "")

	if r.HasCredits() || r.MaritalSplitApplied {
		section("Tax benefits")
		if r.MaritalSplitApplied {
			sb.WriteString(tuistyles.BadgeStyle.Render("Marital income split applied") + "\n")
		}
		if r.DependentCredit.IsPositive() {
			line("Dependent credit", r.DependentCredit, tuistyles.MetricValueStyle, "")
		}
		if r.DisabilityCredit.IsPositive() {
			line("Disability credit", r.DisabilityCredit, tuistyles.MetricValueStyle, "")
		}
		if r.HasCredits() {
			line("Total credits", r.TotalCredits, tuistyles.NetValueStyle, "")
		}
	}

	section("Rates")
	rate := func(label string, v decimal.Decimal) {
		card := components.NewMetricCard(label, format.FormatPercent(v))
		sb.WriteString(card.RenderLine() + "\n")
	}
	rate("Effective IRS", r.EffectiveIncomeTaxRate)
	rate("Social security", r.EffectiveSocialSecurityRate)
	rate("Total", r.EffectiveTotalRate)

	bracket := output.BracketSummary(in, r)
	if r.MaritalSplitApplied {
		bracket += " (on half the taxable income)"
	}
	sb.WriteString("\n" + tuistyles.MetricLabelStyle.Render("Bracket ") + bracket)
	return sb.String()
}
