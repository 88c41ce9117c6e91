package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Category    string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const (
	categoryRegime  = "Tax Regime"
	categoryFamily  = "Family"
	categoryWork    = "Work Arrangement"
	categorySalary  = "Salary"
	categoryGeneral = "Other"
)

// CreateBuiltInTemplates creates a template registry with common what-if scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "flat_regime",
		Description: "Switch to the flat alternative regime (NHR / IFICI)",
		Category:    categoryRegime,
		Transforms:  []ScenarioTransform{&SetRegime{Regime: domain.RegimeFlat}},
	})
	registry.Register(Template{
		Name:        "standard_regime",
		Description: "Switch to the progressive schedule",
		Category:    categoryRegime,
		Transforms:  []ScenarioTransform{&SetRegime{Regime: domain.RegimeStandard}},
	})

	registry.Register(Template{
		Name:        "married_single_earner",
		Description: "File jointly as the only earner (income splitting)",
		Category:    categoryFamily,
		Transforms:  []ScenarioTransform{&SetMaritalStatus{Status: domain.MarriedSingleEarner}},
	})
	registry.Register(Template{
		Name:        "married_two_earners",
		Description: "File as married with two earners",
		Category:    categoryFamily,
		Transforms:  []ScenarioTransform{&SetMaritalStatus{Status: domain.MarriedTwoEarners}},
	})
	registry.Register(Template{
		Name:        "plus_one_dependent",
		Description: "Add one dependent",
		Category:    categoryFamily,
		Transforms:  []ScenarioTransform{&AddDependents{Delta: 1}},
	})
	registry.Register(Template{
		Name:        "plus_two_dependents",
		Description: "Add two dependents",
		Category:    categoryFamily,
		Transforms:  []ScenarioTransform{&AddDependents{Delta: 2}},
	})
	registry.Register(Template{
		Name:        "disability",
		Description: "Claim the disability credit",
		Category:    categoryFamily,
		Transforms:  []ScenarioTransform{&SetDisability{Enabled: true}},
	})

	registry.Register(Template{
		Name:        "self_employed",
		Description: "Work self-employed (independent contribution regime)",
		Category:    categoryWork,
		Transforms:  []ScenarioTransform{&SetCategory{Category: domain.SelfEmployed}},
	})
	registry.Register(Template{
		Name:        "employee",
		Description: "Work as an employee",
		Category:    categoryWork,
		Transforms:  []ScenarioTransform{&SetCategory{Category: domain.Employee}},
	})
	registry.Register(Template{
		Name:        "twelve_payments",
		Description: "Same annual gross paid in 12 payments",
		Category:    categoryWork,
		Transforms:  []ScenarioTransform{&SetPaymentCount{Count: domain.TwelvePayments}},
	})
	registry.Register(Template{
		Name:        "fourteen_payments",
		Description: "Same annual gross paid in 14 payments",
		Category:    categoryWork,
		Transforms:  []ScenarioTransform{&SetPaymentCount{Count: domain.FourteenPayments}},
	})

	registry.Register(Template{
		Name:        "raise_5pct",
		Description: "Gross salary up 5%",
		Category:    categorySalary,
		Transforms:  []ScenarioTransform{&ScaleSalary{Factor: decimal.RequireFromString("1.05")}},
	})
	registry.Register(Template{
		Name:        "raise_10pct",
		Description: "Gross salary up 10%",
		Category:    categorySalary,
		Transforms:  []ScenarioTransform{&ScaleSalary{Factor: decimal.RequireFromString("1.10")}},
	})

	registry.Register(Template{
		Name:        "expat_freelancer",
		Description: "Self-employed under the flat regime",
		Category:    categoryGeneral,
		Transforms: []ScenarioTransform{
			&SetCategory{Category: domain.SelfEmployed},
			&SetRegime{Regime: domain.RegimeFlat},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario. The result is named
// after the template.
func ApplyTemplate(base *domain.Scenario, template Template) (*domain.Scenario, error) {
	out, err := ApplyTransforms(base, template.Transforms)
	if err != nil {
		return nil, err
	}
	out.Name = template.Name
	out.Description = template.Description
	return out, nil
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	byCategory := map[string][]Template{}
	for _, name := range registry.List() {
		t := registry.templates[name]
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}

	for _, category := range []string{categoryRegime, categoryFamily, categoryWork, categorySalary, categoryGeneral, ""} {
		templates := byCategory[category]
		if len(templates) == 0 {
			continue
		}
		label := category
		if label == "" {
			label = "Custom"
		}
		sb.WriteString(fmt.Sprintf("%s:\n", label))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  ptpay compare base.yaml --with flat_regime,self_employed\n")
	sb.WriteString("  ptpay compare base.yaml --transform set_dependents:count=2\n")

	return sb.String()
}
