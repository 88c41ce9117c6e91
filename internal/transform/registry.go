package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_regime", createSetRegime)
	registry.Register("set_category", createSetCategory)
	registry.Register("set_marital_status", createSetMaritalStatus)
	registry.Register("set_payments", createSetPaymentCount)
	registry.Register("set_dependents", createSetDependents)
	registry.Register("add_dependents", createAddDependents)
	registry.Register("set_disability", createSetDisability)
	registry.Register("scale_salary", createScaleSalary)
	registry.Register("set_salary", createSetSalary)
	registry.Register("set_salary_mode", createSetSalaryMode)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_regime:regime=flat"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireParam(transform, key string, params map[string]string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func createSetRegime(params map[string]string) (ScenarioTransform, error) {
	v, err := requireParam("set_regime", "regime", params)
	if err != nil {
		return nil, err
	}
	regime, err := domain.ParseTaxRegime(v)
	if err != nil {
		return nil, err
	}
	return &SetRegime{Regime: regime}, nil
}

func createSetCategory(params map[string]string) (ScenarioTransform, error) {
	v, err := requireParam("set_category", "category", params)
	if err != nil {
		return nil, err
	}
	category, err := domain.ParseEmploymentCategory(v)
	if err != nil {
		return nil, err
	}
	return &SetCategory{Category: category}, nil
}

func createSetMaritalStatus(params map[string]string) (ScenarioTransform, error) {
	v, err := requireParam("set_marital_status", "status", params)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseMaritalStatus(v)
	if err != nil {
		return nil, err
	}
	return &SetMaritalStatus{Status: status}, nil
}

func createSetPaymentCount(params map[string]string) (ScenarioTransform, error) {
	v, err := requireParam("set_payments", "count", params)
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid count value: %w", err)
	}
	return &SetPaymentCount{Count: count}, nil
}

func createSetDependents(params map[string]string) (ScenarioTransform, error) {
	v, err := requireParam("set_dependents", "count", params)
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid count value: %w", err)
	}
	return &SetDependents{Count: count}, nil
}

func createAddDependents(params map[string]string) (ScenarioTransform, error) {
	delta := 1
	if v, ok := params["count"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid count value: %w", err)
		}
		delta = n
	}
	return &AddDependents{Delta: delta}, nil
}

func createSetDisability(params map[string]string) (ScenarioTransform, error) {
	enabled := true
	if v, ok := params["enabled"]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid enabled value: %w", err)
		}
		enabled = b
	}
	return &SetDisability{Enabled: enabled}, nil
}

func createScaleSalary(params map[string]string) (ScenarioTransform, error) {
	if v, ok := params["percent"]; ok {
		pct, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid percent value: %w", err)
		}
		return &ScaleSalary{Factor: decimal.NewFromInt(1).Add(pct.Div(decimal.NewFromInt(100)))}, nil
	}
	v, err := requireParam("scale_salary", "factor", params)
	if err != nil {
		return nil, err
	}
	factor, err := decimal.NewFromString(v)
	if err != nil {
		return nil, fmt.Errorf("invalid factor value: %w", err)
	}
	return &ScaleSalary{Factor: factor}, nil
}

func createSetSalary(params map[string]string) (ScenarioTransform, error) {
	v, err := requireParam("set_salary", "amount", params)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(v)
	if err != nil {
		return nil, fmt.Errorf("invalid amount value: %w", err)
	}
	return &SetSalary{Amount: amount}, nil
}

func createSetSalaryMode(params map[string]string) (ScenarioTransform, error) {
	v, err := requireParam("set_salary_mode", "mode", params)
	if err != nil {
		return nil, err
	}
	mode, err := domain.ParseSalaryInputMode(v)
	if err != nil {
		return nil, err
	}
	return &SetSalaryMode{Mode: mode}, nil
}
