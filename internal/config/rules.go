package config

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/rgehrsitz/ptpay/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed rules_2026.yaml
var defaultRulesYAML []byte

var (
	defaultRulesOnce sync.Once
	defaultRules     domain.TaxRules
	defaultRulesErr  error
)

// DefaultRules returns the embedded rules table. It is decoded on first use
// and shared afterwards; callers receive a copy of the value, but the
// bracket slice and bracket bounds are shared and must be treated as read-only.
func DefaultRules() domain.TaxRules {
	defaultRulesOnce.Do(func() {
		defaultRules, defaultRulesErr = ParseRules(defaultRulesYAML)
	})
	if defaultRulesErr != nil {
		panic(fmt.Sprintf("embedded rules table is invalid: %v", defaultRulesErr))
	}
	return defaultRules
}

// ParseRules decodes and validates a rules document.
func ParseRules(data []byte) (domain.TaxRules, error) {
	var rules domain.TaxRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to parse rules YAML: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return domain.TaxRules{}, err
	}
	return rules, nil
}

// LoadRulesFromFile reads a rules override file with the same schema as the
// embedded table.
func LoadRulesFromFile(filename string) (domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return domain.TaxRules{}, fmt.Errorf("rules file %s: %w", filename, err)
	}
	return rules, nil
}

// ResolveRules returns the override file's rules when filename is set, and
// the embedded table otherwise.
func ResolveRules(filename string) (domain.TaxRules, error) {
	if filename == "" {
		return DefaultRules(), nil
	}
	return LoadRulesFromFile(filename)
}

// EmbeddedRulesYAML returns the raw embedded rules document.
func EmbeddedRulesYAML() []byte {
	out := make([]byte, len(defaultRulesYAML))
	copy(out, defaultRulesYAML)
	return out
}
