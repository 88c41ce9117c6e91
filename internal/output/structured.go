package output

import (
	"encoding/json"

	"github.com/rgehrsitz/ptpay/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter emits the report as indented JSON. Amounts are decimal strings.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// YAMLFormatter emits the report as YAML.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(report *domain.Report) ([]byte, error) {
	return yaml.Marshal(report)
}
