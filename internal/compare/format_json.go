package compare

import (
	"bytes"
	"encoding/json"
	"strings"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // indent the output
}

// Format encodes the comparison set. Amounts are decimal strings and
// recommendation text is written without HTML escaping.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(compSet); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
