package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for input and rules validation.
var (
	ErrInvalidSalary       = errors.New("gross salary must not be negative")
	ErrInvalidPaymentCount = errors.New("payment count must be 12 or 14")
	ErrInvalidDependents   = errors.New("dependents must not be negative")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidRules        = errors.New("invalid tax rules")
)

// ErrorKind classifies validation failures.
type ErrorKind string

const (
	KindInvalidSalary       ErrorKind = "invalid_salary"
	KindInvalidPaymentCount ErrorKind = "invalid_payment_count"
	KindInvalidDependents   ErrorKind = "invalid_dependents"
	KindInvalidInput        ErrorKind = "invalid_input"
	KindInvalidRules        ErrorKind = "invalid_rules"
)

// InputError wraps a validation failure with the offending field.
type InputError struct {
	Op    string
	Kind  ErrorKind
	Field string
	Value string
	Err   error
}

func (e *InputError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Field != "" {
		base += fmt.Sprintf(" (%s=%s)", e.Field, e.Value)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *InputError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newInputError(op string, kind ErrorKind, field, value string, err error) error {
	return &InputError{Op: op, Kind: kind, Field: field, Value: value, Err: err}
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind ErrorKind) bool {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Kind == kind
	}
	return false
}
