// Package errs defines the error taxonomy shared across resolution and
// orchestration: configuration errors abort before any unit is created,
// topology errors are fatal for the affected component only, and
// orchestration errors wrap a builder failure with the failing component's
// identity.
package errs

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a malformed or missing required manifest field.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// NewConfiguration builds a ConfigurationError for the named field.
func NewConfiguration(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// TopologyError reports an inconsistent or unresolvable derived reference
// (brand collision, undeclared brand, missing environment).
type TopologyError struct {
	Component string
	Brand     string
	Reason    string
}

func (e *TopologyError) Error() string {
	if e.Brand != "" {
		return fmt.Sprintf("topology: %s: brand %q: %s", e.Component, e.Brand, e.Reason)
	}
	return fmt.Sprintf("topology: %s: %s", e.Component, e.Reason)
}

// NewTopology builds a TopologyError naming the offending component and brand.
// Pass an empty brand for component-level failures.
func NewTopology(component, brand, format string, args ...any) error {
	return &TopologyError{Component: component, Brand: brand, Reason: fmt.Sprintf(format, args...)}
}

// OrchestrationError tags a failed builder invocation with the component it
// belongs to. The underlying cause is preserved for errors.Is/As.
type OrchestrationError struct {
	Component string
	Err       error
}

func (e *OrchestrationError) Error() string {
	return fmt.Sprintf("orchestration: component %s: %v", e.Component, e.Err)
}

func (e *OrchestrationError) Unwrap() error { return e.Err }

// WrapOrchestration wraps err with the component identity. A nil err returns nil.
func WrapOrchestration(component string, err error) error {
	if err == nil {
		return nil
	}
	return &OrchestrationError{Component: component, Err: err}
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsTopology reports whether err is (or wraps) a TopologyError.
func IsTopology(err error) bool {
	var te *TopologyError
	return errors.As(err, &te)
}

// IsOrchestration reports whether err is (or wraps) an OrchestrationError.
func IsOrchestration(err error) bool {
	var oe *OrchestrationError
	return errors.As(err, &oe)
}
