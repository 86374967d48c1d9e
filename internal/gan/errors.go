package gan

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every *ConfigurationError under errors.Is.
var ErrConfiguration = errors.New("gan: invalid configuration")

// ConfigurationError reports an invalid configuration value or a weight
// file that does not fit the configured networks.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("gan: invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("gan: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErr(field string, value any, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}
