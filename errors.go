package formgate

import "fmt"

// Configuration error codes. These are stable machine-readable identifiers;
// the message carries the human-readable detail.
const (
	// CodeInvalidConfiguration indicates unrecognized or malformed
	// configuration options
	CodeInvalidConfiguration = "invalid_configuration"
	// CodeMissingLoggingCapability indicates a log level was configured on a
	// plugin that has no logger attached
	CodeMissingLoggingCapability = "missing_logging_capability"
)

// ConfigError represents a failed Configure call. Configuration errors are
// hard failures: nothing is stored when one is returned.
type ConfigError struct {
	Code    string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// InvalidConfigurationError creates a ConfigError for unrecognized or
// malformed configuration options
func InvalidConfigurationError(format string, args ...any) *ConfigError {
	return &ConfigError{
		Code:    CodeInvalidConfiguration,
		Message: fmt.Sprintf(format, args...),
	}
}

// MissingLoggingCapabilityError creates a ConfigError for a log level
// configured without a logger attached
func MissingLoggingCapabilityError(message string) *ConfigError {
	return &ConfigError{
		Code:    CodeMissingLoggingCapability,
		Message: message,
	}
}
