package formgate

import (
	"fmt"
	"sort"
	"strings"
)

// Recognized Configure option keys
const (
	// OptionErrorTarget names the registered handler invoked on validation
	// failure
	OptionErrorTarget = "error_target"
	// OptionLogLevel names the severity failures are logged at; requires a
	// logger attached to the plugin
	OptionLogLevel = "log_level"
)

// DefaultErrorTarget is the built-in minimal error responder, registered in
// every TargetRegistry
const DefaultErrorTarget = "formgate_error"

// Config holds the per-plugin validation settings stored by Configure
type Config struct {
	// ErrorTarget is the name of the handler invoked on validation failure
	ErrorTarget string
	// LogLevel is the severity failures are logged at; nil disables logging
	LogLevel *LogLevel
}

// Plugin attaches declarative parameter validation to one request handler.
// A plugin belongs to a single handler instance and is never shared across
// instances: configuration is written once at setup time and read by every
// validation call, so no locking is needed.
type Plugin struct {
	cfg     Config
	logger  Logger
	schema  Schema
	targets *TargetRegistry
}

// Option customizes a Plugin at construction time
type Option func(*Plugin)

// WithLogger attaches the logging capability. Without one, configuring a
// log level fails with missing_logging_capability.
func WithLogger(logger Logger) Option {
	return func(p *Plugin) { p.logger = logger }
}

// WithSchema swaps the schema-validation engine
func WithSchema(schema Schema) Option {
	return func(p *Plugin) { p.schema = schema }
}

// WithTargets uses a shared error-target registry instead of a fresh one
func WithTargets(targets *TargetRegistry) Option {
	return func(p *Plugin) { p.targets = targets }
}

// New creates a plugin with the default configuration: built-in error
// target, no logging, go-playground backed schema
func New(opts ...Option) *Plugin {
	p := &Plugin{
		cfg: Config{ErrorTarget: DefaultErrorTarget},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.schema == nil {
		p.schema = NewSchema()
	}
	if p.targets == nil {
		p.targets = NewTargetRegistry()
	}
	return p
}

// Config returns the currently stored configuration
func (p *Plugin) Config() Config {
	return p.cfg
}

// Targets returns the plugin's error-target registry
func (p *Plugin) Targets() *TargetRegistry {
	return p.targets
}

// Configure validates and stores the plugin's validation settings,
// replacing any prior configuration. Recognized keys are OptionErrorTarget
// and OptionLogLevel; both are optional. Any error leaves the prior
// configuration untouched.
func (p *Plugin) Configure(opts map[string]any) error {
	var unknown []string
	for key := range opts {
		if key != OptionErrorTarget && key != OptionLogLevel {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return InvalidConfigurationError(
			"unrecognized configuration key(s): %s", strings.Join(unknown, ", "))
	}

	cfg := Config{ErrorTarget: DefaultErrorTarget}

	if raw, ok := opts[OptionErrorTarget]; ok {
		target, ok := raw.(string)
		if !ok || target == "" {
			return InvalidConfigurationError(
				"option %q must be a non-empty string, got %T", OptionErrorTarget, raw)
		}
		cfg.ErrorTarget = target
	}

	if raw, ok := opts[OptionLogLevel]; ok {
		// The capability is the precondition for accepting any log level, so
		// it is checked before the value itself - and at configuration time,
		// not on every validation call
		if p.logger == nil {
			return MissingLoggingCapabilityError(fmt.Sprintf(
				"option %q requires a logger attached to the plugin", OptionLogLevel))
		}
		name, ok := raw.(string)
		if !ok {
			return InvalidConfigurationError(
				"option %q must be a string, got %T", OptionLogLevel, raw)
		}
		level, ok := ParseLogLevel(name)
		if !ok {
			return InvalidConfigurationError(
				"option %q: unknown log level %q (expected debug, info, warn, or error)",
				OptionLogLevel, name)
		}
		cfg.LogLevel = &level
	}

	p.cfg = cfg
	return nil
}
