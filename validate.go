package formgate

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Failure is the tagged outcome of a failed validation call. The dispatch
// layer (Guard, or a host's own loop) is responsible for redirecting to
// Target; code after a Validate call only runs on a nil outcome.
type Failure struct {
	// ID correlates the opaque user-facing error response with the logged
	// diagnostic
	ID string
	// Target is the error-target name active for this failure
	Target string
	// Detail is the diagnostic message, including the schema engine's
	// failure detail. Never shown to the end user directly.
	Detail string
	// Violations lists the individual rejected parameters when the schema
	// engine reported them
	Violations []Violation
}

func (f *Failure) Error() string {
	return f.Detail
}

// Validate checks the live parameters in store against the rule set.
//
// An empty rule set means nothing to validate and is a no-op. On success,
// every validated value - including substituted defaults - is written back
// into the store for the originally declared rule keys, and nil is
// returned. On failure the store is left completely untouched and the
// returned Failure carries the active error target and diagnostic; if an
// effective log level is set (per-call override or configured default) the
// diagnostic is logged at that level, exactly once.
func (p *Plugin) Validate(store ParamStore, rules RuleSet) *Failure {
	if len(rules) == 0 {
		return nil
	}

	declared, ctl := extractControls(rules)

	// Per-call override wins over the configured level
	level := p.cfg.LogLevel
	if ctl.level != nil {
		level = ctl.level
	}

	params := store.Snapshot()

	// The schema is strict, so undeclared parameters fail the call unless
	// the caller opted out: under ignore-rest every undeclared name gets a
	// synthesized permissive rule accepting any shape
	checked := declared
	if ctl.ignoreRest {
		checked = make(RuleSet, len(params)+len(declared))
		for name, rule := range declared {
			checked[name] = rule
		}
		for name := range params {
			if _, ok := checked[name]; !ok {
				checked[name] = Rule{Kind: KindAny, Optional: true}
			}
		}
	}

	validated, err := p.schema.Validate(params, checked)
	if err != nil {
		failure := &Failure{
			ID:     uuid.New().String(),
			Target: p.cfg.ErrorTarget,
			Detail: fmt.Sprintf("parameter validation failed: %v", err),
		}
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			failure.Violations = schemaErr.Violations
		}
		if level != nil {
			logAt(p.logger, *level, "%s [failure_id=%s]", failure.Detail, failure.ID)
		}
		return failure
	}

	// Write back only after full success, and only for originally declared
	// keys: synthesized permissive rules pass through unwritten
	for name := range declared {
		if value, ok := validated[name]; ok {
			store.Set(name, value)
		}
	}
	return nil
}
