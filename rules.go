package formgate

// Reserved per-call control keys. They live in the same map as ordinary
// rules but are extracted before the rule set reaches the schema engine,
// so a parameter can never collide with them by construction. Their
// payloads are set via the RuleSet helpers; an entry with a missing or
// unrecognized payload deactivates the control.
const (
	// KeyLogLevel overrides the configured log level for one Validate call.
	// Set via RuleSet.WithLogLevel; an unrecognized payload leaves the
	// configured level in effect.
	KeyLogLevel = "__log_level"
	// KeyIgnoreRest permits actual parameters outside the declared rule set
	// to pass through unchecked. Set via RuleSet.IgnoreRest.
	KeyIgnoreRest = "__ignore_rest"
)

// Kind is the expected shape of a parameter value
type Kind int

const (
	// KindScalar expects exactly one value for the parameter
	KindScalar Kind = iota
	// KindList expects one or more values, order preserved
	KindList
	// KindAny accepts either shape with no further constraint. Used for the
	// permissive rules synthesized under ignore-rest.
	KindAny
)

// Rule describes the validation applied to one named parameter
type Rule struct {
	// Kind is the expected value shape (scalar vs list)
	Kind Kind
	// Optional permits the parameter to be absent
	Optional bool
	// Default is substituted when the parameter is absent: a string for
	// scalar rules, a []string for list rules
	Default any
	// Regex is a pattern every value must match in full
	Regex string
	// Check is a go-playground/validator tag expression (e.g. "numeric" or
	// "min=3,max=64") evaluated against each value
	Check string

	// control carries the payload of a reserved key entry; never set on
	// ordinary rules
	control string
}

// RuleSet maps parameter names to their rules for one validation call.
// Rule sets are ephemeral: built fresh per call and discarded after use.
type RuleSet map[string]Rule

// WithLogLevel sets the per-call log level override reserved key
func (rs RuleSet) WithLogLevel(level LogLevel) RuleSet {
	rs[KeyLogLevel] = Rule{control: level.String()}
	return rs
}

// IgnoreRest sets the reserved key that permits undeclared parameters
func (rs RuleSet) IgnoreRest() RuleSet {
	rs[KeyIgnoreRest] = Rule{control: "true"}
	return rs
}

// controls holds the extracted reserved-key payloads for one call
type controls struct {
	// level is the per-call log level override, nil when not supplied
	level *LogLevel
	// ignoreRest permits undeclared actual parameters
	ignoreRest bool
}

// extractControls splits the reserved control keys off a rule set. The
// returned rule set is a copy so the caller's map is never mutated and the
// schema engine never sees a reserved key.
func extractControls(rules RuleSet) (RuleSet, controls) {
	var ctl controls
	declared := make(RuleSet, len(rules))
	for name, rule := range rules {
		switch name {
		case KeyLogLevel:
			if level, ok := ParseLogLevel(rule.control); ok {
				ctl.level = &level
			}
		case KeyIgnoreRest:
			// Only an affirmative payload activates the escape hatch: a bare
			// Rule{} under the reserved key must not silently disable
			// strictness
			ctl.ignoreRest = rule.control == "true"
		default:
			declared[name] = rule
		}
	}
	return declared, ctl
}
