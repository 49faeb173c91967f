package formgate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Violation describes one rejected parameter
type Violation struct {
	// Param is the parameter name the violation applies to
	Param string
	// Reason is the human-readable failure detail
	Reason string
}

// SchemaError reports every rule violated in one schema check. All
// violations are collected rather than stopping at the first.
type SchemaError struct {
	Violations []Violation
}

func (e *SchemaError) Error() string {
	reasons := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		reasons[i] = fmt.Sprintf("'%s': %s", v.Param, v.Reason)
	}
	return fmt.Sprintf("%d parameter(s) rejected: %s", len(e.Violations), strings.Join(reasons, "; "))
}

// Schema performs the actual presence/type/regex/default checks for one
// call. It is a replaceable strategy: the Validator's merge, default
// write-back, and redirect logic never depend on which engine is behind it.
//
// Implementations must be strict: any name in params that has no rule must
// reject the whole call. Validated (including defaulted) values are
// returned per rule key; a nil error means every rule passed.
type Schema interface {
	Validate(params map[string][]string, rules RuleSet) (map[string][]string, error)
}

// playgroundSchema is the default Schema, backed by go-playground/validator
// for Check tag expressions, plus native shape, regex, and default handling
type playgroundSchema struct {
	validate *validator.Validate
	// regexCache caches compiled patterns, key: pattern string,
	// value: *regexp.Regexp
	regexCache sync.Map
}

// NewSchema creates the default go-playground/validator backed schema
func NewSchema() Schema {
	return &playgroundSchema{validate: validator.New()}
}

// Validate checks the parameter snapshot against the rule set
func (s *playgroundSchema) Validate(params map[string][]string, rules RuleSet) (map[string][]string, error) {
	var violations []Violation

	// Strict by default: undeclared actual parameters reject the whole call
	for name := range params {
		if _, declared := rules[name]; !declared {
			violations = append(violations, Violation{
				Param:  name,
				Reason: "parameter is not declared in the rule set",
			})
		}
	}

	validated := make(map[string][]string, len(rules))

	for name, rule := range rules {
		values, present := params[name]
		if !present || len(values) == 0 {
			// Absent: substitute the default, or skip when optional
			defaulted, ok, err := defaultValues(rule)
			switch {
			case err != nil:
				violations = append(violations, Violation{Param: name, Reason: err.Error()})
				continue
			case ok:
				values = defaulted
			case rule.Optional:
				continue
			default:
				violations = append(violations, Violation{Param: name, Reason: "required parameter is missing"})
				continue
			}
		}

		if reason := s.checkValues(rule, values); reason != "" {
			violations = append(violations, Violation{Param: name, Reason: reason})
			continue
		}

		validated[name] = values
	}

	if len(violations) > 0 {
		return nil, &SchemaError{Violations: violations}
	}
	return validated, nil
}

// checkValues applies the shape, regex, and Check constraints of one rule.
// Defaulted values go through the same checks as submitted ones, so a rule
// whose default violates its own constraints fails loudly.
func (s *playgroundSchema) checkValues(rule Rule, values []string) string {
	switch rule.Kind {
	case KindScalar:
		if len(values) != 1 {
			return fmt.Sprintf("expected a single value, got %d", len(values))
		}
	case KindList, KindAny:
		// Any length; KindAny additionally skips all further constraints
	}
	if rule.Kind == KindAny {
		return ""
	}

	if rule.Regex != "" {
		re, err := s.compile(rule.Regex)
		if err != nil {
			return fmt.Sprintf("invalid rule pattern %q: %v", rule.Regex, err)
		}
		for _, v := range values {
			if !re.MatchString(v) {
				return fmt.Sprintf("value %q does not match pattern %q", v, rule.Regex)
			}
		}
	}

	if rule.Check != "" {
		for _, v := range values {
			if err := s.validate.Var(v, rule.Check); err != nil {
				return checkFailureReason(v, rule.Check, err)
			}
		}
	}

	return ""
}

// compile returns the compiled pattern, anchored to match the full value,
// caching per pattern string
func (s *playgroundSchema) compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := s.regexCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return nil, err
	}
	actual, _ := s.regexCache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

// defaultValues normalizes a rule's default into parameter-value shape.
// ok is false when the rule declares no default.
func defaultValues(rule Rule) (values []string, ok bool, err error) {
	switch d := rule.Default.(type) {
	case nil:
		return nil, false, nil
	case string:
		return []string{d}, true, nil
	case []string:
		return append([]string(nil), d...), true, nil
	default:
		return nil, false, fmt.Errorf("unsupported default type %T", rule.Default)
	}
}

// checkFailureReason turns a go-playground/validator error into a violation
// reason naming the failed tag
func checkFailureReason(value, check string, err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		e := fieldErrs[0]
		if e.Param() != "" {
			return fmt.Sprintf("value %q failed '%s=%s' check", value, e.Tag(), e.Param())
		}
		return fmt.Sprintf("value %q failed '%s' check", value, e.Tag())
	}
	return fmt.Sprintf("value %q failed check %q: %v", value, check, err)
}
