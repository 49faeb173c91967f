package formgate

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Gin context keys set by Guard on validation failure
const (
	// ContextKeyErrorTarget holds the name of the error target activated
	// for the failed request
	ContextKeyErrorTarget = "formgate_error_target"
	// ContextKeyFailure holds the *Failure outcome for the failed request
	ContextKeyFailure = "formgate_failure"
)

// TargetRegistry maps error-target names to the Gin handlers that render
// them. Every registry starts with the built-in DefaultErrorTarget.
type TargetRegistry struct {
	targets map[string]gin.HandlerFunc
}

// NewTargetRegistry creates a registry containing the built-in responder
func NewTargetRegistry() *TargetRegistry {
	return &TargetRegistry{
		targets: map[string]gin.HandlerFunc{
			DefaultErrorTarget: RequestNotUnderstood,
		},
	}
}

// Register adds or replaces a named error target
func (r *TargetRegistry) Register(name string, handler gin.HandlerFunc) {
	r.targets[name] = handler
}

// Get retrieves an error target by name
func (r *TargetRegistry) Get(name string) (gin.HandlerFunc, bool) {
	handler, exists := r.targets[name]
	return handler, exists
}

// RequestNotUnderstood is the built-in error target: a fixed, minimal 400
// response. The underlying diagnostic is deliberately absent - it is only
// available via the log sink.
func RequestNotUnderstood(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":             "invalid_input",
		"error_description": "request not understood",
	})
}

// Guard returns a middleware that validates the request's query and form
// parameters against the rule set before the route handler runs.
//
// On success the handler chain continues, with coerced and defaulted values
// visible in the request's form mapping. On failure the active error target
// is recorded on the context, the target handler is invoked to render the
// response, and the chain is aborted - the route handler never runs.
func (p *Plugin) Guard(rules RuleSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, err := NewRequestStore(c.Request)
		if err != nil {
			// An unparseable body is indistinguishable from tampering:
			// treat it like any other validation failure
			failure := &Failure{
				ID:     uuid.New().String(),
				Target: p.cfg.ErrorTarget,
				Detail: "malformed form data: " + err.Error(),
			}
			if p.cfg.LogLevel != nil {
				logAt(p.logger, *p.cfg.LogLevel, "%s [failure_id=%s]", failure.Detail, failure.ID)
			}
			p.redirect(c, failure)
			return
		}

		if failure := p.Validate(store, rules); failure != nil {
			p.redirect(c, failure)
			return
		}

		c.Next()
	}
}

// redirect realizes the failure-redirect convention: record the active
// error target, render it, abort the chain
func (p *Plugin) redirect(c *gin.Context, failure *Failure) {
	c.Set(ContextKeyErrorTarget, failure.Target)
	c.Set(ContextKeyFailure, failure)

	handler, ok := p.targets.Get(failure.Target)
	if !ok {
		// A misconfigured target must still produce a response
		handler = RequestNotUnderstood
	}
	handler(c)
	c.Abort()
}
