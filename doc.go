// Package formgate adds declarative validation of HTTP query and form
// parameters to Gin request handling.
//
// A Plugin is attached to a single route (one Plugin per handler instance)
// and configured once at setup time. Each request is checked against a
// caller-supplied RuleSet; coerced and defaulted values are written back
// into the request's live form mapping on success. On failure, control flow
// is redirected to a named error target and the diagnostic detail is sent
// to the optional log sink - never to the end user.
//
// Typical usage:
//
//	gate := formgate.New(formgate.WithLogger(logger))
//	if err := gate.Configure(map[string]any{
//	    "error_target": "bad_search",
//	    "log_level":    "warn",
//	}); err != nil {
//	    log.Fatal(err)
//	}
//	gate.Targets().Register("bad_search", renderBadSearch)
//
//	r.GET("/search", gate.Guard(formgate.RuleSet{
//	    "q":    {Kind: formgate.KindScalar},
//	    "page": {Kind: formgate.KindScalar, Optional: true, Default: "1", Check: "numeric"},
//	}), searchHandler)
//
// The actual presence/type/regex/default checks are delegated to a Schema
// implementation; the default one is backed by go-playground/validator and
// is strict: parameters not declared in the rule set fail the whole call
// unless the per-call ignore-rest escape hatch is set.
package formgate
