package formgate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// performGet routes a GET request through a fresh engine guarded by gate
func performGet(gate *Plugin, rules RuleSet, target string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/search", gate.Guard(rules), handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGuard(t *testing.T) {
	rules := func() RuleSet {
		return RuleSet{
			"q":    {Kind: KindScalar},
			"page": {Kind: KindScalar, Optional: true, Default: "1", Check: "numeric"},
		}
	}

	t.Run("Success Continues With Defaults Applied", func(t *testing.T) {
		gate := New()
		w := performGet(gate, rules(), "/search?q=hello", func(c *gin.Context) {
			// Coerced and defaulted values live in the request's form mapping
			c.String(http.StatusOK, "q=%s page=%s",
				c.Request.Form.Get("q"), c.Request.Form.Get("page"))
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "q=hello page=1", w.Body.String())
	})

	t.Run("Failure Renders Built-In Responder", func(t *testing.T) {
		gate := New()
		handlerRan := false
		w := performGet(gate, rules(), "/search?q=hello&page=abc", func(c *gin.Context) {
			handlerRan = true
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "request not understood")
		assert.Contains(t, w.Body.String(), "invalid_input")
		// The diagnostic never leaks into the response
		assert.NotContains(t, w.Body.String(), "numeric")
		assert.False(t, handlerRan, "route handler must not run after a failed guard")
	})

	t.Run("Custom Error Target", func(t *testing.T) {
		gate := New()
		require.NoError(t, gate.Configure(map[string]any{OptionErrorTarget: "teapot"}))
		gate.Targets().Register("teapot", func(c *gin.Context) {
			target := c.GetString(ContextKeyErrorTarget)
			failure, exists := c.Get(ContextKeyFailure)
			require.True(t, exists)
			require.IsType(t, (*Failure)(nil), failure)
			c.String(http.StatusTeapot, "target=%s", target)
		})

		w := performGet(gate, rules(), "/search", func(c *gin.Context) {})

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "target=teapot", w.Body.String())
	})

	t.Run("Unknown Target Falls Back", func(t *testing.T) {
		gate := New()
		require.NoError(t, gate.Configure(map[string]any{OptionErrorTarget: "ghost"}))

		w := performGet(gate, rules(), "/search", func(c *gin.Context) {})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "request not understood")
	})

	t.Run("Failure Is Logged Once", func(t *testing.T) {
		logger := &captureLogger{}
		gate := New(WithLogger(logger))
		require.NoError(t, gate.Configure(map[string]any{OptionLogLevel: "warn"}))

		w := performGet(gate, rules(), "/search?q=a&q=b", func(c *gin.Context) {})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.Len(t, logger.calls, 1)
		assert.Equal(t, "warn", logger.calls[0].level)
		assert.Contains(t, logger.calls[0].message, "failure_id=")
	})

	t.Run("Form Body Parameters Are Validated", func(t *testing.T) {
		gate := New()
		r := gin.New()
		r.POST("/search", gate.Guard(RuleSet{
			"q":    {Kind: KindScalar},
			"page": {Kind: KindScalar, Default: "1"},
		}), func(c *gin.Context) {
			c.String(http.StatusOK, "q=%s page=%s",
				c.Request.Form.Get("q"), c.Request.Form.Get("page"))
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader("q=hi"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "q=hi page=1", w.Body.String())
	})

	t.Run("Shared Target Registry", func(t *testing.T) {
		targets := NewTargetRegistry()
		targets.Register("shared", func(c *gin.Context) {
			c.String(http.StatusUnprocessableEntity, "shared")
		})
		gate := New(WithTargets(targets))
		require.NoError(t, gate.Configure(map[string]any{OptionErrorTarget: "shared"}))

		w := performGet(gate, rules(), "/search", func(c *gin.Context) {})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestTargetRegistry(t *testing.T) {
	t.Run("Built-In Target Present", func(t *testing.T) {
		registry := NewTargetRegistry()
		_, exists := registry.Get(DefaultErrorTarget)
		assert.True(t, exists)
	})

	t.Run("Register And Get", func(t *testing.T) {
		registry := NewTargetRegistry()
		registry.Register("custom", func(c *gin.Context) {})

		_, exists := registry.Get("custom")
		assert.True(t, exists)
		_, exists = registry.Get("missing")
		assert.False(t, exists)
	})
}
