package formgate

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesStore(t *testing.T) {
	t.Run("Snapshot Is Isolated", func(t *testing.T) {
		store := NewValuesStore(url.Values{"a": {"1"}})

		snapshot := store.Snapshot()
		snapshot["a"][0] = "mutated"
		snapshot["b"] = []string{"2"}

		assert.Equal(t, []string{"1"}, store.Values()["a"])
		assert.NotContains(t, store.Values(), "b")
	})

	t.Run("Set Copies The Value", func(t *testing.T) {
		store := NewValuesStore(url.Values{})

		value := []string{"1"}
		store.Set("a", value)
		value[0] = "mutated"

		assert.Equal(t, []string{"1"}, store.Values()["a"])
	})

	t.Run("Nil Values", func(t *testing.T) {
		store := NewValuesStore(nil)
		assert.Empty(t, store.Snapshot())
		store.Set("a", []string{"1"})
		assert.Equal(t, []string{"1"}, store.Values()["a"])
	})
}

func TestRequestStore(t *testing.T) {
	t.Run("Merges Query And Form Body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/search?a=1", strings.NewReader("b=2"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		store, err := NewRequestStore(req)
		require.NoError(t, err)

		snapshot := store.Snapshot()
		assert.Equal(t, []string{"1"}, snapshot["a"])
		assert.Equal(t, []string{"2"}, snapshot["b"])
	})

	t.Run("Set Writes Into The Live Form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/search?a=1", nil)

		store, err := NewRequestStore(req)
		require.NoError(t, err)

		store.Set("page", []string{"1"})
		assert.Equal(t, "1", req.Form.Get("page"))
	})
}
