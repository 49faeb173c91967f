package formgate

import (
	"net/http"
	"net/url"
)

// ParamStore is the live request parameter mapping the Validator reads from
// and writes back to. A single-element slice is a scalar value; a longer
// slice is an ordered list. The full set is read once per Validate call and
// only validated keys are written back.
type ParamStore interface {
	// Snapshot returns a copy of every parameter name and its values
	Snapshot() map[string][]string
	// Set writes a value into the live mapping, overwriting any prior value
	Set(name string, value []string)
}

// ValuesStore is a ParamStore over a url.Values mapping. It is the store
// used by non-HTTP hosts and by tests.
type ValuesStore struct {
	values url.Values
}

// NewValuesStore wraps an existing url.Values as a ParamStore. The values
// are not copied: writes go back into the mapping the caller holds.
func NewValuesStore(values url.Values) *ValuesStore {
	if values == nil {
		values = url.Values{}
	}
	return &ValuesStore{values: values}
}

// Snapshot returns a deep copy of the current parameters, so later
// write-backs cannot alias into a snapshot taken before validation
func (s *ValuesStore) Snapshot() map[string][]string {
	return copyParams(s.values)
}

// Set writes a value into the underlying mapping
func (s *ValuesStore) Set(name string, value []string) {
	s.values[name] = append([]string(nil), value...)
}

// Values returns the live underlying mapping
func (s *ValuesStore) Values() url.Values {
	return s.values
}

// RequestStore is a ParamStore over an *http.Request's merged query and
// form parameters (r.Form). Write-backs mutate r.Form in place, which is
// where handlers behind a Guard read coerced and defaulted values.
type RequestStore struct {
	req *http.Request
}

// NewRequestStore parses the request's query string and urlencoded body
// into r.Form and wraps it as a ParamStore
func NewRequestStore(r *http.Request) (*RequestStore, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &RequestStore{req: r}, nil
}

// Snapshot returns a deep copy of the merged query/form parameters
func (s *RequestStore) Snapshot() map[string][]string {
	return copyParams(s.req.Form)
}

// Set writes a value into the request's live form mapping
func (s *RequestStore) Set(name string, value []string) {
	s.req.Form[name] = append([]string(nil), value...)
}

// copyParams deep-copies a parameter mapping including the value slices
func copyParams(values url.Values) map[string][]string {
	params := make(map[string][]string, len(values))
	for name, vals := range values {
		params[name] = append([]string(nil), vals...)
	}
	return params
}
