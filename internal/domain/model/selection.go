package model

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Values is a normalized set of selected facet values: sorted, unique and
// without empty strings.
type Values []string

// NewValues normalizes a list of raw values into a set.
func NewValues(raw ...string) Values {
	out := make(Values, 0, len(raw))
	for _, v := range raw {
		if v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Contains reports whether v is in the set.
func (vs Values) Contains(v string) bool {
	_, ok := slices.BinarySearch(vs, v)
	return ok
}

// Empty reports whether nothing is selected.
func (vs Values) Empty() bool { return len(vs) == 0 }

// UnmarshalJSON accepts null, a single string or an array of strings.
func (vs *Values) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*vs = Values{}
	case string:
		*vs = NewValues(v)
	case []any:
		list := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("values[%d]: expected string, got %T", i, item)
			}
			list = append(list, s)
		}
		*vs = NewValues(list...)
	default:
		return fmt.Errorf("values: expected string or array, got %T", raw)
	}
	return nil
}

// MarshalJSON always emits an array.
func (vs Values) MarshalJSON() ([]byte, error) {
	if vs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(vs))
}

// Selection holds the chosen values per facet.
type Selection struct {
	Course      Values `json:"course"`
	State       Values `json:"state"`
	Institution Values `json:"institution"`
}

// Get returns the values selected for a facet.
func (s Selection) Get(f Facet) Values {
	switch f {
	case FacetCourse:
		return s.Course
	case FacetState:
		return s.State
	case FacetInstitution:
		return s.Institution
	default:
		return nil
	}
}
