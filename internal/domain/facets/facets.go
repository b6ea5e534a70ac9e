// Package facets extracts the distinct values offered by each filter
// dropdown and indexes them for prefix search.
package facets

import (
	"github.com/okian/sisu/internal/domain/dataset"
	"github.com/okian/sisu/internal/domain/model"
)

// Set holds the sorted unique values of each facet. Computed once and never
// mutated.
type Set struct {
	Courses      []string `json:"courses"`
	States       []string `json:"states"`
	Institutions []string `json:"institutions"`
}

// Extract returns the facet values of ds, sorted ascending byte-wise.
func Extract(ds *dataset.Dataset) Set {
	return Set{
		Courses:      ds.Distinct(model.FacetCourse),
		States:       ds.Distinct(model.FacetState),
		Institutions: ds.Distinct(model.FacetInstitution),
	}
}

// Get returns the values of one facet.
func (s Set) Get(f model.Facet) []string {
	switch f {
	case model.FacetCourse:
		return s.Courses
	case model.FacetState:
		return s.States
	case model.FacetInstitution:
		return s.Institutions
	default:
		return nil
	}
}

// Len returns the number of values of one facet.
func (s Set) Len(f model.Facet) int { return len(s.Get(f)) }
