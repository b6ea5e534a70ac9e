// Package model contains domain models passed between layers.
package model

import "math"

// Facet names one of the three filterable columns.
type Facet string

// Known facets.
const (
	FacetCourse      Facet = "course"
	FacetState       Facet = "state"
	FacetInstitution Facet = "institution"
)

// Facets returns the facets in display order.
func Facets() []Facet {
	return []Facet{FacetCourse, FacetState, FacetInstitution}
}

// ParseFacet maps a name to a Facet.
func ParseFacet(s string) (Facet, bool) {
	switch Facet(s) {
	case FacetCourse, FacetState, FacetInstitution:
		return Facet(s), true
	default:
		return "", false
	}
}

// Record is one admission row.
type Record struct {
	Course      string  // course name
	State       string  // two-letter state code of the institution
	Institution string  // institution acronym
	Seats       int64   // seat-competition quantity, valid only if HasSeats
	HasSeats    bool    // false when the cell was empty or non-numeric
	Score       float64 // cutoff score, NaN when missing
}

// HasScore reports whether the cutoff score is a number.
func (r Record) HasScore() bool {
	return !math.IsNaN(r.Score)
}

// Value returns the record's value for a facet.
func (r Record) Value(f Facet) string {
	switch f {
	case FacetCourse:
		return r.Course
	case FacetState:
		return r.State
	case FacetInstitution:
		return r.Institution
	default:
		return ""
	}
}
