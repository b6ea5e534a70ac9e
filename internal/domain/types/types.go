// Package types contains response shapes shared by the service and the HTTP API.
package types

// Option is one dropdown entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Options converts plain values into dropdown entries labelled by themselves.
func Options(values []string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Label: v, Value: v}
	}
	return out
}

// FacetOptions lists the dropdown entries of every facet.
type FacetOptions struct {
	Course      []Option `json:"course"`
	State       []Option `json:"state"`
	Institution []Option `json:"institution"`
}

// SearchResult is the answer to a facet prefix search.
type SearchResult struct {
	Facet  string   `json:"facet"`
	Prefix string   `json:"prefix"`
	Values []string `json:"values"`
}

// Stats reports the loaded dataset and service counters.
type Stats struct {
	Started       bool   `json:"started"`
	Rows          int    `json:"rows"`
	InvalidScores int    `json:"invalid_scores"`
	InvalidSeats  int    `json:"invalid_seats"`
	Courses       int    `json:"courses"`
	States        int    `json:"states"`
	Institutions  int    `json:"institutions"`
	Updates       int64  `json:"updates"`
	EmptyUpdates  int64  `json:"empty_updates"`
	CountLabel    string `json:"count_label"`
	Locale        string `json:"locale"`
}
