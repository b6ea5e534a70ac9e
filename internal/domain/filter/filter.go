// Package filter turns a Selection into the subset of dataset rows it matches.
package filter

import (
	"github.com/RoaringBitmap/roaring"
	"github.com/okian/sisu/internal/domain/dataset"
	"github.com/okian/sisu/internal/domain/model"
)

// EmptyReason explains why a View has no rows.
type EmptyReason string

// Reasons for an empty view.
const (
	ReasonNone         EmptyReason = ""
	ReasonMissingFacet EmptyReason = "missing_facet"
	ReasonNoMatch      EmptyReason = "no_match"
)

// View is the set of dataset rows matching a Selection.
type View struct {
	ds     *dataset.Dataset
	rows   *roaring.Bitmap
	reason EmptyReason
}

// Normalize turns raw selected values, a lone scalar included, into a set.
func Normalize(values ...string) model.Values {
	return model.NewValues(values...)
}

// Apply evaluates course ∈ C AND state ∈ S, plus institution ∈ I when I is
// non-empty. An empty course or state selection yields an empty view.
func Apply(ds *dataset.Dataset, sel model.Selection) View {
	if sel.Course.Empty() || sel.State.Empty() {
		return View{ds: ds, rows: roaring.New(), reason: ReasonMissingFacet}
	}

	rows := roaring.And(
		union(ds, model.FacetCourse, sel.Course),
		union(ds, model.FacetState, sel.State),
	)
	if !sel.Institution.Empty() {
		rows.And(union(ds, model.FacetInstitution, sel.Institution))
	}

	v := View{ds: ds, rows: rows}
	if rows.IsEmpty() {
		v.reason = ReasonNoMatch
	}
	return v
}

// union ORs the postings of the selected values. Dataset bitmaps are never
// modified; the result is always a fresh bitmap.
func union(ds *dataset.Dataset, f model.Facet, values model.Values) *roaring.Bitmap {
	bms := make([]*roaring.Bitmap, 0, len(values))
	for _, v := range values {
		if bm := ds.Posting(f, v); bm != nil {
			bms = append(bms, bm)
		}
	}
	if len(bms) == 0 {
		return roaring.New()
	}
	return roaring.FastOr(bms...)
}

// Matches reports whether a single record satisfies sel.
func Matches(sel model.Selection, r model.Record) bool {
	if sel.Course.Empty() || sel.State.Empty() {
		return false
	}
	if !sel.Course.Contains(r.Course) || !sel.State.Contains(r.State) {
		return false
	}
	return sel.Institution.Empty() || sel.Institution.Contains(r.Institution)
}

// Len returns the number of matched rows.
func (v View) Len() int { return int(v.rows.GetCardinality()) }

// Empty reports whether no row matched.
func (v View) Empty() bool { return v.rows.IsEmpty() }

// Reason tells why the view is empty.
func (v View) Reason() EmptyReason { return v.reason }

// IDs returns the matched row ids in ascending order.
func (v View) IDs() []uint32 { return v.rows.ToArray() }

// Each calls fn for every matched record in row order.
func (v View) Each(fn func(model.Record)) {
	it := v.rows.Iterator()
	for it.HasNext() {
		fn(v.ds.Record(it.Next()))
	}
}
