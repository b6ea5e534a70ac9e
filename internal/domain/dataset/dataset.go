// Package dataset loads the admission table and indexes it for filtering.
package dataset

import (
	"slices"

	"github.com/RoaringBitmap/roaring"
	"github.com/okian/sisu/internal/domain/model"
)

// Columns names the five required header fields.
type Columns struct {
	Course      string
	State       string
	Institution string
	Seats       string
	Score       string
}

// DefaultColumns returns the column names of the official SISU export.
func DefaultColumns() Columns {
	return Columns{
		Course:      "NO_CURSO",
		State:       "SG_UF_IES",
		Institution: "SG_IES",
		Seats:       "QT_VAGAS_CONCORRENCIA",
		Score:       "NU_NOTACORTE_CONCORRIDA",
	}
}

// Required lists the column names in a fixed order.
func (c Columns) Required() []string {
	return []string{c.Course, c.State, c.Institution, c.Seats, c.Score}
}

// Stats summarizes a loaded dataset.
type Stats struct {
	Rows          int `json:"rows"`
	InvalidScores int `json:"invalid_scores"`
	InvalidSeats  int `json:"invalid_seats"`
}

// Dataset is an immutable table of records with one posting bitmap per
// distinct facet value. Safe for concurrent readers.
type Dataset struct {
	columns  Columns
	records  []model.Record
	postings map[model.Facet]map[string]*roaring.Bitmap
	stats    Stats
}

// New builds a Dataset from records and indexes it. The slice is owned by
// the Dataset afterwards.
func New(columns Columns, records []model.Record) *Dataset {
	d := &Dataset{
		columns:  columns,
		records:  records,
		postings: make(map[model.Facet]map[string]*roaring.Bitmap, len(model.Facets())),
		stats:    Stats{Rows: len(records)},
	}
	for _, f := range model.Facets() {
		d.postings[f] = make(map[string]*roaring.Bitmap)
	}

	for i, r := range records {
		id := uint32(i) //nolint:gosec // row count is bounded by memory, far below 2^32
		for _, f := range model.Facets() {
			v := r.Value(f)
			bm, ok := d.postings[f][v]
			if !ok {
				bm = roaring.New()
				d.postings[f][v] = bm
			}
			bm.Add(id)
		}
		if !r.HasScore() {
			d.stats.InvalidScores++
		}
		if !r.HasSeats {
			d.stats.InvalidSeats++
		}
	}

	for _, byValue := range d.postings {
		for _, bm := range byValue {
			bm.RunOptimize()
		}
	}
	return d
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.records) }

// Record returns the row with the given id.
func (d *Dataset) Record(id uint32) model.Record { return d.records[id] }

// Columns returns the header names the dataset was loaded with.
func (d *Dataset) Columns() Columns { return d.columns }

// Stats returns load statistics.
func (d *Dataset) Stats() Stats { return d.stats }

// Posting returns the row ids holding value in facet f, or nil. Callers must
// not modify the returned bitmap.
func (d *Dataset) Posting(f model.Facet, value string) *roaring.Bitmap {
	return d.postings[f][value]
}

// Distinct returns the distinct non-empty values of a facet, sorted ascending.
func (d *Dataset) Distinct(f model.Facet) []string {
	byValue := d.postings[f]
	out := make([]string, 0, len(byValue))
	for v := range byValue {
		if v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}
