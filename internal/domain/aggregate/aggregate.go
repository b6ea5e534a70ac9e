// Package aggregate summarizes a filtered view per state and institution.
package aggregate

import (
	"slices"

	"github.com/okian/sisu/internal/domain/filter"
	"github.com/okian/sisu/internal/domain/model"
	"gonum.org/v1/gonum/floats"
)

// CountEntry is the number of rows of one group.
type CountEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ScoreEntry is the maximum cutoff score of one group.
type ScoreEntry struct {
	Key   string  `json:"key"`
	Score float64 `json:"score"`
}

// Result holds the three summary tables, each ascending by key, and the
// total row count of the view.
type Result struct {
	CountsByState         []CountEntry `json:"counts_by_state"`
	MaxScoreByState       []ScoreEntry `json:"max_score_by_state"`
	MaxScoreByInstitution []ScoreEntry `json:"max_score_by_institution"`
	TotalCount            int          `json:"total_count"`
}

// Compute aggregates v. Rows without a valid score count toward
// CountsByState but are excluded from the maxima; a group with no valid
// score is left out of the score tables.
func Compute(v filter.View) Result {
	counts := make(map[string]int)
	byState := make(map[string][]float64)
	byInst := make(map[string][]float64)

	v.Each(func(r model.Record) {
		counts[r.State]++
		if !r.HasScore() {
			return
		}
		byState[r.State] = append(byState[r.State], r.Score)
		byInst[r.Institution] = append(byInst[r.Institution], r.Score)
	})

	res := Result{
		CountsByState:         make([]CountEntry, 0, len(counts)),
		MaxScoreByState:       maxima(byState),
		MaxScoreByInstitution: maxima(byInst),
		TotalCount:            v.Len(),
	}
	for _, k := range sortedKeys(counts) {
		res.CountsByState = append(res.CountsByState, CountEntry{Key: k, Count: counts[k]})
	}
	return res
}

func maxima(groups map[string][]float64) []ScoreEntry {
	out := make([]ScoreEntry, 0, len(groups))
	for _, k := range sortedKeys(groups) {
		out = append(out, ScoreEntry{Key: k, Score: floats.Max(groups[k])})
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
