package probe

import (
	"math/rand/v2"

	"github.com/okian/sisu/internal/domain/model"
	"github.com/okian/sisu/internal/domain/types"
)

// Generator produces random selections from the service's facet values.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng     *rand.Rand
	courses []string
	states  []string
	insts   []string
}

// NewGenerator seeds a generator over the given facet options.
func NewGenerator(seed uint64, opts types.FacetOptions) *Generator {
	return &Generator{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		courses: values(opts.Course),
		states:  values(opts.State),
		insts:   values(opts.Institution),
	}
}

func values(opts []types.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

// Next returns a selection. Every tenth selection drops the course or the
// state so the missing-facet path is covered; institution is left empty
// about half of the time, and now and then a value is asked for that the
// dataset does not contain.
func (g *Generator) Next() model.Selection {
	sel := model.Selection{
		Course:      g.pick(g.courses, 1),
		State:       g.pick(g.states, 1),
		Institution: model.Values{},
	}
	if g.rng.IntN(2) == 0 {
		sel.Institution = g.pick(g.insts, 0)
	}
	if g.rng.IntN(emptyCourseEvery) == 0 {
		sel.Course = model.Values{}
	}
	if g.rng.IntN(emptyStateEvery) == 0 {
		sel.State = model.Values{}
	}
	if g.rng.IntN(unknownValueOdds) == 0 {
		sel.Institution = model.NewValues(append(sel.Institution, unknownValue)...)
	}
	return sel
}

func (g *Generator) pick(from []string, minPicks int) model.Values {
	if len(from) == 0 {
		return model.Values{}
	}
	n := minPicks + g.rng.IntN(maxPicksPerFacet-minPicks+1)
	picked := make([]string, 0, n)
	for range n {
		picked = append(picked, from[g.rng.IntN(len(from))])
	}
	return model.NewValues(picked...)
}
