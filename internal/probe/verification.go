package probe

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/okian/sisu/internal/domain/model"
	"github.com/okian/sisu/internal/domain/present"
)

// Rule names a checked invariant.
type Rule string

// Checked invariants.
const (
	RuleEcho          Rule = "selection_echo"
	RuleCharts        Rule = "chart_set"
	RuleMissingFacet  Rule = "missing_facet_empty"
	RuleTotal         Rule = "total_matches_counts"
	RuleSorted        Rule = "keys_ascending"
	RuleScoreSubset   Rule = "score_states_counted"
	RuleSelectedState Rule = "states_selected"
	RuleSelectedInst  Rule = "institutions_selected"
	RuleCountLabel    Rule = "count_label"
	RuleQueryForm     Rule = "query_form_agrees"
)

// Violation records one broken invariant.
type Violation struct {
	Rule      Rule
	Selection model.Selection
	Detail    string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvariant, v.Rule, v.Detail)
}

// Unwrap lets errors.Is match ErrInvariant.
func (v Violation) Unwrap() error { return ErrInvariant }

// Verify checks resp, the answer to sel, and returns every broken invariant.
// countLabel is the service's configured label text.
func Verify(sel model.Selection, resp Response, countLabel string) []Violation {
	var out []Violation
	fail := func(r Rule, format string, args ...any) {
		out = append(out, Violation{Rule: r, Selection: sel, Detail: fmt.Sprintf(format, args...)})
	}

	for _, f := range model.Facets() {
		if !slices.Equal(sel.Get(f), resp.Selection.Get(f)) {
			fail(RuleEcho, "%s sent %v, echoed %v", f, sel.Get(f), resp.Selection.Get(f))
		}
	}

	ids := present.ChartIDs()
	if len(resp.Charts) != len(ids) {
		fail(RuleCharts, "got %d charts, want %d", len(resp.Charts), len(ids))
		return out
	}
	for i, id := range ids {
		if resp.Charts[i].ID != id {
			fail(RuleCharts, "chart %d is %q, want %q", i, resp.Charts[i].ID, id)
			return out
		}
	}
	seats, byState, byInst := resp.Charts[0], resp.Charts[1], resp.Charts[2]

	if sel.Course.Empty() || sel.State.Empty() {
		if resp.TotalCount != 0 || !seats.Empty() || !byState.Empty() || !byInst.Empty() {
			fail(RuleMissingFacet, "total %d with %d/%d/%d bars", resp.TotalCount, len(seats.Points), len(byState.Points), len(byInst.Points))
		}
	}

	sum := 0
	for _, p := range seats.Points {
		sum += int(p.Value)
	}
	if sum != resp.TotalCount {
		fail(RuleTotal, "per-state counts sum to %d, total is %d", sum, resp.TotalCount)
	}

	for _, c := range resp.Charts {
		labels := chartLabels(c)
		for i := 1; i < len(labels); i++ {
			if labels[i-1] >= labels[i] {
				fail(RuleSorted, "%s: %q before %q", c.ID, labels[i-1], labels[i])
				break
			}
		}
	}

	counted := chartLabels(seats)
	for _, st := range chartLabels(byState) {
		if !slices.Contains(counted, st) {
			fail(RuleScoreSubset, "state %q has a score but no count", st)
		}
	}
	for _, st := range counted {
		if !sel.State.Contains(st) {
			fail(RuleSelectedState, "state %q was not selected", st)
		}
	}
	if !sel.Institution.Empty() {
		for _, inst := range chartLabels(byInst) {
			if !sel.Institution.Contains(inst) {
				fail(RuleSelectedInst, "institution %q was not selected", inst)
			}
		}
	}

	if n, ok := labelCount(resp.CountLabel, countLabel); !ok || n != resp.TotalCount {
		fail(RuleCountLabel, "label %q does not show total %d", resp.CountLabel, resp.TotalCount)
	}

	return out
}

func chartLabels(c present.Chart) []string {
	out := make([]string, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Label
	}
	return out
}

// labelCount parses "<prefix>: 1.234" ignoring the digit grouping mark.
func labelCount(label, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(label, prefix+": ")
	if !ok || rest == "" {
		return 0, false
	}
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		if unicode.IsPunct(r) || unicode.IsSpace(r) {
			return -1
		}
		return 'x'
	}, rest)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
