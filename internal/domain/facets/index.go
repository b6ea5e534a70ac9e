package facets

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/armon/go-radix"
	"github.com/okian/sisu/internal/domain/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownFacet is returned for a facet name outside course, state and institution.
var ErrUnknownFacet = errors.New("unknown facet")

// keySep separates the folded key from the original value so that values
// folding to the same text keep distinct entries.
const keySep = "\x00"

// Index answers prefix queries over facet values, ignoring case and accents.
// Read-only after NewIndex; safe for concurrent use.
type Index struct {
	trees map[model.Facet]*radix.Tree
}

// NewIndex builds one radix tree per facet.
func NewIndex(set Set) *Index {
	idx := &Index{trees: make(map[model.Facet]*radix.Tree, len(model.Facets()))}
	for _, f := range model.Facets() {
		t := radix.New()
		for _, v := range set.Get(f) {
			t.Insert(Fold(v)+keySep+v, v)
		}
		idx.trees[f] = t
	}
	return idx
}

// Search returns up to limit values of facet f whose folded form starts with
// the folded prefix, sorted ascending. limit <= 0 means no limit.
func (idx *Index) Search(f model.Facet, prefix string, limit int) ([]string, error) {
	t, ok := idx.trees[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFacet, f)
	}

	var out []string
	t.WalkPrefix(Fold(prefix), func(_ string, v interface{}) bool {
		out = append(out, v.(string)) //nolint:forcetypeassert // only strings are inserted
		return false
	})
	slices.Sort(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Fold lowercases s and strips diacritics, so "Administração" and
// "administracao" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
