// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/sisu/internal/domain/facets"
	"github.com/okian/sisu/internal/domain/model"
	"github.com/okian/sisu/internal/domain/types"
)

// FacetsDependencies defines what the facet handlers need.
type FacetsDependencies interface {
	Facets(ctx context.Context) facets.Set
	Search(ctx context.Context, f model.Facet, prefix string, limit int) ([]string, error)
}

// FacetsHandler serves dropdown values.
type FacetsHandler struct {
	deps FacetsDependencies
}

// NewFacetsHandler creates a new facets handler.
func NewFacetsHandler(deps FacetsDependencies) *FacetsHandler {
	return &FacetsHandler{deps: deps}
}

// HandleList handles GET /api/facets requests.
func (h *FacetsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	set := h.deps.Facets(r.Context())
	writeJSON(w, http.StatusOK, types.FacetOptions{
		Course:      types.Options(set.Courses),
		State:       types.Options(set.States),
		Institution: types.Options(set.Institutions),
	})
}

// HandleSearch handles GET /api/facets/{facet}?prefix=&limit= requests.
func (h *FacetsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.facet_search"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/facets/")
	f, ok := model.ParseFacet(name)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, facets.ErrUnknownFacet))
		return
	}

	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("limit must be a non-negative integer")))
			return
		}
		limit = n
	}

	prefix := q.Get("prefix")
	values, err := h.deps.Search(r.Context(), f, prefix, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if values == nil {
		values = []string{}
	}
	writeJSON(w, http.StatusOK, types.SearchResult{Facet: string(f), Prefix: prefix, Values: values})
}
