// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/okian/sisu/internal/domain/model"
	"github.com/okian/sisu/internal/domain/present"
)

// ChartsDependencies defines the interface for chart rendering.
type ChartsDependencies interface {
	RenderChart(ctx context.Context, sel model.Selection, id present.ChartID, format present.Format, w io.Writer) error
}

// ChartsHandler serves chart images.
type ChartsHandler struct {
	deps ChartsDependencies
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps ChartsDependencies) *ChartsHandler {
	return &ChartsHandler{deps: deps}
}

// HandleChart handles GET /charts/{id}.{svg|png} requests. The selection
// comes from the query string; an empty chart answers 204.
func (h *ChartsHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.chart"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/charts/")
	ext := path.Ext(name)
	id, ok := present.ParseChartID(strings.TrimSuffix(name, ext))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, fmt.Errorf("%w: %q", present.ErrUnknownChart, name)))
		return
	}
	format, err := present.ParseFormat(ext)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	var buf bytes.Buffer
	err = h.deps.RenderChart(r.Context(), selectionFromQuery(r.URL.Query()), id, format, &buf)
	switch {
	case errors.Is(err, present.ErrEmptyChart):
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
