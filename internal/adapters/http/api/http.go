// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/okian/sisu/internal/domain/facets"
	"github.com/okian/sisu/internal/domain/filter"
	"github.com/okian/sisu/internal/domain/model"
	"github.com/okian/sisu/internal/domain/present"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Update runs the filter/aggregate/present pipeline for a selection.
	Update(ctx context.Context, sel model.Selection) (present.Update, error)

	// Facets and Search feed the dropdowns.
	Facets(ctx context.Context) facets.Set
	Search(ctx context.Context, f model.Facet, prefix string, limit int) ([]string, error)

	// RenderChart writes one chart image for a selection.
	RenderChart(ctx context.Context, sel model.Selection, id present.ChartID, format present.Format, w io.Writer) error
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	opsHandler       *opsHandler
	facetsHandler    *FacetsHandler
	updateHandler    *UpdateHandler
	chartsHandler    *ChartsHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		opsHandler:       newOpsHandler(statsProvider),
		facetsHandler:    NewFacetsHandler(deps),
		updateHandler:    NewUpdateHandler(deps),
		chartsHandler:    NewChartsHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(path, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(path, RequestIDMiddleware(InstrumentMiddleware(h, endpoint)))
	}

	// Specific paths first (most specific to least specific)
	route("/healthz", "healthz", s.opsHandler.HandleHealth)
	route("/dashboard", "dashboard", s.dashboardHandler.HandleDashboard)
	route("/stats", "stats", s.opsHandler.HandleStats)
	route("/api/facets", "facets", s.facetsHandler.HandleList)
	route("/api/facets/", "facet_search", s.facetsHandler.HandleSearch)
	route("/api/update", "update", s.updateHandler.HandleUpdate)
	route("/charts/", "charts", s.chartsHandler.HandleChart)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// selectionFromQuery reads repeated course, state and institution
// parameters; ?state=SP and ?state=SP&state=RJ are both accepted.
func selectionFromQuery(q url.Values) model.Selection {
	return model.Selection{
		Course:      filter.Normalize(q[string(model.FacetCourse)]...),
		State:       filter.Normalize(q[string(model.FacetState)]...),
		Institution: filter.Normalize(q[string(model.FacetInstitution)]...),
	}
}
