package api

import (
	"net/http"

	"github.com/okian/sisu/internal/domain/types"
	"github.com/okian/sisu/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsProvider reports dataset and service counters.
type StatsProvider interface {
	GetStats() types.Stats
}

// opsHandler serves Prometheus metrics on /healthz and counters on /stats.
type opsHandler struct {
	stats   StatsProvider
	metrics http.Handler
}

func newOpsHandler(stats StatsProvider) *opsHandler {
	return &opsHandler{
		stats:   stats,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth answers GET /healthz with the metrics exposition.
func (h *opsHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	h.metrics.ServeHTTP(w, r)
}

// HandleStats answers GET /stats.
func (h *opsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, h.stats.GetStats())
}
