package api

import (
	"bytes"
	"embed"
	"net/http"
	"time"
)

//go:embed static/dashboard.html
var dashboardFS embed.FS

// dashboardHandler serves the single-page dashboard. The page loads
// dropdown values from /api/facets, posts selections to /api/update and
// shows chart images from /charts/.
type dashboardHandler struct {
	page   []byte
	loaded time.Time
}

func newDashboardHandler() *dashboardHandler {
	page, err := dashboardFS.ReadFile("static/dashboard.html")
	if err != nil {
		panic(err)
	}
	return &dashboardHandler{page: page, loaded: time.Now()}
}

// HandleDashboard handles GET /dashboard requests.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, "dashboard.html", h.loaded, bytes.NewReader(h.page))
}
