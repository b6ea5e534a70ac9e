// Package site serves the dashboard's static assets and the root redirect.
package site

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("site serve failed")
)

//go:embed static/assets
var staticFS embed.FS

// assetCacheControl applies to every file under /assets/.
const assetCacheControl = "public, max-age=3600"

// Register attaches the asset routes and the root redirect to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("/assets/", assetHandler())
	mux.HandleFunc("/", handleRoot)
}

// assetHandler serves static/assets/x under /assets/x.
func assetHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(errors.Join(ErrServe, err))
	}
	files := http.FileServer(http.FS(sub))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", assetCacheControl)
		files.ServeHTTP(w, r)
	})
}

// handleRoot redirects / to the dashboard; any other unmatched path is 404.
func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}
