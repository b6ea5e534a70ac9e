package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func serve(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(method, target, http.NoBody))
	return w
}

func TestRegister(t *testing.T) {
	Convey("Given the site routes on a mux", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		Convey("When assets are requested", func() {
			assets := []struct {
				path, contentType string
			}{
				{"/assets/style.css", "text/css"},
				{"/assets/logo.svg", "image/svg+xml"},
			}
			for _, a := range assets {
				w := serve(mux, http.MethodGet, a.path)

				Convey("Then "+a.path+" is served with a cache header", func() {
					So(w.Code, ShouldEqual, http.StatusOK)
					So(w.Header().Get("Content-Type"), ShouldContainSubstring, a.contentType)
					So(w.Header().Get("Cache-Control"), ShouldEqual, assetCacheControl)
				})
			}

			Convey("Then the stylesheet carries the page palette", func() {
				So(serve(mux, http.MethodGet, "/assets/style.css").Body.String(), ShouldContainSubstring, "#212121")
			})

			Convey("Then missing assets are 404", func() {
				So(serve(mux, http.MethodGet, "/assets/missing.js").Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("Then writes are rejected", func() {
				So(serve(mux, http.MethodPost, "/assets/style.css").Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the root is requested", func() {
			w := serve(mux, http.MethodGet, "/")

			Convey("Then it redirects to the dashboard", func() {
				So(w.Code, ShouldEqual, http.StatusFound)
				So(w.Header().Get("Location"), ShouldEqual, "/dashboard")
			})
		})

		Convey("When an unknown root path is requested", func() {
			Convey("Then it is 404", func() {
				So(serve(mux, http.MethodGet, "/some-asset").Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})

	Convey("Given a nil mux", t, func() {
		Convey("Then Register panics", func() {
			So(func() { Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
