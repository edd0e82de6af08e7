package swagger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func serve(mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(method, path, http.NoBody))
	return w
}

func TestRegister(t *testing.T) {
	Convey("Given the docs routes on a mux", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		Convey("When the OpenAPI document is fetched", func() {
			w := serve(mux, http.MethodGet, "/openapi.yaml")

			Convey("Then every report route and the match kinds are described", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/yaml; charset=utf-8")
				for _, path := range []string{
					"/v1/reports/score-sheet:",
					"/v1/reports/workbook:",
					"/v1/reports/standings:",
					"/v1/reports/score-sheets:",
					"/healthz:",
					"/stats:",
				} {
					So(w.Body.String(), ShouldContainSubstring, path)
				}
				So(w.Body.String(), ShouldContainSubstring, "[INDOOR, INDOOR_4X4, BEACH, SNOW]")
			})
		})

		Convey("When the docs page is fetched", func() {
			w := serve(mux, http.MethodGet, "/api-docs")

			Convey("Then ReDoc is pointed at the embedded document", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "text/html; charset=utf-8")
				So(w.Body.String(), ShouldContainSubstring, "<title>Scoresheet API Docs</title>")
				So(w.Body.String(), ShouldContainSubstring, RedocScript)
				So(w.Body.String(), ShouldContainSubstring, "Redoc.init('/openapi.yaml'")
			})
		})

		Convey("When the document is posted to", func() {
			So(serve(mux, http.MethodPost, "/openapi.yaml").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})

	Convey("Given no mux", t, func() {
		So(func() { Register(context.Background(), nil) }, ShouldPanic)
	})
}
