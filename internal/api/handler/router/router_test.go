package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	rt := New(
		WithRoutes(Route{
			Path:        "/scrape-ads",
			Method:      http.MethodPost,
			Handler:     http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("scraped")) }),
			Middlewares: []func(http.Handler) http.Handler{tag("first"), tag("second")},
		}),
		WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("missing"))
		})),
	)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/scrape-ads", nil))
	assert.Equal(t, "scraped", rec.Body.String())
	assert.Equal(t, []string{"first", "second"}, order)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "missing", rec.Body.String())

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scrape-ads", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AnyMethod(t *testing.T) {
	var methods []string
	rt := New(
		WithAnyMethod("/scrape-ads", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			methods = append(methods, r.Method)
		})),
		WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})),
	)

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodTrace, "PURGE"} {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(method, "/scrape-ads", nil))
		assert.Equal(t, http.StatusOK, rec.Code, method)
	}
	assert.Equal(t, []string{http.MethodGet, http.MethodHead, http.MethodTrace, "PURGE"}, methods)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest("PURGE", "/scrape-ads/other", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
