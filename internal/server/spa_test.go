package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func spaRequest(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	handler := newSPAHandler(fstest.MapFS{
		"index.html":          {Data: []byte("<!doctype html><div id=app></div>")},
		"assets/app-abc12.js": {Data: []byte("console.log('innov8')")},
		"favicon.ico":         {Data: []byte{0}},
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSPAHandler(t *testing.T) {
	t.Run("serves index at root", func(t *testing.T) {
		rec := spaRequest(t, "/")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "id=app")
	})

	t.Run("serves existing assets with immutable cache", func(t *testing.T) {
		rec := spaRequest(t, "/assets/app-abc12.js")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Cache-Control"), "immutable")
	})

	t.Run("serves other files with standard cache", func(t *testing.T) {
		rec := spaRequest(t, "/favicon.ico")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	})

	t.Run("falls back to index for client-side routes", func(t *testing.T) {
		rec := spaRequest(t, "/ideas/some-idea-id")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "id=app")
		assert.Contains(t, rec.Header().Get("Cache-Control"), "no-cache")
	})

	t.Run("unmatched API paths get JSON 404", func(t *testing.T) {
		rec := spaRequest(t, "/api/nope")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	})
}
