package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmarques/tripfolio/backend/internal/middleware"
)

// TestMetricsHandler_PassesThrough verifies the counting wrapper is
// transparent to the response. The counter values themselves are covered
// by the prometheus client library; what matters here is that wrapping
// does not change status or body.
func TestMetricsHandler_PassesThrough(t *testing.T) {
	h := middleware.NewMetricsHandler()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("body"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/document", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "body", rec.Body.String())
}
