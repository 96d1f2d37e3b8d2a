package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/4liaghaie/sait/internal/metrics"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues("/things/{id}", "202")
	before := testutil.ToFloat64(counter)
	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/"+id, nil))
	}
	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRecordWrite(t *testing.T) {
	c := metrics.ContentWritesTotal.WithLabelValues("image", "create")
	before := testutil.ToFloat64(c)
	metrics.RecordWrite("image", "create")
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
