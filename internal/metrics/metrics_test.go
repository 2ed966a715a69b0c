package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_LabelsRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Delete("/api/bills/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodDelete, "/api/bills/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodDelete, "/api/bills/{id}", "204"))
	if got != 3 {
		t.Errorf("expected 3 requests on the route pattern, got %v", got)
	}
}

func TestMutationAndCache(t *testing.T) {
	m := New()
	m.Mutation("bill", "create", "applied")
	m.Mutation("bill", "create", "applied")
	m.Mutation("bill", "delete", "skipped")
	m.CacheLookup("dashboard", true)
	m.CacheLookup("dashboard", false)

	if v := testutil.ToFloat64(m.Mutations.WithLabelValues("bill", "create", "applied")); v != 2 {
		t.Errorf("applied creates = %v", v)
	}
	if v := testutil.ToFloat64(m.CacheRequests.WithLabelValues("dashboard", "hit")); v != 1 {
		t.Errorf("cache hits = %v", v)
	}

	var nilMetrics *Metrics
	nilMetrics.Mutation("bill", "create", "applied")
	nilMetrics.CacheLookup("dashboard", true)
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.Mutation("salary", "upsert", "applied")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `books_mutations_total{action="upsert",entity="salary",outcome="applied"} 1`) {
		t.Errorf("mutation counter missing from exposition")
	}
}
