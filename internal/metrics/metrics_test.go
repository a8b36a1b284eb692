package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LabelsRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/api/listings/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/listings/abc", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))

	families, err := reg.Gather()
	require.NoError(t, err)
	var labels map[string]string
	for _, fam := range families {
		if fam.GetName() != "unistay_http_request_duration_seconds" {
			continue
		}
		labels = map[string]string{}
		for _, lp := range fam.GetMetric()[0].GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
	}
	assert.Equal(t, map[string]string{
		"route":  "/api/listings/{id}",
		"method": "GET",
		"code":   "404",
	}, labels)
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.BookingsCreated.Inc()
	m.BookingDecisions.WithLabelValues("confirmed").Inc()
	m.BookingDecisions.WithLabelValues("confirmed").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingDecisions.WithLabelValues("confirmed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BookingDecisions.WithLabelValues("cancelled")))
}

type plainWriter struct {
	http.ResponseWriter
}

func TestMiddleware_KeepsHijacker(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	var hijackable bool
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hijackable = w.(http.Hijacker)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/ws", nil))
	assert.True(t, hijackable)

	// a writer that cannot hijack reports an error instead of panicking
	rec := &statusRecorder{ResponseWriter: plainWriter{httptest.NewRecorder()}, status: http.StatusOK}
	_, _, err := rec.Hijack()
	assert.Error(t, err)
	assert.Equal(t, http.StatusOK, rec.status)
}
