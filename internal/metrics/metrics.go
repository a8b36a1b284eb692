// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the service's collectors
type Metrics struct {
	BookingsCreated   prometheus.Counter
	BookingDecisions  *prometheus.CounterVec
	ListingsCreated   prometheus.Counter
	AssistantRequests *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
}

// New registers the collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		BookingsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "unistay_bookings_created_total",
			Help: "Booking requests created by students.",
		}),
		BookingDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "unistay_booking_decisions_total",
			Help: "Booking requests confirmed or cancelled by dealers.",
		}, []string{"status"}),
		ListingsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "unistay_listings_created_total",
			Help: "Listings published by dealers.",
		}),
		AssistantRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "unistay_assistant_requests_total",
			Help: "Assistant calls by kind and outcome.",
		}, []string{"kind", "outcome"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "unistay_http_request_duration_seconds",
			Help:    "HTTP request latency by route template.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "code"}),
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack hands the connection to a WebSocket upgrade. The upgrade answers
// 101 on the raw connection, so that is the status recorded.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	conn, rw, err := h.Hijack()
	if err == nil {
		r.status = http.StatusSwitchingProtocols
	}
	return conn, rw, err
}

// Middleware observes request latency labelled with the matched mux route
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		m.RequestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}
