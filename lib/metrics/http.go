package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Count of HTTP requests served.",
	}, []string{"method", "route", "code"})
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   []float64{0.05, 0.1, 0.3, 0.5, 1, 2, 5, 15},
	}, []string{"method", "route"})
)

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// HTTP is a mux middleware counting requests by route template, so that ids in the path do not explode the labels.
// Requests not matching any route are not recorded.
func HTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := mux.CurrentRoute(r)
		if route == nil {
			return
		}

		tpl, err := route.GetPathTemplate()
		if err != nil {
			return
		}

		httpRequestsTotal.WithLabelValues(r.Method, tpl, strconv.Itoa(sw.code)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, tpl).Observe(time.Since(start).Seconds())
	})
}
