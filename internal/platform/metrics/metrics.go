// Package metrics holds the prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "linkhub_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "linkhub_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	EventsTracked = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "linkhub_events_tracked_total",
		Help: "Click and view events accepted for recording.",
	}, []string{"type"})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, EventsTracked)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
