// Package metrics exposes Prometheus collectors for the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by method, route and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "articlehub_http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"method", "route", "status"})

	// HTTPLatency records request latency by method and route.
	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "articlehub_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// LikeToggles counts like toggles by resulting action ("like" or "unlike").
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "articlehub_like_toggles_total",
		Help: "Total number of like toggles by action",
	}, []string{"action"})

	// Downloads counts served article downloads.
	Downloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "articlehub_downloads_total",
		Help: "Total number of article downloads",
	})

	// Uploads counts stored article files.
	Uploads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "articlehub_uploads_total",
		Help: "Total number of article files stored",
	})
)
