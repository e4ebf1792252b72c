package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Calls to the spreadsheet web app by action and outcome",
	}, []string{"action", "outcome"})

	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "submissions_total",
		Help: "Record submissions by kind and outcome (delivered, queued, rejected)",
	}, []string{"kind", "outcome"})

	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "offline_queue_depth",
		Help: "Submissions currently waiting in the offline queue",
	})

	QueueSyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "offline_queue_sync_runs_total",
		Help: "Queue sync passes by result (ok, partial, error)",
	}, []string{"result"})
)
