package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal            = "http_requests_total"
	HTTPRequestDurationSeconds  = "http_request_duration_seconds"
	MetricsRefreshFailureTotal  = "metrics_refresh_failure_total"
	MetricsRefreshDurationSecs  = "metrics_refresh_duration_seconds"
	ActivityDurableWriteFailure = "activity_durable_write_failure_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "status_code"}),
		MetricsRefreshFailureTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricsRefreshFailureTotal,
			Help: "Count of failed snapshot refreshes in the analytics sweep",
		}, []string{"dao_id"}),
		ActivityDurableWriteFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ActivityDurableWriteFailure,
			Help: "Count of swallowed activity store write failures",
		}, []string{"dao_id"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "status_code"}),
		MetricsRefreshDurationSecs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: MetricsRefreshDurationSecs,
			Help: "Duration of full analytics sweep cycles",
		}, []string{}),
	}
)
