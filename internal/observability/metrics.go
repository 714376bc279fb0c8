package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestDuration tracks outbound request duration per endpoint
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "medclient_api_request_duration_seconds",
			Help: "Duration of requests to the remote service in seconds",
		},
		[]string{"endpoint", "method", "status"},
	)

	// APIRequestErrors tracks outbound request failures by category
	APIRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medclient_api_request_errors_total",
			Help: "Number of failed requests to the remote service",
		},
		[]string{"endpoint", "category"},
	)

	// SignInAttempts tracks sign-in outcomes
	SignInAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medclient_sign_in_attempts_total",
			Help: "Number of sign-in attempts",
		},
		[]string{"status"},
	)

	// SessionRestores tracks start-up session restoration outcomes
	SessionRestores = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medclient_session_restores_total",
			Help: "Number of session restore attempts",
		},
		[]string{"status"},
	)

	// DirectoryFetches tracks doctor directory fetches
	DirectoryFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medclient_directory_fetches_total",
			Help: "Number of doctor directory fetches",
		},
		[]string{"kind", "status"},
	)

	// DirectoryFetchesDiscarded tracks stale fetch responses thrown away
	DirectoryFetchesDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "medclient_directory_fetches_discarded_total",
			Help: "Number of directory fetch responses discarded as stale",
		},
	)

	// FilterMisses tracks specialty filter queries with no match
	FilterMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "medclient_filter_misses_total",
			Help: "Number of specialty filter queries that matched nothing",
		},
	)
)
