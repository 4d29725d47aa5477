package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP responses by route template and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "couple_site_http_requests_total",
		Help: "The total number of HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "couple_site_http_request_duration_seconds",
		Help:    "The HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// LoginAttemptsTotal counts login outcomes: success, invalid, locked, unverified, error.
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "couple_site_login_attempts_total",
		Help: "The total number of login attempts by outcome",
	}, []string{"outcome"})

	SignupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "couple_site_signups_total",
		Help: "The total number of signup attempts by outcome",
	}, []string{"outcome"})

	// EmailsTotal counts email deliveries by kind and outcome (sent, failed).
	EmailsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "couple_site_emails_total",
		Help: "The total number of email deliveries by kind and outcome",
	}, []string{"kind", "outcome"})

	EmailsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "couple_site_emails_dropped_total",
		Help: "The total number of emails dropped because the outbound queue was full or closed",
	})

	ExpiredSessionsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "couple_site_expired_sessions_purged_total",
		Help: "The total number of expired sessions removed by the janitor",
	})
)
