// Package metrics exposes Prometheus counters for submissions and mail.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for FormSubmissions.
const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

var (
	FormSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wellbeing_form_submissions_total",
		Help: "Form submissions by form and outcome.",
	}, []string{"form", "outcome"})

	MailDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wellbeing_mail_deliveries_total",
		Help: "Mail relay attempts by final status.",
	}, []string{"status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wellbeing_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "code"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
