package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MailAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_transport_attempts_total",
			Help: "SMTP delivery attempts per transport and outcome",
		},
		[]string{"transport", "outcome"},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notification results after all transports were tried",
		},
		[]string{"outcome"},
	)

	MailAttemptDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mail_transport_attempt_duration_seconds",
			Help:    "Duration of a single SMTP delivery attempt",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"transport"},
	)
)
